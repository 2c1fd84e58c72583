package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/locstat/locstat/internal/locstat"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// sortedExts returns the extension keys in a stable display order.
// Iteration order over the map carries no meaning; sorting is display-only.
func sortedExts(byExt map[string]locstat.FileStat) []string {
	exts := make([]string, 0, len(byExt))
	for ext := range byExt {
		exts = append(exts, ext)
	}

	sort.Strings(exts)

	return exts
}

// PrintPlain outputs statistics in the classic three-line format: lines of
// code, empty lines, and the percentage of empty lines. In by-extension mode
// the three lines repeat once per extension.
func PrintPlain(report *locstat.Report, writer io.Writer) error {
	if report.ByExt == nil {
		fmt.Fprintf(writer, "There are %d lines of code.\n", report.Total.Code)
		fmt.Fprintf(writer, "There are %d empty lines.\n", report.Total.Empty)
		fmt.Fprintf(writer, "%.2f%% of the lines are empty.\n", report.Total.PercentEmpty())

		return nil
	}

	for _, ext := range sortedExts(report.ByExt) {
		stat := report.ByExt[ext]

		fmt.Fprintf(writer, "There are %d lines of code in %q files.\n", stat.Code, ext)
		fmt.Fprintf(writer, "There are %d empty lines in %q files.\n", stat.Empty, ext)
		fmt.Fprintf(writer, "%.2f%% of the lines in %q files are empty.\n", stat.PercentEmpty(), ext)
	}

	return nil
}

// PrintJSON outputs statistics in JSON format.
func PrintJSON(report *locstat.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs statistics in human-readable table format.
func PrintTable(report *locstat.Report, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	if report.ByExt != nil {
		fmt.Fprintln(w, "\nExtensions:\t\t\t")
		fmt.Fprintln(w, "  ext\tcode\tempty\tempty%")

		exts := sortedExts(report.ByExt)

		// Largest contributors first
		sort.SliceStable(exts, func(i, j int) bool {
			return report.ByExt[exts[i]].Total() > report.ByExt[exts[j]].Total()
		})

		for _, ext := range exts {
			stat := report.ByExt[ext]

			name := ext
			if name == "" {
				name = "\"\""
			}

			code := int64(stat.Code)   //nolint:gosec // Line counts never overflow int64
			empty := int64(stat.Empty) //nolint:gosec // Line counts never overflow int64

			fmt.Fprintf(w, "  %s\t%s\t%s\t%.2f%%\n",
				name, humanize.Comma(code), humanize.Comma(empty), stat.PercentEmpty())
		}
	}

	// Stats summary
	code := int64(report.Total.Code)   //nolint:gosec // Line counts never overflow int64
	empty := int64(report.Total.Empty) //nolint:gosec // Line counts never overflow int64

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total files:\t%d\n", report.FileCount)
	fmt.Fprintf(w, "Lines of code:\t%s\n", humanize.Comma(code))
	fmt.Fprintf(w, "Empty lines:\t%s\n", humanize.Comma(empty))
	fmt.Fprintf(w, "Empty:\t%.2f%%\n", report.Total.PercentEmpty())

	fmt.Fprintf(w, "\nElapsed:\t%v\n", report.Elapsed)

	return w.Flush()
}
