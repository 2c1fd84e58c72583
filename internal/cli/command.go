package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/locstat/locstat/internal/integration"
	"github.com/locstat/locstat/internal/locstat"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var options locstat.Options

	allowedOutputs := []string{"plain", "table", "json"}

	cmd := &cobra.Command{
		Use:   "locstat [flags] directory",
		Short: "Count non-empty and empty lines under a directory",
		Long: heredoc.Doc(`
			locstat recursively counts the lines of every file under a directory,
			splitting them into lines of code and lines that are empty or contain
			only whitespace.

			By default a single aggregate is reported. Use -A/--by-ext to group
			the counts by file extension instead; files without an extension are
			grouped under the empty key.

			Counting is sequential unless -j/--threads asks for more workers.

			The '-i' flag outputs an integration script for shell usage, piping
			the by-extension table through 'fzf'.
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			if options.Version {
				//nolint:forbidigo // Version output to console
				fmt.Println(c.version)

				return nil
			}

			if options.Integration {
				rendered, err := integration.Render()
				if err != nil {
					return fmt.Errorf("rendering integration script: %w", err)
				}

				//nolint:forbidigo // Integration script output to console
				fmt.Println(rendered)

				return nil
			}

			if !slices.Contains(allowedOutputs, options.Output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
			}

			if options.Threads < 0 {
				return errors.New("threads cannot be negative")
			}

			if len(args) == 0 {
				return errors.New("missing required argument: directory")
			}

			options.Path = args[0]

			return logic(options)
		},
	}

	cmd.Flags().BoolVarP(&options.ByExt, "by-ext", "A", false, "Aggregate counts per file extension")
	cmd.Flags().IntVarP(&options.Threads, "threads", "j", 1, "Number of worker threads (<=1 counts sequentially)")
	cmd.Flags().StringVarP(&options.Output, "output", "o", "plain", "Output format: plain, table or json")
	cmd.Flags().BoolVar(&options.Debug, "debug", false, "Enable debug output")
	cmd.Flags().BoolVarP(&options.Version, "version", "v", false, "Show version and exit")
	cmd.Flags().BoolVarP(&options.Integration, "init", "i", false, "Output init script for shell usage")

	cmd.Flags().SortFlags = false

	return cmd.Execute()
}
