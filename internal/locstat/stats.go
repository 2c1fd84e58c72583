package locstat

import (
	"path/filepath"
	"strings"
	"time"
)

// FileStat holds line counts for a single file or an aggregate of files.
type FileStat struct {
	// Code is the number of lines with at least one non-whitespace character.
	Code uint64 `json:"code"`
	// Empty is the number of lines that are empty or whitespace-only.
	Empty uint64 `json:"empty"`
}

// Add returns the element-wise sum of two statistics. The operation is
// associative and commutative with the zero FileStat as identity, so partial
// results can be merged in any order.
func (s FileStat) Add(other FileStat) FileStat {
	return FileStat{
		Code:  s.Code + other.Code,
		Empty: s.Empty + other.Empty,
	}
}

// Total returns the total number of lines counted.
func (s FileStat) Total() uint64 {
	return s.Code + s.Empty
}

// PercentEmpty returns the share of empty lines as a percentage.
// A statistic with no lines at all reports 0 rather than NaN.
func (s FileStat) PercentEmpty() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}

	return float64(s.Empty) / float64(total) * 100
}

// Report holds the aggregate result of a counting run.
type Report struct {
	// Total is the aggregate over all scanned files.
	Total FileStat `json:"total"`
	// ByExt maps extension keys to their aggregate. Only populated in
	// by-extension mode.
	ByExt map[string]FileStat `json:"by_ext,omitempty"`
	// FileCount is the number of files discovered.
	FileCount int64 `json:"file_count"`
	// Threads is the parallelism the run was executed with.
	Threads int `json:"threads"`
	// Elapsed is the total time taken for discovery and counting.
	Elapsed time.Duration `json:"elapsed"`
}

// Options configures a counting run and CLI behavior.
type Options struct {
	// Path is the directory to scan.
	Path string
	// ByExt indicates whether to aggregate per file extension.
	ByExt bool
	// Threads is the requested parallelism; values <= 1 run sequentially.
	Threads int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Output represents output format (plain, table or json).
	Output string
	// Version indicates whether to show version and exit.
	Version bool
	// Integration indicates whether to output integration script.
	Integration bool
}

// Ext returns the extension key for a path: the portion of the base name
// after the final dot. Names without a dot map to the empty string, as do
// dotfiles like ".gitignore" whose only dot is the leading one. Case is
// preserved as found on the filesystem.
func Ext(path string) string {
	base := filepath.Base(path)

	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[i+1:]
	}

	return ""
}

// partial is one worker's local accumulator. A partial is never shared
// between workers; partials are merged only after the workers have joined.
type partial struct {
	total FileStat
	byExt map[string]FileStat
}

// newPartial creates an accumulator, with an extension map when aggregating
// by extension.
func newPartial(byExt bool) *partial {
	p := &partial{}
	if byExt {
		p.byExt = make(map[string]FileStat)
	}

	return p
}

// add folds a single file's statistic into the accumulator.
func (p *partial) add(path string, stat FileStat) {
	p.total = p.total.Add(stat)

	if p.byExt != nil {
		ext := Ext(path)
		p.byExt[ext] = p.byExt[ext].Add(stat)
	}
}

// merge folds another accumulator into p. Merge order does not affect the
// result because FileStat.Add is associative and commutative.
func (p *partial) merge(other *partial) {
	p.total = p.total.Add(other.total)

	for ext, stat := range other.byExt {
		p.byExt[ext] = p.byExt[ext].Add(stat)
	}
}
