package locstat

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureTree writes a small mixed tree and returns its root.
func fixtureTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "pkg"), 0o755))

	writeFile(t, root, "a.txt", "hello\n\n  \n")
	writeFile(t, root, "b.txt", "x")
	writeFile(t, root, "README", "title\n\nbody\n")
	writeFile(t, filepath.Join(root, "src"), "main.go", "package main\n\nfunc main() {}\n")
	writeFile(t, filepath.Join(root, "src", "pkg"), "util.go", "package pkg\n")
	writeFile(t, filepath.Join(root, "src", "pkg"), "notes.md", "\n\n# notes\n")

	return root
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("global_scenario", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "a.txt", "hello\n\n  \n")
		writeFile(t, root, "b.txt", "x")

		report, err := Run(ctx, Options{Path: root}, nil)
		require.NoError(t, err)

		assert.Equal(t, FileStat{Code: 2, Empty: 2}, report.Total)
		assert.InDelta(t, 50.0, report.Total.PercentEmpty(), 0.001)
		assert.Nil(t, report.ByExt)
		assert.Equal(t, int64(2), report.FileCount)
	})

	t.Run("by_extension_scenario", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "a.txt", "hello\n\n  \n")
		writeFile(t, root, "b.txt", "x")

		report, err := Run(ctx, Options{Path: root, ByExt: true}, nil)
		require.NoError(t, err)

		assert.Equal(t, map[string]FileStat{"txt": {Code: 2, Empty: 2}}, report.ByExt)
	})

	t.Run("files_without_extension_use_the_empty_key", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "README", "title\n")

		report, err := Run(ctx, Options{Path: root, ByExt: true}, nil)
		require.NoError(t, err)

		assert.Equal(t, FileStat{Code: 1}, report.ByExt[""])
	})

	t.Run("empty_directory_yields_zero_report", func(t *testing.T) {
		report, err := Run(ctx, Options{Path: t.TempDir(), ByExt: true}, nil)
		require.NoError(t, err)

		assert.Equal(t, FileStat{}, report.Total)
		assert.NotNil(t, report.ByExt)
		assert.Empty(t, report.ByExt)
		assert.Zero(t, report.FileCount)
	})

	t.Run("result_is_invariant_under_thread_count", func(t *testing.T) {
		root := fixtureTree(t)

		baseline, err := Run(ctx, Options{Path: root, ByExt: true, Threads: 1}, nil)
		require.NoError(t, err)

		for _, threads := range []int{2, 8} {
			report, err := Run(ctx, Options{Path: root, ByExt: true, Threads: threads}, nil)
			require.NoError(t, err)

			assert.Equal(t, baseline.Total, report.Total, "threads=%d", threads)
			assert.Equal(t, baseline.ByExt, report.ByExt, "threads=%d", threads)
		}
	})

	t.Run("by_extension_counts_sum_to_the_global_total", func(t *testing.T) {
		root := fixtureTree(t)

		global, err := Run(ctx, Options{Path: root, Threads: 4}, nil)
		require.NoError(t, err)

		byExt, err := Run(ctx, Options{Path: root, ByExt: true, Threads: 4}, nil)
		require.NoError(t, err)

		var sum FileStat
		for _, stat := range byExt.ByExt {
			sum = sum.Add(stat)
		}

		assert.Equal(t, global.Total, sum)
	})

	t.Run("corrupt_file_contributes_nothing", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "good.txt", "a\nb\n")
		writeFile(t, root, "corrupt.txt", "1\n2\n3\n"+strings.Repeat("x", maxLineSize+1)+"\n")

		for _, threads := range []int{1, 4} {
			report, err := Run(ctx, Options{Path: root, Threads: threads}, nil)
			require.NoError(t, err)

			assert.Equal(t, FileStat{Code: 2}, report.Total, "threads=%d", threads)
		}
	})

	t.Run("unopenable_file_aborts_the_run", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "ok.txt", "x\n")

		if err := os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "dangling")); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}

		for _, threads := range []int{1, 4} {
			_, err := Run(ctx, Options{Path: root, Threads: threads}, nil)
			assert.Error(t, err, "threads=%d", threads)
		}
	})

	t.Run("non_directory_path_reports_zeros", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "lone.txt", "x\n")

		report, err := Run(ctx, Options{Path: path}, nil)
		require.NoError(t, err)
		assert.Equal(t, FileStat{}, report.Total)
	})

	t.Run("accepts_a_progress_hook", func(t *testing.T) {
		root := fixtureTree(t)

		// The hook may or may not tick before the run finishes; it only
		// must not disturb the result.
		hook := func(_, _ int64) {}

		opt := Options{Path: root, Threads: 2, ProgressInterval: time.Millisecond}

		report, err := Run(ctx, opt, hook)
		require.NoError(t, err)
		assert.Equal(t, int64(6), report.FileCount)
	})
}
