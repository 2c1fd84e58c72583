package locstat

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		//nolint:forbidigo // Debug output to console
		fmt.Printf(format, args...)
	}
}

// progress tracks counting throughput with atomic counters so the reporter
// goroutine can sample them without locking the accumulators.
type progress struct {
	files atomic.Int64
	lines atomic.Int64
}

// observe records one classified file.
func (p *progress) observe(stat FileStat) {
	p.files.Add(1)
	p.lines.Add(int64(stat.Total())) //nolint:gosec // Line counts never overflow int64
}

// startProgressReporter invokes hook(files, lines) on each tick until ctx is done.
func startProgressReporter(ctx context.Context, counter *progress, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(counter.files.Load(), counter.lines.Load())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run discovers the files under opt.Path and counts their lines, returning
// the aggregated statistics. With opt.ByExt the aggregate is additionally
// partitioned by extension key.
//
// If opt.Threads is greater than one, files are classified by a worker pool
// of that size; each worker folds into a private accumulator and the
// accumulators are merged once the workers have joined. The result is
// identical to the sequential one for any thread count and scheduling order.
//
// The pool is sized once per run. There is no cancellation or timeout beyond
// the passed ctx: a fatal error (unreadable directory, unopenable file)
// aborts the whole run with no partial result. Progress updates are sent to
// progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Report, error) {
	log := logger{enabled: opt.Debug}

	if opt.Path == "" {
		opt.Path = "."
	}

	// Normalize to native format to handle both C:/Path and C:\Path inputs
	opt.Path = filepath.Clean(opt.Path)

	threads := opt.Threads
	if threads < 1 {
		threads = 1
	}

	start := time.Now()

	files, err := Discover(ctx, opt.Path)
	if err != nil {
		return nil, err
	}

	log.printf("[debug]: discovered %d files under %s\n", len(files), opt.Path)
	log.printf("[debug]: threads: %d\n", threads)
	log.printf("[debug]: by-extension: %t\n", opt.ByExt)

	counter := &progress{}

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start progress reporter goroutine
	startProgressReporter(ctx, counter, progressHook, opt.ProgressInterval)

	var result *partial

	if threads == 1 {
		result, err = runSequential(files, opt.ByExt, counter)
	} else {
		result, err = runParallel(ctx, files, opt.ByExt, threads, counter)
	}

	if err != nil {
		return nil, err
	}

	report := &Report{
		Total:     result.total,
		FileCount: int64(len(files)),
		Threads:   threads,
		Elapsed:   time.Since(start),
	}
	if opt.ByExt {
		report.ByExt = result.byExt
	}

	return report, nil
}

// runSequential folds every file into a single accumulator in discovery
// order.
func runSequential(files []string, byExt bool, counter *progress) (*partial, error) {
	acc := newPartial(byExt)

	for _, path := range files {
		stat, err := Classify(path)
		if err != nil {
			return nil, err
		}

		acc.add(path, stat)
		counter.observe(stat)
	}

	return acc, nil
}

// runParallel classifies files with a pool of workers fed from a jobs
// channel. Each worker owns a local accumulator; the accumulators are merged
// after the pool drains. The first fatal error cancels the feeder and aborts
// the run.
func runParallel(ctx context.Context, files []string, byExt bool, threads int, counter *progress) (*partial, error) {
	jobs := make(chan string)
	partials := make([]*partial, threads)

	group, ctx := errgroup.WithContext(ctx)

	for i := 0; i < threads; i++ {
		local := newPartial(byExt)
		partials[i] = local

		group.Go(func() error {
			for path := range jobs {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				stat, err := Classify(path)
				if err != nil {
					return err
				}

				local.add(path, stat)
				counter.observe(stat)
			}

			return nil
		})
	}

	group.Go(func() error {
		defer close(jobs)

		for _, path := range files {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged := newPartial(byExt)
	for _, local := range partials {
		merged.merge(local)
	}

	return merged, nil
}
