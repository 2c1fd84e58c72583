package locstat

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// Discover walks the tree rooted at root and returns every non-directory
// entry found, in traversal order. The order is not sorted and callers must
// not rely on it; aggregation is order-independent.
//
// A root that does not exist or is not a directory yields an empty list.
// A directory that cannot be read aborts discovery with an error; there is
// no best-effort partial listing.
func Discover(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	var (
		mu    sync.Mutex
		files []string
	)

	// Configure fastwalk
	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if d.IsDir() {
			return nil
		}

		mu.Lock()
		files = append(files, path)
		mu.Unlock()

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return files, nil
}
