package locstat

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
)

// maxLineSize bounds a single line read by Classify. A longer line is
// treated as a read failure for the whole file.
const maxLineSize = 1024 * 1024

// Classify opens the file at path and counts its lines. A line is empty when
// it contains nothing but whitespace; the trailing line is counted even
// without a terminator.
//
// An open failure is fatal and returned to the caller. A failure while
// scanning lines discards the whole file: the zero statistic is returned,
// not the lines counted so far. That policy is intentional and matches the
// rest of the pipeline's expectations.
func Classify(path string) (FileStat, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileStat{}, fmt.Errorf("opening %q: %w", path, err)
	}
	defer file.Close()

	var stat FileStat

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	for scanner.Scan() {
		if len(bytes.TrimSpace(scanner.Bytes())) == 0 {
			stat.Empty++
		} else {
			stat.Code++
		}
	}

	if scanner.Err() != nil {
		return FileStat{}, nil
	}

	return stat, nil
}
