// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"os"
	"sort"
)

// ListNames returns the names of every entry directly inside dir, files and
// subdirectories alike, in the order the file system reports them.
// Unlike os.ReadDir the result is unsorted unless sorted is true.
func ListNames(dir string, sorted bool) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open directory %s: %w", dir, err)
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("list directory %s: %w", dir, err)
	}

	if sorted {
		sort.Strings(names)
	}
	return names, nil
}
