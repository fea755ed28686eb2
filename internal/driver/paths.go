package driver

import "path/filepath"

// DefaultSuffix is appended to every entry name to form its output file name.
const DefaultSuffix = ".spv"

// InputPath returns the path of entry inside inputDir.
func InputPath(inputDir, entry string) string {
	return filepath.Join(inputDir, entry)
}

// OutputPath returns <outputDir>/<entry><suffix>. The entry's own extension
// is kept, so basic.vert becomes basic.vert.spv.
func OutputPath(outputDir, entry, suffix string) string {
	return filepath.Join(outputDir, entry+suffix)
}
