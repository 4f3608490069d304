// Package fileio reads and writes source files as line sequences.
package fileio

import (
	"os"
	"path/filepath"
	"strings"
)

// ReadLines reads the file at path and splits it on newlines. Line
// terminators are not kept; a file ending in a newline yields a trailing
// empty element, so joining the result reproduces the original bytes.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}

// WriteLines writes lines to path joined by newlines.
func WriteLines(path string, lines []string) error {
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
}

// SiblingPath returns the output path used instead of overwriting: the same
// directory with prefix prepended to the base name.
func SiblingPath(path, prefix string) string {
	return filepath.Join(filepath.Dir(path), prefix+filepath.Base(path))
}
