// Package preview renders unified diffs for dry runs.
package preview

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Unified returns a unified diff between the original and converted forms
// of path, or the empty string when nothing changed.
func Unified(path string, before, after []string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.Join(before, "\n")),
		B:        difflib.SplitLines(strings.Join(after, "\n")),
		FromFile: path,
		ToFile:   path + " (converted)",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
