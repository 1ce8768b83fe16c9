package search

import (
	"strings"

	"golang.org/x/text/cases"
)

// fold applies Unicode case folding. cases.Caser is stateful, so a fresh one
// is used per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// NormalizeQuery returns the cache key for a search query: surrounding space
// trimmed, inner whitespace collapsed, and case-folded. Two queries that
// differ only in case or spacing share a key.
func NormalizeQuery(q string) string {
	return fold(strings.Join(strings.Fields(q), " "))
}
