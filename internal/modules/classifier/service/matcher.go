package service

import (
	"strings"

	"golang.org/x/text/cases"
)

// FindMatch returns the first candidate contained in text, compared with
// Unicode case folding. Candidates are tried in the given order, so callers
// must pass them in registry order for reproducible results.
func FindMatch(text string, candidates []string) (string, bool) {
	folded := fold(text)
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if strings.Contains(folded, fold(candidate)) {
			return candidate, true
		}
	}
	return "", false
}

// A Caser keeps state between calls, so every call gets a fresh one.
func fold(s string) string {
	return cases.Fold().String(s)
}
