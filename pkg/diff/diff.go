// Package diff renders unified diffs between two line sequences.
// It uses github.com/pmezard/go-difflib/difflib to produce classic unified
// patches (---/+++ headers, @@ hunks, lines prefixed with ' ', '-', '+').
package diff

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of context lines used when none is given.
const DefaultContext = 3

// Unified returns a unified diff turning a into b, or "" when they are equal.
// Lines are given without trailing newlines. A context of 0 or less uses
// DefaultContext.
func Unified(aName, bName string, a, b []string, context int) string {
	if equal(a, b) {
		return ""
	}
	if context <= 0 {
		context = DefaultContext
	}
	u := difflib.UnifiedDiff{
		A:        withNewlines(a),
		B:        withNewlines(b),
		FromFile: aName,
		ToFile:   bName,
		Context:  context,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		// difflib only fails on writer errors, which a strings.Builder never returns.
		return "--- " + aName + "\n+++ " + bName + "\n@@\n# diff unavailable: " + err.Error() + "\n"
	}
	return s
}

// Lines splits text into lines, dropping one trailing newline so that a
// newline-terminated file and its rendered lines compare equal.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + "\n"
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
