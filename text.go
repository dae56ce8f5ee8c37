package jobkorea

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanText collapses whitespace (including non-breaking spaces), trims the
// result and normalizes it to NFC so that decomposed Hangul compares equal
// to its precomposed form.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFC.String(s)
}
