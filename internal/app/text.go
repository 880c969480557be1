package service

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// cleanText folds compatibility forms (full-width letters, ligatures) so the
// lexicon sees plain letters, and drops control characters other than
// newline and tab.
func cleanText(s string) string {
	t := transform.Chain(
		norm.NFKC,
		runes.Remove(runes.Predicate(func(r rune) bool {
			return unicode.IsControl(r) && r != '\n' && r != '\t'
		})),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
