// Package textnorm provides the normalization primitives every other
// component builds on: folding arbitrary Unicode text down to the
// uppercase A-Z alphabet classical ciphers operate on, and re-applying
// the original layout (spacing, punctuation, case) to a cleaned
// plaintext once a solver has recovered it.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanLetters returns only the uppercase A-Z letters of s, in order,
// with diacritics and case folded away. Non-Latin letters are dropped
// entirely; classification and solving never see them.
func CleanLetters(s string) string {
	s = norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			// combining mark stripped by NFD decomposition above
			continue
		}
		r = unicode.ToUpper(r)
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// OnlyPrintableASCII returns the subset of s in the printable ASCII
// range [33,126], used by the ROT47 domain.
func OnlyPrintableASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 33 && r <= 126 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LengthMismatchErr is returned by MatchLayout when cleanedPlaintext has
// fewer letters than original demands. The partially-applied result is
// still returned so callers may choose to use it.
type LengthMismatchErr struct {
	Have int
	Want int
}

func (e *LengthMismatchErr) Error() string {
	return "textnorm: layout length mismatch"
}

// MatchLayout walks original and, wherever it held a letter, pops the
// next letter of cleanedPlaintext onto the result, preserving the
// original letter's case. Non-letters pass through unchanged. If
// cleanedPlaintext runs out of letters before original does, remaining
// letter positions are filled with '?' and a *LengthMismatchErr is
// returned alongside the best-effort result.
func MatchLayout(original, cleanedPlaintext string) (string, error) {
	letters := []rune(cleanedPlaintext)
	pos := 0
	wanted := 0

	var b strings.Builder
	b.Grow(len(original))

	for _, r := range original {
		if !unicode.IsLetter(r) {
			b.WriteRune(r)
			continue
		}
		wanted++
		if pos >= len(letters) {
			b.WriteRune('?')
			continue
		}
		next := letters[pos]
		pos++
		if unicode.IsLower(r) {
			b.WriteRune(unicode.ToLower(next))
		} else {
			b.WriteRune(unicode.ToUpper(next))
		}
	}

	if pos < wanted {
		return b.String(), &LengthMismatchErr{Have: len(letters), Want: wanted}
	}
	return b.String(), nil
}
