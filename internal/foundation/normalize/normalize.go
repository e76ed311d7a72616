// Package normalize holds the small name-normalization helpers shared by the
// link resolver, the section model, and the metadata test-suite matching.
//
// All of them are lossy by intent: they fold names into the canonical form a
// lookup table is keyed by, they do not round-trip.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases and strips diacritics so "Résumé" and "resume" key alike.
func fold(s string) string {
	out, _, err := transform.String(diacriticFolder, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Slug converts a heading title into its anchor form: lowercase, spaces to
// hyphens. "Delivery Guarantee" -> "delivery-guarantee".
func Slug(title string) string {
	s := fold(strings.TrimSpace(title))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t':
			b.WriteByte('-')
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FuzzyKey collapses a file basename or link name into the form used for
// fuzzy doc/image matching: lowercase with '-' and '_' interchangeable
// (both map to '_').
func FuzzyKey(name string) string {
	return strings.ReplaceAll(fold(name), "-", "_")
}

// SuiteKey normalizes a component or test-suite name for membership checks
// against the correctness/performance suite lists: lowercase with every
// non-alphanumeric run collapsed to a single '_'.
func SuiteKey(name string) string {
	s := fold(name)
	var b strings.Builder
	b.Grow(len(s))
	prevSep := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevSep = false
			continue
		}
		if !prevSep && b.Len() > 0 {
			b.WriteByte('_')
			prevSep = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// Anchor folds a heading or fragment for anchor comparison: lowercase with
// '-' and ' ' interchangeable. Used when verifying that a "#section" link
// fragment matches a heading in the target file.
func Anchor(s string) string {
	return strings.ReplaceAll(fold(strings.TrimSpace(s)), "-", " ")
}
