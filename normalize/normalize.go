// Package normalize canonicalizes sentence text so that two renderings of the
// same sentence with different punctuation compare equal.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Norwegian is the set of native letters kept besides a-z.
const Norwegian = "æøå"

// Normalizer keeps ASCII letters and digits plus a set of native letters.
// Every other rune becomes a space; space runs collapse to one.
type Normalizer struct {
	native map[rune]bool
}

var defaultNormalizer = New(Norwegian)

// New returns a Normalizer keeping the runes of native besides a-z and 0-9.
func New(native string) *Normalizer {
	n := &Normalizer{native: map[rune]bool{}}
	for _, r := range cases.Lower(language.Und).String(norm.NFC.String(native)) {
		if !unicode.IsSpace(r) {
			n.native[r] = true
		}
	}
	return n
}

// Text normalizes s with the Norwegian letter set.
func Text(s string) string {
	return defaultNormalizer.Text(s)
}

// Text composes s (NFC), lower cases it, replaces every rune not kept by a
// space, collapses space runs and trims.
func (n *Normalizer) Text(s string) string {
	if s == "" {
		return ""
	}

	s = cases.Lower(language.Und).String(norm.NFC.String(s))

	var b strings.Builder
	b.Grow(len(s))
	pending := false

	for _, r := range s {
		if !n.keep(r) {
			// only separate once something was written
			if b.Len() > 0 {
				pending = true
			}
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteRune(r)
	}

	return b.String()
}

// Forms normalizes every form.
func (n *Normalizer) Forms(forms []string) []string {
	out := make([]string, len(forms))
	for i, f := range forms {
		out[i] = n.Text(f)
	}
	return out
}

func (n *Normalizer) keep(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	return n.native[r]
}
