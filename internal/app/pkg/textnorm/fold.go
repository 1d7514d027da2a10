// Package textnorm folds free text and catalog names into comparable keys:
// case-folded, Latin diacritics stripped, punctuation collapsed to single spaces.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Combining marks used as accents on Latin letters. Indic vowel signs are
// marks too and must survive folding, so only these blocks are stripped.
var latinDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0300, Hi: 0x036f, Stride: 1},
		{Lo: 0x1ab0, Hi: 0x1aff, Stride: 1},
		{Lo: 0x1dc0, Hi: 0x1dff, Stride: 1},
	},
}

// Key folds s into its canonical comparison key
func Key(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(latinDiacritics)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	folded := cases.Fold().String(stripped)

	var b strings.Builder
	b.Grow(len(folded))
	space := true
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}

// Tokens folded, whitespace separated words of s
func Tokens(s string) []string {
	return strings.Fields(Key(s))
}

// Stem strips common English plural endings from a folded ASCII token.
// Non-ASCII tokens are returned unchanged.
func Stem(token string) string {
	for _, r := range token {
		if r > unicode.MaxASCII {
			return token
		}
	}
	n := len(token)
	switch {
	case n > 4 && strings.HasSuffix(token, "ies"):
		return token[:n-3] + "y"
	case n > 4 && strings.HasSuffix(token, "oes"):
		return token[:n-2]
	case n > 4 && (strings.HasSuffix(token, "ches") || strings.HasSuffix(token, "shes") ||
		strings.HasSuffix(token, "xes") || strings.HasSuffix(token, "sses")):
		return token[:n-2]
	case n > 3 && strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss"):
		return token[:n-1]
	}
	return token
}

// StemmedTokens tokens of s with Stem applied to each
func StemmedTokens(s string) []string {
	tokens := Tokens(s)
	for i, tok := range tokens {
		tokens[i] = Stem(tok)
	}
	return tokens
}
