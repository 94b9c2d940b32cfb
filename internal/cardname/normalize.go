// Package cardname provides accent-insensitive card name canonicalization
// and the Spanish-to-English name resolution used by the pricing pipeline.
package cardname

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a card name for map lookups: trims whitespace,
// decomposes accented letters and drops the combining marks, and lowercases.
// Normalize(Normalize(s)) == Normalize(s) for every input.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.ToLower(strings.TrimSpace(b.String()))
}

// WordOverlap scores how similar two names are by word-set overlap:
// |words(a) ∩ words(b)| / max(|words(a)|, |words(b)|). Both inputs are
// normalized first, so callers may pass raw names. Returns 0 when either
// side has no words.
func WordOverlap(a, b string) float64 {
	a = Normalize(a)
	b = Normalize(b)
	if a == "" || b == "" {
		return 0
	}

	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	overlap := 0
	for w := range setA {
		if setB[w] {
			overlap++
		}
	}

	denom := len(setA)
	if len(setB) > denom {
		denom = len(setB)
	}
	return float64(overlap) / float64(denom)
}

func wordSet(s string) map[string]bool {
	words := strings.Fields(s)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
