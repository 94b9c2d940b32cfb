package cardname

import "strings"

// DefaultSimilarityThreshold is the minimum word-overlap score a fuzzy match
// must exceed before we trust it. Tuned against WordOverlap specifically;
// do not reuse for other similarity functions.
const DefaultSimilarityThreshold = 0.33

// Resolver maps foreign-language card names to their canonical English
// spelling using a translation dictionary built from the bulk dataset.
// The dictionary is read-only after construction, so a single Resolver is
// safe for concurrent use.
type Resolver struct {
	foreignToEnglish map[string]string // normalized foreign name -> raw English name
	langCode         string            // inventory language code this resolver translates, e.g. "es"
	threshold        float64
}

// NewResolver creates a resolver over the given translation map. The map is
// keyed by Normalize'd foreign names; values are the raw English names.
func NewResolver(foreignToEnglish map[string]string, langCode string, threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Resolver{
		foreignToEnglish: foreignToEnglish,
		langCode:         strings.ToLower(strings.TrimSpace(langCode)),
		threshold:        threshold,
	}
}

// ResolveToEnglish returns the canonical English name for the given card
// name. Names in any language other than the resolver's target language are
// returned unchanged (treated as already English). For target-language names
// it tries an exact dictionary lookup first and falls back to the best
// word-overlap match above the threshold. When nothing matches, the input is
// returned unchanged: failure to translate is a degraded pass-through, not
// an error.
func (r *Resolver) ResolveToEnglish(name, lang string) string {
	if !strings.EqualFold(strings.TrimSpace(lang), r.langCode) {
		return name
	}

	nameNorm := Normalize(name)
	if nameNorm == "" {
		return name
	}

	if english, ok := r.foreignToEnglish[nameNorm]; ok {
		return english
	}

	bestKey := ""
	bestScore := 0.0
	for key := range r.foreignToEnglish {
		score := WordOverlap(nameNorm, key)
		if score > bestScore {
			bestScore = score
			bestKey = key
		}
	}

	if bestKey != "" && bestScore > r.threshold {
		return r.foreignToEnglish[bestKey]
	}

	return name
}
