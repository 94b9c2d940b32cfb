package mtgjson

import (
	"errors"
	"strings"

	"github.com/elcastillomagic/card-pricer/internal/cardname"
)

// ErrMalformedDataset is returned when the bulk dataset is missing its
// top-level data map. Nothing can be priced without the index, so callers
// treat this as fatal for the batch.
var ErrMalformedDataset = errors.New("mtgjson: dataset has no data section")

type printingKey struct {
	SetCode string // upper-cased
	Name    string // normalized English name
}

// ReferenceIndex is built once per run from AllIdentifiers and is read-only
// afterwards: a foreign-name translation dictionary plus an exact
// (set, name) -> card UUID printing lookup.
type ReferenceIndex struct {
	translations map[string]string // normalized foreign name -> raw English name
	printings    map[printingKey]string
}

// BuildReferenceIndex makes one pass over the identifiers dataset. Records
// missing a name or set code are skipped; on duplicate (set, name) keys the
// last record wins, matching the dataset's reprint semantics. Foreign names
// are registered for the given MTGJSON language label (e.g. "Spanish").
func BuildReferenceIndex(ids *AllIdentifiers, language string) (*ReferenceIndex, error) {
	if ids == nil || ids.Data == nil {
		return nil, ErrMalformedDataset
	}

	ix := &ReferenceIndex{
		translations: make(map[string]string),
		printings:    make(map[printingKey]string),
	}

	for uuid, card := range ids.Data {
		nameNorm := cardname.Normalize(card.Name)
		setCode := strings.ToUpper(strings.TrimSpace(card.SetCode))
		if nameNorm == "" || setCode == "" {
			continue
		}

		ix.printings[printingKey{SetCode: setCode, Name: nameNorm}] = uuid

		for _, fd := range card.ForeignData {
			if fd.Language != language {
				continue
			}
			if foreignNorm := cardname.Normalize(fd.Name); foreignNorm != "" {
				ix.translations[foreignNorm] = card.Name
			}
		}
	}

	return ix, nil
}

// Locate returns the card UUID for the exact printing of canonicalName in
// setCode, or false when the dataset has no such printing. There is no
// fuzzy matching here: a miss means the caller falls back to the live
// source, never to a different edition.
func (ix *ReferenceIndex) Locate(setCode, canonicalName string) (string, bool) {
	key := printingKey{
		SetCode: strings.ToUpper(strings.TrimSpace(setCode)),
		Name:    cardname.Normalize(canonicalName),
	}
	uuid, ok := ix.printings[key]
	return uuid, ok
}

// Translations exposes the foreign-to-English dictionary for the name
// resolver. The map must be treated as read-only.
func (ix *ReferenceIndex) Translations() map[string]string {
	return ix.translations
}

// TranslationCount reports the dictionary size for startup logging.
func (ix *ReferenceIndex) TranslationCount() int {
	return len(ix.translations)
}

// PrintingCount reports how many printings were indexed.
func (ix *ReferenceIndex) PrintingCount() int {
	return len(ix.printings)
}
