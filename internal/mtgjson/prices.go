package mtgjson

import "encoding/json"

// PreferredProviders is the fixed provider preference order for paper
// retail prices. The first provider present in an entry wins.
var PreferredProviders = []string{"cardkingdom", "tcgplayer", "cardmarket", "cardsphere"}

// PriceResult is the outcome of a bulk price lookup: the most recent USD
// retail price from the best available provider. Reliable is false when the
// requested finish had no prices and the opposite finish was used instead.
type PriceResult struct {
	USD      float64
	Provider string
	Reliable bool
}

// ResolvePrice selects a price from a bulk price entry: first provider in
// the preference order, requested finish (falling back to the opposite
// finish when missing), most recent date. Returns nil when no usable price
// exists; the caller then tries the live source. A nil providers slice uses
// PreferredProviders.
func ResolvePrice(entry *PriceEntry, foil bool, providers []string) *PriceResult {
	if entry == nil || entry.Paper == nil {
		return nil
	}
	if providers == nil {
		providers = PreferredProviders
	}

	var providerName string
	var retail *FinishPrices
	for _, prov := range providers {
		if data, ok := entry.Paper[prov]; ok {
			providerName = prov
			retail = &data.Retail
			break
		}
	}
	if retail == nil {
		return nil
	}

	requested, opposite := retail.Normal, retail.Foil
	if foil {
		requested, opposite = retail.Foil, retail.Normal
	}

	reliable := true
	prices := requested
	if len(prices) == 0 {
		prices = opposite
		reliable = false
	}
	if len(prices) == 0 {
		return nil
	}

	usd, ok := latestPrice(prices)
	if !ok {
		return nil
	}

	return &PriceResult{USD: usd, Provider: providerName, Reliable: reliable}
}

// latestPrice picks the price at the chronologically latest date. Dates are
// ISO strings, so the maximum key is the newest.
func latestPrice(prices map[string]json.Number) (float64, bool) {
	var lastDate string
	for date := range prices {
		if date > lastDate {
			lastDate = date
		}
	}
	if lastDate == "" {
		return 0, false
	}

	usd, err := prices[lastDate].Float64()
	if err != nil {
		return 0, false
	}
	return usd, true
}
