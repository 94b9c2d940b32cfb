package models

import "fmt"

// PriceQuote is a finished price for one inventory row. USD is the
// condition-adjusted reference price; CLP is derived from it by exactly one
// transformation (condition x exchange rate x discount, floored). Reliable
// is false when the price came from the opposite finish of the one
// requested, or the foil flag had to be downgraded.
type PriceQuote struct {
	USD      float64 `json:"price_usd_ref"`
	CLP      int     `json:"price_clp"`
	Provider string  `json:"price_source"`
	Reliable bool    `json:"reliable"`
}

// USDString formats the reference price the way the inventory CSV stores
// it, with two decimals.
func (q *PriceQuote) USDString() string {
	return fmt.Sprintf("%.2f", q.USD)
}

// RowResult is the pipeline outcome for one inventory row. Quote is nil
// when no source produced a confident price; such rows are counted, not
// errored, and marked for manual pricing downstream.
type RowResult struct {
	Row      InventoryRow `json:"row"`
	Quote    *PriceQuote  `json:"quote,omitempty"`
	CardUUID string       `json:"card_uuid,omitempty"`
}

// BatchResult summarizes one pricing run.
type BatchResult struct {
	RunID    string `json:"run_id"`
	Priced   int    `json:"priced"`
	Unpriced int    `json:"unpriced"`
}
