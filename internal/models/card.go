package models

import "strings"

// InventoryRow is one catalog entry as parsed from the inventory CSV.
// It is created per row, priced, and discarded.
type InventoryRow struct {
	Name      string `json:"name"`
	SetCode   string `json:"set"`
	Language  string `json:"lang"`
	Condition string `json:"condition"`
	Foil      bool   `json:"is_foil"`
	Quantity  int    `json:"quantity"`
}

// ParseFoil interprets the inventory CSV's is_foil column. Anything not in
// the truthy set is non-foil.
func ParseFoil(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "foil":
		return true
	default:
		return false
	}
}

// ConditionMultiplier returns the price multiplier for a condition code
// using the given table. Unknown codes price at full value.
func ConditionMultiplier(code string, table map[string]float64) float64 {
	if mult, ok := table[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return mult
	}
	return 1.0
}
