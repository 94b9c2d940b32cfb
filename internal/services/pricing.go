package services

import (
	"math"

	"github.com/elcastillomagic/card-pricer/internal/models"
)

// Pricer turns a raw USD market price into the pair of prices the shop
// stores: a condition-adjusted USD reference and a discounted, floored CLP
// sale price. Both the bulk and live sources go through the same Pricer so
// every quote is derived by exactly one transformation.
type Pricer struct {
	multipliers map[string]float64
	discount    float64 // global discount fraction in [0,1)
	floorCLP    float64
}

func NewPricer(multipliers map[string]float64, discount, floorCLP float64) *Pricer {
	return &Pricer{
		multipliers: multipliers,
		discount:    discount,
		floorCLP:    floorCLP,
	}
}

// Quote computes the adjusted USD reference price and the CLP sale price
// for the given base USD price, condition code, and source exchange rate.
// The CLP floor applies whenever a numeric price exists, so a junk-priced
// card still sells at the shop minimum.
func (p *Pricer) Quote(baseUSD float64, condition string, rate float64) (float64, int) {
	mult := models.ConditionMultiplier(condition, p.multipliers)
	adjUSD := baseUSD * mult

	clp := adjUSD * rate * (1 - p.discount)
	if clp < p.floorCLP {
		clp = p.floorCLP
	}

	// Report USD at cent precision to match what the CSV stores.
	return math.Round(adjUSD*100) / 100, int(math.Round(clp))
}
