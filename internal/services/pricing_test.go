package services

import "testing"

func testMultipliers() map[string]float64 {
	return map[string]float64{
		"NM": 1.0, "M": 1.0,
		"EX": 0.9, "SP": 0.9,
		"VG": 0.8, "MP": 0.8,
		"PL": 0.7,
		"HP": 0.6,
		"POOR": 0.4,
	}
}

func TestPricerQuote(t *testing.T) {
	p := NewPricer(testMultipliers(), 0, 500)

	tests := []struct {
		name      string
		baseUSD   float64
		condition string
		rate      float64
		wantUSD   float64
		wantCLP   int
	}{
		{"near mint passes through", 2.50, "NM", 900, 2.50, 2250},
		{"heavily played at 0.6", 2.50, "HP", 900, 1.50, 1350},
		{"moderately played at 0.8", 10.00, "MP", 900, 8.00, 7200},
		{"poor at 0.4", 10.00, "POOR", 900, 4.00, 3600},
		{"floor kicks in below minimum", 0.33, "NM", 900, 0.33, 500},
		{"floor applies after condition", 0.90, "HP", 900, 0.54, 500},
		{"zero price still floored", 0, "NM", 900, 0, 500},
		{"unknown condition treated as 1.0", 2.50, "LP", 900, 2.50, 2250},
		{"cent rounding", 1.99, "EX", 900, 1.79, 1612},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usd, clp := p.Quote(tt.baseUSD, tt.condition, tt.rate)
			if usd != tt.wantUSD {
				t.Errorf("usd = %v, want %v", usd, tt.wantUSD)
			}
			if clp != tt.wantCLP {
				t.Errorf("clp = %d, want %d", clp, tt.wantCLP)
			}
		})
	}
}

func TestPricerQuoteDiscount(t *testing.T) {
	p := NewPricer(testMultipliers(), 0.10, 500)

	// Discount applies to the CLP sale price only; the USD reference is
	// the market price adjusted for condition, nothing else.
	usd, clp := p.Quote(10.00, "NM", 900)
	if usd != 10.00 {
		t.Errorf("usd = %v, want 10.00 (discount must not touch the USD reference)", usd)
	}
	if clp != 8100 {
		t.Errorf("clp = %d, want 8100 (9000 less 10%%)", clp)
	}
}

func TestPricerQuoteDiscountStillFloored(t *testing.T) {
	p := NewPricer(testMultipliers(), 0.50, 500)

	_, clp := p.Quote(1.00, "NM", 900)
	if clp != 500 {
		t.Errorf("clp = %d, want floor 500 after discount", clp)
	}
}

func TestPricerQuoteMonotonicInCondition(t *testing.T) {
	p := NewPricer(testMultipliers(), 0, 500)

	// Worse condition never yields a higher price at the same base.
	order := []string{"NM", "EX", "VG", "PL", "HP", "POOR"}
	prevUSD := -1.0
	prevCLP := -1
	for i := len(order) - 1; i >= 0; i-- {
		usd, clp := p.Quote(20.00, order[i], 900)
		if usd < prevUSD || clp < prevCLP {
			t.Errorf("condition %s priced below a worse condition: usd=%v clp=%d", order[i], usd, clp)
		}
		prevUSD, prevCLP = usd, clp
	}
}
