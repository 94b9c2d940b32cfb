package models

import "testing"

func TestParseFoil(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"y", true},
		{"foil", true},
		{" Foil ", true},
		{"0", false},
		{"false", false},
		{"no", false},
		{"", false},
		{"2", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFoil(tt.input); got != tt.want {
				t.Errorf("ParseFoil(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConditionMultiplier(t *testing.T) {
	table := map[string]float64{"NM": 1.0, "HP": 0.6}

	tests := []struct {
		code string
		want float64
	}{
		{"NM", 1.0},
		{"nm", 1.0},
		{" hp ", 0.6},
		{"SP", 1.0}, // not in table
		{"", 1.0},
	}

	for _, tt := range tests {
		if got := ConditionMultiplier(tt.code, table); got != tt.want {
			t.Errorf("ConditionMultiplier(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestUSDString(t *testing.T) {
	tests := []struct {
		usd  float64
		want string
	}{
		{2.5, "2.50"},
		{0, "0.00"},
		{1.999, "2.00"},
		{10, "10.00"},
	}

	for _, tt := range tests {
		q := PriceQuote{USD: tt.usd}
		if got := q.USDString(); got != tt.want {
			t.Errorf("USDString(%v) = %q, want %q", tt.usd, got, tt.want)
		}
	}
}
