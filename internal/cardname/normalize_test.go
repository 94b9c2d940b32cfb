package cardname

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Lightning Bolt", "lightning bolt"},
		{"  Lightning Bolt  ", "lightning bolt"},
		{"Relámpago", "relampago"},
		{"Ángel de la Restauración", "angel de la restauracion"},
		{"Séance", "seance"},
		{"Lim-Dûl's Vault", "lim-dul's vault"},
		{"JÖTUN GRUNT", "jotun grunt"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Relámpago", "  Fury Sliver ", "Æther Vial", "niño"}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestWordOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"identical", "rayo de luz", "rayo de luz", 1.0},
		{"no overlap", "lightning bolt", "counterspell", 0.0},
		{"partial", "angel de la restauracion", "angel restauracion", 0.5},
		{"case and accents ignored", "Relámpago", "relampago", 1.0},
		{"empty left", "", "rayo", 0.0},
		{"empty right", "rayo", "", 0.0},
		{"duplicate words collapse", "rayo rayo", "rayo", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WordOverlap(tt.a, tt.b)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("WordOverlap(%q, %q) = %v, want %v", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}
