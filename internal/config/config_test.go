package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.USDToCLP != 900 {
		t.Errorf("USDToCLP = %v, want 900", cfg.USDToCLP)
	}
	if cfg.ScryfallUSDToCLP != 900 {
		t.Errorf("ScryfallUSDToCLP = %v, want 900", cfg.ScryfallUSDToCLP)
	}
	if cfg.PriceMinCLP != 500 {
		t.Errorf("PriceMinCLP = %v, want 500", cfg.PriceMinCLP)
	}
	if cfg.GlobalDiscount != 0 {
		t.Errorf("GlobalDiscount = %v, want 0", cfg.GlobalDiscount)
	}
	if cfg.SimilarityThreshold != 0.33 {
		t.Errorf("SimilarityThreshold = %v, want 0.33", cfg.SimilarityThreshold)
	}
	if cfg.FoilConfidence != 0.7 {
		t.Errorf("FoilConfidence = %v, want 0.7", cfg.FoilConfidence)
	}
	if cfg.ForeignLanguage != "Spanish" || cfg.ForeignLangCode != "es" {
		t.Errorf("language = %q/%q, want Spanish/es", cfg.ForeignLanguage, cfg.ForeignLangCode)
	}
	if cfg.ConditionMultipliers["NM"] != 1.0 || cfg.ConditionMultipliers["HP"] != 0.6 {
		t.Errorf("condition multipliers = %v", cfg.ConditionMultipliers)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("USD_TO_CLP", "950")
	t.Setenv("GLOBAL_DISCOUNT", "0.15")
	t.Setenv("PRICE_MIN_CLP", "1000")
	t.Setenv("FOREIGN_LANG_CODE", "pt")
	t.Setenv("PORT", "9090")

	cfg := Load()

	if cfg.USDToCLP != 950 {
		t.Errorf("USDToCLP = %v, want 950", cfg.USDToCLP)
	}
	if cfg.GlobalDiscount != 0.15 {
		t.Errorf("GlobalDiscount = %v, want 0.15", cfg.GlobalDiscount)
	}
	if cfg.PriceMinCLP != 1000 {
		t.Errorf("PriceMinCLP = %v, want 1000", cfg.PriceMinCLP)
	}
	if cfg.ForeignLangCode != "pt" {
		t.Errorf("ForeignLangCode = %q, want pt", cfg.ForeignLangCode)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
}

func TestLoadInvalidFloatFallsBack(t *testing.T) {
	t.Setenv("USD_TO_CLP", "not-a-number")

	cfg := Load()
	if cfg.USDToCLP != 900 {
		t.Errorf("USDToCLP = %v, want default 900 on invalid input", cfg.USDToCLP)
	}
}
