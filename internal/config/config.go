// Package config reads the shop's pricing configuration from the
// environment, with an optional .env file in the working directory.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the full externally-supplied configuration surface. All values
// have working defaults so the tools run without a .env file.
type Config struct {
	// Exchange rates differ per source: MTGJSON aggregates quote with
	// more latency than Scryfall's live prices.
	USDToCLP         float64
	ScryfallUSDToCLP float64

	GlobalDiscount float64 // fraction in [0,1), applied to the CLP price
	PriceMinCLP    float64 // floor for any priced card

	SimilarityThreshold float64 // word-overlap acceptance for fuzzy name matches
	FoilConfidence      float64 // foil-likelihood acceptance when a signal is available

	// ForeignLanguage is the MTGJSON language label indexed for
	// translations; ForeignLangCode is how inventory rows spell it.
	ForeignLanguage string
	ForeignLangCode string

	ConditionMultipliers map[string]float64

	MTGJSONDataDir string
	InventoryCSV   string
	DBPath         string
	Port           string
}

// defaultConditionMultipliers follows the shop's grading scale. Unknown
// codes price at full value.
func defaultConditionMultipliers() map[string]float64 {
	return map[string]float64{
		"NM": 1.00, "M": 1.00,
		"EX": 0.90, "SP": 0.90,
		"VG": 0.80, "MP": 0.80,
		"PL": 0.70,
		"HP": 0.60, "POOR": 0.40,
	}
}

// Load reads configuration from the environment. A .env file is loaded
// first when present; a missing file is not an error.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		USDToCLP:             envFloat("USD_TO_CLP", 900),
		ScryfallUSDToCLP:     envFloat("SCRYFALL_USD_TO_CLP", 900),
		GlobalDiscount:       envFloat("GLOBAL_DISCOUNT", 0),
		PriceMinCLP:          envFloat("PRICE_MIN_CLP", 500),
		SimilarityThreshold:  envFloat("SIMILARITY_THRESHOLD", 0.33),
		FoilConfidence:       envFloat("FOIL_CONFIDENCE_THRESHOLD", 0.7),
		ForeignLanguage:      envString("FOREIGN_LANGUAGE", "Spanish"),
		ForeignLangCode:      envString("FOREIGN_LANG_CODE", "es"),
		ConditionMultipliers: defaultConditionMultipliers(),
		MTGJSONDataDir:       envString("MTGJSON_DATA_DIR", "./mtgjson"),
		InventoryCSV:         envString("INVENTORY_CSV", "./inventario.csv"),
		DBPath:               envString("DB_PATH", "./card_pricer.db"),
		Port:                 envString("PORT", "8080"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
		log.Printf("Invalid value for %s: %q, using default %v", key, v, fallback)
	}
	return fallback
}
