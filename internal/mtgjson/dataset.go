// Package mtgjson loads the MTGJSON bulk datasets and resolves offline
// prices from them. AllIdentifiers feeds the reference index (translations
// plus printing lookup); AllPricesToday is the bulk price table.
package mtgjson

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	AllIdentifiersURL = "https://mtgjson.com/api/v5/AllIdentifiers.json.gz"
	AllPricesTodayURL = "https://mtgjson.com/api/v5/AllPricesToday.json.gz"

	AllIdentifiersFile = "AllIdentifiers.json.gz"
	AllPricesTodayFile = "AllPricesToday.json.gz"

	downloadTimeout = 5 * time.Minute
)

// ForeignName is a localized display name on a card record.
type ForeignName struct {
	Language string `json:"language"`
	Name     string `json:"name"`
}

// CardIdentifier is one record of the AllIdentifiers dataset. Only the
// fields the index builder consumes are decoded.
type CardIdentifier struct {
	Name        string        `json:"name"`
	SetCode     string        `json:"setCode"`
	ForeignData []ForeignName `json:"foreignData"`
}

// AllIdentifiers is the top-level shape of AllIdentifiers.json: a map from
// card UUID to record under "data".
type AllIdentifiers struct {
	Data map[string]CardIdentifier `json:"data"`
}

// FinishPrices maps ISO dates to prices for one finish. Prices decode as
// json.Number so a single corrupt value degrades to "no price" for that
// entry instead of failing the whole dataset.
type FinishPrices struct {
	Normal map[string]json.Number `json:"normal"`
	Foil   map[string]json.Number `json:"foil"`
}

// ProviderPrices holds one provider's paper retail prices.
type ProviderPrices struct {
	Retail FinishPrices `json:"retail"`
}

// PriceEntry is the per-card value of the AllPricesToday dataset.
type PriceEntry struct {
	Paper map[string]ProviderPrices `json:"paper"`
}

// AllPrices is the top-level shape of AllPricesToday.json.
type AllPrices struct {
	Data map[string]PriceEntry `json:"data"`
}

// EnsureDatasets downloads the two bulk files into dataDir when they are
// missing, or unconditionally when force is set.
func EnsureDatasets(ctx context.Context, dataDir string, force bool) error {
	files := map[string]string{
		AllIdentifiersFile: AllIdentifiersURL,
		AllPricesTodayFile: AllPricesTodayURL,
	}
	for name, url := range files {
		dest := filepath.Join(dataDir, name)
		if !force {
			if _, err := os.Stat(dest); err == nil {
				continue
			}
		}
		if err := downloadFile(ctx, url, dest); err != nil {
			return fmt.Errorf("failed to download %s: %w", name, err)
		}
	}
	return nil
}

func downloadFile(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	client := &http.Client{Timeout: downloadTimeout}
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	// Write to a temp file and rename so a partial download never
	// shadows a good copy.
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	return os.Rename(tmp.Name(), dest)
}

// LoadAllIdentifiers reads and decodes a gzipped AllIdentifiers file.
func LoadAllIdentifiers(path string) (*AllIdentifiers, error) {
	var ids AllIdentifiers
	if err := loadGzippedJSON(path, &ids); err != nil {
		return nil, err
	}
	return &ids, nil
}

// LoadAllPrices reads and decodes a gzipped AllPricesToday file.
func LoadAllPrices(path string) (*AllPrices, error) {
	var prices AllPrices
	if err := loadGzippedJSON(path, &prices); err != nil {
		return nil, err
	}
	return &prices, nil
}

func loadGzippedJSON(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to open gzip stream for %s: %w", path, err)
	}
	defer gz.Close()

	if err := json.NewDecoder(gz).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
