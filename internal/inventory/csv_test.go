package inventory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elcastillomagic/card-pricer/internal/models"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventario.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadAndRows(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"name,set,lang,condition,is_foil,quantity,notes",
		"Mishra's Bauble,2XM,en,NM,0,4,binder",
		"Relámpago,2XM,es,HP,1,1,",
		"Ornithopter,2XM,,,,,",
	}, "\n")+"\n")

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if f.Len() != 3 {
		t.Fatalf("Len = %d, want 3", f.Len())
	}

	rows := f.Rows()

	first := rows[0]
	if first.Name != "Mishra's Bauble" || first.SetCode != "2XM" || first.Condition != "NM" {
		t.Errorf("row 0 = %+v", first)
	}
	if first.Foil || first.Quantity != 4 {
		t.Errorf("row 0 foil/quantity = %v/%d, want false/4", first.Foil, first.Quantity)
	}

	second := rows[1]
	if !second.Foil || second.Language != "es" || second.Condition != "HP" {
		t.Errorf("row 1 = %+v", second)
	}

	// Empty condition defaults to NM, empty quantity to 1.
	third := rows[2]
	if third.Condition != "NM" || third.Quantity != 1 || third.Foil {
		t.Errorf("row 2 defaults = %+v", third)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("missing file must be an error")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeCSV(t, "")
	if _, err := Load(path); err == nil {
		t.Error("headerless file must be an error")
	}
}

func TestApplyQuoteAndSave(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"name,set,condition,notes",
		"Mishra's Bauble,2XM,NM,binder",
		"Unknown Card,ZZZ,NM,",
	}, "\n")+"\n")

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	f.ApplyQuote(0, &models.PriceQuote{USD: 2.5, CLP: 2250, Provider: "cardkingdom", Reliable: true})
	f.ApplyQuote(1, nil)

	if err := f.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	// Reload and check the price columns were appended and filled.
	saved, err := Load(path)
	if err != nil {
		t.Fatalf("reload returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	header := strings.SplitN(string(data), "\n", 2)[0]
	for _, col := range []string{ColPriceUSD, ColPriceCLP, ColSource} {
		if !strings.Contains(header, col) {
			t.Errorf("header %q missing column %q", header, col)
		}
	}

	first := saved.records[0]
	if first[ColPriceUSD] != "2.50" || first[ColPriceCLP] != "2250" || first[ColSource] != "cardkingdom" {
		t.Errorf("priced row = %v", first)
	}
	// The untouched column survives the rewrite.
	if first["notes"] != "binder" {
		t.Errorf("notes = %q, want binder", first["notes"])
	}

	second := saved.records[1]
	if second[ColPriceUSD] != "" || second[ColPriceCLP] != "" || second[ColSource] != "" {
		t.Errorf("unpriced row = %v, want blank price columns", second)
	}
}

func TestSaveIdempotentHeaders(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"name,set," + ColPriceUSD + "," + ColPriceCLP + "," + ColSource,
		"Mishra's Bauble,2XM,9.99,9000,stale",
	}, "\n")+"\n")

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	f.ApplyQuote(0, &models.PriceQuote{USD: 2.5, CLP: 2250, Provider: "cardkingdom"})
	if err := f.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	saved, err := Load(path)
	if err != nil {
		t.Fatalf("reload returned error: %v", err)
	}
	// Existing price columns are reused, not duplicated.
	if len(saved.headers) != 5 {
		t.Errorf("headers = %v, want 5 columns", saved.headers)
	}
	if saved.records[0][ColPriceCLP] != "2250" {
		t.Errorf("stale price survived: %v", saved.records[0])
	}
}
