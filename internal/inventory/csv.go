// Package inventory reads and rewrites the shop's inventory CSV. Columns
// the pricer does not know about are preserved untouched, and writes go
// through a temp file so a crash never truncates the inventory.
package inventory

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/elcastillomagic/card-pricer/internal/models"
)

// Columns the pricer fills in on every run.
const (
	ColPriceUSD = "price_usd_ref"
	ColPriceCLP = "price_clp"
	ColSource   = "price_source"
)

// File is a loaded inventory CSV: a header plus one string map per row.
type File struct {
	path    string
	headers []string
	records []map[string]string
}

// Load reads the inventory CSV at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse inventory CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("inventory CSV %s has no header row", path)
	}

	headers := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		records = append(records, rec)
	}

	return &File{path: path, headers: headers, records: records}, nil
}

// Len returns the number of data rows.
func (f *File) Len() int {
	return len(f.records)
}

// Row parses the i-th record into the pipeline's input shape. Condition
// defaults to NM when the column is empty, matching how untracked stock is
// graded.
func (f *File) Row(i int) models.InventoryRow {
	rec := f.records[i]

	quantity := 1
	if q, err := strconv.Atoi(rec["quantity"]); err == nil && q > 0 {
		quantity = q
	}

	condition := rec["condition"]
	if condition == "" {
		condition = "NM"
	}

	return models.InventoryRow{
		Name:      rec["name"],
		SetCode:   rec["set"],
		Language:  rec["lang"],
		Condition: condition,
		Foil:      models.ParseFoil(rec["is_foil"]),
		Quantity:  quantity,
	}
}

// Rows parses every record.
func (f *File) Rows() []models.InventoryRow {
	rows := make([]models.InventoryRow, f.Len())
	for i := range f.records {
		rows[i] = f.Row(i)
	}
	return rows
}

// ApplyQuote writes the pricing result into the i-th record. A nil quote
// blanks the price columns so the row reads as "consult" downstream.
func (f *File) ApplyQuote(i int, quote *models.PriceQuote) {
	rec := f.records[i]
	if quote == nil {
		rec[ColPriceUSD] = ""
		rec[ColPriceCLP] = ""
		rec[ColSource] = ""
		return
	}
	rec[ColPriceUSD] = quote.USDString()
	rec[ColPriceCLP] = strconv.Itoa(quote.CLP)
	rec[ColSource] = quote.Provider
}

// Save rewrites the CSV atomically, appending the price columns to the
// header when an older inventory file lacks them.
func (f *File) Save() error {
	for _, col := range []string{ColPriceUSD, ColPriceCLP, ColSource} {
		f.ensureHeader(col)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".inventory-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(f.headers); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, rec := range f.records {
		row := make([]string, len(f.headers))
		for i, h := range f.headers {
			row[i] = rec[h]
		}
		if err := writer.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	return os.Rename(tmp.Name(), f.path)
}

func (f *File) ensureHeader(col string) {
	for _, h := range f.headers {
		if h == col {
			return
		}
	}
	f.headers = append(f.headers, col)
}
