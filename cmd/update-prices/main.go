// update-prices reprices the whole inventory CSV from the MTGJSON bulk
// datasets, falling back to Scryfall for printings the bulk table misses.
//
// Usage: go run main.go [-csv=<path>] [-data=<dir>] [-force-download] [-dry-run] [-no-db]
//
// The tool:
// 1. Downloads AllIdentifiers/AllPricesToday when missing (or -force-download)
// 2. Builds the ES->EN translation dictionary and the printing index
// 3. Prices every row: MTGJSON first, Scryfall exact name+set second
// 4. Rewrites the CSV atomically and records snapshots for the run
// 5. Prints how many rows got a price and how many need manual pricing
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/elcastillomagic/card-pricer/internal/config"
	"github.com/elcastillomagic/card-pricer/internal/database"
	"github.com/elcastillomagic/card-pricer/internal/inventory"
	"github.com/elcastillomagic/card-pricer/internal/metrics"
	"github.com/elcastillomagic/card-pricer/internal/mtgjson"
	"github.com/elcastillomagic/card-pricer/internal/services"
)

func main() {
	cfg := config.Load()

	csvPath := flag.String("csv", cfg.InventoryCSV, "path to the inventory CSV")
	dataDir := flag.String("data", cfg.MTGJSONDataDir, "directory for the MTGJSON bulk files")
	forceDownload := flag.Bool("force-download", false, "re-download the bulk files even if present")
	dryRun := flag.Bool("dry-run", false, "price everything but do not rewrite the CSV")
	noDB := flag.Bool("no-db", false, "skip recording price snapshots to sqlite")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := mtgjson.EnsureDatasets(ctx, *dataDir, *forceDownload); err != nil {
		log.Fatalf("Failed to prepare MTGJSON datasets: %v", err)
	}

	identifiers, err := mtgjson.LoadAllIdentifiers(filepath.Join(*dataDir, mtgjson.AllIdentifiersFile))
	if err != nil {
		log.Fatalf("Failed to load AllIdentifiers: %v", err)
	}
	index, err := mtgjson.BuildReferenceIndex(identifiers, cfg.ForeignLanguage)
	if err != nil {
		log.Fatalf("Failed to build reference index: %v", err)
	}
	log.Printf("Reference index built: %d translations, %d printings",
		index.TranslationCount(), index.PrintingCount())
	metrics.ReferenceIndexSize.WithLabelValues("translations").Set(float64(index.TranslationCount()))
	metrics.ReferenceIndexSize.WithLabelValues("printings").Set(float64(index.PrintingCount()))

	prices, err := mtgjson.LoadAllPrices(filepath.Join(*dataDir, mtgjson.AllPricesTodayFile))
	if err != nil {
		log.Fatalf("Failed to load AllPricesToday: %v", err)
	}
	log.Printf("Bulk price table loaded: %d cards", len(prices.Data))

	if !*noDB {
		if err := database.Initialize(cfg.DBPath); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
	}

	file, err := inventory.Load(*csvPath)
	if err != nil {
		log.Fatalf("Failed to read inventory: %v", err)
	}
	log.Printf("Inventory loaded: %d rows from %s", file.Len(), *csvPath)

	scryfall := services.NewScryfallClient()
	pipeline := services.NewPipeline(cfg, index, prices, scryfall, database.GetDB())

	batch, results := pipeline.PriceBatch(ctx, file.Rows())

	for i, res := range results {
		file.ApplyQuote(i, res.Quote)
	}

	if *dryRun {
		log.Printf("Dry run: not rewriting %s", *csvPath)
	} else if err := file.Save(); err != nil {
		log.Fatalf("Failed to rewrite inventory: %v", err)
	}

	log.Printf("Prices updated (run %s)", batch.RunID)
	log.Printf("  Rows priced:   %d", batch.Priced)
	log.Printf("  Rows unpriced: %d", batch.Unpriced)
}
