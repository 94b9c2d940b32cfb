package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/elcastillomagic/card-pricer/internal/api"
	"github.com/elcastillomagic/card-pricer/internal/config"
	"github.com/elcastillomagic/card-pricer/internal/database"
	"github.com/elcastillomagic/card-pricer/internal/metrics"
	"github.com/elcastillomagic/card-pricer/internal/mtgjson"
	"github.com/elcastillomagic/card-pricer/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize database
	if err := database.Initialize(cfg.DBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Make sure the bulk datasets exist, then build the reference index
	if err := mtgjson.EnsureDatasets(context.Background(), cfg.MTGJSONDataDir, false); err != nil {
		log.Fatalf("Failed to prepare MTGJSON datasets: %v", err)
	}

	identifiers, err := mtgjson.LoadAllIdentifiers(filepath.Join(cfg.MTGJSONDataDir, mtgjson.AllIdentifiersFile))
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

	prices, err := mtgjson.LoadAllPrices(filepath.Join(cfg.MTGJSONDataDir, mtgjson.AllPricesTodayFile))
	if err != nil {
		log.Fatalf("Failed to load AllPricesToday: %v", err)
	}
	log.Printf("Bulk price table loaded: %d cards", len(prices.Data))

	// Initialize services
	scryfall := services.NewScryfallClient()
	pipeline := services.NewPipeline(cfg, index, prices, scryfall, database.GetDB())

	// Setup router
	router := api.SetupRouter(cfg, pipeline, scryfall, database.GetDB())

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
