package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elcastillomagic/card-pricer/internal/cardname"
	"github.com/elcastillomagic/card-pricer/internal/config"
	"github.com/elcastillomagic/card-pricer/internal/metrics"
	"github.com/elcastillomagic/card-pricer/internal/models"
	"github.com/elcastillomagic/card-pricer/internal/mtgjson"
)

// Pipeline prices inventory rows: name resolution, printing lookup, bulk
// price table, live Scryfall fallback, and the pricing normalizer, in that
// order. All inputs are read-only after construction, so one Pipeline is
// safe for concurrent rows; the batch path runs them sequentially.
type Pipeline struct {
	cfg      *config.Config
	index    *mtgjson.ReferenceIndex
	prices   map[string]mtgjson.PriceEntry
	resolver *cardname.Resolver
	scryfall *ScryfallClient
	pricer   *Pricer
	db       *gorm.DB // nil disables snapshot persistence
}

func NewPipeline(cfg *config.Config, index *mtgjson.ReferenceIndex, prices *mtgjson.AllPrices, scryfall *ScryfallClient, db *gorm.DB) *Pipeline {
	priceData := map[string]mtgjson.PriceEntry{}
	if prices != nil && prices.Data != nil {
		priceData = prices.Data
	}

	return &Pipeline{
		cfg:      cfg,
		index:    index,
		prices:   priceData,
		resolver: cardname.NewResolver(index.Translations(), cfg.ForeignLangCode, cfg.SimilarityThreshold),
		scryfall: scryfall,
		pricer:   NewPricer(cfg.ConditionMultipliers, cfg.GlobalDiscount, cfg.PriceMinCLP),
		db:       db,
	}
}

// ResolveName maps a possibly-foreign card name to its canonical English
// spelling. Exposed for callers that need the resolution without pricing.
func (p *Pipeline) ResolveName(name, lang string) string {
	return p.resolver.ResolveToEnglish(name, lang)
}

// PriceRow resolves and prices a single inventory row. A nil Quote in the
// result means no source had a confident price; that is a normal outcome,
// not an error. The live source is only consulted when the bulk table has
// nothing for the exact printing.
func (p *Pipeline) PriceRow(ctx context.Context, row models.InventoryRow) models.RowResult {
	res := models.RowResult{Row: row}

	name := strings.TrimSpace(row.Name)
	setCode := strings.ToUpper(strings.TrimSpace(row.SetCode))
	if name == "" || setCode == "" {
		return res
	}

	english := p.resolver.ResolveToEnglish(name, row.Language)

	if cardUUID, ok := p.index.Locate(setCode, english); ok {
		res.CardUUID = cardUUID
		if entry, found := p.prices[cardUUID]; found {
			if bulk := mtgjson.ResolvePrice(&entry, row.Foil, nil); bulk != nil {
				usd, clp := p.pricer.Quote(bulk.USD, row.Condition, p.cfg.USDToCLP)
				res.Quote = &models.PriceQuote{
					USD:      usd,
					CLP:      clp,
					Provider: bulk.Provider,
					Reliable: bulk.Reliable,
				}
				return res
			}
		}
	}

	// Live fallback: exact name+set only. Any failure (network, non-2xx,
	// missing fields) degrades to "no price this run".
	card, err := p.scryfall.NamedExact(ctx, english, setCode)
	if err != nil || card == nil {
		return res
	}

	foil := row.Foil
	reliable := true
	if foil && !HasFoilFinish(card) {
		// The catalog says this printing has no foil treatment, so a
		// foil price would be an overpricing; downgrade.
		foil = false
		reliable = false
	}

	baseUSD, fieldReliable, ok := PickUSD(card.Prices, foil)
	if !ok {
		return res
	}

	usd, clp := p.pricer.Quote(baseUSD, row.Condition, p.cfg.ScryfallUSDToCLP)
	res.Quote = &models.PriceQuote{
		USD:      usd,
		CLP:      clp,
		Provider: "scryfall",
		Reliable: reliable && fieldReliable,
	}
	return res
}

// PriceBatch prices every row, tallies priced/unpriced counts, and
// persists snapshots under a fresh run ID. An aborted context stops
// issuing new lookups; rows already priced are still returned and saved.
func (p *Pipeline) PriceBatch(ctx context.Context, rows []models.InventoryRow) (models.BatchResult, []models.RowResult) {
	start := time.Now()
	runID := uuid.New().String()

	results := make([]models.RowResult, 0, len(rows))
	priced, unpriced := 0, 0

	for _, row := range rows {
		if ctx.Err() != nil {
			log.Printf("Batch %s aborted after %d rows", runID, len(results))
			break
		}

		res := p.PriceRow(ctx, row)
		if res.Quote != nil {
			priced++
			metrics.RowsPricedTotal.WithLabelValues(res.Quote.Provider).Inc()
		} else {
			unpriced++
			metrics.RowsUnpricedTotal.Inc()
		}
		results = append(results, res)
	}

	metrics.BatchDuration.Observe(time.Since(start).Seconds())

	if p.db != nil {
		p.saveSnapshots(runID, results)
	}

	return models.BatchResult{RunID: runID, Priced: priced, Unpriced: unpriced}, results
}

// saveSnapshots upserts the priced rows of a run. Persistence failures are
// logged, never fatal: the CSV remains the source of truth.
func (p *Pipeline) saveSnapshots(runID string, results []models.RowResult) {
	snapshots := make([]models.PriceSnapshot, 0, len(results))
	for _, res := range results {
		if res.Quote == nil {
			continue
		}
		snapshots = append(snapshots, models.PriceSnapshot{
			RunID:     runID,
			CardUUID:  res.CardUUID,
			Name:      res.Row.Name,
			SetCode:   strings.ToUpper(res.Row.SetCode),
			Condition: strings.ToUpper(res.Row.Condition),
			Foil:      res.Row.Foil,
			PriceUSD:  res.Quote.USD,
			PriceCLP:  res.Quote.CLP,
			Source:    res.Quote.Provider,
			Reliable:  res.Quote.Reliable,
		})
	}
	if len(snapshots) == 0 {
		return
	}

	err := p.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "run_id"}, {Name: "name"}, {Name: "set_code"}, {Name: "condition"}, {Name: "foil"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"price_usd", "price_clp", "source", "reliable"}),
	}).Create(&snapshots).Error
	if err != nil {
		log.Printf("Failed to save %d price snapshots for run %s: %v", len(snapshots), runID, err)
	}
}
