// Package metrics provides Prometheus metrics for the card pricer.
// Scrape these at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Pipeline Metrics
	RowsPricedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricer_rows_priced_total",
			Help: "Inventory rows priced, by source provider",
		},
		[]string{"source"},
	)

	RowsUnpricedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pricer_rows_unpriced_total",
			Help: "Inventory rows left without a confident price",
		},
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pricer_batch_duration_seconds",
			Help:    "Time taken to price a full inventory batch",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	// Reference Index Metrics
	ReferenceIndexSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pricer_reference_index_size",
			Help: "Entries in the reference index, by map",
		},
		[]string{"map"}, // "translations" or "printings"
	)

	// Scryfall API Metrics
	ScryfallRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricer_scryfall_requests_total",
			Help: "Scryfall API requests by result",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	ScryfallCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pricer_scryfall_cache_hits_total",
			Help: "Scryfall lookups served from the in-memory cache",
		},
	)
)
