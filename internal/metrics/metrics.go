// Package metrics defines the Prometheus collectors of the matcher and
// exposes an HTTP handler for scraping.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors. Each instance owns its registry so several
// matchers (or tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsLoaded  *prometheus.CounterVec
	DocumentsSkipped *prometheus.CounterVec
	VocabularySize   prometheus.Gauge
	IndexedDocuments prometheus.Gauge
	QueriesTotal     *prometheus.CounterVec
	QueryLatency     prometheus.Histogram
	BuildDuration    prometheus.Histogram
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		DocumentsLoaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docmatch_documents_loaded_total",
				Help: "Documents successfully extracted, by role (train, query).",
			},
			[]string{"role"},
		),
		DocumentsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docmatch_documents_skipped_total",
				Help: "Documents skipped because extraction failed or produced no text, by role.",
			},
			[]string{"role"},
		),
		VocabularySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "docmatch_vocabulary_terms",
				Help: "Distinct terms in the frozen training vocabulary.",
			},
		),
		IndexedDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "docmatch_index_documents",
				Help: "Training documents in the corpus index.",
			},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docmatch_queries_total",
				Help: "Similarity queries by outcome (ok, no_terms, error).",
			},
			[]string{"outcome"},
		),
		QueryLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "docmatch_query_latency_seconds",
				Help:    "Time to encode and rank one query document.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		BuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "docmatch_build_duration_seconds",
				Help:    "Time to load the training directory and build the engine.",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
			},
		),
	}
	m.registry.MustRegister(
		m.DocumentsLoaded,
		m.DocumentsSkipped,
		m.VocabularySize,
		m.IndexedDocuments,
		m.QueriesTotal,
		m.QueryLatency,
		m.BuildDuration,
	)
	return m
}

// Handler returns the scrape handler for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartServer serves /metrics on port in the background.
func (m *Metrics) StartServer(port int) (shutdown func(context.Context) error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("metrics server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server error", "error", err)
		}
	}()

	return server.Shutdown
}
