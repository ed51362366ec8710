// Package metrics registers the process-wide Prometheus collectors
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"chatter/internal/platform/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// LinksProcessed counts canonicalizer outcomes: resolved, fallback, not_found, ignored, deferred
	LinksProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatter_links_processed_total",
		Help: "Observed links handled by the canonicalizer, by outcome.",
	}, []string{"outcome"})

	ResolverSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chatter_resolver_seconds",
		Help:    "Redirect resolution latency.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 8),
	})

	// ClassifierRequests counts classifier calls: ok, empty, skipped, rejected, exhausted
	ClassifierRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatter_classifier_requests_total",
		Help: "Topic classification attempts, by result.",
	}, []string{"result"})

	StoreWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatter_store_write_failures_total",
		Help: "Per-record write failures that were logged and skipped.",
	}, []string{"op"})

	HotlistGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatter_hotlist_generated_total",
		Help: "Hot lists assembled, by mode.",
	}, []string{"mode"})

	HotlistSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chatter_hotlist_seconds",
		Help:    "Hot list generation latency including aggregation and clustering.",
		Buckets: prometheus.DefBuckets,
	})

	RetryBookSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chatter_retry_book_size",
		Help: "Observed links currently tracked for transient resolution failures.",
	})
)

// Handler exposes the default registry
func Handler() http.Handler { return promhttp.Handler() }

// Serve exposes /metrics on addr until ctx ends. An empty addr is a no-op
func Serve(ctx context.Context, addr string) {
	if addr == "" {
		return
	}
	log := logger.Named("metrics")
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()
	go func() {
		log.Info().Str("addr", addr).Msg("metrics listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()
}
