// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	CandidatesFetched  *prometheus.CounterVec
	RecordsInserted    *prometheus.CounterVec
	DuplicatesSkipped  *prometheus.CounterVec
	CandidatesFiltered *prometheus.CounterVec
	MalformedSkipped   *prometheus.CounterVec
	SourceFailures     *prometheus.CounterVec
	PollDuration       *prometheus.HistogramVec

	// Unlock metrics
	UnlockRequests  *prometheus.CounterVec
	RewardsCredited prometheus.Counter
	ReceiptsMinted  prometheus.Counter

	// Summary metrics
	SummaryCacheHits   prometheus.Counter
	SummaryCacheMisses prometheus.Counter

	// Health metrics
	LastSuccessfulPoll *prometheus.GaugeVec
	UptimeSeconds      prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "microterm"
	}

	return &Metrics{
		// Ingestion metrics
		CandidatesFetched: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "candidates_fetched_total",
			Help:      "Total number of candidates fetched by job",
		}, []string{"job"}),
		RecordsInserted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "records_inserted_total",
			Help:      "Total number of records inserted by job",
		}, []string{"job"}),
		DuplicatesSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "duplicates_skipped_total",
			Help:      "Total number of already-ingested candidates skipped by job",
		}, []string{"job"}),
		CandidatesFiltered: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "candidates_filtered_total",
			Help:      "Total number of candidates dropped by domain filters by job",
		}, []string{"job"}),
		MalformedSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "malformed_skipped_total",
			Help:      "Total number of malformed candidates skipped by job",
		}, []string{"job"}),
		SourceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "source_failures_total",
			Help:      "Total number of failed polls by job",
		}, []string{"job"}),
		PollDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "poll_duration_seconds",
			Help:      "Poll duration in seconds by job",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"}),

		// Unlock metrics
		UnlockRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "unlock",
			Name:      "requests_total",
			Help:      "Total number of access requests by mode and decision",
		}, []string{"mode", "decision"}),
		RewardsCredited: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "unlock",
			Name:      "rewards_credited_total",
			Help:      "Total number of loyalty rewards credited",
		}),
		ReceiptsMinted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "unlock",
			Name:      "receipts_minted_total",
			Help:      "Total number of NFT receipts minted",
		}),

		// Summary metrics
		SummaryCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "summary",
			Name:      "cache_hits_total",
			Help:      "Total number of summary cache hits",
		}),
		SummaryCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "summary",
			Name:      "cache_misses_total",
			Help:      "Total number of summary cache misses",
		}),

		// Health metrics
		LastSuccessfulPoll: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_poll_timestamp",
			Help:      "Unix timestamp of the last successful poll by job",
		}, []string{"job"}),
		UptimeSeconds: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "uptime_seconds_total",
			Help:      "Total uptime in seconds",
		}),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
