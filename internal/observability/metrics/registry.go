// Package metrics provides Prometheus metrics for the scroll feed state machine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Feed metrics track the pagination state machine on the client side.
var (
	// FeedFetchesTotal counts provider fetches by operation and outcome
	FeedFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scroll_feed_fetches_total",
			Help: "Total number of page fetches issued by the scroll feed",
		},
		[]string{"operation", "outcome"}, // operation: load_more, refresh, hard_reload
	)

	// FeedFetchDuration measures the time spent waiting on the page provider
	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scroll_feed_fetch_duration_seconds",
			Help:    "Time spent waiting on the page provider",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"operation"},
	)

	// FeedTriggersDroppedTotal counts triggers ignored because the feed was busy or exhausted
	FeedTriggersDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scroll_feed_triggers_dropped_total",
			Help: "Total number of load or refresh triggers dropped",
		},
		[]string{"operation", "reason"}, // reason: busy, exhausted, closed
	)

	// FeedRecordsMergedTotal counts records actually added by a merge
	FeedRecordsMergedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scroll_feed_records_merged_total",
			Help: "Total number of new records merged into the feed",
		},
		[]string{"placement"},
	)

	// FeedDuplicatesSkippedTotal counts incoming records filtered out as already present
	FeedDuplicatesSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scroll_feed_duplicates_skipped_total",
			Help: "Total number of incoming records skipped as duplicates",
		},
	)

	// FeedStaleResultsTotal counts fetch results discarded after a reset or close
	FeedStaleResultsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scroll_feed_stale_results_total",
			Help: "Total number of fetch results discarded after reset or close",
		},
	)

	// FeedRecordsLoaded tracks the size of the most recently updated feed
	FeedRecordsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scroll_feed_records_loaded",
			Help: "Number of records currently held by the feed",
		},
	)

	// AutoRefreshTicksTotal counts auto-refresh timer ticks
	AutoRefreshTicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scroll_feed_autorefresh_ticks_total",
			Help: "Total number of auto-refresh timer ticks",
		},
	)
)
