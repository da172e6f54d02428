package pagination

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_pagination_requests_total",
			Help: "Total number of record page requests",
		},
		[]string{"status", "page_range"},
	)

	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "record_pagination_duration_seconds",
			Help:    "Record page request duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)

	TotalCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "record_corpus_total_count",
			Help: "Current number of records in the corpus",
		},
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_pagination_errors_total",
			Help: "Total number of record page errors",
		},
		[]string{"type"},
	)
)

// RecordRequest counts a served page request by status code and page bucket.
func RecordRequest(statusCode int, page int) {
	pageRange := getPageRangeBucket(page)
	RequestsTotal.WithLabelValues(
		fmt.Sprintf("%d", statusCode),
		pageRange,
	).Inc()
}

// RecordDuration observes how long an operation took, in seconds.
func RecordDuration(operation string, duration float64) {
	DurationSeconds.WithLabelValues(operation).Observe(duration)
}

// UpdateTotalCount sets the corpus size gauge.
func UpdateTotalCount(count int) {
	TotalCount.Set(float64(count))
}

// RecordError counts a failed page request by error type.
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

func getPageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
