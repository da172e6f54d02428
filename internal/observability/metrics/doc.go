// Package metrics provides the Prometheus metrics of the scroll feed.
//
// Covered:
//   - fetches by operation and outcome, with provider latency
//   - dropped load/refresh triggers
//   - merged and skipped records
//   - stale results discarded after reset or close
//   - auto-refresh ticks
//
// All metrics are registered with the default registry and exposed by /metrics
// on the records API. HTTP metrics live in the handler package.
//
// Example usage:
//
//	import "scrollfeed/internal/observability/metrics"
//
//	func afterFetch(start time.Time, err error) {
//	    metrics.RecordFeedFetchDuration("load_more", time.Since(start))
//	    if err != nil {
//	        metrics.RecordFeedFetch("load_more", "failure")
//	    }
//	}
package metrics
