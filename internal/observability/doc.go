// Package observability groups the cross-cutting instrumentation used by both binaries.
//
// Subpackages:
//   - logging: structured logging with log/slog and request-scoped loggers
//   - metrics: Prometheus metrics for the scroll feed state machine
//   - tracing: OpenTelemetry spans, HTTP middleware and header propagation
//
// Example usage:
//
//	import (
//	    "scrollfeed/internal/observability/logging"
//	    "scrollfeed/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordFeedFetch("load_more", "success")
//	}
package observability
