// Package logging provides slog helpers with request ID and context propagation.
//
// Example usage:
//
//	import "scrollfeed/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("records api started", slog.String("addr", ":8080"))
//	}
//
//	func handleRequest(ctx context.Context) {
//	    logger := logging.WithRequestID(ctx, slog.Default())
//	    logger.Info("serving page")
//	}
package logging
