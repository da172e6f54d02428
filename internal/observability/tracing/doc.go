// Package tracing provides OpenTelemetry tracing integration.
//
// The records API wraps every request in a server span (Middleware), the page provider and
// the scroll feed open spans around page fetches, and the HTTP page client propagates the
// W3C trace context to the API (InjectHeaders), so a single scroll action can be followed
// from the terminal client to the corpus slice.
//
// Without a configured TracerProvider the global no-op provider is used and spans cost
// nothing.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "scroll.LoadMore")
//	defer span.End()
package tracing
