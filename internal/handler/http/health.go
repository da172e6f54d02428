// Package http holds the records API's shared middleware, health probes and metrics endpoint.
// Resource handlers live in subpackages.
package http

import (
	"context"
	"net/http"
	"time"

	"scrollfeed/internal/handler/http/respond"
)

// CorpusCounter reports the number of records in the corpus.
type CorpusCounter interface {
	Count(ctx context.Context) (int, error)
}

// HealthResponse is the JSON body of /health.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of a single check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler reports whether the corpus is reachable and how large it is.
type HealthHandler struct {
	Corpus  CorpusCounter
	Version string
}

// ServeHTTP returns 200 when every check passes and 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	corpus := h.checkCorpus(ctx)
	status, code := "healthy", http.StatusOK
	if corpus.Status != "healthy" {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]CheckStatus{"corpus": corpus},
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkCorpus(ctx context.Context) CheckStatus {
	if h.Corpus == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	n, err := h.Corpus.Count(ctx)
	if err != nil {
		return CheckStatus{Status: "unhealthy", Message: "count failed"}
	}
	return CheckStatus{Status: "healthy", Details: map[string]any{"total_count": n}}
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

// ServeHTTP always returns 200 "alive".
func (LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
