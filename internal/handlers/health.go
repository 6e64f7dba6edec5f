package handlers

import (
	"context"
	"net/http"

	"minpaku-ai/internal/contextutil"
)

// CollectionChecker reports whether the vector collection is reachable.
type CollectionChecker interface {
	CollectionExists(ctx context.Context, collection string) (bool, error)
}

// Pinger reports whether the relational store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	checker    CollectionChecker
	db         Pinger
	collection string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(checker CollectionChecker, db Pinger, collection string) *HealthHandler {
	return &HealthHandler{checker: checker, db: db, collection: collection}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status     string `json:"status"`
	Database   string `json:"database"`
	Vector     string `json:"vector"`
	Collection string `json:"collection,omitempty"`
}

// ServeHTTP handles health check requests. Degraded dependencies report 503
// so a load balancer pulls the instance before guests notice.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	resp := HealthResponse{Status: "ok", Database: "ok", Vector: "ok", Collection: h.collection}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		logger.ErrorContext(ctx, "database ping failed", "error", err)
		resp.Database = "unavailable"
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	exists, err := h.checker.CollectionExists(ctx, h.collection)
	switch {
	case err != nil:
		logger.ErrorContext(ctx, "vector store check failed", "error", err)
		resp.Vector = "unavailable"
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	case !exists:
		logger.WarnContext(ctx, "vector collection missing", "collection", h.collection)
		resp.Vector = "missing collection"
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}
