package handlers

import (
	"encoding/json"
	"net/http"

	"minpaku-ai/internal/category"
	"minpaku-ai/internal/contextutil"
	"minpaku-ai/internal/documents"
)

// SeedHandler handles knowledge-base initialization from the built-in
// document set.
type SeedHandler struct {
	manager documents.Manager
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(manager documents.Manager) *SeedHandler {
	return &SeedHandler{manager: manager}
}

// SeedRequest is the request body for POST /api/documents/init.
type SeedRequest struct {
	Reset bool `json:"reset"`
}

// SeedStatusResponse reports what a seed run would load.
type SeedStatusResponse struct {
	AvailableDocuments int      `json:"availableDocuments"`
	Categories         []string `json:"categories"`
}

// ServeHTTP handles seed requests. POST loads the built-in documents,
// GET reports what is available without changing anything.
func (h *SeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSeed(w, r)
	case http.MethodGet:
		h.handleStatus(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *SeedHandler) handleSeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SeedRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	report, err := h.manager.Seed(ctx, req.Reset)
	if err != nil {
		logger.ErrorContext(ctx, "seed failed", "error", err)
		writeError(w, http.StatusInternalServerError, "初期データの投入に失敗しました。")
		return
	}

	logger.InfoContext(ctx, "seed completed",
		"total", report.Total,
		"success", report.Success,
		"errors", report.Errors,
		"reset", req.Reset,
	)
	writeJSON(w, http.StatusOK, report)
}

func (h *SeedHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	cats := category.All()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}

	writeJSON(w, http.StatusOK, SeedStatusResponse{
		AvailableDocuments: len(documents.SeedDocuments()),
		Categories:         names,
	})
}
