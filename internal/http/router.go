package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"minpaku-ai/internal/documents"
	"minpaku-ai/internal/handlers"
	"minpaku-ai/internal/rag"
	"minpaku-ai/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService     service.ChatService
	DocumentManager documents.Manager
	RAGEngine       rag.Engine
	VectorStore     handlers.CollectionChecker
	DB              handlers.Pinger
	CollectionName  string
	IndexHTML       string // Embedded widget demo page
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Recoverer)
	r.Use(RequestID)

	// Add CORS middleware
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.ChatService)
	documentHandler := handlers.NewDocumentHandler(deps.DocumentManager, deps.RAGEngine)
	seedHandler := handlers.NewSeedHandler(deps.DocumentManager)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.DB, deps.CollectionName)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Handle("/documents", documentHandler)
		r.Get("/documents/{id}/preview", documentHandler.Preview)
		r.Handle("/documents/init", seedHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	// Serve the widget demo page at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(deps.IndexHTML))
	})

	return r
}
