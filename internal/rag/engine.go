// Package rag implements the retrieval half of the support assistant:
// semantic similarity search over the stored knowledge base and assembly of
// the bounded-size prompt context from the results.
package rag

import (
	"context"
	"errors"
	"fmt"

	"minpaku-ai/internal/contextutil"
	"minpaku-ai/internal/llm"
	"minpaku-ai/internal/storage"
	"minpaku-ai/internal/vectorstore"
)

// ErrSearch marks a similarity-search failure (embedding or vector store).
// Callers on the chat path must treat it as non-fatal and fall back to a
// reduced-context response; only admin-facing callers surface it.
var ErrSearch = errors.New("similarity search failed")

// Engine provides semantic document retrieval.
type Engine interface {
	// Search embeds query and returns stored documents whose similarity
	// clears threshold, at most count, ranked by descending similarity.
	// An empty result is not an error.
	Search(ctx context.Context, query string, threshold float32, count int) ([]SearchResult, error)
}

// ragEngine implements the Engine interface.
type ragEngine struct {
	embedder    llm.Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	repo        storage.DocumentStore
}

// NewEngine creates a retrieval engine.
func NewEngine(
	embedder llm.Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	repo storage.DocumentStore,
) Engine {
	return &ragEngine{
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		repo:        repo,
	}
}

// Search embeds the query and asks the vector index for the nearest stored
// chunks above threshold, then hydrates the full rows from SQLite. Rows that
// have a lingering vector point but no backing row are skipped.
func (e *ragEngine) Search(ctx context.Context, query string, threshold float32, count int) ([]SearchResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive", ErrSearch)
	}

	embeddings, err := e.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSearch, err)
	}
	queryVector := embeddings[0]

	matches, err := e.vectorStore.Search(ctx, e.collection, queryVector, count, threshold)
	if err != nil {
		logger.ErrorContext(ctx, "vector search failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSearch, err)
	}

	results := make([]SearchResult, 0, len(matches))
	for _, match := range matches {
		doc, err := e.repo.GetByID(ctx, int64(match.PointID))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				logger.WarnContext(ctx, "vector point has no backing document row, skipping", "id", match.PointID)
				continue
			}
			logger.ErrorContext(ctx, "failed to hydrate search result", "id", match.PointID, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrSearch, err)
		}

		results = append(results, SearchResult{
			ID:         doc.ID,
			Title:      doc.Title,
			Content:    doc.Content,
			Category:   doc.Category,
			Similarity: match.Score,
		})
	}

	logger.InfoContext(ctx, "similarity search completed",
		"threshold", threshold,
		"count_requested", count,
		"results", len(results),
	)
	return results, nil
}
