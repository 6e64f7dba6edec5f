// Package documents implements the knowledge-base document lifecycle:
// chunked storage, update, deletion, category listing, and seeding. A stored
// document's embedding is always computed from its own content: updates
// replace the whole row instead of patching fields, so the vector can never
// go stale relative to the text that produced it.
package documents

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_manager.go -package=mocks minpaku-ai/internal/documents Manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"minpaku-ai/internal/category"
	"minpaku-ai/internal/chunker"
	"minpaku-ai/internal/contextutil"
	"minpaku-ai/internal/llm"
	"minpaku-ai/internal/storage"
	"minpaku-ai/internal/vectorstore"
)

// ErrStorage marks failures of insert/delete/select against the document
// store. Admin callers see these verbatim; the search path downgrades them.
var ErrStorage = errors.New("document storage failed")

// SeedReport summarizes a seed run. One document's failure does not abort
// the batch; it is collected here instead.
type SeedReport struct {
	Total         int      `json:"total"`
	Success       int      `json:"success"`
	Errors        int      `json:"errors"`
	ErrorMessages []string `json:"error_messages,omitempty"`
}

// Manager defines the document lifecycle operations exposed to the admin
// handlers and the seed endpoint.
type Manager interface {
	// Store chunks content, embeds each chunk, and persists one row+point
	// per chunk. Multi-chunk documents get "(i/n)" title suffixes.
	Store(ctx context.Context, title, content, cat string) error
	// Get returns a single stored document by id.
	Get(ctx context.Context, id int64) (*storage.DocumentRecord, error)
	// ListByCategory returns documents in a category, newest first.
	ListByCategory(ctx context.Context, cat string) ([]storage.DocumentRecord, error)
	// Delete removes one document row and its vector point.
	Delete(ctx context.Context, id int64) error
	// Update replaces a document wholesale so the embedding is recomputed
	// from the new content.
	Update(ctx context.Context, id int64, title, content, cat string) error
	// Seed loads the fixed seed set, optionally resetting the store first.
	Seed(ctx context.Context, reset bool) (SeedReport, error)
}

// Service implements Manager on top of the SQLite repository and the vector
// store.
type Service struct {
	repo         storage.DocumentStore
	embedder     llm.Embedder
	vectorStore  vectorstore.VectorStore
	collection   string
	maxChunkSize int
	seedSet      []SeedDocument
	logger       *slog.Logger

	// seedMu serializes Seed calls: two interleaved reset+seed runs would
	// leave the store with a mix of both sets.
	seedMu sync.Mutex
}

// NewService creates a document lifecycle service.
func NewService(
	repo storage.DocumentStore,
	embedder llm.Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
) *Service {
	return &Service{
		repo:         repo,
		embedder:     embedder,
		vectorStore:  vectorStore,
		collection:   collection,
		maxChunkSize: chunker.DefaultMaxChunkSize,
		seedSet:      SeedDocuments(),
		logger:       slog.Default(),
	}
}

// Store chunks content, embeds every chunk, and persists one document row and
// one vector point per chunk.
func (s *Service) Store(ctx context.Context, title, content, cat string) error {
	logger := contextutil.LoggerFromContext(ctx)

	chunks := chunker.Split(content, s.maxChunkSize)
	if len(chunks) == 0 {
		return fmt.Errorf("%w: content is empty", ErrStorage)
	}

	if !category.Valid(cat) {
		// Soft invariant: unknown categories are stored but unselectable
		// in category browsing, so surface them in the log.
		logger.WarnContext(ctx, "storing document with unknown category", "category", cat, "title", title)
	}

	embeddings, err := s.embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return err
	}

	points := make([]vectorstore.Point, 0, len(chunks))
	inserted := make([]int64, 0, len(chunks))
	for i, chunk := range chunks {
		doc := &storage.DocumentRecord{
			Title:    chunkTitle(title, i, len(chunks)),
			Content:  chunk,
			Category: cat,
		}
		if err := s.repo.Insert(ctx, doc); err != nil {
			s.rollbackRows(ctx, inserted)
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		inserted = append(inserted, doc.ID)

		points = append(points, vectorstore.Point{
			ID:  uint64(doc.ID),
			Vec: embeddings[i],
			Meta: map[string]any{
				"title":       doc.Title,
				"category":    doc.Category,
				"chunk_index": i,
				"chunk_total": len(chunks),
			},
		})
	}

	if err := s.vectorStore.Upsert(ctx, s.collection, points); err != nil {
		// Without the vectors the rows are unreachable by search; take
		// them back out so the store stays consistent.
		s.rollbackRows(ctx, inserted)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	logger.InfoContext(ctx, "document stored", "title", title, "category", cat, "chunks", len(chunks))
	return nil
}

// Get returns a single stored document by id.
func (s *Service) Get(ctx context.Context, id int64) (*storage.DocumentRecord, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return doc, nil
}

// ListByCategory returns documents in a category, newest first.
func (s *Service) ListByCategory(ctx context.Context, cat string) ([]storage.DocumentRecord, error) {
	docs, err := s.repo.ListByCategory(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return docs, nil
}

// Delete removes one document row and its vector point. Deleting an id that
// does not exist succeeds silently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	logger := contextutil.LoggerFromContext(ctx)

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := s.vectorStore.Delete(ctx, s.collection, []uint64{id64(id)}); err != nil {
		// The row is gone but the point lingers; searches can still
		// surface it until the next reset. Loud log, surfaced error.
		logger.ErrorContext(ctx, "document row deleted but vector point removal failed", "id", id, "error", err)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	logger.InfoContext(ctx, "document deleted", "id", id)
	return nil
}

// Update replaces a document wholesale: the new content is chunked and
// embedded first, then the SQLite row swap happens in one transaction, then
// the vector points are swapped. A vector-side failure after the relational
// commit is logged loudly and returned to the caller for remediation.
func (s *Service) Update(ctx context.Context, id int64, title, content, cat string) error {
	logger := contextutil.LoggerFromContext(ctx)

	chunks := chunker.Split(content, s.maxChunkSize)
	if len(chunks) == 0 {
		return fmt.Errorf("%w: content is empty", ErrStorage)
	}

	embeddings, err := s.embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return err
	}

	docs := make([]*storage.DocumentRecord, len(chunks))
	for i, chunk := range chunks {
		docs[i] = &storage.DocumentRecord{
			Title:    chunkTitle(title, i, len(chunks)),
			Content:  chunk,
			Category: cat,
		}
	}

	if err := s.repo.ReplaceByID(ctx, id, docs); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := s.vectorStore.Delete(ctx, s.collection, []uint64{id64(id)}); err != nil {
		logger.ErrorContext(ctx, "updated rows committed but old vector point removal failed", "id", id, "error", err)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	points := make([]vectorstore.Point, len(docs))
	for i, doc := range docs {
		points[i] = vectorstore.Point{
			ID:  uint64(doc.ID),
			Vec: embeddings[i],
			Meta: map[string]any{
				"title":       doc.Title,
				"category":    doc.Category,
				"chunk_index": i,
				"chunk_total": len(docs),
			},
		}
	}
	if err := s.vectorStore.Upsert(ctx, s.collection, points); err != nil {
		logger.ErrorContext(ctx, "updated rows committed but vector upsert failed; document is unsearchable", "id", id, "error", err)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	logger.InfoContext(ctx, "document updated", "id", id, "title", title, "chunks", len(docs))
	return nil
}

// Seed loads the fixed seed set. With reset, the store is emptied first on a
// best-effort basis: a failed reset is logged and seeding proceeds anyway.
// Item failures are collected into the report rather than aborting the batch.
func (s *Service) Seed(ctx context.Context, reset bool) (SeedReport, error) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	logger := contextutil.LoggerFromContext(ctx)

	if reset {
		if err := s.repo.DeleteAll(ctx); err != nil {
			logger.ErrorContext(ctx, "reset failed: could not clear document rows, seed and legacy data may coexist", "error", err)
		}
		if err := s.vectorStore.DeleteAll(ctx, s.collection); err != nil {
			logger.ErrorContext(ctx, "reset failed: could not clear vector points, seed and legacy data may coexist", "error", err)
		}
	}

	report := SeedReport{Total: len(s.seedSet)}
	for _, doc := range s.seedSet {
		if err := s.Store(ctx, doc.Title, doc.Content, string(doc.Category)); err != nil {
			report.Errors++
			msg := fmt.Sprintf("failed to store %q: %v", doc.Title, err)
			report.ErrorMessages = append(report.ErrorMessages, msg)
			logger.ErrorContext(ctx, "seed item failed", "title", doc.Title, "error", err)
			continue
		}
		report.Success++
		logger.InfoContext(ctx, "seed item stored", "title", doc.Title)
	}

	logger.InfoContext(ctx, "seed completed", "total", report.Total, "success", report.Success, "errors", report.Errors, "reset", reset)
	return report, nil
}

// rollbackRows best-effort deletes rows inserted before a later step failed.
func (s *Service) rollbackRows(ctx context.Context, ids []int64) {
	logger := contextutil.LoggerFromContext(ctx)
	for _, id := range ids {
		if err := s.repo.DeleteByID(ctx, id); err != nil {
			logger.ErrorContext(ctx, "failed to roll back partially stored chunk", "id", id, "error", err)
		}
	}
}

// chunkTitle suffixes multi-chunk titles with "(i/n)" so the admin UI can
// trace chunks back to their source document.
func chunkTitle(title string, index, total int) string {
	if total <= 1 {
		return title
	}
	return fmt.Sprintf("%s (%d/%d)", title, index+1, total)
}

func id64(id int64) uint64 {
	return uint64(id)
}
