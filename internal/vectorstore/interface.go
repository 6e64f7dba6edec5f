package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks minpaku-ai/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata. The numeric id is shared
// with the SQLite documents row it belongs to.
type Point struct {
	ID   uint64
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID uint64
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns up to limit points ranked by similarity to the query
	// vector, keeping only points whose score clears scoreThreshold. The
	// threshold is applied server-side by the store's vector index.
	Search(ctx context.Context, collection string, query []float32, limit int, scoreThreshold float32) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []uint64) error

	// DeleteAll removes every point in the collection.
	DeleteAll(ctx context.Context, collection string) error
}
