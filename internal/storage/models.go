package storage

import "time"

// DocumentRecord represents one stored knowledge-base chunk.
type DocumentRecord struct {
	ID        int64  // Assigned by SQLite on insert; doubles as the Qdrant point id
	Title     string // Chunk titles carry a "(i/n)" suffix for multi-chunk documents
	Content   string // Chunk body, bounded by the chunking policy
	Category  string // One of the category package's enumerated values
	CreatedAt time.Time
	UpdatedAt time.Time
}
