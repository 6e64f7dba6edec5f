package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks minpaku-ai/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// Insert inserts a document row and assigns doc.ID from the store.
	Insert(ctx context.Context, doc *DocumentRecord) error
	// GetByID gets a document by id. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id int64) (*DocumentRecord, error)
	// ListByCategory returns all documents in a category, newest first.
	ListByCategory(ctx context.Context, category string) ([]DocumentRecord, error)
	// DeleteByID deletes a document by id. Deleting a non-existent id is a
	// silent no-op, matching delete-by-predicate semantics.
	DeleteByID(ctx context.Context, id int64) error
	// DeleteAll removes every document. Used only by the reset path.
	DeleteAll(ctx context.Context) error
	// ReplaceByID deletes the row with the given id and inserts the
	// replacement rows in a single transaction, assigning their IDs.
	ReplaceByID(ctx context.Context, id int64, docs []*DocumentRecord) error
	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Insert inserts a document row and assigns doc.ID from the store.
func (r *DocumentRepo) Insert(ctx context.Context, doc *DocumentRecord) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO documents (title, content, category) VALUES (?, ?, ?)",
		doc.Title, doc.Content, doc.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}
	doc.ID = id
	return nil
}

// GetByID gets a document by id. Returns ErrNotFound if not found.
func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*DocumentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, title, content, category, created_at, updated_at FROM documents WHERE id = ?",
		id,
	)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return doc, nil
}

// ListByCategory returns all documents in a category, newest first.
// Returns an empty slice when the category has no documents.
func (r *DocumentRepo) ListByCategory(ctx context.Context, category string) ([]DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, title, content, category, created_at, updated_at FROM documents WHERE category = ? ORDER BY created_at DESC, id DESC",
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	docs := []DocumentRecord{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return docs, nil
}

// DeleteByID deletes a document by id. Zero rows affected is not an error.
func (r *DocumentRepo) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// DeleteAll removes every document.
func (r *DocumentRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM documents")
	if err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}

// ReplaceByID deletes the row with the given id and inserts the replacement
// rows in one transaction. Either the old row is gone and all replacements
// exist, or nothing changed.
func (r *DocumentRepo) ReplaceByID(ctx context.Context, id int64, docs []*DocumentRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	for _, doc := range docs {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO documents (title, content, category) VALUES (?, ?, ?)",
			doc.Title, doc.Content, doc.Category,
		)
		if err != nil {
			return fmt.Errorf("failed to insert replacement document: %w", err)
		}
		newID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read inserted id: %w", err)
		}
		doc.ID = newID
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Count returns the number of stored documents.
func (r *DocumentRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanDocument.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*DocumentRecord, error) {
	var doc DocumentRecord
	var createdAtStr, updatedAtStr string

	err := s.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.Category, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}

	doc.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	doc.UpdatedAt, err = parseTimestamp(updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return &doc, nil
}

// parseTimestamp handles the DATETIME formats SQLite emits.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
