package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *DocumentRepo {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	return NewDocumentRepo(db)
}

func TestDocumentRepo_InsertAndGetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	doc := &DocumentRecord{
		Title:    "チェックイン時間",
		Content:  "チェックインは15時からです。",
		Category: "チェックイン・チェックアウト",
	}
	if err := repo.Insert(ctx, doc); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if doc.ID == 0 {
		t.Fatal("Insert() did not assign an id")
	}

	got, err := repo.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != doc.Title || got.Content != doc.Content || got.Category != doc.Category {
		t.Errorf("GetByID() = %+v, want %+v", got, doc)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("GetByID() timestamps not populated")
	}
}

func TestDocumentRepo_GetByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestDocumentRepo_ListByCategory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	docs := []*DocumentRecord{
		{Title: "first", Content: "a", Category: "設備・アメニティ"},
		{Title: "second", Content: "b", Category: "設備・アメニティ"},
		{Title: "other", Content: "c", Category: "交通・アクセス"},
	}
	for _, d := range docs {
		if err := repo.Insert(ctx, d); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	got, err := repo.ListByCategory(ctx, "設備・アメニティ")
	if err != nil {
		t.Fatalf("ListByCategory() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByCategory() returned %d documents, want 2", len(got))
	}
	// Newest first; inserts within the same second fall back to id order.
	if got[0].Title != "second" || got[1].Title != "first" {
		t.Errorf("ListByCategory() order = [%s, %s], want [second, first]", got[0].Title, got[1].Title)
	}
}

func TestDocumentRepo_ListByCategory_Empty(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.ListByCategory(context.Background(), "観光・グルメ")
	if err != nil {
		t.Fatalf("ListByCategory() error = %v", err)
	}
	if got == nil {
		t.Error("ListByCategory() should return an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("ListByCategory() returned %d documents, want 0", len(got))
	}
}

func TestDocumentRepo_DeleteByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	doc := &DocumentRecord{Title: "t", Content: "c", Category: "ルール・マナー"}
	if err := repo.Insert(ctx, doc); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if err := repo.DeleteByID(ctx, doc.ID); err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}

	// Deleting a non-existent id is a no-op, not an error.
	if err := repo.DeleteByID(ctx, 12345); err != nil {
		t.Errorf("DeleteByID(non-existent) error = %v", err)
	}
}

func TestDocumentRepo_DeleteAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		doc := &DocumentRecord{Title: "t", Content: "c", Category: "緊急時・安全"}
		if err := repo.Insert(ctx, doc); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll() error = %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Count() after DeleteAll = %d, want 0", n)
	}
}

func TestDocumentRepo_ReplaceByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	original := &DocumentRecord{Title: "old", Content: "old content", Category: "設備・アメニティ"}
	if err := repo.Insert(ctx, original); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	replacements := []*DocumentRecord{
		{Title: "new (1/2)", Content: "part one", Category: "設備・アメニティ"},
		{Title: "new (2/2)", Content: "part two", Category: "設備・アメニティ"},
	}
	if err := repo.ReplaceByID(ctx, original.ID, replacements); err != nil {
		t.Fatalf("ReplaceByID() error = %v", err)
	}

	if _, err := repo.GetByID(ctx, original.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("original row still present after replace: %v", err)
	}
	for i, doc := range replacements {
		if doc.ID == 0 {
			t.Errorf("replacement %d did not get an id", i)
			continue
		}
		got, err := repo.GetByID(ctx, doc.ID)
		if err != nil {
			t.Errorf("GetByID(replacement %d) error = %v", i, err)
			continue
		}
		if got.Title != doc.Title {
			t.Errorf("replacement %d title = %q, want %q", i, got.Title, doc.Title)
		}
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}

func TestDocumentRepo_Count(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Count() on empty store = %d", n)
	}

	doc := &DocumentRecord{Title: "t", Content: "c", Category: "観光・グルメ"}
	if err := repo.Insert(ctx, doc); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	n, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}
