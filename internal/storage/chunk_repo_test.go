package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func newChunkTestDB(t *testing.T) (*sql.DB, *ChunkRepo, *DocumentRecord) {
	t.Helper()

	db, err := New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	doc := &DocumentRecord{SourcePath: "/docs/test.md", Title: "Test", Hash: "hash", PageCount: 1}
	if err := NewDocumentRepo(db).Upsert(context.Background(), doc); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	return db, NewChunkRepo(db), doc
}

func TestChunkRepo_Insert(t *testing.T) {
	_, repo, doc := newChunkTestDB(t)

	tests := []struct {
		name    string
		chunk   *ChunkRecord
		wantErr bool
	}{
		{
			name: "valid chunk",
			chunk: &ChunkRecord{
				ID:              "chunk-1",
				DocumentID:      doc.ID,
				ChunkIndex:      0,
				PageNumber:      0,
				StartIndex:      0,
				EndIndex:        10,
				EstimatedTokens: 3,
				Text:            "Chunk text",
			},
			wantErr: false,
		},
		{
			name: "chunk with empty text",
			chunk: &ChunkRecord{
				ID:         "chunk-2",
				DocumentID: doc.ID,
				ChunkIndex: 1,
				StartIndex: 10,
				EndIndex:   10,
				Text:       "",
			},
			wantErr: false, // Empty text is allowed
		},
		{
			name: "duplicate ID",
			chunk: &ChunkRecord{
				ID:         "chunk-1",
				DocumentID: doc.ID,
				ChunkIndex: 2,
				StartIndex: 0,
				EndIndex:   5,
				Text:       "dup",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Insert(context.Background(), tt.chunk)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Insert() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("Insert() unexpected error: %v", err)
			}
		})
	}
}

func TestChunkRepo_DeleteByDocument(t *testing.T) {
	_, repo, doc := newChunkTestDB(t)
	ctx := context.Background()

	chunks := []*ChunkRecord{
		{ID: "chunk-1", DocumentID: doc.ID, ChunkIndex: 0, StartIndex: 0, EndIndex: 6, Text: "Text 1"},
		{ID: "chunk-2", DocumentID: doc.ID, ChunkIndex: 1, StartIndex: 6, EndIndex: 12, Text: "Text 2"},
		{ID: "chunk-3", DocumentID: doc.ID, ChunkIndex: 2, StartIndex: 12, EndIndex: 18, Text: "Text 3"},
	}
	for _, chunk := range chunks {
		if err := repo.Insert(ctx, chunk); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	if err := repo.DeleteByDocument(ctx, doc.ID); err != nil {
		t.Fatalf("DeleteByDocument() error = %v", err)
	}

	ids, err := repo.ListIDsByDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("ListIDsByDocument() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("DeleteByDocument() should delete all chunks, got %d remaining", len(ids))
	}
}

func TestChunkRepo_DeleteByDocument_NonExistent(t *testing.T) {
	_, repo, _ := newChunkTestDB(t)

	if err := repo.DeleteByDocument(context.Background(), "non-existent-id"); err != nil {
		t.Errorf("DeleteByDocument() with non-existent document should not error, got: %v", err)
	}
}

func TestChunkRepo_ListIDsByDocument_OrderedByIndex(t *testing.T) {
	_, repo, doc := newChunkTestDB(t)
	ctx := context.Background()

	// Insert chunks in non-sequential order
	chunks := []*ChunkRecord{
		{ID: "chunk-3", DocumentID: doc.ID, ChunkIndex: 2, StartIndex: 12, EndIndex: 18, Text: "Text 3"},
		{ID: "chunk-1", DocumentID: doc.ID, ChunkIndex: 0, StartIndex: 0, EndIndex: 6, Text: "Text 1"},
		{ID: "chunk-2", DocumentID: doc.ID, ChunkIndex: 1, StartIndex: 6, EndIndex: 12, Text: "Text 2"},
	}
	for _, chunk := range chunks {
		if err := repo.Insert(ctx, chunk); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	ids, err := repo.ListIDsByDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("ListIDsByDocument() error = %v", err)
	}

	expected := []string{"chunk-1", "chunk-2", "chunk-3"}
	if len(ids) != len(expected) {
		t.Fatalf("ListIDsByDocument() returned %d IDs, want %d", len(ids), len(expected))
	}
	for i, id := range ids {
		if id != expected[i] {
			t.Errorf("ListIDsByDocument() ID[%d] = %v, want %v", i, id, expected[i])
		}
	}
}

func TestChunkRepo_ListByDocument(t *testing.T) {
	_, repo, doc := newChunkTestDB(t)
	ctx := context.Background()

	want := &ChunkRecord{
		ID:              "chunk-1",
		DocumentID:      doc.ID,
		ChunkIndex:      0,
		PageNumber:      2,
		StartIndex:      40,
		EndIndex:        52,
		EstimatedTokens: 4,
		Text:            "Chunk text",
	}
	if err := repo.Insert(ctx, want); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := repo.ListByDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("ListByDocument() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListByDocument() returned %d chunks, want 1", len(got))
	}
	if *got[0] != *want {
		t.Errorf("ListByDocument()[0] = %+v, want %+v", got[0], want)
	}
}

func TestChunkRepo_GetByID(t *testing.T) {
	_, repo, doc := newChunkTestDB(t)
	ctx := context.Background()

	chunk := &ChunkRecord{
		ID:         "chunk-1",
		DocumentID: doc.ID,
		ChunkIndex: 0,
		StartIndex: 0,
		EndIndex:   10,
		Text:       "Chunk text",
	}
	if err := repo.Insert(ctx, chunk); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "chunk-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Text != "Chunk text" {
		t.Errorf("GetByID() Text = %q", got.Text)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}
