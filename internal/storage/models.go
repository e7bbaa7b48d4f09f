package storage

import "time"

// DocumentRecord represents an ingested source document in the database.
type DocumentRecord struct {
	ID         string // UUID
	SourcePath string // Absolute or workspace-relative path of the source file
	Title      string // Extracted title, falls back to the filename
	Hash       string // SHA256 hex string of file content
	PageCount  int
	UpdatedAt  time.Time
}

// ChunkRecord represents one chunk of a document, indexed for vector search.
type ChunkRecord struct {
	ID              string // UUID (same as vector store point ID)
	DocumentID      string // UUID (foreign key to documents.id)
	ChunkIndex      int    // Index within document (starts at 0)
	PageNumber      int    // 0-based page the chunk starts on
	StartIndex      int    // Byte offset in the joined document text
	EndIndex        int
	EstimatedTokens int
	Text            string
}
