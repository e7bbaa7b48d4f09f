// Package ingest orchestrates document ingestion: extract, chunk,
// persist, and optionally embed into a vector store.
package ingest

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks docchunk/internal/ingest Embedder

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"docchunk/internal/chunker"
	"docchunk/internal/contextutil"
	"docchunk/internal/extract"
	"docchunk/internal/storage"
	"docchunk/internal/vectorstore"
)

// Embedder generates embedding vectors for texts.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Result summarizes a single ingested file.
type Result struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	Pages      int    `json:"pages"`
	Chunks     int    `json:"chunks"`
	Skipped    bool   `json:"skipped"` // true when the file hash was unchanged
}

// Pipeline orchestrates ingestion of source files into SQLite and,
// when an embedder and vector store are configured, into Qdrant.
type Pipeline struct {
	docRepo    storage.DocumentStore
	chunkRepo  storage.ChunkStore
	embedder   Embedder
	vectors    vectorstore.VectorStore
	collection string
	extractor  *extract.Extractor
	opts       chunker.Options
	logger     *slog.Logger
}

// NewPipeline creates an ingestion pipeline. embedder and vectors may
// both be nil, in which case chunks are persisted without vectors.
func NewPipeline(
	docRepo storage.DocumentStore,
	chunkRepo storage.ChunkStore,
	embedder Embedder,
	vectors vectorstore.VectorStore,
	collection string,
	opts chunker.Options,
) *Pipeline {
	return &Pipeline{
		docRepo:    docRepo,
		chunkRepo:  chunkRepo,
		embedder:   embedder,
		vectors:    vectors,
		collection: collection,
		extractor:  extract.New(),
		opts:       opts,
		logger:     slog.Default(),
	}
}

func (p *Pipeline) getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerFromContextOr(ctx, p.logger)
}

// embeddingEnabled reports whether vectors are generated and stored.
func (p *Pipeline) embeddingEnabled() bool {
	return p.embedder != nil && p.vectors != nil
}

// IngestFile ingests a single file. It skips files whose content hash
// is unchanged, otherwise extracts pages, chunks them, and replaces the
// stored chunks (and vectors, when enabled) for the document.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (*Result, error) {
	logger := p.getLogger(ctx)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	hash := sha256.Sum256(content)
	hashHex := fmt.Sprintf("%x", hash)

	existing, err := p.docRepo.GetBySourcePath(ctx, path)
	if err != nil && err != storage.ErrNotFound {
		return nil, fmt.Errorf("failed to check existing document: %w", err)
	}

	if existing != nil && existing.Hash == hashHex {
		logger.DebugContext(ctx, "skipping unchanged file", "path", path, "hash", hashHex)
		return &Result{
			DocumentID: existing.ID,
			Title:      existing.Title,
			Pages:      existing.PageCount,
			Skipped:    true,
		}, nil
	}

	doc, err := p.extractor.FromBytes(content, path)
	if err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}

	if len(doc.Pages) == 0 {
		logger.WarnContext(ctx, "no extractable content", "path", path)
		return &Result{Title: doc.Title}, nil
	}

	chunks, err := chunker.ChunkDocument(doc.Pages, p.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to chunk document: %w", err)
	}

	var docID string
	if existing != nil {
		docID = existing.ID
	} else {
		docID = uuid.New().String()
	}

	record := &storage.DocumentRecord{
		ID:         docID,
		SourcePath: path,
		Title:      doc.Title,
		Hash:       hashHex,
		PageCount:  len(doc.Pages),
	}
	if err := p.docRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to upsert document: %w", err)
	}

	// Replace old chunks before inserting the new set
	if existing != nil {
		oldChunkIDs, err := p.chunkRepo.ListIDsByDocument(ctx, docID)
		if err != nil {
			return nil, fmt.Errorf("failed to list old chunk IDs: %w", err)
		}

		if len(oldChunkIDs) > 0 {
			if p.embeddingEnabled() {
				if err := p.vectors.Delete(ctx, p.collection, oldChunkIDs); err != nil {
					logger.WarnContext(ctx, "failed to delete old vectors", "error", err, "count", len(oldChunkIDs))
				}
			}
			if err := p.chunkRepo.DeleteByDocument(ctx, docID); err != nil {
				return nil, fmt.Errorf("failed to delete old chunks: %w", err)
			}
		}
	}

	chunkRecords := make([]*storage.ChunkRecord, len(chunks))
	for i, chunk := range chunks {
		chunkRecords[i] = &storage.ChunkRecord{
			ID:              uuid.New().String(),
			DocumentID:      docID,
			ChunkIndex:      i,
			PageNumber:      chunk.PageNumber,
			StartIndex:      chunk.StartIndex,
			EndIndex:        chunk.EndIndex,
			EstimatedTokens: chunk.EstimatedTokens,
			Text:            chunk.Content,
		}
	}

	for _, chunkRecord := range chunkRecords {
		if err := p.chunkRepo.Insert(ctx, chunkRecord); err != nil {
			return nil, fmt.Errorf("failed to insert chunk: %w", err)
		}
	}

	if p.embeddingEnabled() {
		if err := p.embedChunks(ctx, doc.Title, chunkRecords); err != nil {
			return nil, err
		}
	}

	logger.InfoContext(ctx, "ingested document",
		"path", path, "title", doc.Title, "pages", len(doc.Pages), "chunks", len(chunks))

	return &Result{
		DocumentID: docID,
		Title:      doc.Title,
		Pages:      len(doc.Pages),
		Chunks:     len(chunks),
	}, nil
}

// embedChunks generates vectors for the chunk records and upserts them
// into the vector store.
func (p *Pipeline) embedChunks(ctx context.Context, title string, records []*storage.ChunkRecord) error {
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(records) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(records), len(embeddings))
	}

	points := make([]vectorstore.Point, len(records))
	for i, r := range records {
		points[i] = vectorstore.Point{
			ID:  r.ID,
			Vec: embeddings[i],
			Meta: map[string]any{
				"document_id": r.DocumentID,
				"title":       title,
				"chunk_index": r.ChunkIndex,
				"page_number": r.PageNumber,
			},
		}
	}

	if err := p.vectors.Upsert(ctx, p.collection, points); err != nil {
		return fmt.Errorf("failed to upsert vectors: %w", err)
	}
	return nil
}

// ingestible reports whether the pipeline handles files with this name.
func ingestible(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".txt":
		return true
	}
	return false
}

// IngestDir walks root and ingests every supported file. Errors for
// individual files are logged but don't stop the walk.
func (p *Pipeline) IngestDir(ctx context.Context, root string) error {
	logger := p.getLogger(ctx)

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if ingestible(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", root, err)
	}

	logger.InfoContext(ctx, "starting ingestion", "root", root, "total_files", len(paths))

	var successCount, errorCount int
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, err := p.IngestFile(ctx, path); err != nil {
			errorCount++
			logger.ErrorContext(ctx, "failed to ingest file", "path", path, "error", err)
			continue
		}
		successCount++
	}

	logger.InfoContext(ctx, "ingestion completed",
		"total_files", len(paths), "success", successCount, "errors", errorCount)

	if errorCount > 0 {
		return fmt.Errorf("ingestion completed with %d errors", errorCount)
	}
	return nil
}
