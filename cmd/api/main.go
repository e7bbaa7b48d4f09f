package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"docchunk/internal/config"
	"docchunk/internal/handlers"
	"docchunk/internal/http"
	"docchunk/internal/ingest"
	"docchunk/internal/llm"
	"docchunk/internal/storage"
	"docchunk/internal/tokenizer"
	"docchunk/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API splits documents into overlapping, size-bounded chunks and
// optionally persists them with vector embeddings for retrieval.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Docchunk API
//   description: |
//     Document chunking API. Splits text or paginated documents into
//     overlapping chunks, estimates token counts, and ingests files
//     into a local index with optional vector embeddings.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	docRepo := storage.NewDocumentRepo(db)
	chunkRepo := storage.NewChunkRepo(db)

	ctx := context.Background()
	chunkDefaults := cfg.ChunkOptions()

	// Exact token counting; the chunker heuristics remain available
	// even when this fails
	counter, err := tokenizer.NewCounter(cfg.TokenizerEncoding)
	if err != nil {
		slog.Warn("Exact token counting unavailable", "error", err)
		counter = nil
	} else {
		slog.Info("Tokenizer ready", "encoding", counter.Encoding())
	}

	// Embedding support is optional; without it ingestion persists
	// chunks to SQLite only
	var (
		embedder      *llm.EmbeddingsClient
		vectorStore   *vectorstore.QdrantStore
		vectorChecker handlers.CollectionChecker
		ingestVectors vectorstore.VectorStore
	)
	if cfg.EmbeddingsEnabled {
		vectorStore, err = vectorstore.NewQdrantStore(cfg.QdrantURL, logger)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}

		// Ensure collection exists with correct vector size
		if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection: %v", err)
		}
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

		// Validate embedding client vector size (fail-fast)
		embedder = llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
		testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
		if err != nil {
			log.Fatalf("Failed to validate embedding client: %v", err)
		}
		if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
			log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbeddings[0]))
		}
		slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

		vectorChecker = vectorStore
		ingestVectors = vectorStore
	}

	var pipelineEmbedder ingest.Embedder
	if embedder != nil {
		pipelineEmbedder = embedder
	}
	pipeline := ingest.NewPipeline(
		docRepo,
		chunkRepo,
		pipelineEmbedder,
		ingestVectors,
		cfg.QdrantCollection,
		chunkDefaults,
	)

	deps := &http.Deps{
		ChunkDefaults: chunkDefaults,
		Counter:       counter,
		Pipeline:      pipeline,
		DB:            db,
		VectorChecker: vectorChecker,
		Collection:    cfg.QdrantCollection,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
