package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docchunk/internal/config"
	"docchunk/internal/ingest"
	"docchunk/internal/llm"
	"docchunk/internal/storage"
	"docchunk/internal/vectorstore"
)

func newIngestCommand() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "ingest <path>",
		Short: "Ingest a file or directory into the local document index",
		Long: `Chunks the given file and stores document and chunk records in the
configured SQLite database. With embeddings enabled in the environment,
chunks are also embedded and written to Qdrant. Re-ingesting an
unchanged file is a no-op.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			db, err := storage.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() {
				_ = db.Close()
			}()
			if err := storage.Migrate(db); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			var (
				embedder ingest.Embedder
				vectors  vectorstore.VectorStore
			)
			if cfg.EmbeddingsEnabled {
				store, err := vectorstore.NewQdrantStore(cfg.QdrantURL, nil)
				if err != nil {
					return fmt.Errorf("failed to create Qdrant client: %w", err)
				}
				if err := store.EnsureCollection(cmd.Context(), cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
					return fmt.Errorf("failed to ensure Qdrant collection: %w", err)
				}
				embedder = llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
				vectors = store
			}

			pipeline := ingest.NewPipeline(
				storage.NewDocumentRepo(db),
				storage.NewChunkRepo(db),
				embedder,
				vectors,
				cfg.QdrantCollection,
				cfg.ChunkOptions(),
			)

			info, err := os.Stat(args[0])
			if err != nil {
				return fmt.Errorf("could not stat %s: %w", args[0], err)
			}

			if info.IsDir() {
				if !recursive {
					return fmt.Errorf("%s is a directory, pass --recursive to ingest it", args[0])
				}
				if err := pipeline.IngestDir(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("ingestion failed: %w", err)
				}
				color.Green("ingested directory %s", args[0])
				return nil
			}

			result, err := pipeline.IngestFile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("ingestion failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			if result.Skipped {
				color.Yellow("skipped %s (unchanged)", args[0])
				return nil
			}
			color.Green("ingested %s: %q, %d pages, %d chunks", args[0], result.Title, result.Pages, result.Chunks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&recursive, "recursive", false, "Ingest all supported files under a directory")

	return cmd
}
