package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docchunk/internal/chunker"
	"docchunk/internal/handlers"
	"docchunk/internal/ingest"
	"docchunk/internal/tokenizer"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChunkDefaults chunker.Options
	Counter       *tokenizer.Counter // optional, enables exact estimation
	Pipeline      *ingest.Pipeline
	DB            *sql.DB
	VectorChecker handlers.CollectionChecker // optional, nil when embeddings are disabled
	Collection    string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)

	chunkHandler := handlers.NewChunkHandler(deps.ChunkDefaults)
	estimateHandler := handlers.NewEstimateHandler(deps.Counter)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.VectorChecker, deps.Collection)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chunk", chunkHandler)
		r.Method(http.MethodPost, "/estimate", estimateHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
		if deps.Pipeline != nil {
			r.Method(http.MethodPost, "/ingest", handlers.NewIngestHandler(deps.Pipeline))
		}
	})

	return r
}
