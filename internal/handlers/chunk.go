package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"docchunk/internal/chunker"
	"docchunk/internal/contextutil"
)

// ChunkHandler handles HTTP requests for text chunking.
type ChunkHandler struct {
	defaults chunker.Options
}

// NewChunkHandler creates a new ChunkHandler with the given default
// options.
func NewChunkHandler(defaults chunker.Options) *ChunkHandler {
	return &ChunkHandler{defaults: defaults}
}

// ChunkRequest represents the HTTP request payload for chunking.
// Exactly one of text or pages must be set.
//
// swagger:model ChunkRequest
type ChunkRequest struct {
	// Single text to chunk
	Text string `json:"text,omitempty"`

	// Pre-paginated document; chunks carry the page their start falls in
	Pages []string `json:"pages,omitempty"`

	// Per-request option overrides
	Options *ChunkOptions `json:"options,omitempty"`
}

// ChunkResponse represents the HTTP response payload for chunking.
//
// swagger:model ChunkResponse
type ChunkResponse struct {
	Chunks []chunker.TextChunk `json:"chunks"`
	Count  int                 `json:"count"`

	// Total size of the input in bytes, pages counted without separators
	TotalCharacters int `json:"total_characters"`
}

// ServeHTTP handles HTTP requests for text chunking.
//
// swagger:route POST /api/chunk chunkText
//
// # Chunk text or a paginated document
//
// Splits the input into overlapping, size-bounded chunks. Validation
// failures return 400; processing failures return 500.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Chunks in document order
//	  schema:
//	    "$ref": "#/definitions/ChunkResponse"
//	'400':
//	  description: Invalid request or options
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ChunkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Text == "" && len(req.Pages) == 0 {
		writeError(w, http.StatusBadRequest, "Either text or pages is required")
		return
	}
	if req.Text != "" && len(req.Pages) > 0 {
		writeError(w, http.StatusBadRequest, "text and pages are mutually exclusive")
		return
	}

	opts, err := resolveOptions(h.defaults, req.Options)
	if err != nil {
		logger.WarnContext(ctx, "invalid options", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var chunks []chunker.TextChunk
	total := 0
	if req.Text != "" {
		chunks, err = chunker.ChunkText(req.Text, opts)
		total = len(req.Text)
	} else {
		chunks, err = chunker.ChunkDocument(req.Pages, opts)
		for _, page := range req.Pages {
			total += len(page)
		}
	}
	if err != nil {
		if errors.Is(err, chunker.ErrInvalidParameter) {
			logger.WarnContext(ctx, "invalid chunking parameters", "error", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.ErrorContext(ctx, "chunking failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Chunking failed")
		return
	}

	logger.InfoContext(ctx, "chunked input", "chunks", len(chunks), "total_characters", total)

	if err := writeJSON(w, http.StatusOK, ChunkResponse{
		Chunks:          chunks,
		Count:           len(chunks),
		TotalCharacters: total,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
