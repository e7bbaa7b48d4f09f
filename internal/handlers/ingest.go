package handlers

import (
	"encoding/json"
	"net/http"

	"docchunk/internal/contextutil"
	"docchunk/internal/ingest"
)

// IngestHandler handles HTTP requests to ingest files from the server's
// filesystem.
type IngestHandler struct {
	pipeline *ingest.Pipeline
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(pipeline *ingest.Pipeline) *IngestHandler {
	return &IngestHandler{pipeline: pipeline}
}

// IngestRequest represents the HTTP request payload for ingestion.
// Exactly one of path or dir must be set.
//
// swagger:model IngestRequest
type IngestRequest struct {
	// Path of a single file to ingest
	Path string `json:"path,omitempty"`

	// Directory to walk and ingest recursively
	Dir string `json:"dir,omitempty"`
}

// IngestResponse represents the HTTP response payload for a single-file
// ingestion.
//
// swagger:model IngestResponse
type IngestResponse struct {
	DocumentID string `json:"document_id,omitempty"`
	Title      string `json:"title"`
	Pages      int    `json:"pages"`
	Chunks     int    `json:"chunks"`
	Skipped    bool   `json:"skipped,omitempty"`
}

// ServeHTTP handles HTTP requests for ingestion.
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch {
	case req.Path == "" && req.Dir == "":
		writeError(w, http.StatusBadRequest, "Either path or dir is required")
		return
	case req.Path != "" && req.Dir != "":
		writeError(w, http.StatusBadRequest, "path and dir are mutually exclusive")
		return
	}

	if req.Dir != "" {
		if err := h.pipeline.IngestDir(ctx, req.Dir); err != nil {
			logger.ErrorContext(ctx, "directory ingestion failed", "dir", req.Dir, "error", err)
			writeError(w, http.StatusInternalServerError, "Ingestion failed")
			return
		}
		if err := writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
			logger.ErrorContext(ctx, "failed to encode response", "error", err)
		}
		return
	}

	result, err := h.pipeline.IngestFile(ctx, req.Path)
	if err != nil {
		logger.ErrorContext(ctx, "file ingestion failed", "path", req.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Ingestion failed")
		return
	}

	if err := writeJSON(w, http.StatusOK, IngestResponse{
		DocumentID: result.DocumentID,
		Title:      result.Title,
		Pages:      result.Pages,
		Chunks:     result.Chunks,
		Skipped:    result.Skipped,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
