package handlers

import (
	"encoding/json"
	"net/http"

	"docchunk/internal/chunker"
	"docchunk/internal/contextutil"
	"docchunk/internal/tokenizer"
)

// EstimateHandler handles HTTP requests for token estimation. The
// tokenizer counter is optional; without it the "exact" method is
// rejected.
type EstimateHandler struct {
	counter *tokenizer.Counter
}

// NewEstimateHandler creates a new EstimateHandler. counter may be nil.
func NewEstimateHandler(counter *tokenizer.Counter) *EstimateHandler {
	return &EstimateHandler{counter: counter}
}

// EstimateRequest represents the HTTP request payload for estimation.
//
// swagger:model EstimateRequest
type EstimateRequest struct {
	Text string `json:"text"`

	// One of "simple", "word_based", "advanced" or "exact".
	// Defaults to "simple".
	Method string `json:"method,omitempty"`
}

// EstimateResponse represents the HTTP response payload for estimation.
//
// swagger:model EstimateResponse
type EstimateResponse struct {
	Tokens     int    `json:"tokens"`
	Method     string `json:"method"`
	Characters int    `json:"characters"`
}

// ServeHTTP handles HTTP requests for token estimation.
func (h *EstimateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	method := req.Method
	if method == "" {
		method = "simple"
	}

	var tokens int
	if method == "exact" {
		if h.counter == nil {
			writeError(w, http.StatusBadRequest, "Exact counting is not configured")
			return
		}
		count, err := h.counter.Count(req.Text)
		if err != nil {
			logger.ErrorContext(ctx, "exact token count failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Token counting failed")
			return
		}
		tokens = count
	} else {
		parsed, err := parseTokenMethod(method)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		tokens = chunker.EstimateTokenCount(req.Text, parsed)
	}

	if err := writeJSON(w, http.StatusOK, EstimateResponse{
		Tokens:     tokens,
		Method:     method,
		Characters: len(req.Text),
	}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
