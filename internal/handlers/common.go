// Package handlers implements the HTTP API: chunking, token
// estimation, ingestion, and health checks.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"docchunk/internal/chunker"
)

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(v)
}

// ChunkOptions is the wire form of chunking options. Omitted fields
// fall back to the server defaults.
//
// swagger:model ChunkOptions
type ChunkOptions struct {
	ChunkSize              int      `json:"chunk_size,omitempty"`
	OverlapPercentage      *float64 `json:"overlap_percentage,omitempty"`
	PreserveWordBoundaries *bool    `json:"preserve_word_boundaries,omitempty"`
	IncludeMetadata        *bool    `json:"include_metadata,omitempty"`
	SizeUnit               string   `json:"size_unit,omitempty"`
	TokenMethod            string   `json:"token_method,omitempty"`
	BoundaryWindow         int      `json:"boundary_window,omitempty"`
}

// resolveOptions merges wire options over the server defaults.
func resolveOptions(defaults chunker.Options, wire *ChunkOptions) (chunker.Options, error) {
	opts := defaults
	if wire == nil {
		return opts, nil
	}

	if wire.ChunkSize != 0 {
		opts.ChunkSize = wire.ChunkSize
	}
	if wire.OverlapPercentage != nil {
		opts.OverlapPercentage = *wire.OverlapPercentage
	}
	if wire.PreserveWordBoundaries != nil {
		opts.PreserveWordBoundaries = *wire.PreserveWordBoundaries
	}
	if wire.IncludeMetadata != nil {
		opts.IncludeMetadata = *wire.IncludeMetadata
	}
	if wire.BoundaryWindow != 0 {
		opts.BoundaryWindow = wire.BoundaryWindow
	}

	if wire.SizeUnit != "" {
		unit, err := parseSizeUnit(wire.SizeUnit)
		if err != nil {
			return opts, err
		}
		opts.SizeUnit = unit
	}
	if wire.TokenMethod != "" {
		method, err := parseTokenMethod(wire.TokenMethod)
		if err != nil {
			return opts, err
		}
		opts.TokenMethod = method
	}

	return opts, nil
}

func parseSizeUnit(s string) (chunker.SizeUnit, error) {
	switch s {
	case "characters":
		return chunker.Characters, nil
	case "tokens":
		return chunker.Tokens, nil
	}
	return 0, fmt.Errorf("unknown size unit %q", s)
}

func parseTokenMethod(s string) (chunker.TokenMethod, error) {
	switch s {
	case "simple":
		return chunker.Simple, nil
	case "word_based":
		return chunker.WordBased, nil
	case "advanced":
		return chunker.Advanced, nil
	}
	return 0, fmt.Errorf("unknown token method %q", s)
}
