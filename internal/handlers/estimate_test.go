package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEstimateHandler_Methods(t *testing.T) {
	handler := NewEstimateHandler(nil)

	tests := []struct {
		name       string
		body       EstimateRequest
		wantTokens int
		wantMethod string
	}{
		{
			name:       "simple by default",
			body:       EstimateRequest{Text: "Hello, world! This is a test."},
			wantTokens: 8,
			wantMethod: "simple",
		},
		{
			name:       "word based",
			body:       EstimateRequest{Text: "one two three", Method: "word_based"},
			wantTokens: 4,
			wantMethod: "word_based",
		},
		{
			name:       "advanced",
			body:       EstimateRequest{Text: "wonderful", Method: "advanced"},
			wantTokens: 2,
			wantMethod: "advanced",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, handler, "/api/estimate", tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
			}

			var resp EstimateResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Tokens != tt.wantTokens {
				t.Errorf("tokens = %d, want %d", resp.Tokens, tt.wantTokens)
			}
			if resp.Method != tt.wantMethod {
				t.Errorf("method = %q, want %q", resp.Method, tt.wantMethod)
			}
			if resp.Characters != len(tt.body.Text) {
				t.Errorf("characters = %d, want %d", resp.Characters, len(tt.body.Text))
			}
		})
	}
}

func TestEstimateHandler_BadRequests(t *testing.T) {
	handler := NewEstimateHandler(nil)

	tests := []struct {
		name string
		body EstimateRequest
	}{
		{
			name: "empty text",
			body: EstimateRequest{Method: "simple"},
		},
		{
			name: "unknown method",
			body: EstimateRequest{Text: "abc", Method: "magic"},
		},
		{
			name: "exact without a tokenizer",
			body: EstimateRequest{Text: "abc", Method: "exact"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, handler, "/api/estimate", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
			}
		})
	}
}

func TestEstimateHandler_MethodNotAllowed(t *testing.T) {
	handler := NewEstimateHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/estimate", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}
