package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/synapse-net/go-backend/pkg/e"
)

func TestParseMinSimilarity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "empty defaults to zero", input: "", want: 0},
		{name: "integer percent", input: "65", want: 65},
		{name: "two decimal places", input: "65.25", want: 65.25},
		{name: "upper bound", input: "100", want: 100},
		{name: "negative rejected", input: "-1", wantErr: true},
		{name: "over hundred rejected", input: "100.01", wantErr: true},
		{name: "three decimal places rejected", input: "65.125", wantErr: true},
		{name: "garbage rejected", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMinSimilarity(tt.input)
			if tt.wantErr {
				if !errors.Is(err, e.ErrInvalidSimilarity) {
					t.Fatalf("parseMinSimilarity(%q) err = %v, want ErrInvalidSimilarity", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseMinSimilarity(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("parseMinSimilarity(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "missing identity", err: e.ErrMissingIdentity, code: http.StatusUnauthorized},
		{name: "profile not found", err: e.ErrProfileNotFound, code: http.StatusNotFound},
		{name: "post not found", err: e.ErrPostNotFound, code: http.StatusNotFound},
		{name: "already connected", err: e.ErrAlreadyConnected, code: http.StatusConflict},
		{name: "embedding unavailable", err: e.ErrEmbeddingUnavailable, code: http.StatusServiceUnavailable},
		{name: "self feedback", err: e.ErrSelfFeedback, code: http.StatusBadRequest},
		{name: "goal vector missing", err: e.ErrGoalVectorMissing, code: http.StatusBadRequest},
		{name: "wrapped sentinel keeps status", err: e.Wrap("SomeUseCase.Op", e.ErrProfileNotFound), code: http.StatusNotFound},
		{name: "unknown error is internal", err: errors.New("boom"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := ToHTTPResponse(tt.err)
			if code != tt.code {
				t.Fatalf("ToHTTPResponse(%v) code = %d, want %d", tt.err, code, tt.code)
			}
			if msg == "" {
				t.Fatalf("ToHTTPResponse(%v) returned empty message", tt.err)
			}
		})
	}
}
