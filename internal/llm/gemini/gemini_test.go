package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ea-sentinel/internal/store"
	"ea-sentinel/internal/types"
)

func TestCommentParsesCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("unexpected api key header %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{
					{"text": "Weak edge; "},
					{"text": "reduce size."},
				}}},
			},
		})
	}))
	defer srv.Close()

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_API_ENDPOINT", srv.URL)

	cfg := store.Default()
	cfg.LLM.Provider = "GEMINI"
	cfg.LLM.Model = "gemini-2.5-flash"

	c := NewCommentator(cfg)
	out, err := c.Comment(context.Background(), types.AnalysisReport{TradeCount: 5})
	if err != nil {
		t.Fatal(err)
	}
	if out != "Weak edge; reduce size." {
		t.Errorf("unexpected commentary %q", out)
	}
}

func TestCommentEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_API_ENDPOINT", srv.URL)

	c := NewCommentator(store.Default())
	if _, err := c.Comment(context.Background(), types.AnalysisReport{}); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}
