package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ea-sentinel/internal/store"
	"ea-sentinel/internal/types"
)

func TestCommentParsesChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["model"] != "gpt-4o-mini" {
			t.Errorf("unexpected model %v", body["model"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "  Solid edge, drawdown acceptable.  "}},
			},
		})
	}))
	defer srv.Close()

	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_API_ENDPOINT", srv.URL)

	cfg := store.Default()
	cfg.LLM.Provider = "OPENAI"

	c := NewCommentator(cfg)
	out, err := c.Comment(context.Background(), types.AnalysisReport{TradeCount: 3})
	if err != nil {
		t.Fatal(err)
	}
	if out != "Solid edge, drawdown acceptable." {
		t.Errorf("unexpected commentary %q", out)
	}
}

func TestCommentMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	c := NewCommentator(store.Default())
	if _, err := c.Comment(context.Background(), types.AnalysisReport{}); err == nil {
		t.Fatal("expected error without API key")
	}
}
