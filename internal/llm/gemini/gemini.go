package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"ea-sentinel/internal/llm/prompt"
	"ea-sentinel/internal/store"
	"ea-sentinel/internal/trace"
	"ea-sentinel/internal/types"
)

const defaultBase = "https://generativelanguage.googleapis.com/v1beta"

type Commentator struct {
	cfg  *store.Config
	base string
}

func NewCommentator(cfg *store.Config) *Commentator {
	base := defaultBase
	if ep := os.Getenv("GEMINI_API_ENDPOINT"); ep != "" {
		base = ep
	}
	return &Commentator{cfg: cfg, base: base}
}

func (c *Commentator) Comment(ctx context.Context, report types.AnalysisReport) (string, error) {
	ctx, span := trace.StartSpan(ctx, "gemini-comment")
	defer span.End()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", errors.New("GEMINI_API_KEY missing")
	}

	system := c.cfg.LLM.System
	if system == "" {
		system = prompt.DefaultSystem
	}

	body := map[string]any{
		"systemInstruction": map[string]any{
			"parts": []map[string]string{{"text": system}},
		},
		"contents": []map[string]any{
			{"role": "user", "parts": []map[string]string{{"text": prompt.Build(report)}}},
		},
		"generationConfig": map[string]any{
			"temperature":     c.cfg.LLM.Temperature,
			"maxOutputTokens": c.cfg.LLM.MaxTokens,
		},
	}
	bb, _ := json.Marshal(body)

	url := fmt.Sprintf("%s/models/%s:generateContent", c.base, c.cfg.LLM.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(bb))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("gemini http %d", resp.StatusCode)
	}

	var r struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from gemini")
	}

	var out strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}
	return strings.TrimSpace(out.String()), nil
}
