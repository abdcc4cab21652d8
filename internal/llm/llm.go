// Package llm turns analysis reports into qualitative commentary via an
// external generative model. The analytics core guarantees field correctness
// only; everything here is presentation.
package llm

import (
	"ea-sentinel/internal/interfaces"
	"ea-sentinel/internal/llm/gemini"
	"ea-sentinel/internal/llm/noop"
	"ea-sentinel/internal/llm/openai"
	"ea-sentinel/internal/store"
)

// NewCommentator selects a provider from config.
func NewCommentator(cfg *store.Config) interfaces.Commentator {
	switch cfg.LLM.Provider {
	case "OPENAI":
		return openai.NewCommentator(cfg)
	case "GEMINI":
		return gemini.NewCommentator(cfg)
	default:
		return noop.NewCommentator()
	}
}
