package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfigDefaults(t *testing.T) {
	p := writeConfig(t, "llm:\n  provider: NONE\n")
	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr, got %q", cfg.Server.Addr)
	}
	if cfg.Myfxbook.TimeoutSeconds != 30 {
		t.Errorf("expected default timeout 30, got %d", cfg.Myfxbook.TimeoutSeconds)
	}
	if cfg.Reports.Dir != "reports" {
		t.Errorf("expected default reports dir, got %q", cfg.Reports.Dir)
	}
}

func TestLoadConfigRejectsBadProvider(t *testing.T) {
	p := writeConfig(t, "llm:\n  provider: CLIPPY\n")
	if _, err := LoadConfig(p); err == nil {
		t.Fatal("expected validation error for unknown provider")
	}
}

func TestLoadConfigGeminiModelDefault(t *testing.T) {
	p := writeConfig(t, "llm:\n  provider: GEMINI\n")
	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.Model != "gemini-2.5-flash" {
		t.Errorf("expected gemini default model, got %q", cfg.LLM.Model)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() must validate: %v", err)
	}
}
