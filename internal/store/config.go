package store

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Myfxbook struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"myfxbook"`
	LLM struct {
		Provider    string  `yaml:"provider"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		System      string  `yaml:"system"`
	} `yaml:"llm"`
	Reports struct {
		Dir           string `yaml:"dir"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"reports"`
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "OPENAI", "GEMINI", "NONE":
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENAI', 'GEMINI', or 'NONE'", c.LLM.Provider)
	}
	if c.Myfxbook.TimeoutSeconds <= 0 {
		return fmt.Errorf("myfxbook.timeout_seconds must be positive, got %d", c.Myfxbook.TimeoutSeconds)
	}
	if c.Reports.RetentionDays < 0 {
		return fmt.Errorf("reports.retention_days cannot be negative, got %d", c.Reports.RetentionDays)
	}
	return nil
}

func (c *Config) ProxyTimeout() time.Duration {
	return time.Duration(c.Myfxbook.TimeoutSeconds) * time.Second
}

// Default returns a usable configuration for when no config file exists.
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Myfxbook.BaseURL == "" {
		c.Myfxbook.BaseURL = "https://www.myfxbook.com/api"
	}
	if c.Myfxbook.TimeoutSeconds == 0 {
		c.Myfxbook.TimeoutSeconds = 30
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "NONE"
	}
	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case "GEMINI":
			c.LLM.Model = "gemini-2.5-flash"
		default:
			c.LLM.Model = "gpt-4o-mini"
		}
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 800
	}
	if c.Reports.Dir == "" {
		c.Reports.Dir = "reports"
	}
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
