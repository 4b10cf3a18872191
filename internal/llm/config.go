package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds LLM provider configuration.
type Config struct {
	// Provider selects the backend: "openai", "anthropic", "gemini", "mock".
	Provider string `yaml:"provider"`

	OpenAI    OpenAIConfig    `yaml:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Gemini    GeminiConfig    `yaml:"gemini"`

	Retry   RetryConfig   `yaml:"retry"`
	Breaker BreakerConfig `yaml:"breaker"`

	// Timeout bounds a single judging call, including retries.
	Timeout time.Duration `yaml:"timeout"`
}

// OpenAIConfig holds OpenAI-specific configuration. BaseURL allows
// OpenAI-compatible endpoints (OpenRouter and the like).
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// BreakerConfig configures the circuit breaker wrapped around the provider.
type BreakerConfig struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32 `yaml:"max_requests"`

	// Interval over which failure counts are tallied while closed.
	Interval time.Duration `yaml:"interval"`

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration `yaml:"timeout"`

	// MinRequests and FailureRatio decide when to trip.
	MinRequests  uint32  `yaml:"min_requests"`
	FailureRatio float64 `yaml:"failure_ratio"`
}

// DefaultConfig returns a Config with working defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Breaker: BreakerConfig{
			MaxRequests:  3,
			Interval:     30 * time.Second,
			Timeout:      60 * time.Second,
			MinRequests:  5,
			FailureRatio: 0.5,
		},
		Timeout: 45 * time.Second,
	}
}

// FromEnv overlays environment variables onto c. RECALL_* variables take
// precedence over the generic provider key names.
func (c Config) FromEnv() Config {
	if p := os.Getenv("RECALL_LLM_PROVIDER"); p != "" {
		c.Provider = p
	}

	if k := firstEnv("RECALL_OPENAI_API_KEY", "OPENAI_API_KEY"); k != "" {
		c.OpenAI.APIKey = k
	}
	if m := os.Getenv("RECALL_OPENAI_MODEL"); m != "" {
		c.OpenAI.Model = m
	}
	if u := os.Getenv("RECALL_OPENAI_BASE_URL"); u != "" {
		c.OpenAI.BaseURL = u
	}

	if k := firstEnv("RECALL_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"); k != "" {
		c.Anthropic.APIKey = k
	}
	if m := os.Getenv("RECALL_ANTHROPIC_MODEL"); m != "" {
		c.Anthropic.Model = m
	}

	if k := firstEnv("RECALL_GEMINI_API_KEY", "GEMINI_API_KEY"); k != "" {
		c.Gemini.APIKey = k
	}
	if m := os.Getenv("RECALL_GEMINI_MODEL"); m != "" {
		c.Gemini.Model = m
	}

	return c
}

// Validate checks the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("RECALL_OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("RECALL_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("RECALL_GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
		// No key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
