package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all LLM provider configuration. Env tags follow the
// LINGO_ prefix used across the app; unset variables leave the defaults
// from DefaultConfig in place.
type Config struct {
	// Provider selects the backend: "anthropic", "openai", "gemini",
	// "openrouter", or "mock".
	Provider string `env:"LINGO_LLM_PROVIDER"`

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration `env:"LINGO_LLM_TIMEOUT"`
}

// AnthropicConfig holds Anthropic credentials and model choice.
type AnthropicConfig struct {
	APIKey string `env:"LINGO_ANTHROPIC_API_KEY"`
	Model  string `env:"LINGO_ANTHROPIC_MODEL"`
}

// OpenAIConfig holds OpenAI credentials and model choice. BaseURL
// points the client at OpenRouter or any compatible API.
type OpenAIConfig struct {
	APIKey  string `env:"LINGO_OPENAI_API_KEY"`
	Model   string `env:"LINGO_OPENAI_MODEL"`
	BaseURL string `env:"LINGO_OPENAI_BASE_URL"`
}

// GeminiConfig holds Gemini credentials and model choice.
type GeminiConfig struct {
	APIKey string `env:"LINGO_GEMINI_API_KEY"`
	Model  string `env:"LINGO_GEMINI_MODEL"`
}

// OpenRouterConfig holds OpenRouter credentials and model choice.
type OpenRouterConfig struct {
	APIKey  string `env:"LINGO_OPENROUTER_API_KEY"`
	Model   string `env:"LINGO_OPENROUTER_MODEL"`
	BaseURL string `env:"LINGO_OPENROUTER_BASE_URL"`
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the baseline configuration: Anthropic with the
// cheap model, three attempts with exponential backoff.
func DefaultConfig() Config {
	return Config{
		Provider: "anthropic",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv layers LINGO_* environment variables over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		// Malformed values (e.g. a bad duration) fall back to defaults.
		return DefaultConfig()
	}
	return cfg
}

// DiscoverConfig probes the conventional provider key variables
// (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY)
// and returns a Config for the first one found. This lets the CLI work
// without any LINGO_ setup when a key is already in the environment.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("LINGO_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("LINGO_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("LINGO_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("LINGO_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
