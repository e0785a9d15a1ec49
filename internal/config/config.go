// Package config loads app-level settings from the environment.
// Provider credentials for the text oracles live in internal/llm, which
// has its own discovery chain; this package covers everything else.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds environment-driven settings.
type Config struct {
	// DBPath overrides the default SQLite location.
	DBPath string `env:"LINGO_DB"`

	// Learner identifies whose progression record the CLI operates on.
	Learner string `env:"LINGO_LEARNER" envDefault:"default"`

	// Azure speech service credentials for pronunciation assessment.
	SpeechKey      string `env:"LINGO_SPEECH_KEY"`
	SpeechRegion   string `env:"LINGO_SPEECH_REGION"`
	SpeechLanguage string `env:"LINGO_SPEECH_LANGUAGE" envDefault:"en-US"`
}

// FromEnv parses the configuration from environment variables.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// SpeechConfigured reports whether the audio oracle can be constructed.
func (c *Config) SpeechConfigured() bool {
	return c.SpeechKey != "" && c.SpeechRegion != ""
}
