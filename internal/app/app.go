// Package app wires the store, the text and audio oracles, and the
// domain services into one runnable unit for the CLI.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/assess"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/config"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/examgate"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/lessons"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/llm"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/placement"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/speech"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/store"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/vocabselect"
)

// ErrNoProvider is returned by accessors that need the text oracle when
// no provider is configured.
var ErrNoProvider = errors.New("LLM provider not configured (set LINGO_LLM_PROVIDER or an API key)")

// ErrNoRecognizer is returned by accessors that need the audio oracle
// when the speech service is not configured.
var ErrNoRecognizer = errors.New("speech service not configured (set LINGO_SPEECH_KEY and LINGO_SPEECH_REGION)")

// App holds the wired services for one CLI invocation.
type App struct {
	Config   *config.Config
	Store    *store.Store
	Progress *progression.Service

	provider   llm.Provider
	recognizer speech.Recognizer
}

// New opens the store at dbPath and wires the services. Oracles are
// optional: commands that need one fail at use, not at startup, so the
// offline commands (status, vocab, llm) always work.
func New(ctx context.Context, dbPath string) (*App, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a := &App{
		Config:   cfg,
		Store:    st,
		Progress: progression.NewService(st.ProgressRepo()),
	}

	llmCfg := llm.ConfigFromEnv()
	if llmCfg.Validate() == nil {
		provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo())
		if err != nil {
			st.Close()
			return nil, err
		}
		a.provider = provider
	} else if discovered, ok := llm.DiscoverConfig(); ok {
		provider, err := llm.NewProvider(ctx, discovered, st.EventRepo())
		if err != nil {
			st.Close()
			return nil, err
		}
		a.provider = provider
	}

	if cfg.SpeechConfigured() {
		rec, err := speech.NewAzureRecognizer(speech.Config{
			Key:      cfg.SpeechKey,
			Region:   cfg.SpeechRegion,
			Language: cfg.SpeechLanguage,
		})
		if err != nil {
			st.Close()
			return nil, err
		}
		a.recognizer = rec
	}

	return a, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// Provider returns the configured text oracle.
func (a *App) Provider() (llm.Provider, error) {
	if a.provider == nil {
		return nil, ErrNoProvider
	}
	return a.provider, nil
}

// Recognizer returns the configured audio oracle.
func (a *App) Recognizer() (speech.Recognizer, error) {
	if a.recognizer == nil {
		return nil, ErrNoRecognizer
	}
	return a.recognizer, nil
}

// Lessons builds the lesson generation service.
func (a *App) Lessons() (*lessons.Service, error) {
	provider, err := a.Provider()
	if err != nil {
		return nil, err
	}
	selector := vocabselect.NewSelector(a.Store.VocabRepo())
	return lessons.NewService(provider, selector, lessons.DefaultConfig()), nil
}

// Assess builds the practice grading service. The recognizer may be nil
// when only text skills are graded.
func (a *App) Assess() (*assess.Service, error) {
	provider, err := a.Provider()
	if err != nil {
		return nil, err
	}
	return assess.NewService(provider, a.recognizer, a.Progress, assess.DefaultConfig()), nil
}

// ExamGate builds the advancement exam service.
func (a *App) ExamGate() (*examgate.Service, error) {
	provider, err := a.Provider()
	if err != nil {
		return nil, err
	}
	return examgate.NewService(provider, a.recognizer, a.Progress, examgate.DefaultConfig()), nil
}

// EligibilityGate builds an exam gate for eligibility checks only. It
// needs no oracles, so it works offline.
func (a *App) EligibilityGate() *examgate.Service {
	return examgate.NewService(a.provider, a.recognizer, a.Progress, examgate.DefaultConfig())
}

// Placement builds the placement test service.
func (a *App) Placement() (*placement.Service, error) {
	provider, err := a.Provider()
	if err != nil {
		return nil, err
	}
	return placement.NewService(provider, a.recognizer, a.Store.ProgressRepo(), placement.DefaultConfig()), nil
}
