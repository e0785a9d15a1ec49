// Package lessons generates practice activities: it anchors each lesson
// on a level-appropriate topic, selects target vocabulary through the
// selection cascade, and asks the text oracle for skill-specific content.
package lessons

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/llm"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/vocabselect"
)

// WordSelector supplies target vocabulary for a level and topic pair.
// Implemented by vocabselect.Selector.
type WordSelector interface {
	Select(ctx context.Context, level progression.Level, primaryTopic, secondaryTopic string) ([]vocabselect.Word, error)
}

// Config holds lesson generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for lesson generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.9,
	}
}

// Service generates lessons.
type Service struct {
	provider llm.Provider
	words    WordSelector
	cfg      Config
	rng      *rand.Rand
}

// NewService creates a lesson generation service.
func NewService(provider llm.Provider, words WordSelector, cfg Config) *Service {
	return &Service{
		provider: provider,
		words:    words,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand replaces the topic sampling source. Test hook.
func (s *Service) WithRand(rng *rand.Rand) *Service {
	s.rng = rng
	return s
}

// Generate produces a lesson for one skill at one level. When the
// vocabulary cascade finds no usable words it returns
// vocabselect.ErrNoContent; content at another level is never
// substituted.
func (s *Service) Generate(ctx context.Context, skill progression.Skill, level progression.Level) (*Lesson, error) {
	primary, secondary := selectTopics(s.rng, level)

	words, err := s.words.Select(ctx, level, primary, secondary)
	if err != nil {
		return nil, err
	}

	lesson := &Lesson{
		Skill:          skill,
		Level:          level,
		PrimaryTopic:   primary,
		SecondaryTopic: secondary,
		TargetWords:    words,
	}

	ctx = llm.WithPurpose(ctx, "lesson-"+string(skill))

	var (
		system  string
		userMsg string
		schema  *llm.Schema
		payload any
	)
	switch skill {
	case progression.SkillReading:
		system = readingSystemPrompt
		userMsg = buildReadingUserMessage(level, primary, secondary, words)
		schema = ReadingLessonSchema
		lesson.Reading = &ReadingLesson{}
		payload = lesson.Reading
	case progression.SkillListening:
		system = listeningSystemPrompt
		userMsg = buildListeningUserMessage(level, primary, secondary, words)
		schema = ListeningLessonSchema
		lesson.Listening = &ListeningLesson{}
		payload = lesson.Listening
	case progression.SkillWriting:
		system = writingSystemPrompt
		userMsg = buildWritingUserMessage(level, primary, secondary, words)
		schema = WritingTaskSchema
		lesson.Writing = &WritingLesson{}
		payload = lesson.Writing
	case progression.SkillSpeaking:
		system = speakingSystemPrompt
		userMsg = buildSpeakingUserMessage(level, primary, secondary, words)
		schema = SpeakingTaskSchema
		lesson.Speaking = &SpeakingLesson{}
		payload = lesson.Speaking
	default:
		return nil, fmt.Errorf("%w: %q", progression.ErrUnknownSkill, skill)
	}

	req := llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s lesson generation: %w", skill, err)
	}
	if err := json.Unmarshal(resp.Content, payload); err != nil {
		return nil, fmt.Errorf("parse %s lesson response: %w", skill, err)
	}
	return lesson, nil
}
