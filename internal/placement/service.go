package placement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/llm"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/scoring"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/speech"
)

// EssayAnswer is one progressive writing task with the learner's text.
type EssayAnswer struct {
	Topic string `json:"topic"`
	Text  string `json:"text"`
}

// Config holds placement oracle settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for placement grading.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.3,
	}
}

// Service scores placement sections and seeds the progression record.
type Service struct {
	provider   llm.Provider
	recognizer speech.Recognizer
	repo       progression.Repo
	cfg        Config
}

// NewService creates a placement service.
func NewService(provider llm.Provider, recognizer speech.Recognizer, repo progression.Repo, cfg Config) *Service {
	return &Service{
		provider:   provider,
		recognizer: recognizer,
		repo:       repo,
		cfg:        cfg,
	}
}

// ScoreReading grades the static reading section.
func (s *Service) ScoreReading(answers, key Sheet) Outcome {
	return outcomeOf(scoring.Score{Value: ObjectiveScore(answers, key)})
}

// ScoreListening grades both listening parts over one combined item
// pool: the announcement questions plus the per-level sheet.
func (s *Service) ScoreListening(p1Answers, p1Key []string, p2Answers, p2Key Sheet) Outcome {
	correct, total := 0, len(p1Key)
	for i, given := range p1Answers {
		if i < len(p1Key) && given == p1Key[i] {
			correct++
		}
	}
	for _, level := range sampleLevels {
		want, ok := p2Key[level]
		if !ok {
			continue
		}
		total += len(want)
		given := p2Answers[level]
		n := len(given)
		if len(want) < n {
			n = len(want)
		}
		for i := 0; i < n; i++ {
			if given[i] == want[i] {
				correct++
			}
		}
	}
	if total == 0 {
		return outcomeOf(scoring.Score{})
	}
	return outcomeOf(scoring.Score{Value: int(float64(correct) / float64(total) * 100)})
}

// ScoreWriting combines the static grammar sheet with the oracle's
// judgment of three progressive essays. A failed oracle call substitutes
// a tagged default of 40 rather than sinking the section.
func (s *Service) ScoreWriting(ctx context.Context, grammarAnswers, grammarKey Sheet, essays map[progression.Level]EssayAnswer) Outcome {
	grammar := ObjectiveScore(grammarAnswers, grammarKey)

	ctx = llm.WithPurpose(ctx, "placement-writing")
	essay := scoring.FallbackSub(40)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: progressiveEssaySystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: progressiveEssayUserMessage(essays)},
		},
		Schema:      EssayPlacementSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err == nil {
		var grade essayPlacementGrade
		if err := json.Unmarshal(resp.Content, &grade); err == nil {
			essay = scoring.Sub(grade.AIScore)
		}
	}

	return outcomeOf(scoring.WritingPlacement(grammar, essay))
}

// ScoreSpeaking grades one recording per sampled level and averages the
// three hybrid scores. A missing recording scores a real zero; a failed
// recognizer call substitutes a tagged low default, and a failed content
// judgment a tagged zero fit.
func (s *Service) ScoreSpeaking(ctx context.Context, recordings map[progression.Level][]byte) Outcome {
	ctx = llm.WithPurpose(ctx, "placement-speaking")

	tasks := make([]scoring.Subscore, 0, len(sampleLevels))
	for _, level := range sampleLevels {
		audio, ok := recordings[level]
		if !ok || len(audio) == 0 {
			tasks = append(tasks, scoring.Sub(0))
			continue
		}
		tasks = append(tasks, s.scoreSpeakingLevel(ctx, level, audio))
	}
	return outcomeOf(scoring.TaskMean(tasks))
}

func (s *Service) scoreSpeakingLevel(ctx context.Context, level progression.Level, audio []byte) scoring.Subscore {
	assessment, err := s.recognizer.Assess(ctx, audio)
	if err != nil {
		// The learner did answer; an unintelligible or failed
		// recording scores low, not zero.
		return scoring.FallbackSub(10)
	}

	pron := scoring.PronunciationScores{
		Accuracy:      scoring.Sub(assessment.Scores.Accuracy),
		Fluency:       scoring.Sub(assessment.Scores.Fluency),
		Pronunciation: scoring.Sub(assessment.Scores.Pronunciation),
	}

	fit := scoring.FallbackSub(0)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: levelFitSystemPrompt(level),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: assessment.Transcript},
		},
		Schema:      SpokenLevelFitSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err == nil {
		var grade spokenLevelFitGrade
		if err := json.Unmarshal(resp.Content, &grade); err == nil {
			fit = scoring.Sub(grade.Score)
		}
	}

	return scoring.Subscore{
		Value:    scoring.SpeakingPlacementTask(pron, fit),
		Fallback: fit.Fallback,
	}
}

// SaveResult seeds the learner's progression record with the placed
// level and floor experience per skill. Saving over an existing record
// replaces it.
func (s *Service) SaveResult(ctx context.Context, learnerID string, levels map[progression.Skill]progression.Level) error {
	seeded := make(map[progression.Skill]progression.Level, len(progression.AllSkills()))
	for _, skill := range progression.AllSkills() {
		level, ok := levels[skill]
		if !ok {
			level = progression.LevelA1
		}
		seeded[skill] = level
	}
	if err := s.repo.SeedRecord(ctx, learnerID, seeded); err != nil {
		return fmt.Errorf("save placement result: %w", err)
	}
	return nil
}

// Completed reports whether the learner already has a placed record.
func (s *Service) Completed(ctx context.Context, learnerID string) (bool, error) {
	_, err := s.repo.GetRecord(ctx, learnerID)
	if err != nil {
		if errors.Is(err, progression.ErrNoRecord) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
