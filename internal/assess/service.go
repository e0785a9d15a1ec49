// Package assess grades practice submissions: it runs the pre-oracle
// gates (length, copy detection), collects raw sub-scores from the text
// and audio oracles, aggregates them, and banks the resulting
// experience through the progression state machine.
package assess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/llm"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/scoring"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/speech"
)

// ErrScoringFailed means an oracle call failed and the submission could
// not be graded. No progression state was mutated.
var ErrScoringFailed = errors.New("assess: submission could not be scored")

// minWords is the shortest text or transcript the oracles will grade.
const minWords = 3

// Config holds grading oracle settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for grading.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.2,
	}
}

// Service grades practice submissions.
type Service struct {
	provider   llm.Provider
	recognizer speech.Recognizer
	progress   *progression.Service
	cfg        Config
}

// NewService creates a grading service.
func NewService(provider llm.Provider, recognizer speech.Recognizer, progress *progression.Service, cfg Config) *Service {
	return &Service{
		provider:   provider,
		recognizer: recognizer,
		progress:   progress,
		cfg:        cfg,
	}
}

// SubmitPractice grades one practice submission and applies the
// experience gain. Oracle calls happen before any state mutation; a
// grading failure returns ErrScoringFailed with progression untouched.
func (s *Service) SubmitPractice(ctx context.Context, learnerID string, skill progression.Skill, sub Submission) (*PracticeResult, error) {
	attemptID := uuid.NewString()
	ctx = llm.WithAttemptID(ctx, attemptID)

	result := &PracticeResult{
		AttemptID: attemptID,
		Skill:     skill,
	}

	var err error
	switch skill {
	case progression.SkillReading:
		if sub.Reading == nil {
			return nil, fmt.Errorf("assess: reading submission payload missing")
		}
		err = s.gradeReading(ctx, result, sub.ActivityLevel, sub.Reading)
	case progression.SkillListening:
		if sub.Listening == nil {
			return nil, fmt.Errorf("assess: listening submission payload missing")
		}
		err = s.gradeListening(ctx, result, sub.ActivityLevel, sub.Listening)
	case progression.SkillWriting:
		if sub.Writing == nil {
			return nil, fmt.Errorf("assess: writing submission payload missing")
		}
		err = s.gradeWriting(ctx, result, sub.ActivityLevel, sub.Writing)
	case progression.SkillSpeaking:
		if sub.Speaking == nil {
			return nil, fmt.Errorf("assess: speaking submission payload missing")
		}
		err = s.gradeSpeaking(ctx, result, sub.ActivityLevel, sub.Speaking)
	default:
		return nil, fmt.Errorf("%w: %q", progression.ErrUnknownSkill, skill)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoringFailed, err)
	}

	// A copied summary earns nothing and never reaches the state
	// machine. Invalid submissions still flow through it with their
	// deterministic zero score, so the result reports current totals.
	if result.Status == StatusCopied {
		return result, nil
	}

	gain, err := s.progress.ApplyPracticeGain(ctx, learnerID, skill, result.Score.Value, sub.ActivityLevel)
	if err != nil {
		return nil, err
	}
	result.GainedXP = gain.GainedXP
	result.TotalXP = gain.TotalXP
	result.Level = gain.Level
	result.ExamNeeded = gain.ExamNeeded
	return result, nil
}

func (s *Service) gradeReading(ctx context.Context, result *PracticeResult, level progression.Level, sub *ReadingSubmission) error {
	if isCopied(sub.Text, sub.Summary) {
		result.Status = StatusCopied
		result.Feedback = "Metinden doğrudan kopyalama yapılmış. Kendi cümlelerinle özetle."
		return nil
	}

	ctx = llm.WithPurpose(ctx, "practice-reading")
	verdict, err := s.judgeComprehension(ctx, "reading", level, sub.Title, sub.Text, sub.Summary)
	if err != nil {
		return err
	}

	result.Status = StatusScored
	result.Score = scoring.Comprehension(scoring.Sub(verdict.Score), sub.Quiz)
	result.Feedback = verdict.Feedback
	return nil
}

func (s *Service) gradeListening(ctx context.Context, result *PracticeResult, level progression.Level, sub *ListeningSubmission) error {
	if isCopied(sub.Text, sub.GistSummary) {
		result.Status = StatusCopied
		result.Feedback = "Metinden doğrudan kopyalama yapılmış. Kendi cümlelerinle özetle."
		return nil
	}

	ctx = llm.WithPurpose(ctx, "practice-listening")
	verdict, err := s.judgeComprehension(ctx, "listening", level, sub.Title, sub.Text, sub.GistSummary)
	if err != nil {
		return err
	}

	result.Status = StatusScored
	result.Score = scoring.ListeningFull(scoring.Sub(verdict.Score), gradeBlanks(sub.Blanks), gradeChoices(sub.Choices))
	result.Feedback = verdict.Feedback
	return nil
}

func (s *Service) gradeWriting(ctx context.Context, result *PracticeResult, level progression.Level, sub *WritingSubmission) error {
	if wordCount(sub.Text) < minWords {
		result.Status = StatusInvalid
		result.Feedback = "Çok kısa."
		return nil
	}

	ctx = llm.WithPurpose(ctx, "practice-writing")
	req := llm.Request{
		System: writingSystemPrompt(level, sub.Topic),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: sub.Text},
		},
		Schema:      WritingEvalSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}
	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("writing evaluation: %w", err)
	}
	var verdict writingVerdict
	if err := json.Unmarshal(resp.Content, &verdict); err != nil {
		return fmt.Errorf("parse writing verdict: %w", err)
	}

	result.Score = scoring.Writing(scoring.WritingScores{
		Invalid:   verdict.Status == "invalid",
		Overall:   scoring.Sub(verdict.Score),
		Grammar:   scoring.Sub(verdict.GrammarScore),
		Vocab:     scoring.Sub(verdict.VocabScore),
		Coherence: scoring.Sub(verdict.CoherenceScore),
	})
	if verdict.Status == "invalid" {
		result.Status = StatusInvalid
	} else {
		result.Status = StatusScored
	}
	result.Feedback = strings.Join(verdict.FeedbackPoints, "\n")
	result.CorrectedText = verdict.CorrectedText
	result.Mistakes = verdict.Mistakes
	return nil
}

func (s *Service) gradeSpeaking(ctx context.Context, result *PracticeResult, level progression.Level, sub *SpeakingSubmission) error {
	assessment, err := s.recognizer.Assess(ctx, sub.Audio)
	if err != nil {
		return fmt.Errorf("pronunciation assessment: %w", err)
	}
	result.Transcript = assessment.Transcript

	pron := scoring.PronunciationScores{
		Accuracy:      scoring.Sub(assessment.Scores.Accuracy),
		Fluency:       scoring.Sub(assessment.Scores.Fluency),
		Pronunciation: scoring.Sub(assessment.Scores.Pronunciation),
	}

	// A transcript under the minimum is not worth a content judgment:
	// content sub-scores are forced to zero without calling the oracle.
	if wordCount(assessment.Transcript) < minWords {
		result.Status = StatusScored
		result.Score = scoring.Speaking(pron, scoring.ZeroContent())
		result.Feedback = "Cevap çok kısa. Daha uzun konuşmayı dene."
		return nil
	}

	ctx = llm.WithPurpose(ctx, "practice-speaking")
	req := llm.Request{
		System: speakingContentSystemPrompt(level, sub.Task),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: assessment.Transcript},
		},
		Schema:      SpeakingContentSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}
	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("speaking content evaluation: %w", err)
	}
	var verdict speakingVerdict
	if err := json.Unmarshal(resp.Content, &verdict); err != nil {
		return fmt.Errorf("parse speaking verdict: %w", err)
	}

	result.Status = StatusScored
	result.Score = scoring.Speaking(pron, scoring.ContentScores{
		Grammar:         scoring.Sub(verdict.Grammar),
		Vocabulary:      scoring.Sub(verdict.Vocabulary),
		Coherence:       scoring.Sub(verdict.Coherence),
		TaskAchievement: scoring.Sub(verdict.TaskAchievement),
	})
	result.Feedback = verdict.FeedbackTR
	result.CorrectedText = verdict.CorrectedText
	return nil
}

func (s *Service) judgeComprehension(ctx context.Context, kind string, level progression.Level, title, text, summary string) (*comprehensionVerdict, error) {
	req := llm.Request{
		System: comprehensionSystemPrompt(kind, level, title),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: comprehensionUserMessage(text, summary)},
		},
		Schema:      ComprehensionSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}
	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s comprehension: %w", kind, err)
	}
	var verdict comprehensionVerdict
	if err := json.Unmarshal(resp.Content, &verdict); err != nil {
		return nil, fmt.Errorf("parse %s verdict: %w", kind, err)
	}
	return &verdict, nil
}

func gradeBlanks(blanks []BlankAnswer) scoring.Ratio {
	r := scoring.Ratio{Total: len(blanks)}
	for _, b := range blanks {
		if strings.EqualFold(strings.TrimSpace(b.Given), strings.TrimSpace(b.Want)) {
			r.Correct++
		}
	}
	return r
}

func gradeChoices(choices []ChoiceAnswer) scoring.Ratio {
	r := scoring.Ratio{Total: len(choices)}
	for _, c := range choices {
		if c.Given != nil && *c.Given == c.Want {
			r.Correct++
		}
	}
	return r
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
