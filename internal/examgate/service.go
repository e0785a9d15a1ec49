// Package examgate controls access to level-advancement exams and grades
// them: it decides whether a learner may enter, generates exam content,
// aggregates the per-part and per-task sub-scores, and applies the
// promotion or the failure penalty through the progression state machine.
package examgate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/llm"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/scoring"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/speech"
)

var (
	// ErrNotEligible means the learner may not enter the exam right now.
	// The wrapped message names the reason.
	ErrNotEligible = errors.New("examgate: not eligible for exam")

	// ErrScoringFailed means the exam could not be graded at all. No
	// progression state was mutated.
	ErrScoringFailed = errors.New("examgate: exam could not be scored")
)

// minSummaryWords is the shortest exam summary the oracle will grade;
// anything shorter scores zero without an oracle call.
const minSummaryWords = 5

// minEssayWords is the shortest exam essay the oracle will grade.
const minEssayWords = 10

// minTranscriptWords is the shortest spoken transcript worth a content
// judgment.
const minTranscriptWords = 3

// Config holds exam oracle settings. Generation runs warm and long,
// grading cold and short.
type Config struct {
	GenerateMaxTokens   int
	GenerateTemperature float64
	GradeMaxTokens      int
	GradeTemperature    float64
}

// DefaultConfig returns sensible defaults for exam work.
func DefaultConfig() Config {
	return Config{
		GenerateMaxTokens:   4096,
		GenerateTemperature: 0.8,
		GradeMaxTokens:      1024,
		GradeTemperature:    0.2,
	}
}

// Service gates, generates, and grades advancement exams.
type Service struct {
	provider   llm.Provider
	recognizer speech.Recognizer
	progress   *progression.Service
	cfg        Config
}

// NewService creates an exam gate.
func NewService(provider llm.Provider, recognizer speech.Recognizer, progress *progression.Service, cfg Config) *Service {
	return &Service{
		provider:   provider,
		recognizer: recognizer,
		progress:   progress,
		cfg:        cfg,
	}
}

// CheckEligibility decides whether the learner may enter an advancement
// exam for the skill. The checks apply in a fixed order: max level,
// then banked experience, then cooldown.
func (s *Service) CheckEligibility(ctx context.Context, learnerID string, skill progression.Skill) (*Eligibility, error) {
	state, err := s.progress.GetSkill(ctx, learnerID, skill)
	if err != nil {
		return nil, fmt.Errorf("check eligibility: %w", err)
	}

	if state.Level.IsMax() {
		return &Eligibility{Reason: ReasonMaxLevel}, nil
	}

	if state.XP < state.Level.Ceiling() {
		return &Eligibility{
			Reason:     ReasonInsufficient,
			CurrentXP:  state.XP,
			RequiredXP: state.Level.Ceiling(),
		}, nil
	}

	cd, err := s.progress.CheckCooldown(ctx, learnerID, skill)
	if err != nil {
		return nil, fmt.Errorf("check eligibility: %w", err)
	}
	if cd.Active {
		// Sub-minute remainders round down to zero and no longer block.
		if minutes := int(cd.Remaining / time.Minute); minutes > 0 {
			return &Eligibility{
				Reason:                   ReasonCooldown,
				CooldownRemainingMinutes: minutes,
			}, nil
		}
	}

	return &Eligibility{CanEnter: true, TargetLevel: state.Level}, nil
}

// GenerateExam produces advancement exam content for the skill at the
// given level.
func (s *Service) GenerateExam(ctx context.Context, skill progression.Skill, level progression.Level) (*Exam, error) {
	ctx = llm.WithPurpose(ctx, "exam-"+skill.String())

	var (
		system string
		schema *llm.Schema
	)
	switch skill {
	case progression.SkillReading, progression.SkillListening:
		system = comprehensionExamSystemPrompt(skill, level)
		schema = ComprehensionExamSchema
	case progression.SkillWriting:
		system = writingExamSystemPrompt(level)
		schema = WritingExamSchema
	case progression.SkillSpeaking:
		system = speakingExamSystemPrompt(level)
		schema = SpeakingExamSchema
	default:
		return nil, fmt.Errorf("%w: %q", progression.ErrUnknownSkill, skill)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fmt.Sprintf("Generate the %s level %s exam now.", level, skill)},
		},
		Schema:      schema,
		MaxTokens:   s.cfg.GenerateMaxTokens,
		Temperature: s.cfg.GenerateTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate %s exam: %w", skill, err)
	}

	exam := &Exam{Skill: skill, Level: level}
	var payload struct {
		Parts []ExamPartContent `json:"parts"`
		Tasks []ExamTaskContent `json:"tasks"`
	}
	if err := json.Unmarshal(resp.Content, &payload); err != nil {
		return nil, fmt.Errorf("parse %s exam: %w", skill, err)
	}
	exam.Parts = payload.Parts
	exam.Tasks = payload.Tasks
	return exam, nil
}

// SubmitExam grades one advancement exam attempt and applies its
// consequence: a pass promotes the skill, a fail docks experience and
// starts the cooldown. Eligibility is re-checked at submission time, so
// a promotion is only reachable for a learner the gate would admit.
// All oracle work happens before any state mutation; a grading failure
// returns ErrScoringFailed with progression untouched.
func (s *Service) SubmitExam(ctx context.Context, learnerID string, skill progression.Skill, sub Submission) (*Result, error) {
	elig, err := s.CheckEligibility(ctx, learnerID, skill)
	if err != nil {
		return nil, err
	}
	if !elig.CanEnter {
		return nil, fmt.Errorf("%w: %s", ErrNotEligible, elig.Reason)
	}
	level := elig.TargetLevel

	ctx = llm.WithAttemptID(ctx, uuid.NewString())

	var score scoring.Score
	switch skill {
	case progression.SkillReading, progression.SkillListening:
		if len(sub.Parts) == 0 {
			return nil, fmt.Errorf("examgate: %s submission has no parts", skill)
		}
		score, err = s.gradeComprehensionExam(ctx, skill, level, sub.Parts)
	case progression.SkillWriting:
		if len(sub.WritingTasks) == 0 {
			return nil, fmt.Errorf("examgate: writing submission has no tasks")
		}
		score, err = s.gradeWritingExam(ctx, level, sub.WritingTasks)
	case progression.SkillSpeaking:
		if len(sub.SpeakingTasks) == 0 {
			return nil, fmt.Errorf("examgate: speaking submission has no tasks")
		}
		score, err = s.gradeSpeakingExam(ctx, level, sub.SpeakingTasks)
	default:
		return nil, fmt.Errorf("%w: %q", progression.ErrUnknownSkill, skill)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoringFailed, err)
	}

	if score.Passed() {
		promo, err := s.progress.Promote(ctx, learnerID, skill)
		if err != nil {
			return nil, err
		}
		return &Result{Passed: true, Score: score, NewLevel: promo.NewLevel}, nil
	}

	fail, err := s.progress.ApplyExamFailure(ctx, learnerID, skill)
	if err != nil {
		return nil, err
	}
	return &Result{
		Passed:        false,
		Score:         score,
		Penalty:       fail.Penalty,
		NewXP:         fail.NewXP,
		CooldownHours: fail.CooldownHours,
	}, nil
}

// gradeComprehensionExam grades a reading or listening exam: per part,
// two points per correct objective answer plus a fifth of the summary
// judgment. A failed summary judgment substitutes a tagged default of 50
// rather than sinking the whole exam.
func (s *Service) gradeComprehensionExam(ctx context.Context, skill progression.Skill, level progression.Level, parts []PartAnswers) (scoring.Score, error) {
	ctx = llm.WithPurpose(ctx, "exam-grade-"+skill.String())

	graded := make([]scoring.ExamPart, 0, len(parts))
	for _, part := range parts {
		correct := 0
		for _, a := range part.Objective {
			if answersMatch(a.Given, a.Want) {
				correct++
			}
		}

		var summary scoring.Subscore
		switch {
		case wordCount(part.Summary) < minSummaryWords:
			summary = scoring.Sub(0)
		default:
			grade, err := s.judgeSummary(ctx, level, part.Text, part.Summary)
			if err != nil {
				summary = scoring.FallbackSub(50)
			} else {
				summary = scoring.Sub(grade)
			}
		}

		graded = append(graded, scoring.ExamPart{
			ObjectiveCorrect: correct,
			Summary:          summary,
		})
	}
	return scoring.ReadingListeningExam(graded), nil
}

func (s *Service) judgeSummary(ctx context.Context, level progression.Level, text, summary string) (float64, error) {
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: summaryGradeSystemPrompt(level),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: summaryGradeUserMessage(text, summary)},
		},
		Schema:      SummaryGradeSchema,
		MaxTokens:   s.cfg.GradeMaxTokens,
		Temperature: s.cfg.GradeTemperature,
	})
	if err != nil {
		return 0, err
	}
	var grade summaryGrade
	if err := json.Unmarshal(resp.Content, &grade); err != nil {
		return 0, err
	}
	return grade.Score, nil
}

// gradeWritingExam grades each task with the essay oracle and averages
// the task scores. A too-short essay scores zero without an oracle call;
// a failed oracle call substitutes a tagged default of 40.
func (s *Service) gradeWritingExam(ctx context.Context, level progression.Level, tasks []WritingTaskAnswer) (scoring.Score, error) {
	ctx = llm.WithPurpose(ctx, "exam-grade-writing")

	graded := make([]scoring.Subscore, 0, len(tasks))
	for _, task := range tasks {
		if wordCount(task.Answer) < minEssayWords {
			graded = append(graded, scoring.Sub(0))
			continue
		}

		resp, err := s.provider.Generate(ctx, llm.Request{
			System: essayGradeSystemPrompt(level, task.Topic, task.Constraints),
			Messages: []llm.Message{
				{Role: llm.RoleUser, Content: task.Answer},
			},
			Schema:      EssayGradeSchema,
			MaxTokens:   s.cfg.GradeMaxTokens,
			Temperature: s.cfg.GradeTemperature,
		})
		if err != nil {
			graded = append(graded, scoring.FallbackSub(40))
			continue
		}
		var grade essayGrade
		if err := json.Unmarshal(resp.Content, &grade); err != nil {
			graded = append(graded, scoring.FallbackSub(40))
			continue
		}
		graded = append(graded, scoring.Sub(grade.Score))
	}
	return scoring.TaskMean(graded), nil
}

// gradeSpeakingExam grades each task as the hybrid of pronunciation
// metrics and the content judgment of the transcript, then averages the
// tasks. A failed recognizer or oracle call zeroes that task with a
// fallback tag; if every task fails to grade the exam is not scored.
func (s *Service) gradeSpeakingExam(ctx context.Context, level progression.Level, tasks []SpeakingTaskAnswer) (scoring.Score, error) {
	ctx = llm.WithPurpose(ctx, "exam-grade-speaking")

	graded := make([]scoring.Subscore, 0, len(tasks))
	failed := 0
	for _, task := range tasks {
		sub, ok := s.gradeSpeakingTask(ctx, level, task)
		if !ok {
			failed++
		}
		graded = append(graded, sub)
	}
	if failed == len(tasks) {
		return scoring.Score{}, errors.New("no speaking task could be graded")
	}
	return scoring.TaskMean(graded), nil
}

func (s *Service) gradeSpeakingTask(ctx context.Context, level progression.Level, task SpeakingTaskAnswer) (scoring.Subscore, bool) {
	assessment, err := s.recognizer.Assess(ctx, task.Audio)
	if err != nil {
		return scoring.FallbackSub(0), false
	}

	pron := scoring.PronunciationScores{
		Accuracy:      scoring.Sub(assessment.Scores.Accuracy),
		Fluency:       scoring.Sub(assessment.Scores.Fluency),
		Pronunciation: scoring.Sub(assessment.Scores.Pronunciation),
	}

	if wordCount(assessment.Transcript) < minTranscriptWords {
		return scoring.Sub(scoring.SpeakingTaskScore(pron, scoring.ZeroContent())), true
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: spokenContentSystemPrompt(level, task.Prompt),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: assessment.Transcript},
		},
		Schema:      SpokenContentGradeSchema,
		MaxTokens:   s.cfg.GradeMaxTokens,
		Temperature: s.cfg.GradeTemperature,
	})
	if err != nil {
		return scoring.FallbackSub(0), false
	}
	var grade spokenContentGrade
	if err := json.Unmarshal(resp.Content, &grade); err != nil {
		return scoring.FallbackSub(0), false
	}

	content := scoring.ContentScores{
		Grammar:         scoring.Sub(grade.Grammar),
		Vocabulary:      scoring.Sub(grade.Vocabulary),
		Coherence:       scoring.Sub(grade.Coherence),
		TaskAchievement: scoring.Sub(grade.TaskAchievement),
	}
	return scoring.Sub(scoring.SpeakingTaskScore(pron, content)), true
}

// answersMatch compares an objective answer to the key, ignoring case
// and surrounding whitespace. This one comparison covers multiple-choice
// letters, fill-in words, and True/False alike.
func answersMatch(given, want string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(want))
}

func wordCount(s string) int { return len(strings.Fields(s)) }
