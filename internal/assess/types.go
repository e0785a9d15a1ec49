package assess

import (
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/scoring"
)

// Status classifies a graded practice submission.
type Status string

const (
	// StatusScored means the submission was graded and experience applied.
	StatusScored Status = "scored"
	// StatusInvalid means the submission failed a pre-oracle gate
	// (too short, off-topic) and scored zero deterministically.
	StatusInvalid Status = "invalid"
	// StatusCopied means the summary was lifted from the source text.
	// No oracle call is made and no experience is applied.
	StatusCopied Status = "copied"
)

// BlankAnswer pairs a learner's fill-in-the-blank answer with the key.
type BlankAnswer struct {
	Given string `json:"given"`
	Want  string `json:"want"`
}

// ChoiceAnswer pairs a learner's selected option index with the key.
// Given is nil when the question was left unanswered, so an omitted
// field never matches a key of 0.
type ChoiceAnswer struct {
	Given *int `json:"given"`
	Want  int  `json:"want"`
}

// ReadingSubmission is a reading practice attempt: a Turkish summary of
// the passage plus the comprehension quiz outcome.
type ReadingSubmission struct {
	Title   string        `json:"title"`
	Text    string        `json:"text"`
	Summary string        `json:"summary"`
	Quiz    scoring.Ratio `json:"quiz"`
}

// ListeningSubmission is a listening practice attempt.
type ListeningSubmission struct {
	Title       string         `json:"title"`
	Text        string         `json:"text"`
	GistSummary string         `json:"gist_summary"`
	Blanks      []BlankAnswer  `json:"blanks"`
	Choices     []ChoiceAnswer `json:"choices"`
}

// WritingSubmission is a writing practice attempt.
type WritingSubmission struct {
	Topic string `json:"topic"`
	Text  string `json:"text"`
}

// SpeakingSubmission is a speaking practice attempt: the task prompt
// and the learner's recorded answer as mono 16kHz PCM WAV.
type SpeakingSubmission struct {
	Task  string `json:"task"`
	Audio []byte `json:"audio,omitempty"`
}

// Submission carries one skill-specific practice attempt. Exactly one
// payload must be set, matching the skill passed to SubmitPractice.
type Submission struct {
	ActivityLevel progression.Level `json:"activity_level"`

	Reading   *ReadingSubmission   `json:"reading,omitempty"`
	Listening *ListeningSubmission `json:"listening,omitempty"`
	Writing   *WritingSubmission   `json:"writing,omitempty"`
	Speaking  *SpeakingSubmission  `json:"speaking,omitempty"`
}

// Mistake is one correction the writing oracle flagged.
type Mistake struct {
	Original   string `json:"original"`
	Correction string `json:"correction"`
	Type       string `json:"type"`
}

// PracticeResult is the graded outcome of a practice submission.
type PracticeResult struct {
	AttemptID string            `json:"attempt_id"`
	Skill     progression.Skill `json:"skill"`
	Status    Status            `json:"status"`
	Score     scoring.Score     `json:"score"`

	// Experience outcome. Zero-valued for copied/invalid submissions,
	// which never reach the state machine.
	GainedXP   int               `json:"gained_xp"`
	TotalXP    int               `json:"total_xp"`
	Level      progression.Level `json:"level,omitempty"`
	ExamNeeded bool              `json:"exam_needed"`

	// Oracle feedback, skill-dependent.
	Feedback      string    `json:"feedback,omitempty"`
	Transcript    string    `json:"transcript,omitempty"`
	CorrectedText string    `json:"corrected_text,omitempty"`
	Mistakes      []Mistake `json:"mistakes,omitempty"`
}
