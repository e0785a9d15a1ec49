package examgate

import (
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/scoring"
)

// Reason explains why exam entry was denied.
type Reason string

const (
	ReasonMaxLevel     Reason = "max_level"
	ReasonInsufficient Reason = "insufficient_experience"
	ReasonCooldown     Reason = "cooldown"
)

// Eligibility is the admission decision for an advancement exam.
type Eligibility struct {
	CanEnter bool
	Reason   Reason

	// TargetLevel is the level the exam advances from, set when eligible.
	TargetLevel progression.Level

	// Set for ReasonInsufficient.
	CurrentXP  int
	RequiredXP int

	// Set for ReasonCooldown, rounded down to whole minutes.
	CooldownRemainingMinutes int
}

// ObjectiveAnswer pairs a learner's answer with the key. Comparison is
// case-insensitive on the trimmed strings, so it covers multiple-choice
// letters, fill-in words, and True/False/Not Given alike.
type ObjectiveAnswer struct {
	Given string `json:"given"`
	Want  string `json:"want"`
}

// PartAnswers holds a learner's answers for one part of a reading or
// listening exam.
type PartAnswers struct {
	Text      string            `json:"text"`
	Summary   string            `json:"summary"`
	Objective []ObjectiveAnswer `json:"objective"`
}

// WritingTaskAnswer is a learner's essay for one writing exam task.
type WritingTaskAnswer struct {
	Topic       string `json:"topic"`
	Constraints string `json:"constraints"`
	Answer      string `json:"answer"`
}

// SpeakingTaskAnswer is a learner's recording for one speaking exam task.
type SpeakingTaskAnswer struct {
	Prompt string `json:"prompt"`
	Audio  []byte `json:"audio,omitempty"`
}

// Submission carries the answers for one exam attempt. Exactly one
// payload must be set, matching the skill passed to SubmitExam.
type Submission struct {
	Parts         []PartAnswers        `json:"parts,omitempty"`          // reading, listening
	WritingTasks  []WritingTaskAnswer  `json:"writing_tasks,omitempty"`  // writing
	SpeakingTasks []SpeakingTaskAnswer `json:"speaking_tasks,omitempty"`
}

// Result is the outcome of a graded exam attempt. Exactly one of the
// pass and fail details is populated, never both.
type Result struct {
	Passed bool          `json:"passed"`
	Score  scoring.Score `json:"score"`

	// Pass detail.
	NewLevel progression.Level `json:"new_level,omitempty"`

	// Fail detail.
	Penalty       int `json:"penalty,omitempty"`
	NewXP         int `json:"new_xp,omitempty"`
	CooldownHours int `json:"cooldown_hours,omitempty"`
}

// ExamPartContent is one generated part of a reading or listening exam.
type ExamPartContent struct {
	ID   int    `json:"id"`
	Text string `json:"text"`

	MCQuestions []struct {
		Question     string   `json:"question"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correct_index"`
	} `json:"mc_questions"`

	FIBQuestions []struct {
		Sentence    string `json:"sentence"`
		CorrectWord string `json:"correct_word"`
	} `json:"fib_questions"`

	TFQuestions []struct {
		Statement string `json:"statement"`
		Answer    string `json:"answer"`
	} `json:"tf_questions"`
}

// ExamTaskContent is one generated task of a writing or speaking exam.
type ExamTaskContent struct {
	ID           int    `json:"id"`
	Type         string `json:"type,omitempty"`
	Topic        string `json:"topic,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Constraints  string `json:"constraints,omitempty"`
	Prompt       string `json:"prompt,omitempty"`
}

// Exam is generated advancement exam content.
type Exam struct {
	Skill progression.Skill `json:"skill"`
	Level progression.Level `json:"level"`

	Parts []ExamPartContent `json:"parts,omitempty"` // reading, listening
	Tasks []ExamTaskContent `json:"tasks,omitempty"` // writing, speaking
}
