package lessons

import (
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/vocabselect"
)

// Lesson is one generated practice activity for a skill at a level.
// Exactly one of the per-skill payloads is set, matching Skill.
type Lesson struct {
	Skill          progression.Skill
	Level          progression.Level
	PrimaryTopic   string
	SecondaryTopic string
	TargetWords    []vocabselect.Word

	Reading   *ReadingLesson
	Listening *ListeningLesson
	Writing   *WritingLesson
	Speaking  *SpeakingLesson
}

// ChallengeWord glosses a target word for the learner.
type ChallengeWord struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning_tr"`
}

// ChoiceQuestion is a four-option multiple-choice item.
type ChoiceQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Evidence     string   `json:"evidence,omitempty"`
}

// BlankQuestion is a fill-in-the-blank item taken from the source text.
type BlankQuestion struct {
	Sentence string `json:"sentence"`
	Answer   string `json:"answer"`
}

// ReadingLesson is a passage with comprehension questions.
type ReadingLesson struct {
	Title          string          `json:"title"`
	Text           string          `json:"text"`
	ChallengeWords []ChallengeWord `json:"challenge_words"`
	Questions      []ChoiceQuestion `json:"questions"`
}

// ListeningLesson is a spoken text with blanks and comprehension items.
type ListeningLesson struct {
	Title          string           `json:"title"`
	AudioText      string           `json:"audio_text"`
	FillInBlanks   []BlankQuestion  `json:"fill_in_the_blanks"`
	MultipleChoice []ChoiceQuestion `json:"multiple_choice"`
}

// WritingLesson is a single free-writing task.
type WritingLesson struct {
	Task string `json:"task"`
}

// SpeakingLesson is a single spoken-response task.
type SpeakingLesson struct {
	Title string `json:"title"`
	Task  string `json:"task"`
}
