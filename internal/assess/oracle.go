package assess

import (
	"fmt"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/llm"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
)

// ComprehensionSchema is the oracle verdict on a learner's summary of a
// reading or listening text.
var ComprehensionSchema = &llm.Schema{
	Name:        "comprehension-verdict",
	Description: "Comprehension score and feedback for a learner's summary",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     100,
				"description": "Overall comprehension score",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Turkish feedback explaining the score",
			},
		},
		"required":             []any{"score", "feedback"},
		"additionalProperties": false,
	},
}

type comprehensionVerdict struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// WritingEvalSchema is the oracle verdict on a writing submission.
var WritingEvalSchema = &llm.Schema{
	Name:        "writing-evaluation",
	Description: "Graded evaluation of a learner's written text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status": map[string]any{
				"type": "string",
				"enum": []any{"valid", "invalid"},
			},
			"score":           map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"grammar_score":   map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"vocab_score":     map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"coherence_score": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"corrected_text":  map[string]any{"type": "string"},
			"feedback_points": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"mistakes": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"original":   map[string]any{"type": "string"},
						"correction": map[string]any{"type": "string"},
						"type":       map[string]any{"type": "string"},
					},
					"required":             []any{"original", "correction", "type"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"status", "score", "grammar_score", "vocab_score", "coherence_score", "corrected_text", "feedback_points", "mistakes"},
		"additionalProperties": false,
	},
}

type writingVerdict struct {
	Status         string    `json:"status"`
	Score          float64   `json:"score"`
	GrammarScore   float64   `json:"grammar_score"`
	VocabScore     float64   `json:"vocab_score"`
	CoherenceScore float64   `json:"coherence_score"`
	CorrectedText  string    `json:"corrected_text"`
	FeedbackPoints []string  `json:"feedback_points"`
	Mistakes       []Mistake `json:"mistakes"`
}

// SpeakingContentSchema is the oracle judgment of a spoken transcript.
var SpeakingContentSchema = &llm.Schema{
	Name:        "speaking-content",
	Description: "Content judgment of a transcribed spoken answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"grammar":          map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"vocabulary":       map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"coherence":        map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"task_achievement": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"corrected_text":   map[string]any{"type": "string"},
			"feedback_tr":      map[string]any{"type": "string"},
		},
		"required":             []any{"grammar", "vocabulary", "coherence", "task_achievement", "corrected_text", "feedback_tr"},
		"additionalProperties": false,
	},
}

type speakingVerdict struct {
	Grammar         float64 `json:"grammar"`
	Vocabulary      float64 `json:"vocabulary"`
	Coherence       float64 `json:"coherence"`
	TaskAchievement float64 `json:"task_achievement"`
	CorrectedText   string  `json:"corrected_text"`
	FeedbackTR      string  `json:"feedback_tr"`
}

func comprehensionSystemPrompt(kind string, level progression.Level, title string) string {
	return fmt.Sprintf(`You are an English teacher assessing a student's %s comprehension.

Level: %s
The text has the title: %q

The student summary is written in Turkish. Evaluate comprehension, not
translation accuracy.

Evaluation criteria:
- Correctly reflects the main idea of the text
- Coverage of key points
- Relevance to the title
- Appropriateness for the given level`, kind, level, title)
}

func comprehensionUserMessage(text, summary string) string {
	return fmt.Sprintf("Original Text:\n%s\n\nStudent Summary (Turkish):\n%s\n", text, summary)
}

func writingSystemPrompt(level progression.Level, topic string) string {
	return fmt.Sprintf(`You are an English teacher grading a student (Level %s). Topic: %q.
If the text is mostly unrelated to the topic, reduce the score significantly.
If the text is clearly above or below the given level, reflect this in coherence_score.
If it is completely unrelated, set status to "invalid".
If status is "invalid", score must be 0 and corrected_text must be empty.
The final score should be consistent with the sub-scores.

Scoring guidance:
- Grammar: 30%%
- Vocabulary: 30%%
- Coherence and relevance: 40%%

Your core philosophy is Meaning over Mechanics. Be lenient on minor punctuation.
Only include mistakes that significantly affect clarity or correctness.
The corrected_text should preserve the student's original meaning and tone.
Write feedback_points in clear Turkish; each point covers one aspect and
explains why the score was given.`, level, topic)
}

func speakingContentSystemPrompt(level progression.Level, task string) string {
	return fmt.Sprintf(`You are an English teacher grading a transcribed spoken answer (Level %s).
The speaking task was: %q

Judge the transcript's content only; pronunciation is scored separately.
Score grammar, vocabulary, coherence, and task_achievement from 0 to 100.
Provide a corrected version of the transcript and short Turkish feedback.`, level, task)
}
