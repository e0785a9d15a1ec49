package placement

import (
	"fmt"
	"strings"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/llm"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
)

const progressiveEssaySystemPrompt = `You are a strict placement test evaluator.
Review the student's writing samples for 3 progressive levels.

EVALUATION LOGIC:
1. Did the student pass the A1 task with basic sentences?
2. Did the student pass the B1 task with connected text and intermediate vocabulary?
3. Did the student pass the C1 task with complex structure and advanced arguments?

If they fail A1, ai_score must be very low (0-20).
If they pass A1 but fail B1, ai_score should land in the 20-45 band.
If they pass B1 but fail C1, ai_score should land in the 45-75 band.
If they handle C1 well, ai_score should be high (75-100).`

func progressiveEssayUserMessage(essays map[progression.Level]EssayAnswer) string {
	var b strings.Builder
	for i, level := range sampleLevels {
		essay := essays[level]
		answer := essay.Text
		if strings.TrimSpace(answer) == "" {
			answer = "NO ANSWER"
		}
		fmt.Fprintf(&b, "--- TASK %d (Level %s) ---\n", i+1, level)
		fmt.Fprintf(&b, "Task: %s\n", essay.Topic)
		fmt.Fprintf(&b, "Student Answer: %q\n\n", answer)
	}
	return strings.TrimRight(b.String(), "\n")
}

func levelFitSystemPrompt(level progression.Level) string {
	return fmt.Sprintf(`Evaluate the spoken response transcript for proficiency level %s.

Criteria:
- Did they use vocabulary appropriate for %s?
- Is the grammar correct for %s?
- Is it coherent?

If it is way below %s, give a low score (0-40).
If it fits %s well, give a passing score (50-75).
If it exceeds %s, give a high score (80-100).`,
		level, level, level, level, level, level)
}

// EssayPlacementSchema is the oracle verdict for the progressive essay
// section.
var EssayPlacementSchema = &llm.Schema{
	Name:        "essay-placement",
	Description: "A single 0-100 judgment across three progressive writing samples",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"ai_score": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 100,
			},
		},
		"required":             []any{"ai_score"},
		"additionalProperties": false,
	},
}

type essayPlacementGrade struct {
	AIScore float64 `json:"ai_score"`
}

// SpokenLevelFitSchema is the oracle verdict for how well a transcript
// fits one sampled level.
var SpokenLevelFitSchema = &llm.Schema{
	Name:        "spoken-level-fit",
	Description: "A 0-100 judgment of whether a transcript fits the sampled level",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 100,
			},
		},
		"required":             []any{"score"},
		"additionalProperties": false,
	},
}

type spokenLevelFitGrade struct {
	Score float64 `json:"score"`
}
