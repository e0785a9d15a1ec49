package examgate

import "github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/llm"

// ComprehensionExamSchema defines the JSON schema for generated reading
// and listening advancement exams: two parts, each a text plus five
// multiple-choice, five fill-in-the-blank, and five true/false items.
var ComprehensionExamSchema = &llm.Schema{
	Name:        "comprehension-exam",
	Description: "A two-part reading or listening exam with objective questions per part",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"parts": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{"type": "integer"},
						"text": map[string]any{
							"type":        "string",
							"description": "The exam passage at the requested level and length",
						},
						"mc_questions": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"question": map[string]any{"type": "string"},
									"options": map[string]any{
										"type":     "array",
										"items":    map[string]any{"type": "string"},
										"minItems": 4,
										"maxItems": 4,
									},
									"correct_index": map[string]any{
										"type":    "integer",
										"minimum": 0,
										"maximum": 3,
									},
								},
								"required":             []any{"question", "options", "correct_index"},
								"additionalProperties": false,
							},
							"minItems": 5,
							"maxItems": 5,
						},
						"fib_questions": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"sentence": map[string]any{
										"type":        "string",
										"description": "Sentence from the text with one word replaced by _____",
									},
									"correct_word": map[string]any{"type": "string"},
								},
								"required":             []any{"sentence", "correct_word"},
								"additionalProperties": false,
							},
							"minItems": 5,
							"maxItems": 5,
						},
						"tf_questions": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"statement": map[string]any{"type": "string"},
									"answer": map[string]any{
										"type": "string",
										"enum": []any{"True", "False"},
									},
								},
								"required":             []any{"statement", "answer"},
								"additionalProperties": false,
							},
							"minItems": 5,
							"maxItems": 5,
						},
					},
					"required":             []any{"id", "text", "mc_questions", "fib_questions", "tf_questions"},
					"additionalProperties": false,
				},
				"minItems": 2,
				"maxItems": 2,
			},
		},
		"required":             []any{"parts"},
		"additionalProperties": false,
	},
}

// WritingExamSchema defines the JSON schema for generated writing exams:
// two independent essay tasks.
var WritingExamSchema = &llm.Schema{
	Name:        "writing-exam",
	Description: "A two-task writing exam with topics, instructions, and constraints",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tasks": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":    map[string]any{"type": "integer"},
						"topic": map[string]any{"type": "string"},
						"instructions": map[string]any{
							"type":        "string",
							"description": "What the learner must write and which points to cover",
						},
						"constraints": map[string]any{
							"type":        "string",
							"description": "Word count range and any required structures",
						},
					},
					"required":             []any{"id", "topic", "instructions", "constraints"},
					"additionalProperties": false,
				},
				"minItems": 2,
				"maxItems": 2,
			},
		},
		"required":             []any{"tasks"},
		"additionalProperties": false,
	},
}

// SpeakingExamSchema defines the JSON schema for generated speaking
// exams: an interview task and a long-turn task.
var SpeakingExamSchema = &llm.Schema{
	Name:        "speaking-exam",
	Description: "A two-task speaking exam: a short interview and a long turn",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tasks": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{"type": "integer"},
						"type": map[string]any{
							"type": "string",
							"enum": []any{"interview", "long_turn"},
						},
						"prompt": map[string]any{
							"type":        "string",
							"description": "What the learner should talk about",
						},
					},
					"required":             []any{"id", "type", "prompt"},
					"additionalProperties": false,
				},
				"minItems": 2,
				"maxItems": 2,
			},
		},
		"required":             []any{"tasks"},
		"additionalProperties": false,
	},
}

// SummaryGradeSchema is the oracle verdict for one exam part summary.
var SummaryGradeSchema = &llm.Schema{
	Name:        "summary-grade",
	Description: "A 0-100 judgment of how well a summary captures an exam passage",
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

type summaryGrade struct {
	Score float64 `json:"score"`
}

// EssayGradeSchema is the oracle verdict for one writing exam task.
var EssayGradeSchema = &llm.Schema{
	Name:        "essay-grade",
	Description: "A strict 0-100 judgment of one exam essay against its task",
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

type essayGrade struct {
	Score float64 `json:"score"`
}

// SpokenContentGradeSchema is the oracle verdict for the content half of
// one speaking exam task.
var SpokenContentGradeSchema = &llm.Schema{
	Name:        "spoken-content-grade",
	Description: "A strict per-criterion judgment of a spoken exam answer transcript",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"grammar":          map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"vocabulary":       map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"coherence":        map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"task_achievement": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
		},
		"required":             []any{"grammar", "vocabulary", "coherence", "task_achievement"},
		"additionalProperties": false,
	},
}

type spokenContentGrade struct {
	Grammar         float64 `json:"grammar"`
	Vocabulary      float64 `json:"vocabulary"`
	Coherence       float64 `json:"coherence"`
	TaskAchievement float64 `json:"task_achievement"`
}
