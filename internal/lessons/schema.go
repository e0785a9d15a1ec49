package lessons

import "github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/llm"

var choiceQuestionDef = map[string]any{
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
	"additionalProperties": true,
}

// ReadingLessonSchema defines the JSON schema for reading lesson generation.
var ReadingLessonSchema = &llm.Schema{
	Name:        "reading-lesson",
	Description: "A reading passage with vocabulary glosses and comprehension questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short title reflecting the primary topic",
			},
			"text": map[string]any{
				"type":        "string",
				"description": "Reading passage about the primary topic at the learner's level",
			},
			"challenge_words": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"word":       map[string]any{"type": "string"},
						"meaning_tr": map[string]any{"type": "string"},
					},
					"required":             []any{"word", "meaning_tr"},
					"additionalProperties": false,
				},
			},
			"questions": map[string]any{
				"type":     "array",
				"items":    choiceQuestionDef,
				"minItems": 5,
				"maxItems": 5,
			},
		},
		"required":             []any{"title", "text", "challenge_words", "questions"},
		"additionalProperties": false,
	},
}

// ListeningLessonSchema defines the JSON schema for listening lesson generation.
var ListeningLessonSchema = &llm.Schema{
	Name:        "listening-lesson",
	Description: "A spoken text with fill-in-the-blank and multiple-choice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"audio_text": map[string]any{
				"type":        "string",
				"description": "Natural spoken English text, 80-120 words",
			},
			"fill_in_the_blanks": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"sentence": map[string]any{
							"type":        "string",
							"description": "Sentence from the text with one word replaced by ___",
						},
						"answer": map[string]any{"type": "string"},
					},
					"required":             []any{"sentence", "answer"},
					"additionalProperties": false,
				},
				"minItems": 5,
				"maxItems": 5,
			},
			"multiple_choice": map[string]any{
				"type":     "array",
				"items":    choiceQuestionDef,
				"minItems": 5,
				"maxItems": 5,
			},
		},
		"required":             []any{"title", "audio_text", "fill_in_the_blanks", "multiple_choice"},
		"additionalProperties": false,
	},
}

// WritingTaskSchema defines the JSON schema for writing task generation.
var WritingTaskSchema = &llm.Schema{
	Name:        "writing-task",
	Description: "A single free-writing assignment on the primary topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"task": map[string]any{
				"type":        "string",
				"description": "One clear writing question or task, no sample answer",
			},
		},
		"required":             []any{"task"},
		"additionalProperties": false,
	},
}

// SpeakingTaskSchema defines the JSON schema for speaking task generation.
var SpeakingTaskSchema = &llm.Schema{
	Name:        "speaking-task",
	Description: "A single spoken-response prompt on the primary topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"task": map[string]any{
				"type":        "string",
				"description": "One speaking prompt the learner answers aloud",
			},
		},
		"required":             []any{"title", "task"},
		"additionalProperties": false,
	},
}
