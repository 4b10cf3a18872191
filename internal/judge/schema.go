package judge

import "github.com/ChenMel27/adaptive-recall-engine/internal/llm"

// JudgmentSchema defines the JSON schema for brain-dump and follow-up
// analysis. Both calls share one shape; the initial brain dump carries
// is_correct: null because nothing was asked yet.
var JudgmentSchema = &llm.Schema{
	Name:        "recall-judgment",
	Description: "Concept-level analysis of a student's free-recall writing",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"demonstrated_concepts": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Expected concepts the student showed understanding of",
			},
			"missing_concepts": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Expected concepts absent from the student's writing",
			},
			"misconceptions": map[string]any{
				"type":  "array",
				"items": misconceptionSchema,
			},
			"corrected_misconceptions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Previously flagged claims this response explicitly fixed",
			},
			"overall_feedback": map[string]any{
				"type":        "string",
				"description": "1-2 encouraging sentences about what the student got right",
			},
			"follow_up_question": map[string]any{
				"type":        "string",
				"description": "One targeted question probing the biggest gap, or empty when mastery is near",
			},
			"is_correct": map[string]any{
				"type":        []any{"boolean", "null"},
				"description": "Whether the latest answer was correct; null for the initial brain dump",
			},
		},
		"required": []any{
			"demonstrated_concepts", "missing_concepts", "misconceptions",
			"corrected_misconceptions", "overall_feedback", "follow_up_question", "is_correct",
		},
		"additionalProperties": false,
	},
}

var misconceptionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"claim": map[string]any{
			"type":        "string",
			"description": "What the student said that is wrong",
		},
		"correction": map[string]any{
			"type":        "string",
			"description": "Short age-appropriate correction (2-3 sentences max)",
		},
	},
	"required":             []any{"claim", "correction"},
	"additionalProperties": false,
}

// NotesAnalysisSchema defines the JSON schema for note extraction.
var NotesAnalysisSchema = &llm.Schema{
	Name:        "notes-analysis",
	Description: "Concept coverage extracted from a student's uploaded class notes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"covered_concepts": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"missing_concepts": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"misconceptions": map[string]any{
				"type":  "array",
				"items": misconceptionSchema,
			},
		},
		"required":             []any{"covered_concepts", "missing_concepts", "misconceptions"},
		"additionalProperties": false,
	},
}

// QuizSchema defines the JSON schema for quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "Short-answer quiz questions targeting gaps in the student's notes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text, grades 6-8 reading level",
						},
						"target_concept": map[string]any{
							"type":        "string",
							"description": "Which concept this question tests",
						},
						"hint": map[string]any{
							"type":        "string",
							"description": "A small hint if the student is stuck",
						},
					},
					"required":             []any{"question", "target_concept", "hint"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// EvaluationSchema defines the JSON schema for grading one quiz answer.
var EvaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "Grading of a single short-answer quiz response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"is_correct": map[string]any{
				"type": "boolean",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Encouraging feedback about the answer (2-3 sentences)",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The complete correct answer for reference",
			},
			"concept_demonstrated": map[string]any{
				"type":        "boolean",
				"description": "Whether the answer shows understanding of the target concept",
			},
		},
		"required":             []any{"is_correct", "feedback", "correct_answer", "concept_demonstrated"},
		"additionalProperties": false,
	},
}

// SummarySchema defines the JSON schema for the end-of-session summary.
var SummarySchema = &llm.Schema{
	Name:        "session-summary",
	Description: "Encouraging wrap-up of a recall session",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary_text": map[string]any{
				"type":        "string",
				"description": "The encouraging summary paragraph (4-6 sentences)",
			},
			"what_you_know_well": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"what_to_review_next": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"reflection_prompt": map[string]any{
				"type":        "string",
				"description": "A thought-provoking reflection question",
			},
		},
		"required":             []any{"summary_text", "what_you_know_well", "what_to_review_next", "reflection_prompt"},
		"additionalProperties": false,
	},
}
