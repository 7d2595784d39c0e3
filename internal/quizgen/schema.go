package quizgen

import "quizforge/internal/llm"

// QuizSchema defines the JSON schema for LLM quiz generation responses.
// It pins the envelope and field names; semantic constraints (option
// counts, answer letters, duplicates) are left to the validators so a
// mostly-good payload produces actionable issue lists instead of an
// opaque schema error.
var QuizSchema = &llm.Schema{
	Name:        "quiz",
	Description: "A quiz as a list of questions with answers and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"minItems":    1,
				"description": "The generated questions, in presentation order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question prompt shown to the quiz taker",
						},
						"options": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "Exactly 4 answer choices for Multiple Choice questions, without letter prefixes. Empty array for other question types.",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The correct answer. Multiple Choice: the letter A, B, C or D. True/False: \"True\" or \"False\". Open-ended: a short model answer.",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences justifying the answer",
						},
					},
					"required": []any{"question", "answer"},
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
