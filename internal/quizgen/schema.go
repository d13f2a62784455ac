package quizgen

import "github.com/quillium/quillium/internal/llm"

// MCQListSchema defines the JSON schema for LLM question generation responses.
var MCQListSchema = &llm.Schema{
	Name:        "mcq-list",
	Description: "A list of multiple choice questions derived from source text",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The question prompt shown to the learner",
				},
				"answer": map[string]any{
					"type":        "string",
					"description": "The correct answer. Must match one option exactly.",
				},
				"options": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "string",
					},
					"description": "Exactly 4 options, one of which is the answer",
				},
				"difficulty": map[string]any{
					"type":        "string",
					"enum":        []any{"easy", "medium", "hard"},
					"description": "How hard the question is",
				},
			},
			"required":             []any{"question", "answer", "options", "difficulty"},
			"additionalProperties": false,
		},
	},
}
