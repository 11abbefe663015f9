package lessons

import "github.com/abhisek/tutor/internal/llm"

// OptionsPerQuestion is the fixed number of choices on every quiz question.
const OptionsPerQuestion = 4

var nonEmptyString = map[string]any{"type": "string", "minLength": 1}

// ContentSchema defines the JSON schema for the content bundle. Examples are
// optional, so the schema is not sent in strict mode.
var ContentSchema = &llm.Schema{
	Name:        "content-bundle",
	Description: "A guided lesson with a hook, a structured lesson and a multiple-choice quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hook": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":       nonEmptyString,
					"description": nonEmptyString,
					"question":    nonEmptyString,
				},
				"required": []any{"title", "description", "question"},
			},
			"lesson": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": nonEmptyString,
					"concepts": map[string]any{
						"type":     "array",
						"items":    nonEmptyString,
						"minItems": 1,
					},
					"explanation": nonEmptyString,
					"examples": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"problem":     nonEmptyString,
								"solution":    nonEmptyString,
								"explanation": nonEmptyString,
							},
							"required": []any{"problem", "solution", "explanation"},
						},
					},
				},
				"required": []any{"title", "concepts", "explanation"},
			},
			"quiz": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"questions": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"question": nonEmptyString,
								"options": map[string]any{
									"type":     "array",
									"items":    nonEmptyString,
									"minItems": OptionsPerQuestion,
									"maxItems": OptionsPerQuestion,
								},
								"correct":     nonEmptyString,
								"explanation": nonEmptyString,
							},
							"required": []any{"question", "options", "correct", "explanation"},
						},
					},
				},
				"required": []any{"questions"},
			},
		},
		"required": []any{"hook", "lesson", "quiz"},
	},
}
