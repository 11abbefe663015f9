package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/tutor/internal/llm"
)

// Strict vendor schemas reject minLength, so blank strings are caught by
// checkItems instead.
var text = map[string]any{"type": "string"}

// buildSchema returns the strict output schema for a quiz of size items.
// The name carries the size so logs and vendor errors tell sizes apart.
func buildSchema(size int) *llm.Schema {
	return &llm.Schema{
		Name:        fmt.Sprintf("exam-quiz-%d", size),
		Description: fmt.Sprintf("Exactly %d multiple-choice exam questions", size),
		Strict:      true,
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": size,
					"maxItems": size,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": text,
							"choices": map[string]any{
								"type":     "array",
								"items":    text,
								"minItems": ChoicesPerItem,
								"maxItems": ChoicesPerItem,
							},
							"correctAnswer": map[string]any{
								"type":    "integer",
								"minimum": 0,
								"maximum": ChoicesPerItem - 1,
							},
							"explanation": text,
							"source":      text,
						},
						"required":             []any{"question", "choices", "correctAnswer", "explanation", "source"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	}
}

// checkItems enforces what the strict schema leaves out: non-blank text,
// distinct choices and questions, and an answer index within choices.
func checkItems(size int) func(quizOutput) error {
	return func(out quizOutput) error {
		if len(out.Questions) != size {
			return fmt.Errorf("got %d questions, want %d", len(out.Questions), size)
		}
		seen := make(map[string]int, len(out.Questions))
		for i, it := range out.Questions {
			if strings.TrimSpace(it.Question) == "" {
				return fmt.Errorf("questions[%d].question is blank", i)
			}
			key := normalize(it.Question)
			if j, dup := seen[key]; dup {
				return fmt.Errorf("questions[%d] repeats questions[%d]", i, j)
			}
			seen[key] = i
			if dup := firstDuplicate(it.Choices); dup >= 0 {
				return fmt.Errorf("questions[%d].choices[%d] repeats an earlier choice", i, dup)
			}
			if len(it.Choices) != ChoicesPerItem {
				return fmt.Errorf("questions[%d] has %d choices, want %d", i, len(it.Choices), ChoicesPerItem)
			}
			for j, c := range it.Choices {
				if strings.TrimSpace(c) == "" {
					return fmt.Errorf("questions[%d].choices[%d] is blank", i, j)
				}
			}
			if it.CorrectAnswer < 0 || it.CorrectAnswer >= len(it.Choices) {
				return fmt.Errorf("questions[%d].correctAnswer %d out of range", i, it.CorrectAnswer)
			}
			if strings.TrimSpace(it.Explanation) == "" {
				return fmt.Errorf("questions[%d].explanation is blank", i)
			}
			if strings.TrimSpace(it.Source) == "" {
				return fmt.Errorf("questions[%d].source is blank", i)
			}
		}
		return nil
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// firstDuplicate returns the index of the first entry equal to an earlier
// one, ignoring case and spacing, or -1.
func firstDuplicate(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for i, v := range values {
		k := normalize(v)
		if _, ok := seen[k]; ok {
			return i
		}
		seen[k] = struct{}{}
	}
	return -1
}
