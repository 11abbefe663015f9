package lessons

import (
	"fmt"
	"slices"
	"strings"
)

// checkContent enforces the rules the JSON schema cannot express.
func checkContent(c Content) error {
	for _, f := range []struct{ name, v string }{
		{"hook.title", c.Hook.Title},
		{"hook.description", c.Hook.Description},
		{"hook.question", c.Hook.Question},
		{"lesson.title", c.Lesson.Title},
		{"lesson.explanation", c.Lesson.Explanation},
	} {
		if strings.TrimSpace(f.v) == "" {
			return fmt.Errorf("%s is blank", f.name)
		}
	}

	if len(c.Lesson.Concepts) == 0 {
		return fmt.Errorf("lesson.concepts is empty")
	}
	if len(c.Quiz.Questions) == 0 {
		return fmt.Errorf("quiz.questions is empty")
	}

	for i, q := range c.Quiz.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("quiz.questions[%d].question is blank", i)
		}
		if len(q.Options) != OptionsPerQuestion {
			return fmt.Errorf("quiz.questions[%d] has %d options, want %d", i, len(q.Options), OptionsPerQuestion)
		}
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			key := strings.ToLower(strings.TrimSpace(o))
			if key == "" {
				return fmt.Errorf("quiz.questions[%d] has a blank option", i)
			}
			if seen[key] {
				return fmt.Errorf("quiz.questions[%d] repeats option %q", i, o)
			}
			seen[key] = true
		}
		if !slices.Contains(q.Options, q.Correct) {
			return fmt.Errorf("quiz.questions[%d].correct %q is not one of its options", i, q.Correct)
		}
	}
	return nil
}
