// Package render formats lessons and quizzes for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/abhisek/tutor/internal/lessons"
	"github.com/abhisek/tutor/internal/quiz"
	"github.com/abhisek/tutor/internal/ui/theme"
)

// Content renders the hook and lesson. The embedded quiz is asked
// interactively and is not printed here.
func Content(topic string, level lessons.Level, c lessons.Content) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(fmt.Sprintf("%s (%s)", topic, level)))
	b.WriteString("\n\n")

	hook := theme.Label.Render(c.Hook.Title) + "\n" +
		theme.Body.Render(c.Hook.Description) + "\n\n" +
		theme.Hint.Render(c.Hook.Question)
	b.WriteString(theme.Hook.Render(hook))
	b.WriteString("\n")

	b.WriteString(theme.Section.Render(c.Lesson.Title))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(c.Lesson.Explanation))
	b.WriteString("\n")

	if len(c.Lesson.Concepts) > 0 {
		b.WriteString(theme.Section.Render("Key concepts"))
		b.WriteString("\n")
		for _, concept := range c.Lesson.Concepts {
			b.WriteString("  • " + concept + "\n")
		}
	}

	for i, ex := range c.Lesson.Examples {
		b.WriteString(theme.Section.Render(fmt.Sprintf("Example %d", i+1)))
		b.WriteString("\n")
		card := theme.Label.Render("Problem: ") + ex.Problem + "\n" +
			theme.Label.Render("Solution: ") + ex.Solution + "\n" +
			theme.Hint.Render(ex.Explanation)
		b.WriteString(theme.Card.Render(card))
		b.WriteString("\n")
	}

	return b.String()
}

// Feedback renders whether answer matched the correct option.
func Feedback(answer string, q lessons.Question) string {
	if strings.EqualFold(strings.TrimSpace(answer), q.Correct) {
		return theme.Correct.Render("✓ Correct!") + " " + theme.Hint.Render(q.Explanation)
	}
	return theme.Incorrect.Render("✗ Not quite.") + " Answer: " + q.Correct + "\n" + theme.Hint.Render(q.Explanation)
}

// Reply renders a tutor reply.
func Reply(text string) string {
	return theme.Label.Render("Tutor: ") + theme.Tutor.Render(text)
}

// QuizItems renders an exam quiz with answers, for non-interactive output.
func QuizItems(topic, exam string, items []quiz.Item) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("%s quiz: %s", exam, topic)))
	b.WriteString("\n")

	for i, it := range items {
		b.WriteString(theme.Section.Render(fmt.Sprintf("%d. %s", i+1, it.Question)))
		b.WriteString("\n")
		for j, c := range it.Choices {
			line := fmt.Sprintf("  %c) %s", 'A'+j, c)
			if j == it.CorrectAnswer {
				line = theme.Correct.Render(line + "  ✓")
			}
			b.WriteString(line + "\n")
		}
		b.WriteString(theme.Hint.Render(it.Explanation) + "\n")
		b.WriteString(theme.Label.Render("Source: ") + it.Source + "\n")
	}
	return b.String()
}
