package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/tutor/internal/lessons"
	"github.com/abhisek/tutor/internal/quiz"
)

func TestContent_IncludesEverySection(t *testing.T) {
	out := Content("fractions", lessons.LevelBeginner, lessons.Content{
		Hook:   lessons.Hook{Title: "Pizza", Description: "Share a pizza.", Question: "How much each?"},
		Lesson: lessons.Lesson{Title: "What is a fraction", Concepts: []string{"numerator", "denominator"}, Explanation: "Parts of a whole.", Examples: []lessons.Example{{Problem: "2/8", Solution: "1/4", Explanation: "Divide by 2."}}},
	})

	for _, want := range []string{"fractions (beginner)", "Pizza", "How much each?", "numerator", "Example 1", "Divide by 2."} {
		assert.Contains(t, out, want)
	}
}

func TestFeedback(t *testing.T) {
	q := lessons.Question{Options: []string{"a", "b", "c", "d"}, Correct: "b", Explanation: "because"}
	assert.Contains(t, Feedback("B", q), "Correct")
	assert.Contains(t, Feedback("c", q), "Answer: b")
}

func TestQuizItems(t *testing.T) {
	out := QuizItems("optics", "JEE", []quiz.Item{{
		Question: "Focal length?", Choices: []string{"f", "2f", "f/2", "0"}, CorrectAnswer: 1,
		Explanation: "Mirror formula.", Source: "Mock question for JEE",
	}})
	assert.Contains(t, out, "JEE quiz: optics")
	assert.Contains(t, out, "B) 2f")
	assert.Contains(t, out, "Mock question for JEE")
}
