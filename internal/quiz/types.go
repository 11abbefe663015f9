// Package quiz generates stand-alone exam practice quizzes. It keeps no
// state between calls.
package quiz

import "errors"

var (
	ErrTopicRequired = errors.New("topic is required")
	ErrExamRequired  = errors.New("exam is required")
)

// Item is one multiple-choice exam question. CorrectAnswer indexes Choices.
type Item struct {
	Question      string   `json:"question"`
	Choices       []string `json:"choices"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Source        string   `json:"source"`
}

// quizOutput is the object the model is asked to return.
type quizOutput struct {
	Questions []Item `json:"questions"`
}
