package lessons

import (
	"errors"
	"fmt"
	"strings"
)

// Level is the student's self-reported proficiency.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// ErrInvalidLevel is returned by ParseLevel for anything outside the three
// known levels.
var ErrInvalidLevel = errors.New("invalid student level")

// ParseLevel normalizes a level string. Empty input means beginner.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case "":
		return LevelBeginner, nil
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return l, nil
	default:
		return "", fmt.Errorf("%w: %q (want beginner, intermediate or advanced)", ErrInvalidLevel, s)
	}
}

// Content is the bundle generated once per session: a hook to spark
// interest, the lesson itself and a short multiple-choice check.
type Content struct {
	Hook   Hook   `json:"hook"`
	Lesson Lesson `json:"lesson"`
	Quiz   Quiz   `json:"quiz"`
}

// Hook is a real-world scenario or fact that opens the lesson.
type Hook struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Question    string `json:"question"`
}

// Lesson is the structured explanation of the topic.
type Lesson struct {
	Title       string    `json:"title"`
	Concepts    []string  `json:"concepts"`
	Explanation string    `json:"explanation"`
	Examples    []Example `json:"examples,omitempty"`
}

// Example is a worked problem.
type Example struct {
	Problem     string `json:"problem"`
	Solution    string `json:"solution"`
	Explanation string `json:"explanation"`
}

// Quiz is the multiple-choice check embedded in the bundle.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Question is one multiple-choice item. Correct holds the text of the right
// option, not its index.
type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     string   `json:"correct"`
	Explanation string   `json:"explanation"`
}

// Exchange is one prior student turn and the tutor's reply to it.
type Exchange struct {
	Student string
	Tutor   string
}

// ReplyInput holds everything the tutor needs to answer one turn.
// Exactly one of Message and QuizAnswer is expected to be set; a quiz answer
// takes precedence.
type ReplyInput struct {
	Topic      string
	Level      Level
	Lesson     Lesson
	History    []Exchange
	Message    string
	QuizAnswer string
}
