package tutor

import (
	"errors"
	"fmt"
)

var (
	// ErrTopicRequired is returned by Start for a blank topic.
	ErrTopicRequired = errors.New("topic is required")

	// ErrEmptyTurn is returned by Turn when neither a message nor a quiz
	// answer is present.
	ErrEmptyTurn = errors.New("message or quizAnswer is required")
)

// GenerationError wraps a provider failure during Start or Turn. The
// classified llm error stays reachable through errors.As.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
