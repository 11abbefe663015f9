// Package session holds per-learner tutoring state and the stores that keep
// it.
package session

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/tutor/internal/lessons"
)

var (
	// ErrNotFound is returned for ids that were never created, have expired,
	// or were evicted.
	ErrNotFound = errors.New("session not found")

	// ErrExists is returned when creating a session whose id is taken.
	ErrExists = errors.New("session already exists")
)

// Stage is the advisory phase of the learning flow. It is recorded from the
// turns a client sends and never used to reject one.
type Stage string

const (
	StageHook     Stage = "hook"
	StageLesson   Stage = "lesson"
	StageQuiz     Stage = "quiz"
	StageDialogue Stage = "dialogue"
)

// Session is the server-side record for one learner's lesson.
type Session struct {
	ID           string          `json:"id"`
	Topic        string          `json:"topic"`
	StudentLevel lessons.Level   `json:"studentLevel"`
	Content      lessons.Content `json:"content"`
	Progress     int             `json:"progress"`
	Stage        Stage           `json:"stage"`
	Responses    []Turn          `json:"responses"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Turn is one student message or quiz answer and the tutor's reply.
type Turn struct {
	Message    string    `json:"message,omitempty"`
	QuizAnswer string    `json:"quizAnswer,omitempty"`
	Reply      string    `json:"reply"`
	Timestamp  time.Time `json:"timestamp"`
}

// IsQuizAnswer reports whether the turn answers a quiz question.
func (t Turn) IsQuizAnswer() bool {
	return strings.TrimSpace(t.QuizAnswer) != ""
}

// Stage is the stage a turn implies.
func (t Turn) Stage() Stage {
	if t.IsQuizAnswer() {
		return StageQuiz
	}
	return StageDialogue
}

// Input is the text the student sent, whichever field carried it.
func (t Turn) Input() string {
	if t.IsQuizAnswer() {
		return t.QuizAnswer
	}
	return t.Message
}

// New builds a fresh session at the hook stage.
func New(id, topic string, level lessons.Level, content lessons.Content, now time.Time) *Session {
	return &Session{
		ID:           id,
		Topic:        topic,
		StudentLevel: level,
		Content:      content,
		Stage:        StageHook,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// apply appends t and advances the advisory stage.
func (s *Session) apply(t Turn) {
	s.Responses = append(s.Responses, t)
	s.Stage = t.Stage()
	s.UpdatedAt = t.Timestamp
}

// Clone returns a copy whose response history can be read without holding
// any store lock. Content is immutable after creation and is shared.
func (s *Session) Clone() *Session {
	c := *s
	c.Responses = slices.Clone(s.Responses)
	return &c
}

// Summary is the read-only view returned by the session endpoint.
type Summary struct {
	Topic         string        `json:"topic"`
	StudentLevel  lessons.Level `json:"studentLevel"`
	Progress      int           `json:"progress"`
	ResponseCount int           `json:"responses"`
	Stage         Stage         `json:"stage"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Summary reports the session without its content or history.
func (s *Session) Summary() Summary {
	return Summary{
		Topic:         s.Topic,
		StudentLevel:  s.StudentLevel,
		Progress:      s.Progress,
		ResponseCount: len(s.Responses),
		Stage:         s.Stage,
		CreatedAt:     s.CreatedAt,
	}
}
