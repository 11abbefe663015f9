// Package tutor orchestrates guided lessons: it creates a session from
// generated content and runs the tutoring conversation against it.
package tutor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/tutor/internal/lessons"
	"github.com/abhisek/tutor/internal/parse"
	"github.com/abhisek/tutor/internal/platform/logger"
	"github.com/abhisek/tutor/internal/session"
)

// ContentGenerator produces lesson content and tutor replies.
// *lessons.Service is the production implementation.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, topic string, level lessons.Level) (*lessons.Content, error)
	Reply(ctx context.Context, in lessons.ReplyInput) (string, error)
}

// StartResult is what a new learner receives.
type StartResult struct {
	SessionID string
	Content   lessons.Content
}

// TurnInput carries one student turn. A non-blank QuizAnswer wins over
// Message.
type TurnInput struct {
	Message    string
	QuizAnswer string
}

func (in TurnInput) empty() bool {
	return strings.TrimSpace(in.Message) == "" && strings.TrimSpace(in.QuizAnswer) == ""
}

// TurnResult is the tutor's answer plus the updated session summary.
type TurnResult struct {
	Reply   string
	Summary session.Summary
}

// Service is the session orchestrator.
type Service struct {
	gen   ContentGenerator
	store session.Store
	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(log *logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService wires the orchestrator to a generator and a store.
func NewService(gen ContentGenerator, store session.Store, opts ...Option) *Service {
	s := &Service{
		gen:   gen,
		store: store,
		log:   logger.Nop(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start generates content for topic and stores a new session. Nothing is
// stored when generation or validation fails.
func (s *Service) Start(ctx context.Context, topic, level string) (*StartResult, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrTopicRequired
	}
	lvl, err := lessons.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	content, err := s.gen.GenerateContent(ctx, topic, lvl)
	if err != nil {
		s.log.Warn("content generation failed", "topic", topic, "level", lvl, "error", err)
		return nil, wrapGeneration("generate content", err)
	}

	sess := session.New(s.newID(), topic, lvl, *content, s.now())
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, err
	}

	s.log.Info("session started", "session_id", sess.ID, "topic", topic, "level", lvl)
	return &StartResult{SessionID: sess.ID, Content: sess.Content}, nil
}

// Turn answers one student message or quiz answer. The turn is recorded
// only after the reply is generated, so a failed turn leaves history
// untouched.
func (s *Service) Turn(ctx context.Context, sessionID string, in TurnInput) (*TurnResult, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if in.empty() {
		return nil, ErrEmptyTurn
	}

	turn := session.Turn{
		Message:    strings.TrimSpace(in.Message),
		QuizAnswer: strings.TrimSpace(in.QuizAnswer),
	}

	reply, err := s.gen.Reply(ctx, lessons.ReplyInput{
		Topic:      sess.Topic,
		Level:      sess.StudentLevel,
		Lesson:     sess.Content.Lesson,
		History:    history(sess.Responses),
		Message:    turn.Message,
		QuizAnswer: turn.QuizAnswer,
	})
	if err != nil {
		s.log.Warn("tutor reply failed", "session_id", sessionID, "error", err)
		return nil, wrapGeneration("tutor reply", err)
	}

	turn.Reply = reply
	turn.Timestamp = s.now()

	updated, err := s.store.Append(ctx, sessionID, turn)
	if err != nil {
		return nil, err
	}

	s.log.Debug("turn recorded", "session_id", sessionID, "stage", updated.Stage, "responses", len(updated.Responses))
	return &TurnResult{Reply: reply, Summary: updated.Summary()}, nil
}

// Summary reports a session without modifying it.
func (s *Service) Summary(ctx context.Context, sessionID string) (*session.Summary, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sum := sess.Summary()
	return &sum, nil
}

func history(turns []session.Turn) []lessons.Exchange {
	out := make([]lessons.Exchange, 0, len(turns))
	for _, t := range turns {
		out = append(out, lessons.Exchange{Student: t.Input(), Tutor: t.Reply})
	}
	return out
}

// wrapGeneration leaves malformed-output errors as they are so callers can
// tell a bad model reply from a failed call.
func wrapGeneration(op string, err error) error {
	if errors.Is(err, parse.ErrMalformedOutput) {
		return err
	}
	return &GenerationError{Op: op, Err: err}
}
