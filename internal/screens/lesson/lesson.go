// Package lesson is the interactive terminal screen for one tutoring
// session: the lesson's quiz questions first, then free dialogue.
package lesson

import (
	"context"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutor/internal/lessons"
	"github.com/abhisek/tutor/internal/tutor"
	"github.com/abhisek/tutor/internal/ui/components"
	"github.com/abhisek/tutor/internal/ui/render"
)

// maxTranscript bounds how many past entries stay on screen.
const maxTranscript = 8

// Turner is the slice of the orchestrator the screen needs.
type Turner interface {
	Turn(ctx context.Context, sessionID string, in tutor.TurnInput) (*tutor.TurnResult, error)
}

type phase int

const (
	phaseQuiz phase = iota
	phaseChat
)

// entry is one line block in the transcript.
type entry struct {
	kind entryKind
	text string
}

type entryKind int

const (
	entryFeedback entryKind = iota
	entryLearner
	entryTutor
	entryError
	entryNotice
)

// Model drives one session. It quits on ctrl+c, esc, or "exit"/"quit" typed
// during dialogue.
type Model struct {
	ctx       context.Context
	tutor     Turner
	sessionID string
	questions []lessons.Question

	phase   phase
	current int
	correct int
	waiting bool

	choice components.MultiChoice
	input  components.TextInput

	transcript []entry
}

// New builds the screen for a started session.
func New(ctx context.Context, t Turner, sessionID string, content lessons.Content) *Model {
	m := &Model{
		ctx:       ctx,
		tutor:     t,
		sessionID: sessionID,
		questions: content.Quiz.Questions,
	}
	if len(m.questions) == 0 {
		m.startChat()
	} else {
		m.choice = newChoice(m.questions[0])
	}
	return m
}

func newChoice(q lessons.Question) components.MultiChoice {
	return components.NewMultiChoice(q.Question, q.Options, slices.Index(q.Options, q.Correct))
}

func (m *Model) Init() tea.Cmd {
	if m.phase == phaseChat {
		return m.input.Init()
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case turnDoneMsg:
		return m, m.handleTurnDone(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
		if m.waiting {
			return m, nil
		}
		if m.phase == phaseQuiz {
			return m, m.handleQuizKey(msg)
		}
		return m, m.handleChatKey(msg)
	}

	if m.phase == phaseChat {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleQuizKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.choice, cmd = m.choice.Update(msg)
	if !m.choice.Submitted {
		return cmd
	}

	q := m.questions[m.current]
	answer := m.choice.Chosen()
	if m.choice.IsCorrect() {
		m.correct++
	}
	m.push(entryFeedback, render.Feedback(answer, q))
	return m.send(tutor.TurnInput{QuizAnswer: answer})
}

func (m *Model) handleChatKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	text := m.input.Value()
	switch {
	case text == "":
		return nil
	case strings.EqualFold(text, "exit"), strings.EqualFold(text, "quit"):
		return tea.Quit
	}
	m.push(entryLearner, text)
	m.input = newInput()
	return m.send(tutor.TurnInput{Message: text})
}

// send runs one orchestrator turn off the update loop.
func (m *Model) send(in tutor.TurnInput) tea.Cmd {
	m.waiting = true
	ctx, t, id := m.ctx, m.tutor, m.sessionID
	return func() tea.Msg {
		res, err := t.Turn(ctx, id, in)
		if err != nil {
			return turnDoneMsg{Err: err}
		}
		return turnDoneMsg{Reply: res.Reply}
	}
}

func (m *Model) handleTurnDone(msg turnDoneMsg) tea.Cmd {
	m.waiting = false
	if msg.Err != nil {
		m.push(entryError, msg.Err.Error())
	} else {
		m.push(entryTutor, msg.Reply)
	}

	if m.phase != phaseQuiz {
		return nil
	}
	m.current++
	if m.current < len(m.questions) {
		m.choice = newChoice(m.questions[m.current])
		return nil
	}
	m.startChat()
	return m.input.Init()
}

func (m *Model) startChat() {
	m.phase = phaseChat
	m.input = newInput()
	if n := len(m.questions); n > 0 {
		m.push(entryNotice, scoreLine(m.correct, n))
	}
}

func newInput() components.TextInput {
	return components.NewTextInput("Ask the tutor anything about this topic...", 500)
}

func (m *Model) push(kind entryKind, text string) {
	m.transcript = append(m.transcript, entry{kind: kind, text: text})
	if over := len(m.transcript) - maxTranscript; over > 0 {
		m.transcript = m.transcript[over:]
	}
}
