package lesson

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutor/internal/lessons"
	"github.com/abhisek/tutor/internal/tutor"
)

type fakeTurner struct {
	inputs []tutor.TurnInput
	err    error
}

func (f *fakeTurner) Turn(_ context.Context, id string, in tutor.TurnInput) (*tutor.TurnResult, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &tutor.TurnResult{Reply: "reply to " + in.QuizAnswer + in.Message}, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testContent() lessons.Content {
	return lessons.Content{
		Quiz: lessons.Quiz{Questions: []lessons.Question{
			{Question: "Which equals 1/2?", Options: []string{"1/3", "2/4", "3/5", "1/4"}, Correct: "2/4", Explanation: "2/4 simplifies to 1/2."},
			{Question: "Top number?", Options: []string{"numerator", "denominator", "whole", "ratio"}, Correct: "numerator", Explanation: "It counts parts."},
		}},
	}
}

// run executes cmd and feeds its message back, as the tea runtime would.
func run(t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	_, next := m.Update(cmd())
	return next
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(keyPress(r))
	}
}

func TestLesson_QuizAnswersBecomeTurns(t *testing.T) {
	f := &fakeTurner{}
	m := New(t.Context(), f, "s1", testContent())

	m.Update(specialKey(tea.KeyDown))
	_, cmd := m.Update(specialKey(tea.KeyEnter))
	if !m.waiting {
		t.Fatal("expected the screen to wait for the tutor")
	}
	run(t, m, cmd)

	if len(f.inputs) != 1 || f.inputs[0].QuizAnswer != "2/4" {
		t.Fatalf("expected quiz answer 2/4, got %+v", f.inputs)
	}
	if m.current != 1 || m.correct != 1 {
		t.Fatalf("expected question 2 with 1 correct, got current=%d correct=%d", m.current, m.correct)
	}

	// Number keys pick and submit directly.
	_, cmd = m.Update(keyPress('2'))
	run(t, m, cmd)

	if f.inputs[1].QuizAnswer != "denominator" {
		t.Fatalf("expected denominator, got %q", f.inputs[1].QuizAnswer)
	}
	if m.phase != phaseChat {
		t.Fatal("expected dialogue after the last question")
	}
	if m.correct != 1 {
		t.Fatalf("expected 1 correct, got %d", m.correct)
	}
	if view := m.render(); !strings.Contains(view, "Quiz: 1/2 correct") {
		t.Errorf("expected score line in view:\n%s", view)
	}
}

func TestLesson_KeysIgnoredWhileWaiting(t *testing.T) {
	f := &fakeTurner{}
	m := New(t.Context(), f, "s1", testContent())

	m.Update(specialKey(tea.KeyEnter))
	_, cmd := m.Update(keyPress('3'))
	if cmd != nil {
		t.Fatal("expected no command while a turn is in flight")
	}
	if m.current != 0 {
		t.Fatalf("expected to stay on question 1, got %d", m.current)
	}
}

func TestLesson_DialogueSendsMessages(t *testing.T) {
	f := &fakeTurner{}
	m := New(t.Context(), f, "s1", lessons.Content{})
	if m.phase != phaseChat {
		t.Fatal("expected dialogue when the lesson has no questions")
	}

	typeText(m, "why?")
	_, cmd := m.Update(specialKey(tea.KeyEnter))
	run(t, m, cmd)

	if len(f.inputs) != 1 || f.inputs[0].Message != "why?" {
		t.Fatalf("expected message why?, got %+v", f.inputs)
	}
	if m.input.Value() != "" {
		t.Errorf("expected input cleared, got %q", m.input.Value())
	}
	if view := m.render(); !strings.Contains(view, "reply to why?") {
		t.Errorf("expected reply in view:\n%s", view)
	}
}

func TestLesson_BlankMessageNotSent(t *testing.T) {
	f := &fakeTurner{}
	m := New(t.Context(), f, "s1", lessons.Content{})

	typeText(m, "   ")
	_, cmd := m.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("expected no command for a blank message")
	}
	if len(f.inputs) != 0 {
		t.Fatalf("expected no turns, got %d", len(f.inputs))
	}
}

func TestLesson_ExitQuits(t *testing.T) {
	m := New(t.Context(), &fakeTurner{}, "s1", lessons.Content{})

	typeText(m, "Exit")
	_, cmd := m.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestLesson_EscQuitsDuringQuiz(t *testing.T) {
	m := New(t.Context(), &fakeTurner{}, "s1", testContent())

	_, cmd := m.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestLesson_TurnErrorShownAndQuizContinues(t *testing.T) {
	f := &fakeTurner{err: errors.New("upstream down")}
	m := New(t.Context(), f, "s1", testContent())

	_, cmd := m.Update(keyPress('1'))
	run(t, m, cmd)

	if m.current != 1 {
		t.Fatalf("expected to move to question 2, got %d", m.current)
	}
	if view := m.render(); !strings.Contains(view, "upstream down") {
		t.Errorf("expected error in view:\n%s", view)
	}
}

func TestLesson_TranscriptBounded(t *testing.T) {
	m := New(t.Context(), &fakeTurner{}, "s1", lessons.Content{})
	for range maxTranscript * 2 {
		typeText(m, "q")
		_, cmd := m.Update(specialKey(tea.KeyEnter))
		run(t, m, cmd)
	}
	if len(m.transcript) != maxTranscript {
		t.Fatalf("expected %d entries, got %d", maxTranscript, len(m.transcript))
	}
}
