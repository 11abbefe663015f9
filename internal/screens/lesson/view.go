package lesson

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutor/internal/ui/render"
	"github.com/abhisek/tutor/internal/ui/theme"
)

func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	var b strings.Builder

	for _, e := range m.transcript {
		b.WriteString(renderEntry(e))
		b.WriteString("\n")
	}
	if len(m.transcript) > 0 {
		b.WriteString("\n")
	}

	switch {
	case m.waiting:
		b.WriteString(theme.Hint.Render("The tutor is thinking..."))
		b.WriteString("\n")
	case m.phase == phaseQuiz:
		b.WriteString(theme.Section.Render(fmt.Sprintf("Question %d/%d", m.current+1, len(m.questions))))
		b.WriteString("\n")
		b.WriteString(m.choice.View())
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("↑↓ or 1-4 to choose • Enter to answer • Esc to quit"))
		b.WriteString("\n")
	default:
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(`Enter to send • "exit" or Esc to finish`))
		b.WriteString("\n")
	}
	return b.String()
}

func renderEntry(e entry) string {
	switch e.kind {
	case entryLearner:
		return theme.Label.Render("You: ") + theme.Body.Render(e.text)
	case entryTutor:
		return render.Reply(e.text)
	case entryError:
		return theme.Incorrect.Render("tutor: " + e.text)
	case entryNotice:
		return theme.Section.Render(e.text)
	default:
		return e.text
	}
}

func scoreLine(correct, total int) string {
	return fmt.Sprintf("── Quiz: %d/%d correct ──", correct, total)
}
