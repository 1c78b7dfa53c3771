package chat

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kotoba-ai/kotoba/internal/ui/theme"
)

// View renders the conversation for the given content area.
func (m *Model) View(width, height int) string {
	var b strings.Builder

	body := lipgloss.NewStyle().Width(width - 4)

	for i, msg := range m.transcript {
		if i > 0 {
			b.WriteString("\n")
		}
		if msg.Role == "learner" {
			b.WriteString(theme.LearnerLabel.Render("You"))
		} else {
			b.WriteString(theme.TutorLabel.Render("Tutor"))
		}
		b.WriteString("\n")
		b.WriteString(body.Render(msg.Content))
		b.WriteString("\n")
	}

	switch m.phase {
	case phaseAnalyzing:
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Thinking about your request..."))
	case phaseExplaining:
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Writing the explanation..."))
	case phaseSummarizing:
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Writing a recap..."))
	case phaseRetryable:
		b.WriteString("\n")
		b.WriteString(theme.StatusBad.Render("Something went wrong: " + m.errMsg))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Press Enter to retry, Esc to quit."))
	case phaseDone:
		b.WriteString("\n")
		b.WriteString(theme.StatusGood.Render("Session finished."))
	case phaseAwaitingReply, phaseChatting:
		b.WriteString("\n")
		b.WriteString(m.input.View())
	}

	content := b.String()

	// Keep the tail of long conversations in view.
	lines := strings.Split(content, "\n")
	if len(lines) > height && height > 0 {
		lines = lines[len(lines)-height:]
		content = strings.Join(lines, "\n")
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(content)
}
