package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"quizforge/internal/ui/components"
	"quizforge/internal/ui/layout"
	"quizforge/internal/ui/theme"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(truncate(m.quiz.Subject, 40), m.status(), m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)

	var content string
	switch {
	case m.showQuitConfirm:
		content = renderQuitConfirm(m.width)
	case m.phase == phaseSummary:
		content = m.renderSummary(m.width)
	case m.phase == phaseFeedback:
		content = m.renderFeedback(m.width)
	default:
		content = m.renderQuestion(m.width)
	}

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// status is the header's right-hand side: score and question counter.
func (m Model) status() string {
	total := len(m.quiz.Questions)
	if m.phase == phaseSummary {
		return fmt.Sprintf("Score %d/%d", m.score, total)
	}
	return fmt.Sprintf("✓ %d   Q %d/%d", m.score, m.index+1, total)
}

func (m Model) keyHints() []layout.KeyHint {
	if m.showQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep playing"},
		}
	}

	switch m.phase {
	case phaseSummary:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case phaseFeedback:
		if m.kind == KindOpenEnded {
			return []layout.KeyHint{
				{Key: "Y", Description: "I was right"},
				{Key: "N", Description: "I was wrong"},
			}
		}
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}

	if m.kind == KindOpenEnded {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}

	pick := "1-4"
	if m.kind == KindTrueFalse {
		pick = "1-2"
	}
	return []layout.KeyHint{
		{Key: pick, Description: "Pick"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

// renderQuestion renders the active question display.
func (m Model) renderQuestion(width int) string {
	q := m.quiz.Questions[m.index]

	var b strings.Builder

	bar := components.NewProgressBar("Progress", m.index, len(m.quiz.Questions), min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(q.Text))
	b.WriteString("\n\n")

	if m.kind == KindOpenEnded {
		answerLine := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + m.input.View())
		b.WriteString(answerLine)
		return b.String()
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, m.choice.View()))

	hint := "Select (1-4) or use arrows + Enter"
	if m.kind == KindTrueFalse {
		hint = "Select (1-2) or use arrows + Enter"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n" + hint))

	return b.String()
}

// renderFeedback renders the answer reveal.
func (m Model) renderFeedback(width int) string {
	q := m.quiz.Questions[m.index]

	var b strings.Builder
	b.WriteString("\n")

	if m.kind == KindOpenEnded {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Bold(true).
			Render(q.Text))
		b.WriteString("\n\n")

		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Render("Your answer: " + m.lastAnswer))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("Model answer: " + q.Answer))
		b.WriteString("\n\n")
	} else {
		if m.results[m.index] {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Success).
				Bold(true).
				Render("Correct!"))
		} else {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Error).
				Bold(true).
				Render("Not quite"))
		}
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, m.choice.View()))
		b.WriteString("\n")
	}

	if q.Explanation != "" {
		exp := theme.Card.Width(min(width-8, 70)).Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	if m.kind == KindOpenEnded {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Did you get it right?  [Y] Yes   [N] No")))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Press any key to continue...")))
	}

	return b.String()
}

// renderQuitConfirm renders the leave confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this quiz?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Your progress will be lost."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep playing"))

	return b.String()
}

// renderSummary renders the final score screen.
func (m Model) renderSummary(width int) string {
	total := len(m.quiz.Questions)

	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Quiz complete!"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(m.quiz.Subject))
	b.WriteString("\n\n")

	mins := int(m.duration.Minutes())
	secs := int(m.duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	accuracy := 0.0
	if total > 0 {
		accuracy = float64(m.score) / float64(total)
	}
	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		total, m.score, accuracy*100)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for i, q := range m.quiz.Questions {
		marker := theme.Incorrect.Render("✗")
		if i < len(m.results) && m.results[i] {
			marker = theme.Correct.Render("✓")
		}
		line := fmt.Sprintf("%s  %2d. %s", marker, i+1, truncate(q.Text, min(width-16, 64)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, m.menu.View()))

	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
