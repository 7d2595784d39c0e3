package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"quizforge/internal/ui/theme"
)

// Choice is an option selector for multiple-choice and true/false
// questions. After Submit the options are recolored to reveal the
// correct answer.
type Choice struct {
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewChoice creates a selector over the given options.
func NewChoice(options []string, correctIndex int) Choice {
	return Choice{
		Options:      options,
		CorrectIndex: correctIndex,
		Selected:     0,
		ChosenIndex:  -1,
	}
}

// Update handles keyboard navigation and selection.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Submitted {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Submit()
	}

	return c, nil
}

// Submit locks in the current selection.
func (c *Choice) Submit() {
	c.Submitted = true
	c.ChosenIndex = c.Selected
}

// View renders the options with letter labels.
func (c Choice) View() string {
	var s string
	for i, opt := range c.Options {
		label := string(rune('A' + i))
		prefix := "  "
		if i == c.Selected && !c.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		switch {
		case c.Submitted && i == c.CorrectIndex:
			s += theme.Correct.Render(line) + "\n"
		case c.Submitted && i == c.ChosenIndex:
			s += theme.Incorrect.Render(line) + "\n"
		case c.Submitted:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == c.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}

// IsCorrect reports whether the locked-in choice is the correct one.
func (c Choice) IsCorrect() bool {
	return c.Submitted && c.ChosenIndex == c.CorrectIndex
}
