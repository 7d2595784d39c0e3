package play

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"quizforge/internal/quizgen"
	"quizforge/internal/ui/components"
)

type phase int

const (
	phaseAnswering phase = iota
	phaseFeedback
	phaseSummary
)

// playAgainMsg restarts the session from the first question.
type playAgainMsg struct{}

// Model is the root Bubble Tea model for one quiz session.
type Model struct {
	quiz   *quizgen.SavedQuiz
	width  int
	height int

	phase phase
	index int
	kind  Kind

	choice     components.Choice
	input      components.TextInput
	lastAnswer string

	results []bool
	score   int

	showQuitConfirm bool

	startTime time.Time
	duration  time.Duration

	menu components.Menu
}

// New builds the play model for a loaded quiz.
func New(quiz *quizgen.SavedQuiz) Model {
	m := Model{
		quiz:      quiz,
		startTime: time.Now(),
	}
	if len(quiz.Questions) == 0 {
		return m.finish()
	}
	m, _ = m.startQuestion()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.phase == phaseAnswering && m.kind == KindOpenEnded {
		return m.input.Init()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case playAgainMsg:
		restarted := New(m.quiz)
		restarted.width = m.width
		restarted.height = m.height
		return restarted, restarted.Init()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	// Forward remaining messages (cursor blink) to the text input.
	if m.phase == phaseAnswering && m.kind == KindOpenEnded {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	// Quit confirmation dialog.
	if m.showQuitConfirm {
		switch key {
		case "y", "Y":
			return m, tea.Quit
		case "n", "N", "esc":
			m.showQuitConfirm = false
		}
		return m, nil
	}

	switch m.phase {
	case phaseSummary:
		switch key {
		case "q", "esc":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd

	case phaseFeedback:
		// Open-ended answers are self-assessed before advancing.
		if m.kind == KindOpenEnded {
			switch key {
			case "y", "Y":
				m.results = append(m.results, true)
				m.score++
				return m.advance()
			case "n", "N":
				m.results = append(m.results, false)
				return m.advance()
			}
			return m, nil
		}
		return m.advance()
	}

	// Active question phase.
	switch key {
	case "esc":
		m.showQuitConfirm = true
		return m, nil
	case "enter":
		return m.submitAnswer()
	}

	if m.kind == KindOpenEnded {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	// Choice questions: number keys select and submit directly.
	switch key {
	case "1", "2", "3", "4":
		i := int(key[0] - '1')
		if i < len(m.choice.Options) {
			m.choice.Selected = i
			return m.submitAnswer()
		}
	default:
		var cmd tea.Cmd
		m.choice, cmd = m.choice.Update(msg)
		return m, cmd
	}

	return m, nil
}

// submitAnswer locks in the current answer and moves to feedback.
func (m Model) submitAnswer() (Model, tea.Cmd) {
	if m.kind == KindOpenEnded {
		answer := strings.TrimSpace(m.input.Value())
		if answer == "" {
			return m, nil
		}
		m.lastAnswer = answer
		m.phase = phaseFeedback
		return m, nil
	}

	m.choice.Submit()
	correct := m.choice.IsCorrect()
	m.results = append(m.results, correct)
	if correct {
		m.score++
	}
	m.phase = phaseFeedback
	return m, nil
}

// advance moves to the next question or to the summary.
func (m Model) advance() (Model, tea.Cmd) {
	m.index++
	if m.index >= len(m.quiz.Questions) {
		return m.finish(), nil
	}
	m.phase = phaseAnswering
	return m.startQuestion()
}

// startQuestion prepares the input component for the current question.
func (m Model) startQuestion() (Model, tea.Cmd) {
	q := m.quiz.Questions[m.index]
	m.kind = kindOf(q)

	switch m.kind {
	case KindMultipleChoice:
		m.choice = components.NewChoice(q.Options, quizgen.AnswerIndex(q.Answer, q.Options))
	case KindTrueFalse:
		m.choice = components.NewChoice(trueFalseOptions, trueFalseIndex(q.Answer))
	case KindOpenEnded:
		m.input = components.NewTextInput("Type your answer...", 200)
		return m, m.input.Init()
	}
	return m, nil
}

// finish switches to the summary phase.
func (m Model) finish() Model {
	m.phase = phaseSummary
	m.duration = time.Since(m.startTime)
	m.menu = components.NewMenu([]components.MenuItem{
		{Label: "Play again", Action: func() tea.Cmd {
			return func() tea.Msg { return playAgainMsg{} }
		}},
		{Label: "Exit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return m
}

// Run starts the interactive session for a loaded quiz.
func Run(quiz *quizgen.SavedQuiz) error {
	p := tea.NewProgram(New(quiz))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run quiz session: %w", err)
	}
	return nil
}
