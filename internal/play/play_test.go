package play

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"quizforge/internal/quizgen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want play.Model", updated)
	}
	return next, cmd
}

func choiceQuiz() *quizgen.SavedQuiz {
	return &quizgen.SavedQuiz{
		Mode:    quizgen.ModeTopic,
		Subject: "astronomy",
		Quiz: quizgen.Quiz{
			Questions: []quizgen.Question{
				{
					Text:        "Which planet is closest to the sun?",
					Options:     []string{"Venus", "Mercury", "Earth", "Mars"},
					Answer:      "B",
					Explanation: "Mercury orbits closest.",
				},
				{
					Text:        "The sun is a star.",
					Answer:      "True",
					Explanation: "A G-type main-sequence star.",
				},
			},
		},
	}
}

func openQuiz() *quizgen.SavedQuiz {
	return &quizgen.SavedQuiz{
		Mode:    quizgen.ModeTopic,
		Subject: "biology",
		Quiz: quizgen.Quiz{
			Questions: []quizgen.Question{
				{
					Text:        "Name the process plants use to make glucose.",
					Answer:      "Photosynthesis",
					Explanation: "Light energy fixes carbon dioxide.",
				},
			},
		},
	}
}

func TestKindInference(t *testing.T) {
	tests := []struct {
		name string
		q    quizgen.Question
		want Kind
	}{
		{"options mean multiple choice", quizgen.Question{Options: []string{"a", "b"}, Answer: "A"}, KindMultipleChoice},
		{"true answer", quizgen.Question{Answer: "True"}, KindTrueFalse},
		{"false answer lowercase", quizgen.Question{Answer: "false"}, KindTrueFalse},
		{"free text answer", quizgen.Question{Answer: "Photosynthesis"}, KindOpenEnded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kindOf(tt.q); got != tt.want {
				t.Errorf("kindOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrueFalseIndex(t *testing.T) {
	if got := trueFalseIndex("True"); got != 0 {
		t.Errorf("trueFalseIndex(True) = %d, want 0", got)
	}
	if got := trueFalseIndex("false"); got != 1 {
		t.Errorf("trueFalseIndex(false) = %d, want 1", got)
	}
}

func TestDigitSelectsAndGrades(t *testing.T) {
	m := New(choiceQuiz())
	if m.kind != KindMultipleChoice {
		t.Fatalf("kind = %v, want multiple choice", m.kind)
	}

	// 2 picks Mercury, the correct option.
	m, _ = update(t, m, keyPress('2'))
	if m.phase != phaseFeedback {
		t.Fatalf("phase = %v, want feedback", m.phase)
	}
	if len(m.results) != 1 || !m.results[0] {
		t.Errorf("results = %v, want [true]", m.results)
	}
	if m.score != 1 {
		t.Errorf("score = %d, want 1", m.score)
	}
}

func TestWrongChoiceGradedIncorrect(t *testing.T) {
	m := New(choiceQuiz())

	m, _ = update(t, m, keyPress('1')) // Venus
	if m.phase != phaseFeedback {
		t.Fatalf("phase = %v, want feedback", m.phase)
	}
	if len(m.results) != 1 || m.results[0] {
		t.Errorf("results = %v, want [false]", m.results)
	}
	if m.score != 0 {
		t.Errorf("score = %d, want 0", m.score)
	}
}

func TestArrowNavigationAndEnter(t *testing.T) {
	m := New(choiceQuiz())

	m, _ = update(t, m, keyPress('j'))
	m, _ = update(t, m, specialKey(tea.KeyEnter))

	if m.phase != phaseFeedback {
		t.Fatalf("phase = %v, want feedback", m.phase)
	}
	if !m.results[0] {
		t.Error("expected second option to be correct")
	}
}

func TestFeedbackAdvancesToNextQuestion(t *testing.T) {
	m := New(choiceQuiz())

	m, _ = update(t, m, keyPress('2'))
	m, _ = update(t, m, keyPress(' ')) // dismiss feedback

	if m.phase != phaseAnswering {
		t.Fatalf("phase = %v, want answering", m.phase)
	}
	if m.index != 1 {
		t.Errorf("index = %d, want 1", m.index)
	}
	if m.kind != KindTrueFalse {
		t.Errorf("kind = %v, want true/false", m.kind)
	}
}

func TestTrueFalseGrading(t *testing.T) {
	m := New(choiceQuiz())
	m, _ = update(t, m, keyPress('2'))
	m, _ = update(t, m, keyPress(' '))

	// 1 picks True.
	m, _ = update(t, m, keyPress('1'))
	if m.phase != phaseFeedback {
		t.Fatalf("phase = %v, want feedback", m.phase)
	}
	if len(m.results) != 2 || !m.results[1] {
		t.Errorf("results = %v, want [true true]", m.results)
	}
	if m.score != 2 {
		t.Errorf("score = %d, want 2", m.score)
	}
}

func TestSummaryAfterLastQuestion(t *testing.T) {
	m := New(choiceQuiz())
	m, _ = update(t, m, keyPress('2'))
	m, _ = update(t, m, keyPress(' '))
	m, _ = update(t, m, keyPress('1'))
	m, _ = update(t, m, keyPress(' '))

	if m.phase != phaseSummary {
		t.Fatalf("phase = %v, want summary", m.phase)
	}
	if len(m.menu.Items) != 2 {
		t.Errorf("menu items = %d, want 2", len(m.menu.Items))
	}
	if got := m.status(); got != "Score 2/2" {
		t.Errorf("status = %q, want %q", got, "Score 2/2")
	}
}

func TestOpenEndedSelfAssessment(t *testing.T) {
	m := New(openQuiz())
	if m.kind != KindOpenEnded {
		t.Fatalf("kind = %v, want open-ended", m.kind)
	}

	m.input.Model.SetValue("photosynthesis")
	m, _ = update(t, m, specialKey(tea.KeyEnter))
	if m.phase != phaseFeedback {
		t.Fatalf("phase = %v, want feedback", m.phase)
	}

	// Self-assess as correct.
	m, _ = update(t, m, keyPress('y'))
	if m.phase != phaseSummary {
		t.Fatalf("phase = %v, want summary", m.phase)
	}
	if m.score != 1 {
		t.Errorf("score = %d, want 1", m.score)
	}
}

func TestOpenEndedSelfAssessmentMissed(t *testing.T) {
	m := New(openQuiz())
	m.input.Model.SetValue("respiration")
	m, _ = update(t, m, specialKey(tea.KeyEnter))

	m, _ = update(t, m, keyPress('n'))
	if m.phase != phaseSummary {
		t.Fatalf("phase = %v, want summary", m.phase)
	}
	if m.score != 0 {
		t.Errorf("score = %d, want 0", m.score)
	}
	if len(m.results) != 1 || m.results[0] {
		t.Errorf("results = %v, want [false]", m.results)
	}
}

func TestOpenEndedEmptySubmitIgnored(t *testing.T) {
	m := New(openQuiz())
	m, _ = update(t, m, specialKey(tea.KeyEnter))
	if m.phase != phaseAnswering {
		t.Errorf("phase = %v, want answering (empty answer must not submit)", m.phase)
	}
}

func TestQuitConfirm(t *testing.T) {
	m := New(choiceQuiz())

	m, _ = update(t, m, specialKey(tea.KeyEscape))
	if !m.showQuitConfirm {
		t.Fatal("expected quit confirmation dialog")
	}

	m, _ = update(t, m, keyPress('n'))
	if m.showQuitConfirm {
		t.Error("expected quit confirmation to be dismissed")
	}
	if m.phase != phaseAnswering {
		t.Errorf("phase = %v, want answering", m.phase)
	}
}

func TestQuitConfirmYes(t *testing.T) {
	m := New(choiceQuiz())

	m, _ = update(t, m, specialKey(tea.KeyEscape))
	_, cmd := update(t, m, keyPress('y'))
	if cmd == nil {
		t.Error("expected a quit command after confirmation")
	}
}

func TestPlayAgainResets(t *testing.T) {
	m := New(choiceQuiz())
	m, _ = update(t, m, keyPress('2'))
	m, _ = update(t, m, keyPress(' '))
	m, _ = update(t, m, keyPress('1'))
	m, _ = update(t, m, keyPress(' '))
	if m.phase != phaseSummary {
		t.Fatalf("phase = %v, want summary", m.phase)
	}

	// "Play again" is the first menu item.
	m, cmd := update(t, m, specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command from menu selection")
	}
	m, _ = update(t, m, cmd())

	if m.phase != phaseAnswering {
		t.Fatalf("phase = %v, want answering after replay", m.phase)
	}
	if m.index != 0 || m.score != 0 || len(m.results) != 0 {
		t.Errorf("index/score/results = %d/%d/%v, want fresh state", m.index, m.score, m.results)
	}
}

func TestWindowSizeStored(t *testing.T) {
	m := New(choiceQuiz())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.width != 100 || m.height != 40 {
		t.Errorf("size = %dx%d, want 100x40", m.width, m.height)
	}
}

func TestEmptyQuizGoesStraightToSummary(t *testing.T) {
	m := New(&quizgen.SavedQuiz{Subject: "empty"})
	if m.phase != phaseSummary {
		t.Errorf("phase = %v, want summary for empty quiz", m.phase)
	}
}

func TestQuestionViewShowsOptions(t *testing.T) {
	m := New(choiceQuiz())
	view := m.renderQuestion(80)
	if !strings.Contains(view, "Which planet is closest to the sun?") {
		t.Error("expected view to contain the question text")
	}
	if !strings.Contains(view, "Mercury") {
		t.Error("expected view to contain the options")
	}
}

func TestFeedbackViewShowsExplanation(t *testing.T) {
	m := New(choiceQuiz())
	m, _ = update(t, m, keyPress('1'))

	view := m.renderFeedback(80)
	if !strings.Contains(view, "Not quite") {
		t.Error("expected verdict in feedback view")
	}
	if !strings.Contains(view, "Mercury orbits closest.") {
		t.Error("expected explanation in feedback view")
	}
}

func TestSummaryViewListsQuestions(t *testing.T) {
	m := New(choiceQuiz())
	m, _ = update(t, m, keyPress('2'))
	m, _ = update(t, m, keyPress(' '))
	m, _ = update(t, m, keyPress('1'))
	m, _ = update(t, m, keyPress(' '))

	view := m.renderSummary(80)
	if !strings.Contains(view, "Quiz complete!") {
		t.Error("expected summary title")
	}
	if !strings.Contains(view, "astronomy") {
		t.Error("expected subject in summary")
	}
	if !strings.Contains(view, "Play again") {
		t.Error("expected menu in summary")
	}
}
