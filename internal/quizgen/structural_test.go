package quizgen

import (
	"strings"
	"testing"
)

func mcRequest(n int) Request {
	return Request{
		Mode:         ModeTopic,
		Subject:      "cell biology",
		NumQuestions: n,
		QuestionType: TypeMultipleChoice,
		Difficulty:   DifficultyMedium,
	}
}

func mcQuestion(text string) Question {
	return Question{
		Text:        text,
		Options:     []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi apparatus"},
		Answer:      "B",
		Explanation: "Mitochondria produce most of the cell's ATP.",
	}
}

func validMCQuiz(n int) *Quiz {
	quiz := &Quiz{}
	for i := 0; i < n; i++ {
		q := mcQuestion("Which organelle produces ATP? (variant " + string(rune('A'+i)) + ")")
		quiz.Questions = append(quiz.Questions, q)
	}
	return quiz
}

func TestStructural_ValidQuiz(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validMCQuiz(3), mcRequest(3)); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructural_NilQuiz(t *testing.T) {
	v := &StructuralValidator{}
	err := v.Validate(nil, mcRequest(3))
	if err == nil {
		t.Fatal("expected error for nil quiz")
	}
	if len(err.Issues) != 1 || err.Issues[0] != "questions list is empty" {
		t.Errorf("unexpected issues: %v", err.Issues)
	}
}

func TestStructural_EmptyQuestions(t *testing.T) {
	v := &StructuralValidator{}
	err := v.Validate(&Quiz{}, mcRequest(3))
	if err == nil {
		t.Fatal("expected error for empty questions")
	}
}

func TestStructural_CountMismatch(t *testing.T) {
	v := &StructuralValidator{}
	err := v.Validate(validMCQuiz(3), mcRequest(5))
	if err == nil {
		t.Fatal("expected error for count mismatch")
	}
	if !strings.Contains(err.Error(), "expected 5 questions, got 3") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStructural_CountNotCheckedWhenUnset(t *testing.T) {
	v := &StructuralValidator{}
	req := mcRequest(0)
	if err := v.Validate(validMCQuiz(2), req); err != nil {
		t.Fatalf("expected nil with no requested count, got %v", err)
	}
}

func TestStructural_EmptyText(t *testing.T) {
	v := &StructuralValidator{}
	quiz := validMCQuiz(2)
	quiz.Questions[1].Text = "   "
	err := v.Validate(quiz, mcRequest(2))
	if err == nil {
		t.Fatal("expected error for empty text")
	}
	if !strings.Contains(err.Error(), "question 2: text is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStructural_EmptyAnswer(t *testing.T) {
	v := &StructuralValidator{}
	quiz := validMCQuiz(2)
	quiz.Questions[0].Answer = ""
	err := v.Validate(quiz, mcRequest(2))
	if err == nil {
		t.Fatal("expected error for empty answer")
	}
	if !strings.Contains(err.Error(), "question 1: answer is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStructural_DuplicateQuestions(t *testing.T) {
	v := &StructuralValidator{}
	quiz := validMCQuiz(3)
	quiz.Questions[2].Text = strings.ToUpper(quiz.Questions[0].Text)
	err := v.Validate(quiz, mcRequest(3))
	if err == nil {
		t.Fatal("expected error for duplicate question")
	}
	if !strings.Contains(err.Error(), "question 3: duplicate of question 1") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStructural_MCOptionCount(t *testing.T) {
	v := &StructuralValidator{}
	quiz := validMCQuiz(1)
	quiz.Questions[0].Options = []string{"Nucleus", "Mitochondria"}
	err := v.Validate(quiz, mcRequest(1))
	if err == nil {
		t.Fatal("expected error for 2 options")
	}
	if !strings.Contains(err.Error(), "expected 4 options, got 2") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStructural_MCEmptyOption(t *testing.T) {
	v := &StructuralValidator{}
	quiz := validMCQuiz(1)
	quiz.Questions[0].Options[2] = "  "
	err := v.Validate(quiz, mcRequest(1))
	if err == nil {
		t.Fatal("expected error for empty option")
	}
	if !strings.Contains(err.Error(), "option 3 is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStructural_MCDuplicateOption(t *testing.T) {
	v := &StructuralValidator{}
	quiz := validMCQuiz(1)
	quiz.Questions[0].Options[3] = "mitochondria"
	err := v.Validate(quiz, mcRequest(1))
	if err == nil {
		t.Fatal("expected error for duplicate option")
	}
	if !strings.Contains(err.Error(), "duplicate option") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStructural_MCAnswerForms(t *testing.T) {
	valid := []string{"A", "b", "C)", "D.", "Mitochondria", " nucleus "}
	for _, a := range valid {
		quiz := validMCQuiz(1)
		quiz.Questions[0].Answer = a
		if err := (&StructuralValidator{}).Validate(quiz, mcRequest(1)); err != nil {
			t.Errorf("answer %q: unexpected error: %v", a, err)
		}
	}

	invalid := []string{"E", "Z", "Chloroplast", "5"}
	for _, a := range invalid {
		quiz := validMCQuiz(1)
		quiz.Questions[0].Answer = a
		if err := (&StructuralValidator{}).Validate(quiz, mcRequest(1)); err == nil {
			t.Errorf("answer %q: expected error", a)
		}
	}
}

func TestStructural_TrueFalse(t *testing.T) {
	req := Request{
		Mode:         ModeTopic,
		Subject:      "tides",
		NumQuestions: 1,
		QuestionType: TypeTrueFalse,
	}

	for _, a := range []string{"True", "False", "true", "FALSE"} {
		quiz := &Quiz{Questions: []Question{{
			Text:   "The Moon causes ocean tides.",
			Answer: a,
		}}}
		if err := (&StructuralValidator{}).Validate(quiz, req); err != nil {
			t.Errorf("answer %q: unexpected error: %v", a, err)
		}
	}

	quiz := &Quiz{Questions: []Question{{
		Text:   "The Moon causes ocean tides.",
		Answer: "Yes",
	}}}
	err := (&StructuralValidator{}).Validate(quiz, req)
	if err == nil {
		t.Fatal("expected error for non-boolean answer")
	}
	if !strings.Contains(err.Error(), "must be True or False") {
		t.Errorf("unexpected error: %v", err)
	}

	quiz = &Quiz{Questions: []Question{{
		Text:    "The Moon causes ocean tides.",
		Options: []string{"True", "False"},
		Answer:  "True",
	}}}
	if err := (&StructuralValidator{}).Validate(quiz, req); err == nil {
		t.Fatal("expected error for true/false question with options")
	}
}

func TestStructural_OpenEnded(t *testing.T) {
	req := Request{
		Mode:         ModeTopic,
		Subject:      "rivers",
		NumQuestions: 1,
		QuestionType: TypeOpenEnded,
	}

	quiz := &Quiz{Questions: []Question{{
		Text:   "Name the longest river in South America.",
		Answer: "The Amazon",
	}}}
	if err := (&StructuralValidator{}).Validate(quiz, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	quiz.Questions[0].Options = []string{"Amazon", "Nile", "Yangtze", "Congo"}
	if err := (&StructuralValidator{}).Validate(quiz, req); err == nil {
		t.Fatal("expected error for open-ended question with options")
	}
}

func TestStructural_AccumulatesAllIssues(t *testing.T) {
	v := &StructuralValidator{}
	quiz := validMCQuiz(3)
	quiz.Questions[0].Text = ""
	quiz.Questions[1].Answer = ""
	quiz.Questions[2].Options = quiz.Questions[2].Options[:3]

	err := v.Validate(quiz, mcRequest(5))
	if err == nil {
		t.Fatal("expected error")
	}
	// Count mismatch + three per-question violations.
	if len(err.Issues) != 4 {
		t.Errorf("expected 4 issues, got %d: %v", len(err.Issues), err.Issues)
	}
}

func TestAnswerIndex(t *testing.T) {
	options := []string{"Red", "Green", "Blue", "Yellow"}

	tests := []struct {
		answer string
		want   int
	}{
		{"A", 0},
		{"b", 1},
		{"C)", 2},
		{"D.", 3},
		{"Green", 1},
		{"yellow", 3},
		{" Blue ", 2},
		{"E", -1},
		{"Purple", -1},
		{"", -1},
	}
	for _, tt := range tests {
		if got := AnswerIndex(tt.answer, options); got != tt.want {
			t.Errorf("AnswerIndex(%q) = %d, want %d", tt.answer, got, tt.want)
		}
	}
}
