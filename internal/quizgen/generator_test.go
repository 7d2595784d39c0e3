package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"quizforge/internal/llm"
)

func mcQuizJSON() json.RawMessage {
	return json.RawMessage(`{
		"questions": [
			{
				"question": "Which organelle produces most of the cell's ATP?",
				"options": ["Nucleus", "Mitochondria", "Ribosome", "Golgi apparatus"],
				"answer": "B",
				"explanation": "Mitochondria carry out aerobic respiration."
			},
			{
				"question": "Which structure controls what enters and leaves the cell?",
				"options": ["Cell membrane", "Cytoplasm", "Vacuole", "Lysosome"],
				"answer": "A",
				"explanation": "The membrane is selectively permeable."
			}
		]
	}`)
}

func tfQuizJSON() json.RawMessage {
	return json.RawMessage(`{
		"questions": [
			{
				"question": "Plant cells contain chloroplasts.",
				"options": [],
				"answer": "True",
				"explanation": "Chloroplasts carry out photosynthesis in plant cells."
			}
		]
	}`)
}

func mustRequest(t *testing.T, n int, typ QuestionType) Request {
	t.Helper()
	req, err := NewRequest(ModeTopic, "cell biology", n, typ, DifficultyMedium)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	return req
}

func TestGenerate_MultipleChoice(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcQuizJSON()})
	gen := New(mock, DefaultConfig())

	quiz, err := gen.Generate(context.Background(), mustRequest(t, 2, TypeMultipleChoice))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(quiz.Questions))
	}
	q := quiz.Questions[0]
	if q.Text != "Which organelle produces most of the cell's ATP?" {
		t.Errorf("unexpected text: %q", q.Text)
	}
	if len(q.Options) != 4 {
		t.Errorf("expected 4 options, got %d", len(q.Options))
	}
	if q.Answer != "B" {
		t.Errorf("expected answer B, got %q", q.Answer)
	}
	if q.Explanation == "" {
		t.Error("expected explanation")
	}
}

func TestGenerate_TrueFalse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: tfQuizJSON()})
	gen := New(mock, DefaultConfig())

	quiz, err := gen.Generate(context.Background(), mustRequest(t, 1, TypeTrueFalse))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quiz.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(quiz.Questions))
	}
	if quiz.Questions[0].Answer != "True" {
		t.Errorf("expected answer True, got %q", quiz.Questions[0].Answer)
	}
	if len(quiz.Questions[0].Options) != 0 {
		t.Errorf("expected no options, got %v", quiz.Questions[0].Options)
	}
}

func TestGenerate_CountMismatchFailsValidation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcQuizJSON()})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), mustRequest(t, 5, TypeMultipleChoice))
	if err == nil {
		t.Fatal("expected validation error")
	}
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if !strings.Contains(err.Error(), "expected 5 questions, got 2") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerate_TransientProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Provider: "gemini", Err: errors.New("503")},
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), mustRequest(t, 2, TypeMultipleChoice))
	if err == nil {
		t.Fatal("expected error")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if genErr.Attempts != DefaultConfig().Attempts {
		t.Errorf("attempts = %d, want %d", genErr.Attempts, DefaultConfig().Attempts)
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Error("expected the provider error in the chain")
	}
	if genErr.Subject != "cell biology" {
		t.Errorf("subject = %q", genErr.Subject)
	}
}

func TestGenerate_PermanentProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{Content: json.RawMessage("not json"), Err: errors.New("schema violation")},
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), mustRequest(t, 2, TypeMultipleChoice))
	if err == nil {
		t.Fatal("expected error")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if genErr.Attempts != 1 {
		t.Errorf("attempts = %d, want 1 for a permanent failure", genErr.Attempts)
	}
}

func TestGenerate_UnparseablePayload(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"questions": "not an array"}`),
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), mustRequest(t, 2, TypeMultipleChoice))
	if err == nil {
		t.Fatal("expected error")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if !strings.Contains(err.Error(), "parse quiz payload") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerate_PromptCarriesRequest(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcQuizJSON()})
	gen := New(mock, DefaultConfig())

	req := mustRequest(t, 2, TypeMultipleChoice)
	req.Instructions = "focus on organelles"
	if _, err := gen.Generate(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	call := mock.Calls[0]
	if call.System != systemPrompt {
		t.Error("system prompt not passed through")
	}
	userMsg := call.Messages[0].Content
	for _, want := range []string{"cell biology", "Medium", "focus on organelles", "2 Multiple Choice"} {
		if !strings.Contains(userMsg, want) {
			t.Errorf("expected user message to contain %q", want)
		}
	}
	if call.Schema != QuizSchema {
		t.Error("expected the quiz schema on the request")
	}
}

func TestGenerate_ConfigOverrides(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcQuizJSON()})
	cfg := DefaultConfig()
	cfg.MaxTokens = 2048
	cfg.Temperature = 0.3
	gen := New(mock, cfg)

	if _, err := gen.Generate(context.Background(), mustRequest(t, 2, TypeMultipleChoice)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.Calls[0].MaxTokens != 2048 {
		t.Errorf("MaxTokens = %d, want 2048", mock.Calls[0].MaxTokens)
	}
	if mock.Calls[0].Temperature != 0.3 {
		t.Errorf("Temperature = %f, want 0.3", mock.Calls[0].Temperature)
	}
}

// alwaysRejectValidator always rejects.
type alwaysRejectValidator struct{ issue string }

func (v *alwaysRejectValidator) Name() string { return "always-reject" }
func (v *alwaysRejectValidator) Validate(*Quiz, Request) *ValidationError {
	return &ValidationError{Issues: []string{v.issue}}
}

// trackingValidator records whether it was called.
type trackingValidator struct{ called bool }

func (v *trackingValidator) Name() string { return "tracking" }
func (v *trackingValidator) Validate(*Quiz, Request) *ValidationError {
	v.called = true
	return nil
}

func TestGenerate_ValidatorOrder(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcQuizJSON()})
	tracker := &trackingValidator{}
	cfg := DefaultConfig()
	cfg.Validators = []Validator{&alwaysRejectValidator{issue: "rejected"}, tracker}
	gen := New(mock, cfg)

	_, err := gen.Generate(context.Background(), mustRequest(t, 2, TypeMultipleChoice))
	if err == nil {
		t.Fatal("expected first validator to reject")
	}
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if valErr.Issues[0] != "rejected" {
		t.Errorf("unexpected issues: %v", valErr.Issues)
	}
	if tracker.called {
		t.Error("second validator should not have been called")
	}
}

func TestGenerate_NoValidators(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcQuizJSON()})
	cfg := DefaultConfig()
	cfg.Validators = nil
	gen := New(mock, cfg)

	// A count mismatch passes when validators are disabled.
	quiz, err := gen.Generate(context.Background(), mustRequest(t, 9, TypeMultipleChoice))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(quiz.Questions))
	}
}
