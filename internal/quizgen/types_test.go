package quizgen

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseQuestionType(t *testing.T) {
	tests := []struct {
		in      string
		want    QuestionType
		wantErr bool
	}{
		{"mc", TypeMultipleChoice, false},
		{"Multiple Choice", TypeMultipleChoice, false},
		{"multiple-choice", TypeMultipleChoice, false},
		{"tf", TypeTrueFalse, false},
		{"True/False", TypeTrueFalse, false},
		{"true_false", TypeTrueFalse, false},
		{"open", TypeOpenEnded, false},
		{"Open-ended", TypeOpenEnded, false},
		{"essay", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseQuestionType(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseQuestionType(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseQuestionType(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseQuestionType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"easy", DifficultyEasy, false},
		{"Medium", DifficultyMedium, false},
		{"HARD", DifficultyHard, false},
		{"", "", false},
		{"extreme", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDifficulty(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDifficulty(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewRequest_Defaults(t *testing.T) {
	req, err := NewRequest(ModeTopic, "  volcanoes  ", 0, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Subject != "volcanoes" {
		t.Errorf("subject = %q, want trimmed %q", req.Subject, "volcanoes")
	}
	if req.NumQuestions != DefaultNumQuestions {
		t.Errorf("num questions = %d, want %d", req.NumQuestions, DefaultNumQuestions)
	}
	if req.QuestionType != TypeMultipleChoice {
		t.Errorf("question type = %q, want %q", req.QuestionType, TypeMultipleChoice)
	}
	if req.Difficulty != "" {
		t.Errorf("difficulty = %q, want empty", req.Difficulty)
	}
}

func TestNewRequest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		subj string
		n    int
		typ  QuestionType
		diff Difficulty
	}{
		{"bad mode", "interactive", "volcanoes", 5, TypeMultipleChoice, ""},
		{"empty subject", ModeTopic, "   ", 5, TypeMultipleChoice, ""},
		{"negative count", ModeTopic, "volcanoes", -1, TypeMultipleChoice, ""},
		{"too many", ModeTopic, "volcanoes", MaxNumQuestions + 1, TypeMultipleChoice, ""},
		{"bad type", ModeTopic, "volcanoes", 5, "Essay", ""},
		{"bad difficulty", ModeTopic, "volcanoes", 5, TypeMultipleChoice, "Impossible"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRequest(tt.mode, tt.subj, tt.n, tt.typ, tt.diff); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewRequest_URLMode(t *testing.T) {
	req, err := NewRequest(ModeURL, "https://example.com/cells", 10, TypeTrueFalse, DifficultyHard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Mode != ModeURL {
		t.Errorf("mode = %q, want %q", req.Mode, ModeURL)
	}
	if req.NumQuestions != 10 {
		t.Errorf("num questions = %d, want 10", req.NumQuestions)
	}
}

// The saved file layout is read by other tools; the top-level keys and
// per-question keys are load-bearing.
func TestSavedQuizJSONContract(t *testing.T) {
	saved := SavedQuiz{
		Mode:      ModeTopic,
		Subject:   "volcanoes",
		Model:     "gemini-2.0-flash",
		CreatedAt: time.Date(2025, 1, 15, 14, 30, 27, 0, time.UTC),
		Quiz: Quiz{Questions: []Question{
			{
				Text:        "Which gas do volcanoes emit most?",
				Options:     []string{"Water vapor", "Oxygen", "Methane", "Helium"},
				Answer:      "A",
				Explanation: "Water vapor dominates volcanic gas emissions.",
			},
		}},
	}

	data, err := json.Marshal(saved)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"mode", "subject", "model", "created_at", "questions"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	questions, ok := m["questions"].([]any)
	if !ok || len(questions) != 1 {
		t.Fatalf("unexpected questions value: %v", m["questions"])
	}
	q, ok := questions[0].(map[string]any)
	if !ok {
		t.Fatalf("unexpected question shape: %v", questions[0])
	}
	for _, key := range []string{"question", "options", "answer", "explanation"} {
		if _, ok := q[key]; !ok {
			t.Errorf("missing question key %q", key)
		}
	}
	if q["question"] != "Which gas do volcanoes emit most?" {
		t.Errorf("question = %v", q["question"])
	}
}
