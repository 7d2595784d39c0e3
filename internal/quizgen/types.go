package quizgen

import (
	"fmt"
	"strings"
	"time"
)

// Mode identifies how the quiz subject was supplied. It appears in
// output filenames and history rows.
type Mode string

const (
	ModeTopic Mode = "topic"
	ModeURL   Mode = "url"
)

// QuestionType selects the style of questions the model produces.
// The values are the exact strings embedded in prompts.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "Multiple Choice"
	TypeTrueFalse      QuestionType = "True/False"
	TypeOpenEnded      QuestionType = "Open-ended"
)

// ParseQuestionType resolves user input (CLI flags, config values) to a
// QuestionType. It accepts the canonical names plus common short forms.
func ParseQuestionType(s string) (QuestionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mc", "choice", "multiple choice", "multiple-choice", "multiple_choice":
		return TypeMultipleChoice, nil
	case "tf", "true/false", "true-false", "true_false", "truefalse":
		return TypeTrueFalse, nil
	case "open", "open-ended", "open_ended", "openended":
		return TypeOpenEnded, nil
	}
	return "", fmt.Errorf("unknown question type %q (use mc, tf or open)", s)
}

// Difficulty is the requested difficulty level. Empty means unspecified;
// the prompt then leaves difficulty to the model.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty resolves user input to a Difficulty. Empty input is
// valid and means unspecified.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (use easy, medium or hard)", s)
}

// DefaultNumQuestions is used when a request does not specify a count.
const DefaultNumQuestions = 5

// MaxNumQuestions bounds a single request. Larger quizzes routinely blow
// the model's output budget and come back truncated.
const MaxNumQuestions = 50

// Request describes one quiz to generate. Construct it with NewRequest;
// the validated fields must not be mutated afterwards.
type Request struct {
	// Mode is topic or url.
	Mode Mode

	// Subject is the topic text (topic mode) or the page URL (url mode).
	Subject string

	// NumQuestions is the exact number of questions requested.
	NumQuestions int

	// QuestionType selects the question style.
	QuestionType QuestionType

	// Difficulty is optional. Empty leaves the level to the model.
	Difficulty Difficulty

	// Instructions is optional free-form steering text appended to the
	// prompt, e.g. "focus on dates" or "avoid chemistry details".
	Instructions string

	// Source is the reduced text of the fetched page for url mode.
	// Empty in topic mode.
	Source string
}

// NewRequest builds a validated Request. A zero NumQuestions becomes
// DefaultNumQuestions and an empty QuestionType becomes multiple choice.
func NewRequest(mode Mode, subject string, numQuestions int, qType QuestionType, difficulty Difficulty) (Request, error) {
	if mode != ModeTopic && mode != ModeURL {
		return Request{}, fmt.Errorf("unknown mode %q", mode)
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return Request{}, fmt.Errorf("subject is empty")
	}
	if numQuestions == 0 {
		numQuestions = DefaultNumQuestions
	}
	if numQuestions < 1 {
		return Request{}, fmt.Errorf("number of questions must be at least 1, got %d", numQuestions)
	}
	if numQuestions > MaxNumQuestions {
		return Request{}, fmt.Errorf("number of questions must be at most %d, got %d", MaxNumQuestions, numQuestions)
	}
	if qType == "" {
		qType = TypeMultipleChoice
	}
	switch qType {
	case TypeMultipleChoice, TypeTrueFalse, TypeOpenEnded:
	default:
		return Request{}, fmt.Errorf("unknown question type %q", qType)
	}
	switch difficulty {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return Request{}, fmt.Errorf("unknown difficulty %q", difficulty)
	}
	return Request{
		Mode:         mode,
		Subject:      subject,
		NumQuestions: numQuestions,
		QuestionType: qType,
		Difficulty:   difficulty,
	}, nil
}

// Question is a single generated question. The JSON field names are a
// fixed external contract; saved files are read by other tools.
type Question struct {
	// Text is the question prompt.
	Text string `json:"question"`

	// Options holds the four answer choices for multiple choice
	// questions, without letter prefixes. Empty for other types.
	Options []string `json:"options,omitempty"`

	// Answer is the correct answer. For multiple choice it is the
	// option letter (A, B, C or D); for true/false it is "True" or
	// "False"; for open-ended it is a short model answer.
	Answer string `json:"answer"`

	// Explanation briefly justifies the answer. May be empty.
	Explanation string `json:"explanation,omitempty"`
}

// Quiz is a generated set of questions. Never empty after validation.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// SavedQuiz is the persisted form of a quiz: the questions plus the
// request metadata needed to replay or audit the run.
type SavedQuiz struct {
	Mode      Mode      `json:"mode"`
	Subject   string    `json:"subject"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Quiz
}
