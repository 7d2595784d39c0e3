package quizgen

import (
	"fmt"
	"strings"
	"unicode"
)

// StructuralValidator checks that the quiz matches the requested shape:
// question count, per-type option and answer constraints, duplicates.
// All violations are collected into a single ValidationError.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(quiz *Quiz, req Request) *ValidationError {
	if quiz == nil || len(quiz.Questions) == 0 {
		return &ValidationError{Issues: []string{"questions list is empty"}}
	}

	var issues []string

	if req.NumQuestions > 0 && len(quiz.Questions) != req.NumQuestions {
		issues = append(issues, fmt.Sprintf("expected %d questions, got %d", req.NumQuestions, len(quiz.Questions)))
	}

	seen := make(map[string]int, len(quiz.Questions))
	for i, q := range quiz.Questions {
		n := i + 1

		text := strings.TrimSpace(q.Text)
		if text == "" {
			issues = append(issues, fmt.Sprintf("question %d: text is empty", n))
		} else {
			key := strings.ToLower(text)
			if first, dup := seen[key]; dup {
				issues = append(issues, fmt.Sprintf("question %d: duplicate of question %d", n, first))
			} else {
				seen[key] = n
			}
		}

		if strings.TrimSpace(q.Answer) == "" {
			issues = append(issues, fmt.Sprintf("question %d: answer is empty", n))
		}

		issues = append(issues, questionTypeIssues(n, q, req.QuestionType)...)
	}

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

// questionTypeIssues checks the constraints specific to the requested
// question type. n is the 1-based question number for messages.
func questionTypeIssues(n int, q Question, typ QuestionType) []string {
	var issues []string

	switch typ {
	case TypeMultipleChoice:
		if len(q.Options) != 4 {
			issues = append(issues, fmt.Sprintf("question %d: expected 4 options, got %d", n, len(q.Options)))
		}
		optSeen := make(map[string]bool, len(q.Options))
		for j, opt := range q.Options {
			opt = strings.TrimSpace(opt)
			if opt == "" {
				issues = append(issues, fmt.Sprintf("question %d: option %d is empty", n, j+1))
				continue
			}
			key := strings.ToLower(opt)
			if optSeen[key] {
				issues = append(issues, fmt.Sprintf("question %d: duplicate option %q", n, opt))
			}
			optSeen[key] = true
		}
		if strings.TrimSpace(q.Answer) != "" && len(q.Options) > 0 {
			if AnswerIndex(q.Answer, q.Options) < 0 {
				issues = append(issues, fmt.Sprintf("question %d: answer %q is not an option letter or option text", n, q.Answer))
			}
		}

	case TypeTrueFalse:
		if len(q.Options) != 0 {
			issues = append(issues, fmt.Sprintf("question %d: true/false questions must not have options", n))
		}
		if a := strings.TrimSpace(q.Answer); a != "" && !isTrueFalse(a) {
			issues = append(issues, fmt.Sprintf("question %d: answer must be True or False, got %q", n, q.Answer))
		}

	case TypeOpenEnded:
		if len(q.Options) != 0 {
			issues = append(issues, fmt.Sprintf("question %d: open-ended questions must not have options", n))
		}
	}

	return issues
}

// AnswerIndex resolves a multiple choice answer to an option index.
// It accepts an option letter (case-insensitive, optional trailing ')'
// or '.') or the full text of an option. Returns -1 when nothing
// matches.
func AnswerIndex(answer string, options []string) int {
	a := strings.TrimSpace(answer)
	if a == "" {
		return -1
	}

	if letter := strings.TrimRight(a, ".)"); len(letter) == 1 {
		idx := int(unicode.ToUpper(rune(letter[0]))) - 'A'
		if idx >= 0 && idx < len(options) {
			return idx
		}
	}

	for i, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), a) {
			return i
		}
	}
	return -1
}

func isTrueFalse(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "false":
		return true
	}
	return false
}
