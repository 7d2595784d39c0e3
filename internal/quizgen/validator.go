package quizgen

import (
	"fmt"
	"strings"
)

// Validator checks a generated quiz against the request it was made for.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, used in error
	// messages and logging, e.g. "structural".
	Name() string

	// Validate checks the quiz and returns nil if it passes. A failure
	// reports every violation found, not just the first.
	Validate(quiz *Quiz, req Request) *ValidationError
}

// ValidationError describes why a quiz failed validation. Issues holds
// every violation found so a single failure shows the full picture.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	switch len(e.Issues) {
	case 0:
		return "quiz validation failed"
	case 1:
		return fmt.Sprintf("quiz validation failed: %s", e.Issues[0])
	}
	return fmt.Sprintf("quiz validation failed (%d issues): %s", len(e.Issues), strings.Join(e.Issues, "; "))
}

// Validate runs the standard structural checks against the quiz.
// It is shorthand for the default validator chain.
func Validate(quiz *Quiz, req Request) *ValidationError {
	return (&StructuralValidator{}).Validate(quiz, req)
}
