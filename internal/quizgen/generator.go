package quizgen

import (
	"context"
	"fmt"
)

// Generator produces quizzes using an LLM provider.
type Generator interface {
	// Generate produces a validated quiz for the given request.
	// All configured validators run before returning.
	Generate(ctx context.Context, req Request) (*Quiz, error)
}

// GenerationError reports that the provider could not produce a usable
// response. Attempts reflects how many provider calls were consumed:
// the full retry budget for transient failures, one for permanent ones.
type GenerationError struct {
	Mode     Mode
	Subject  string
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("quiz generation failed (%s %q) after %d attempts: %v", e.Mode, e.Subject, e.Attempts, e.Err)
	}
	return fmt.Sprintf("quiz generation failed (%s %q): %v", e.Mode, e.Subject, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
