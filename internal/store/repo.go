package store

import (
	"context"
	"time"
)

// QuizRun records one generation attempt, successful or not. Rows are
// append-only; history commands read them back in reverse chronological
// order.
type QuizRun struct {
	ID           string
	Mode         string
	Subject      string
	NumQuestions int
	QuestionType string
	Difficulty   string
	Model        string
	FilePath     string
	DurationMs   int64
	Success      bool
	ErrorMessage string
	CreatedAt    time.Time
}

// RunRepo manages quiz run history.
type RunRepo interface {
	// Append records a completed run.
	Append(ctx context.Context, run *QuizRun) error

	// Recent returns the most recent runs, newest first.
	Recent(ctx context.Context, limit int) ([]QuizRun, error)

	// Prune deletes all but the N most recent runs.
	Prune(ctx context.Context, keep int) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	CostUSD      float64
	Success      bool
	ErrorMessage string
}

// LLMUsageStats aggregates request counts and token totals for one
// request purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates request counts and token totals for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// LLMUsageByPurpose returns usage aggregated per purpose, highest
	// token total first.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel returns usage aggregated per model, highest token
	// total first.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
