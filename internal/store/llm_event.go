package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// eventRepo implements EventRepo on the llm_requests table.
type eventRepo struct {
	db *sqlx.DB
}

type llmRequestRow struct {
	Provider     string  `db:"provider"`
	Model        string  `db:"model"`
	Purpose      string  `db:"purpose"`
	InputTokens  int     `db:"input_tokens"`
	OutputTokens int     `db:"output_tokens"`
	LatencyMs    int64   `db:"latency_ms"`
	CostUSD      float64 `db:"cost_usd"`
	Success      bool    `db:"success"`
	ErrorMessage string  `db:"error_message"`
	CreatedAt    int64   `db:"created_at"`
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	row := llmRequestRow{
		Provider:     data.Provider,
		Model:        data.Model,
		Purpose:      data.Purpose,
		InputTokens:  data.InputTokens,
		OutputTokens: data.OutputTokens,
		LatencyMs:    data.LatencyMs,
		CostUSD:      data.CostUSD,
		Success:      data.Success,
		ErrorMessage: data.ErrorMessage,
		CreatedAt:    time.Now().UnixMilli(),
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO llm_requests (
			provider, model, purpose, input_tokens, output_tokens,
			latency_ms, cost_usd, success, error_message, created_at
		) VALUES (
			:provider, :model, :purpose, :input_tokens, :output_tokens,
			:latency_ms, :cost_usd, :success, :error_message, :created_at
		)`, row)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

type usageStatsRow struct {
	Purpose      string  `db:"purpose"`
	Calls        int     `db:"calls"`
	InputTokens  int     `db:"input_tokens"`
	OutputTokens int     `db:"output_tokens"`
	AvgLatencyMs float64 `db:"avg_latency_ms"`
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	var rows []usageStatsRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT purpose,
		       COUNT(*) AS calls,
		       COALESCE(SUM(input_tokens), 0) AS input_tokens,
		       COALESCE(SUM(output_tokens), 0) AS output_tokens,
		       COALESCE(AVG(latency_ms), 0) AS avg_latency_ms
		FROM llm_requests
		GROUP BY purpose
		ORDER BY input_tokens + output_tokens DESC, purpose ASC`)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}

	stats := make([]LLMUsageStats, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, LLMUsageStats{
			Purpose:      row.Purpose,
			Calls:        row.Calls,
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
			AvgLatencyMs: int64(row.AvgLatencyMs),
		})
	}
	return stats, nil
}

type modelUsageRow struct {
	Model        string `db:"model"`
	Calls        int    `db:"calls"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	var rows []modelUsageRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT model,
		       COUNT(*) AS calls,
		       COALESCE(SUM(input_tokens), 0) AS input_tokens,
		       COALESCE(SUM(output_tokens), 0) AS output_tokens
		FROM llm_requests
		GROUP BY model
		ORDER BY input_tokens + output_tokens DESC, model ASC`)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}

	usage := make([]LLMModelUsage, 0, len(rows))
	for _, row := range rows {
		usage = append(usage, LLMModelUsage{
			Model:        row.Model,
			Calls:        row.Calls,
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
		})
	}
	return usage, nil
}
