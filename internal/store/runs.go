package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type runRepo struct {
	db *sqlx.DB
}

// quizRunRow is the database representation of a QuizRun. Timestamps
// are stored as unix milliseconds so ordering survives locale changes.
type quizRunRow struct {
	ID           string `db:"id"`
	Mode         string `db:"mode"`
	Subject      string `db:"subject"`
	NumQuestions int    `db:"num_questions"`
	QuestionType string `db:"question_type"`
	Difficulty   string `db:"difficulty"`
	Model        string `db:"model"`
	FilePath     string `db:"file_path"`
	DurationMs   int64  `db:"duration_ms"`
	Success      bool   `db:"success"`
	ErrorMessage string `db:"error_message"`
	CreatedAt    int64  `db:"created_at"`
}

func (r *runRepo) Append(ctx context.Context, run *QuizRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	row := quizRunRow{
		ID:           run.ID,
		Mode:         run.Mode,
		Subject:      run.Subject,
		NumQuestions: run.NumQuestions,
		QuestionType: run.QuestionType,
		Difficulty:   run.Difficulty,
		Model:        run.Model,
		FilePath:     run.FilePath,
		DurationMs:   run.DurationMs,
		Success:      run.Success,
		ErrorMessage: run.ErrorMessage,
		CreatedAt:    run.CreatedAt.UnixMilli(),
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO quiz_runs (
			id, mode, subject, num_questions, question_type, difficulty,
			model, file_path, duration_ms, success, error_message, created_at
		) VALUES (
			:id, :mode, :subject, :num_questions, :question_type, :difficulty,
			:model, :file_path, :duration_ms, :success, :error_message, :created_at
		)`, row)
	if err != nil {
		return fmt.Errorf("append quiz run: %w", err)
	}
	return nil
}

func (r *runRepo) Recent(ctx context.Context, limit int) ([]QuizRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []quizRunRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, mode, subject, num_questions, question_type, difficulty,
		       model, file_path, duration_ms, success, error_message, created_at
		FROM quiz_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query quiz runs: %w", err)
	}

	runs := make([]QuizRun, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, QuizRun{
			ID:           row.ID,
			Mode:         row.Mode,
			Subject:      row.Subject,
			NumQuestions: row.NumQuestions,
			QuestionType: row.QuestionType,
			Difficulty:   row.Difficulty,
			Model:        row.Model,
			FilePath:     row.FilePath,
			DurationMs:   row.DurationMs,
			Success:      row.Success,
			ErrorMessage: row.ErrorMessage,
			CreatedAt:    time.UnixMilli(row.CreatedAt),
		})
	}
	return runs, nil
}

func (r *runRepo) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM quiz_runs
		WHERE id NOT IN (
			SELECT id FROM quiz_runs
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune quiz runs: %w", err)
	}
	return nil
}
