// Package app composes the quiz pipeline: generate, validate, persist,
// record. The CLI commands are thin wrappers over this package.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quizforge/internal/fetch"
	"quizforge/internal/logger"
	"quizforge/internal/quizfile"
	"quizforge/internal/quizgen"
	"quizforge/internal/store"
	"quizforge/internal/util"
)

// Fetcher resolves a URL to prompt material.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Document, error)
}

// Config wires the orchestrator's collaborators.
type Config struct {
	// Generator produces quizzes. Required.
	Generator quizgen.Generator

	// Fetcher resolves URLs for url mode. Required for GenerateURLQuiz.
	Fetcher Fetcher

	// Runs is the history sink. Nil disables run recording.
	Runs store.RunRepo

	// OutputDir is where quiz files land. Empty means the default.
	OutputDir string

	// ModelID is recorded in saved files and history rows.
	ModelID string
}

// App runs the generation pipeline.
type App struct {
	generator quizgen.Generator
	fetcher   Fetcher
	runs      store.RunRepo
	outDir    string
	modelID   string
}

// New creates an App from cfg.
func New(cfg Config) *App {
	dir := cfg.OutputDir
	if dir == "" {
		dir = quizfile.DefaultDir
	}
	return &App{
		generator: cfg.Generator,
		fetcher:   cfg.Fetcher,
		runs:      cfg.Runs,
		outDir:    dir,
		modelID:   cfg.ModelID,
	}
}

// TopicParams describes a topic-based generation.
type TopicParams struct {
	Topic        string
	NumQuestions int
	QuestionType quizgen.QuestionType
	Difficulty   quizgen.Difficulty
	Instructions string

	// NoSave skips persistence; the quiz is only returned.
	NoSave bool
}

// URLParams describes a URL-based generation.
type URLParams struct {
	URL          string
	NumQuestions int
	QuestionType quizgen.QuestionType
	Difficulty   quizgen.Difficulty
	Instructions string
	NoSave       bool
}

// BatchParams describes a concurrent multi-topic generation.
type BatchParams struct {
	Topics       []string
	NumQuestions int
	QuestionType quizgen.QuestionType
	Difficulty   quizgen.Difficulty

	// Concurrency bounds how many generations run at once.
	// Zero means DefaultConcurrency.
	Concurrency int
}

// DefaultConcurrency bounds batch generation when unset.
const DefaultConcurrency = 3

// Result is the outcome of one successful generation.
type Result struct {
	Quiz     *quizgen.Quiz
	Mode     quizgen.Mode
	Subject  string
	Path     string // empty when saving was skipped
	RunID    string // empty when history is disabled
	Model    string
	Duration time.Duration
}

// topicDifficulty applies the Medium default for topic-mode requests.
// URL mode leaves an empty difficulty to the model.
func topicDifficulty(d quizgen.Difficulty) quizgen.Difficulty {
	if d == "" {
		return quizgen.DifficultyMedium
	}
	return d
}

// GenerateTopicQuiz generates and persists a quiz for a topic. An empty
// difficulty defaults to Medium.
func (a *App) GenerateTopicQuiz(ctx context.Context, p TopicParams) (*Result, error) {
	req, err := quizgen.NewRequest(quizgen.ModeTopic, p.Topic, p.NumQuestions, p.QuestionType, topicDifficulty(p.Difficulty))
	if err != nil {
		return nil, err
	}
	req.Instructions = p.Instructions
	return a.run(ctx, req, "", p.NoSave)
}

// GenerateURLQuiz fetches the URL, reduces it to text and generates a
// quiz grounded in that material. The model never browses; a fetch
// failure aborts the operation.
func (a *App) GenerateURLQuiz(ctx context.Context, p URLParams) (*Result, error) {
	req, err := quizgen.NewRequest(quizgen.ModeURL, p.URL, p.NumQuestions, p.QuestionType, p.Difficulty)
	if err != nil {
		return nil, err
	}
	req.Instructions = p.Instructions

	doc, err := a.fetcher.Fetch(ctx, req.Subject)
	if err != nil {
		gerr := &quizgen.GenerationError{
			Mode:    quizgen.ModeURL,
			Subject: req.Subject,
			Err:     fmt.Errorf("fetch source: %w", err),
		}
		a.record(ctx, req, "", 0, gerr)
		logger.L().Error("source fetch failed",
			zap.String("url", req.Subject),
			zap.Error(err))
		return nil, gerr
	}

	req.Source = doc.Text
	if doc.Title != "" {
		req.Source = doc.Title + "\n\n" + doc.Text
	}
	return a.run(ctx, req, "", p.NoSave)
}

// GenerateBatch generates one quiz per topic concurrently. Each run
// saves under a distinct filename disambiguator so same-second saves
// cannot collide. Completed runs keep their files and history rows;
// the first failure cancels the rest.
func (a *App) GenerateBatch(ctx context.Context, p BatchParams) ([]*Result, error) {
	if len(p.Topics) == 0 {
		return nil, fmt.Errorf("no topics given")
	}
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	results := make([]*Result, len(p.Topics))
	for i, topic := range p.Topics {
		g.Go(func() error {
			req, err := quizgen.NewRequest(quizgen.ModeTopic, topic, p.NumQuestions, p.QuestionType, topicDifficulty(p.Difficulty))
			if err != nil {
				return err
			}
			res, err := a.run(ctx, req, quizfile.NewDisambiguator(), false)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// run executes the generate-validate-save-record pipeline for one
// request.
func (a *App) run(ctx context.Context, req quizgen.Request, disambiguator string, noSave bool) (*Result, error) {
	log := logger.L()
	start := time.Now()

	quiz, err := a.generator.Generate(ctx, req)
	duration := time.Since(start)
	if err != nil {
		a.record(ctx, req, "", duration, err)
		log.Error("quiz generation failed",
			zap.String("mode", string(req.Mode)),
			zap.String("subject", req.Subject),
			zap.Int("questions", req.NumQuestions),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, err
	}

	var path string
	if !noSave {
		var opts []quizfile.Option
		if disambiguator != "" {
			opts = append(opts, quizfile.WithDisambiguator(disambiguator))
		}
		saver := quizfile.NewSaver(a.outDir, opts...)
		path, err = saver.Save(quiz, quizfile.Meta{
			Mode:    req.Mode,
			Subject: req.Subject,
			Model:   a.modelID,
		})
		if err != nil {
			a.record(ctx, req, "", duration, err)
			log.Error("quiz save failed",
				zap.String("mode", string(req.Mode)),
				zap.String("subject", req.Subject),
				zap.Error(err))
			return nil, err
		}
	}

	runID := a.record(ctx, req, path, duration, nil)
	log.Info("quiz generated",
		zap.String("mode", string(req.Mode)),
		zap.String("subject", req.Subject),
		zap.Int("questions", len(quiz.Questions)),
		zap.String("path", path),
		zap.Duration("duration", duration))

	return &Result{
		Quiz:     quiz,
		Mode:     req.Mode,
		Subject:  req.Subject,
		Path:     path,
		RunID:    runID,
		Model:    a.modelID,
		Duration: duration,
	}, nil
}

// record appends a history row. History failures are logged, never
// propagated; a broken database must not fail a generation that
// already succeeded.
func (a *App) record(ctx context.Context, req quizgen.Request, path string, duration time.Duration, runErr error) string {
	if a.runs == nil {
		return ""
	}

	// The audit row outlives a canceled generation.
	ctx = context.WithoutCancel(ctx)

	run := &store.QuizRun{
		ID:           util.NewULID(),
		Mode:         string(req.Mode),
		Subject:      req.Subject,
		NumQuestions: req.NumQuestions,
		QuestionType: string(req.QuestionType),
		Difficulty:   string(req.Difficulty),
		Model:        a.modelID,
		FilePath:     path,
		DurationMs:   duration.Milliseconds(),
		Success:      runErr == nil,
	}
	if runErr != nil {
		run.ErrorMessage = runErr.Error()
	}

	if err := a.runs.Append(ctx, run); err != nil {
		logger.L().Warn("failed to record run", zap.Error(err))
		return ""
	}
	return run.ID
}
