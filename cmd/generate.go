package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"quizforge/internal/app"
	"quizforge/internal/fetch"
	"quizforge/internal/llm"
	"quizforge/internal/quizgen"
	"quizforge/internal/store"
)

// addGenerationFlags registers the flags shared by topic, url and batch.
func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("questions", "n", 0, "Number of questions to generate (default from config)")
	cmd.Flags().StringP("type", "t", "", "Question type: mc, tf or open")
	cmd.Flags().StringP("difficulty", "d", "", "Difficulty: easy, medium or hard")
	cmd.Flags().StringP("output", "o", "", "Output directory for quiz files")
	cmd.Flags().String("provider", "", "LLM provider (gemini, anthropic, openai, openrouter, groq, ollama)")
	cmd.Flags().String("model", "", "Model override for the selected provider")
}

// generationParams holds the request settings shared by the generation
// commands, with flags overriding config defaults.
type generationParams struct {
	NumQuestions int
	QuestionType quizgen.QuestionType
	Difficulty   quizgen.Difficulty
}

func resolveGenerationParams(cmd *cobra.Command) (generationParams, error) {
	p := generationParams{NumQuestions: cfg.NumQuestions}
	if n, _ := cmd.Flags().GetInt("questions"); n > 0 {
		p.NumQuestions = n
	}

	typeVal := cfg.QuestionType
	if t, _ := cmd.Flags().GetString("type"); t != "" {
		typeVal = t
	}
	qType, err := quizgen.ParseQuestionType(typeVal)
	if err != nil {
		return generationParams{}, err
	}
	p.QuestionType = qType

	diffVal := cfg.Difficulty
	if d, _ := cmd.Flags().GetString("difficulty"); d != "" {
		diffVal = d
	}
	difficulty, err := quizgen.ParseDifficulty(diffVal)
	if err != nil {
		return generationParams{}, err
	}
	p.Difficulty = difficulty

	return p, nil
}

// buildApp assembles the generation pipeline: provider, generator,
// fetcher and history store. The provider is required; a broken history
// database only disables run recording. The returned cleanup closes the
// store and must run after the last use of the app.
func buildApp(cmd *cobra.Command) (*app.App, func(), error) {
	providerName, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model")
	cfg.ApplyOverrides(providerName, model)

	if err := cfg.ValidateLLM(); err != nil {
		return nil, nil, err
	}

	var runs store.RunRepo
	var events store.EventRepo
	cleanup := func() {}
	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		var st *store.Store
		st, err = store.Open(dbPath)
		if err == nil {
			runs = st.RunRepo()
			events = st.EventRepo()
			cleanup = func() { st.Close() }
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "History database unavailable:", err)
		fmt.Fprintln(os.Stderr, "Runs will not be recorded.")
	}

	provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, events)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	outDir := cfg.OutputDir
	if o, _ := cmd.Flags().GetString("output"); o != "" {
		outDir = o
	}

	a := app.New(app.Config{
		Generator: quizgen.New(provider, quizgen.DefaultConfig()),
		Fetcher: fetch.NewClient(fetch.Config{
			Timeout:  cfg.Fetch.Timeout,
			MaxBytes: cfg.Fetch.MaxBytes,
		}),
		Runs:      runs,
		OutputDir: outDir,
		ModelID:   provider.ModelID(),
	})
	return a, cleanup, nil
}

// printResult reports one finished generation on stdout.
func printResult(res *app.Result, showQuiz bool) {
	fmt.Printf("Generated %d questions on %q with %s in %s\n",
		len(res.Quiz.Questions), res.Subject, res.Model,
		res.Duration.Round(time.Millisecond))
	if res.Path != "" {
		fmt.Println("Saved to:", res.Path)
		fmt.Printf("Play it with: quizforge play %s\n", res.Path)
	}
	if showQuiz {
		fmt.Println()
		printQuiz(res.Quiz)
	}
}

// printQuiz writes the full quiz content in readable form.
func printQuiz(q *quizgen.Quiz) {
	for i, question := range q.Questions {
		fmt.Printf("── Question %d/%d ──\n", i+1, len(q.Questions))
		fmt.Println(question.Text)
		for j, opt := range question.Options {
			fmt.Printf("  %c) %s\n", 'A'+j, opt)
		}
		fmt.Println("Answer:", question.Answer)
		if question.Explanation != "" {
			fmt.Println("Explanation:", question.Explanation)
		}
		fmt.Println()
	}
}
