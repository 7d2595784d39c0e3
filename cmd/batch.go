package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"quizforge/internal/app"
)

var batchCmd = &cobra.Command{
	Use:   "batch <topic>...",
	Short: "Generate quizzes for several topics concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := resolveGenerationParams(cmd)
		if err != nil {
			return err
		}
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		a, cleanup, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		results, err := a.GenerateBatch(cmd.Context(), app.BatchParams{
			Topics:       args,
			NumQuestions: params.NumQuestions,
			QuestionType: params.QuestionType,
			Difficulty:   params.Difficulty,
			Concurrency:  concurrency,
		})
		if err != nil {
			return err
		}

		for _, res := range results {
			fmt.Printf("%-32s  %2d questions  %8s  %s\n",
				truncate(res.Subject, 32),
				len(res.Quiz.Questions),
				res.Duration.Round(time.Millisecond),
				res.Path)
		}
		fmt.Printf("\n%d quizzes generated.\n", len(results))
		return nil
	},
}

func init() {
	addGenerationFlags(batchCmd)
	batchCmd.Flags().Int("concurrency", app.DefaultConcurrency, "How many generations run at once")
}
