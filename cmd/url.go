package cmd

import (
	"github.com/spf13/cobra"

	"quizforge/internal/app"
	"quizforge/internal/fetch"
)

var urlCmd = &cobra.Command{
	Use:   "url <url>",
	Short: "Generate a quiz from a web page",
	Long: `Fetch the page at <url>, reduce it to text and generate a quiz grounded
in that material. The model never browses; the page content travels in
the prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Reject bad URLs before any provider or network work.
		if err := fetch.ValidateURL(args[0]); err != nil {
			return err
		}

		params, err := resolveGenerationParams(cmd)
		if err != nil {
			return err
		}
		instructions, _ := cmd.Flags().GetString("instructions")
		noSave, _ := cmd.Flags().GetBool("no-save")

		a, cleanup, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := a.GenerateURLQuiz(cmd.Context(), app.URLParams{
			URL:          args[0],
			NumQuestions: params.NumQuestions,
			QuestionType: params.QuestionType,
			Difficulty:   params.Difficulty,
			Instructions: instructions,
			NoSave:       noSave,
		})
		if err != nil {
			return err
		}

		printResult(res, noSave)
		return nil
	},
}

func init() {
	addGenerationFlags(urlCmd)
	urlCmd.Flags().String("instructions", "", "Extra instructions for the generator")
	urlCmd.Flags().Bool("no-save", false, "Print the quiz instead of saving it")
}
