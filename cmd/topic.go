package cmd

import (
	"github.com/spf13/cobra"

	"quizforge/internal/app"
)

var topicCmd = &cobra.Command{
	Use:   "topic <topic>",
	Short: "Generate a quiz about a topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		res, err := a.GenerateTopicQuiz(cmd.Context(), app.TopicParams{
			Topic:        args[0],
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
	addGenerationFlags(topicCmd)
	topicCmd.Flags().String("instructions", "", "Extra instructions for the generator")
	topicCmd.Flags().Bool("no-save", false, "Print the quiz instead of saving it")
}
