package cmd

import (
	"github.com/spf13/cobra"

	"quizforge/internal/play"
	"quizforge/internal/quizfile"
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play a saved quiz in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quiz, err := quizfile.Load(args[0])
		if err != nil {
			return err
		}
		return play.Run(quiz)
	},
}
