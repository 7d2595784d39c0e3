package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quizforge/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect quiz generation history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failed, _ := cmd.Flags().GetBool("failed")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		runs, err := s.RunRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}

		if len(runs) == 0 {
			fmt.Println("No quiz runs recorded yet.")
			return nil
		}

		// Header.
		fmt.Printf("%-19s  %-5s  %-32s  %3s  %-15s  %-7s  %s\n",
			"Timestamp", "Mode", "Subject", "Qs", "Type", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 100))

		for _, r := range runs {
			if failed && r.Success {
				continue
			}
			ok := "✓"
			if !r.Success {
				ok = "✗"
			}
			fmt.Printf("%-19s  %-5s  %-32s  %3d  %-15s  %-7d  %s\n",
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				r.Mode,
				truncate(r.Subject, 32),
				r.NumQuestions,
				r.QuestionType,
				r.DurationMs,
				ok,
			)
			if !r.Success && r.ErrorMessage != "" {
				fmt.Printf("%21s%s\n", "", truncate(r.ErrorMessage, 76))
			}
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete run history",
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		if err := s.RunRepo().Prune(cmd.Context(), keep); err != nil {
			return fmt.Errorf("clear runs: %w", err)
		}

		if keep > 0 {
			fmt.Printf("History cleared, keeping the %d most recent runs.\n", keep)
		} else {
			fmt.Println("History cleared.")
		}
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")
	historyListCmd.Flags().Bool("failed", false, "Show only failed runs")
	historyClearCmd.Flags().Int("keep", 0, "Keep the N most recent runs")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
}
