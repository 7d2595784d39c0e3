package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"quizforge/internal/llm"
	"quizforge/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, credentials and the history database",
	RunE: func(cmd *cobra.Command, args []string) error {
		providerName, _ := cmd.Flags().GetString("provider")
		model, _ := cmd.Flags().GetString("model")
		cfg.ApplyOverrides(providerName, model)

		fmt.Println("Provider:   ", cfg.LLM.Provider)
		fmt.Println("Model:      ", cfg.LLM.ActiveModel())
		fmt.Println("Output dir: ", cfg.OutputDir)

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			fmt.Println("Database:    ✗", err)
		} else if s, err := store.Open(dbPath); err != nil {
			fmt.Printf("Database:    ✗ %s (%v)\n", dbPath, err)
		} else {
			s.Close()
			fmt.Println("Database:    ✓", dbPath)
		}

		if err := cfg.ValidateLLM(); err != nil {
			fmt.Println("Credentials: ✗", err)
			return err
		}
		fmt.Println("Credentials: ✓")

		if ping, _ := cmd.Flags().GetBool("ping"); !ping {
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		ctx = llm.WithPurpose(ctx, llm.PurposeDoctor)

		provider, err := llm.NewProvider(ctx, cfg.LLM, nil)
		if err != nil {
			fmt.Println("Ping:        ✗", err)
			return err
		}

		start := time.Now()
		resp, err := provider.Generate(ctx, llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Reply with the single word: ok"}},
			MaxTokens: 16,
		})
		if err != nil {
			fmt.Println("Ping:        ✗", err)
			return err
		}
		fmt.Printf("Ping:        ✓ %s answered in %s (%d tokens)\n",
			resp.Model, time.Since(start).Round(time.Millisecond), resp.Usage.TotalTokens)
		return nil
	},
}

func init() {
	doctorCmd.Flags().Bool("ping", false, "Send a test request to the provider")
	doctorCmd.Flags().String("provider", "", "LLM provider to check instead of the configured one")
	doctorCmd.Flags().String("model", "", "Model override for the selected provider")
}
