package cmd

import (
	"github.com/spf13/cobra"

	"quizforge/internal/config"
	"quizforge/internal/logger"
	"quizforge/internal/store"
)

// cfg is the resolved configuration. PersistentPreRunE fills it before
// any command body runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "quizforge",
	Short: "Generate and play LLM-made quizzes",
	Long: `QuizForge turns a topic or a web page into a quiz using an LLM provider,
saves it as JSON and plays it back in the terminal.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = c

		level := cfg.Log.Level
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = "debug"
		}
		return logger.Initialize(level, cfg.Log.Format)
	},
}

func Execute() error {
	defer logger.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: quizforge.yaml in . or the user config dir)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite history database (overrides QUIZFORGE_DB env var)")

	rootCmd.AddCommand(topicCmd)
	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the config file, then QUIZFORGE_DB / the default
// XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
