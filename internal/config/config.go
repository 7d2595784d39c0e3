// Package config loads layered settings: defaults, then an optional
// YAML file, then QUIZFORGE_* environment variables. A .env file in the
// working directory is honored when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"quizforge/internal/llm"
	"quizforge/internal/quizfile"
	"quizforge/internal/quizgen"
)

// ConfigurationError reports settings that prevent startup. It is
// fatal; no provider call is attempted.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // console or json
}

// FetchConfig controls the URL source fetcher.
type FetchConfig struct {
	Timeout  time.Duration
	MaxBytes int64
}

// Config is the resolved application configuration.
type Config struct {
	// OutputDir is where generated quiz files are written.
	OutputDir string

	// NumQuestions is the default question count for new quizzes.
	NumQuestions int

	// QuestionType is the default question type (parseable short form).
	QuestionType string

	// Difficulty is the default difficulty. Empty leaves it to the
	// model.
	Difficulty string

	// DBPath overrides the history database location. Empty resolves
	// the standard path.
	DBPath string

	Log   LogConfig
	Fetch FetchConfig

	// LLM is the provider configuration assembled from the
	// environment, with file/flag overrides applied.
	LLM llm.Config
}

// Load resolves the configuration. path is an explicit config file; an
// empty path searches the working directory and the user config dirs
// and tolerates absence.
func Load(path string) (*Config, error) {
	// Local development convenience. Absence is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("quizforge")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(dir + "/quizforge")
		}
	}

	v.SetDefault("output_dir", quizfile.DefaultDir)
	v.SetDefault("questions", quizgen.DefaultNumQuestions)
	v.SetDefault("question_type", "mc")
	v.SetDefault("difficulty", "")
	v.SetDefault("db_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("fetch.timeout", 20*time.Second)
	v.SetDefault("fetch.max_bytes", int64(2<<20))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("read config file: %v", err)}
		}
	}

	v.SetEnvPrefix("QUIZFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	llmCfg := llm.ConfigFromEnv()

	explicitProvider := v.GetString("provider") != "" || os.Getenv("QUIZFORGE_LLM_PROVIDER") != ""
	if p := v.GetString("provider"); p != "" {
		llmCfg.Provider = p
	}

	// When nothing names a provider and the configured one has no key,
	// probe the conventional API key variables.
	if !explicitProvider && llmCfg.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			llmCfg = discovered
		}
	}

	if m := v.GetString("model"); m != "" {
		applyModelOverride(&llmCfg, m)
	}

	if n := v.GetInt("retry.max_attempts"); n > 0 {
		llmCfg.Retry.MaxAttempts = n
	}
	if d := v.GetDuration("retry.initial_backoff"); d > 0 {
		llmCfg.Retry.InitialWait = d
	}
	if d := v.GetDuration("retry.max_backoff"); d > 0 {
		llmCfg.Retry.MaxWait = d
	}

	cfg := &Config{
		OutputDir:    v.GetString("output_dir"),
		NumQuestions: v.GetInt("questions"),
		QuestionType: v.GetString("question_type"),
		Difficulty:   v.GetString("difficulty"),
		DBPath:       v.GetString("db_path"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Fetch: FetchConfig{
			Timeout:  v.GetDuration("fetch.timeout"),
			MaxBytes: v.GetInt64("fetch.max_bytes"),
		},
		LLM: llmCfg,
	}
	return cfg, nil
}

// applyModelOverride points the selected provider at a specific model.
func applyModelOverride(c *llm.Config, model string) {
	switch c.Provider {
	case "gemini":
		c.Gemini.Model = model
	case "anthropic":
		c.Anthropic.Model = model
	case "openai":
		c.OpenAI.Model = model
	case "openrouter":
		c.OpenRouter.Model = model
	case "groq":
		c.Groq.Model = model
	case "ollama":
		c.Ollama.Model = model
	}
}

// ApplyOverrides applies command-line overrides, which outrank file
// and environment settings.
func (c *Config) ApplyOverrides(provider, model string) {
	if provider != "" {
		c.LLM.Provider = provider
	}
	if model != "" {
		applyModelOverride(&c.LLM, model)
	}
}

// ValidateLLM checks that the selected provider is usable. Generation
// commands call this before opening any connection; commands that never
// touch the provider skip it.
func (c *Config) ValidateLLM() error {
	if err := c.LLM.Validate(); err != nil {
		return &ConfigurationError{Reason: err.Error()}
	}
	return nil
}
