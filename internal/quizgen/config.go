package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated quiz. They execute in order; the first failure stops
	// the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxSourceChars caps how much fetched page text is embedded in
	// the prompt for url mode.
	MaxSourceChars int

	// Attempts is the provider attempt budget the wrapped client runs
	// with. Recorded in GenerationError for transient failures.
	Attempts int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
		},
		MaxTokens:      4096,
		Temperature:    0.7,
		MaxSourceChars: 12000,
		Attempts:       3,
	}
}
