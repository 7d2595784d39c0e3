package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"quizforge/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// quizOutput is the raw LLM response before validation.
type quizOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// Generate produces a validated quiz for the given request.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (*Quiz, error) {
	switch req.Mode {
	case ModeURL:
		ctx = llm.WithPurpose(ctx, llm.PurposeURLQuiz)
	default:
		ctx = llm.WithPurpose(ctx, llm.PurposeTopicQuiz)
	}

	userMsg := buildUserMessage(req, g.config)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, &GenerationError{
			Mode:     req.Mode,
			Subject:  req.Subject,
			Attempts: g.attemptsConsumed(err),
			Err:      err,
		}
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &GenerationError{
			Mode:     req.Mode,
			Subject:  req.Subject,
			Attempts: 1,
			Err:      fmt.Errorf("parse quiz payload: %w", err),
		}
	}

	quiz := &Quiz{Questions: make([]Question, 0, len(raw.Questions))}
	for _, q := range raw.Questions {
		quiz.Questions = append(quiz.Questions, Question{
			Text:        q.Question,
			Options:     q.Options,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		})
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(quiz, req); verr != nil {
			return nil, verr
		}
	}

	return quiz, nil
}

// attemptsConsumed estimates how many provider calls the failure cost.
// Transient errors surface only after the retry budget is spent;
// permanent ones propagate from the first call.
func (g *LLMGenerator) attemptsConsumed(err error) int {
	if llm.IsTransient(err) && g.config.Attempts > 1 {
		return g.config.Attempts
	}
	return 1
}
