package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaProvider implements Provider against a local Ollama server
// through langchaingo. Useful for offline quiz generation with small
// local models.
type OllamaProvider struct {
	llm   *ollama.LLM
	model string
}

// NewOllamaProvider creates a new Ollama provider.
func NewOllamaProvider(cfg OllamaConfig) (*OllamaProvider, error) {
	httpClient := &http.Client{Timeout: 5 * time.Minute}

	llm, err := ollama.New(
		ollama.WithServerURL(cfg.ServerURL),
		ollama.WithModel(cfg.Model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}

	return &OllamaProvider{
		llm:   llm,
		model: cfg.Model,
	}, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	prompt := flattenPrompt(req)

	// Local models have no schema-constrained mode; the schema goes into
	// the prompt and the response is validated afterwards.
	if req.Schema != nil {
		schemaBytes, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}
		prompt = prompt + "\n\nRespond with only a JSON object conforming to this JSON Schema, no prose:\n" + string(schemaBytes)
	}

	out, err := p.llm.Call(ctx, prompt, llms.WithTemperature(req.Temperature))
	if err != nil {
		return nil, &ErrProviderUnavailable{Provider: "ollama", Err: err}
	}

	content := json.RawMessage(stripFences(out))

	if req.Schema != nil {
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	return &Response{
		Content:    content,
		Model:      p.model,
		StopReason: "end",
	}, nil
}

func (p *OllamaProvider) ModelID() string {
	return p.model
}

// flattenPrompt joins the system prompt and messages into the single
// prompt string the completion call takes.
func flattenPrompt(req Request) string {
	var b strings.Builder
	if req.System != "" {
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}
	for i, m := range req.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.Content)
	}
	return b.String()
}

// stripFences removes a wrapping markdown code fence and any reasoning
// block a local model may emit around its JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)

	// Some local models wrap their output in <think> blocks.
	if start := strings.Index(s, "<think>"); start != -1 {
		if end := strings.Index(s, "</think>"); end != -1 {
			s = strings.TrimSpace(s[:start] + s[end+len("</think>"):])
		}
	}

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	return s
}
