package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/conneroisu/groq-go"
)

// GroqProvider implements Provider using the Groq API.
type GroqProvider struct {
	client *groq.Client
	model  string
}

// NewGroqProvider creates a new Groq provider.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	client, err := groq.NewClient(cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}

	return &GroqProvider{
		client: client,
		model:  cfg.Model,
	}, nil
}

func (p *GroqProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	system := req.System

	chatReq := groq.ChatCompletionRequest{
		Model: groq.ChatModel(p.model),
	}

	// Groq has JSON mode but no schema-constrained output, so the schema
	// is spelled out in the system prompt and enforced after the fact.
	if req.Schema != nil {
		schemaBytes, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}
		system = system + "\n\nRespond with a single JSON object conforming to this JSON Schema:\n" + string(schemaBytes)
		chatReq.ResponseFormat = &groq.ChatResponseFormat{Type: "json_object"}
	}

	if system != "" {
		chatReq.Messages = append(chatReq.Messages, groq.ChatCompletionMessage{
			Role:    groq.RoleSystem,
			Content: system,
		})
	}
	for _, m := range req.Messages {
		role := groq.RoleUser
		if m.Role == RoleAssistant {
			role = groq.RoleAssistant
		}
		chatReq.Messages = append(chatReq.Messages, groq.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	resp, err := p.client.ChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, &ErrProviderUnavailable{Provider: "groq", Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{
			Err: fmt.Errorf("no choices in groq response"),
		}
	}

	content := json.RawMessage(stripFences(resp.Choices[0].Message.Content))

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

func (p *GroqProvider) ModelID() string {
	return p.model
}
