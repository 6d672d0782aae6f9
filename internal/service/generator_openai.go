package service

import (
	"context"
	"fmt"

	"github.com/compozy/prwriter/internal/domain"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAIGenerator struct {
	client    openai.Client
	model     string
	maxTokens int64
}

func newOpenAIGenerator(cfg GeneratorConfig) *openAIGenerator {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(withTrailingSlash(cfg.BaseURL)))
	}
	return &openAIGenerator{
		client:    openai.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
	}
}

// Generate sends the messages to the chat completions endpoint.
func (g *openAIGenerator) Generate(ctx context.Context, messages []domain.ChatMessage) (*domain.GenerationResult, error) {
	params := openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(g.model),
		Messages:  make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
		MaxTokens: openai.Int(g.maxTokens),
	}
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case domain.RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}
	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}
	choice := resp.Choices[0]
	return &domain.GenerationResult{
		Content: choice.Message.Content,
		Usage: domain.Usage{
			Model:            resp.Model,
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
			FinishReason:     string(choice.FinishReason),
		},
	}, nil
}
