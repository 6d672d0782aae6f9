package service

import (
	"context"
	"fmt"

	"github.com/compozy/prwriter/internal/domain"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

type ollamaGenerator struct {
	llm       *ollama.LLM
	model     string
	maxTokens int
}

func newOllamaGenerator(cfg GeneratorConfig) (*ollamaGenerator, error) {
	opts := []ollama.Option{ollama.WithModel(cfg.Model)}
	if cfg.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
	}
	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return &ollamaGenerator{llm: llm, model: cfg.Model, maxTokens: cfg.MaxTokens}, nil
}

// Generate runs the messages against a local model served by ollama.
func (g *ollamaGenerator) Generate(ctx context.Context, messages []domain.ChatMessage) (*domain.GenerationResult, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		role := llms.ChatMessageTypeHuman
		switch m.Role {
		case domain.RoleSystem:
			role = llms.ChatMessageTypeSystem
		case domain.RoleAssistant:
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, m.Content))
	}
	resp, err := g.llm.GenerateContent(ctx, content, llms.WithMaxTokens(g.maxTokens))
	if err != nil {
		return nil, fmt.Errorf("ollama generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("ollama returned no choices")
	}
	choice := resp.Choices[0]
	usage := domain.Usage{
		Model:            g.model,
		PromptTokens:     infoInt(choice.GenerationInfo, "PromptTokens"),
		CompletionTokens: infoInt(choice.GenerationInfo, "CompletionTokens"),
		TotalTokens:      infoInt(choice.GenerationInfo, "TotalTokens"),
		FinishReason:     choice.StopReason,
	}
	return &domain.GenerationResult{Content: choice.Content, Usage: usage}, nil
}

func infoInt(info map[string]any, key string) int64 {
	switch v := info[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}
