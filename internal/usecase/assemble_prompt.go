package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/compozy/prwriter/internal/domain"
	"github.com/compozy/prwriter/internal/logging"
	"github.com/compozy/prwriter/internal/prompt"
	"github.com/spf13/afero"
)

// PromptInput carries what goes into the prompt of one run.
type PromptInput struct {
	Diff              *domain.DiffResult
	CustomInstruction string
	SystemMessage     string
	SystemPromptFile  string
	Model             string
}

// AssemblePromptUseCase builds the ordered message sequence sent to the generator.
type AssemblePromptUseCase struct {
	FS             afero.Fs
	Logger         logging.Logger
	EstimateTokens func(model string, messages []domain.ChatMessage) int
}

// Execute returns the system message, the diff and the optional custom instruction, in that order.
func (uc *AssemblePromptUseCase) Execute(_ context.Context, in PromptInput) ([]domain.ChatMessage, error) {
	if in.Diff == nil {
		return nil, fmt.Errorf("diff cannot be nil")
	}
	system, err := uc.systemPrompt(in)
	if err != nil {
		return nil, err
	}
	diff, err := in.Diff.JSON()
	if err != nil {
		return nil, err
	}
	messages := []domain.ChatMessage{
		domain.SystemMessage(system),
		domain.UserMessage(diff),
	}
	if in.CustomInstruction != "" {
		messages = append(messages, domain.UserMessage(in.CustomInstruction))
	}
	if uc.EstimateTokens != nil {
		uc.Logger.Debug("assembled prompt",
			"messages", len(messages),
			"files", len(in.Diff.Files),
			"estimated_tokens", uc.EstimateTokens(in.Model, messages))
	}
	return messages, nil
}

func (uc *AssemblePromptUseCase) systemPrompt(in PromptInput) (string, error) {
	if strings.TrimSpace(in.SystemMessage) != "" {
		return in.SystemMessage, nil
	}
	if in.SystemPromptFile != "" {
		data, err := afero.ReadFile(uc.FS, in.SystemPromptFile)
		if err != nil {
			return "", fmt.Errorf("failed to read system prompt file: %w", err)
		}
		if content := string(data); strings.TrimSpace(content) != "" {
			return content, nil
		}
		uc.Logger.Info("system prompt file is empty, using bundled prompt", "path", in.SystemPromptFile)
	}
	return prompt.DefaultSystemPrompt(), nil
}
