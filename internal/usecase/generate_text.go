package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/compozy/prwriter/internal/domain"
	"github.com/compozy/prwriter/internal/service"
)

// GenerateTextUseCase sends the prompt to the model and returns its first reply.
type GenerateTextUseCase struct {
	Generator service.TextGenerator
}

// Execute runs the use case.
func (uc *GenerateTextUseCase) Execute(ctx context.Context, messages []domain.ChatMessage) (*domain.GenerationResult, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("prompt cannot be empty")
	}
	for i, m := range messages {
		if !m.Role.IsValid() {
			return nil, fmt.Errorf("message %d has invalid role %q", i, m.Role)
		}
	}
	result, err := uc.Generator.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PR text: %w", err)
	}
	if result == nil || strings.TrimSpace(result.Content) == "" {
		return nil, fmt.Errorf("model returned an empty reply")
	}
	return result, nil
}
