package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/compozy/prwriter/internal/config"
	"github.com/compozy/prwriter/internal/domain"
)

// ErrMissingCredential is returned when the provider needs an API key and none is set.
var ErrMissingCredential = errors.New("missing API credential")

// TextGenerator turns an ordered message sequence into a single reply.
type TextGenerator interface {
	Generate(ctx context.Context, messages []domain.ChatMessage) (*domain.GenerationResult, error)
}

// GeneratorConfig selects and configures a TextGenerator.
type GeneratorConfig struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
}

// RequiresAPIKey reports whether provider authenticates with an API key.
func RequiresAPIKey(provider string) bool {
	return provider != config.ProviderOllama
}

// NewTextGenerator builds the generator for cfg.Provider. No network call is made.
func NewTextGenerator(cfg GeneratorConfig) (TextGenerator, error) {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if RequiresAPIKey(cfg.Provider) && strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w for provider %s", ErrMissingCredential, cfg.Provider)
	}
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return newOpenAIGenerator(cfg), nil
	case config.ProviderAnthropic:
		return newAnthropicGenerator(cfg), nil
	case config.ProviderOllama:
		return newOllamaGenerator(cfg)
	}
	return nil, fmt.Errorf("unsupported generation provider: %s", cfg.Provider)
}

func withTrailingSlash(u string) string {
	if u == "" || strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
