package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/compozy/prwriter/internal/config"
	"github.com/compozy/prwriter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var promptMessages = []domain.ChatMessage{
	domain.SystemMessage("You write PR descriptions."),
	domain.UserMessage("Diff: []"),
	domain.UserMessage("Be brief."),
}

func captureServer(t *testing.T, path, response string, captured *map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewTextGenerator(t *testing.T) {
	t.Run("Should require an API key for hosted providers", func(t *testing.T) {
		for _, provider := range []string{config.ProviderOpenAI, config.ProviderAnthropic} {
			_, err := NewTextGenerator(GeneratorConfig{Provider: provider, Model: "m"})
			assert.ErrorIs(t, err, ErrMissingCredential)
		}
	})
	t.Run("Should build ollama without a key", func(t *testing.T) {
		gen, err := NewTextGenerator(GeneratorConfig{Provider: config.ProviderOllama, Model: "llama3"})
		require.NoError(t, err)
		assert.NotNil(t, gen)
	})
	t.Run("Should reject unknown providers", func(t *testing.T) {
		_, err := NewTextGenerator(GeneratorConfig{Provider: "mystery", APIKey: "k"})
		assert.ErrorContains(t, err, "unsupported generation provider")
	})
	t.Run("Should report which providers need keys", func(t *testing.T) {
		assert.True(t, RequiresAPIKey(config.ProviderOpenAI))
		assert.True(t, RequiresAPIKey(config.ProviderAnthropic))
		assert.False(t, RequiresAPIKey(config.ProviderOllama))
	})
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	t.Run("Should send ordered messages and return the first choice", func(t *testing.T) {
		var captured map[string]any
		server := captureServer(t, "/chat/completions", `{
			"id": "chatcmpl-1", "object": "chat.completion", "created": 1,
			"model": "gpt-4-1106-preview",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "### Why\nBecause."}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 4, "total_tokens": 16}
		}`, &captured)
		gen, err := NewTextGenerator(GeneratorConfig{
			Provider: config.ProviderOpenAI,
			Model:    "gpt-4-1106-preview",
			APIKey:   "sk-test",
			BaseURL:  server.URL,
		})
		require.NoError(t, err)
		result, err := gen.Generate(context.Background(), promptMessages)
		require.NoError(t, err)
		assert.Equal(t, "### Why\nBecause.", result.Content)
		assert.Equal(t, int64(16), result.Usage.TotalTokens)
		assert.Equal(t, "stop", result.Usage.FinishReason)
		assert.Equal(t, "gpt-4-1106-preview", captured["model"])
		assert.EqualValues(t, DefaultMaxTokens, captured["max_tokens"])
		msgs, ok := captured["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 3)
		assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
		assert.Equal(t, "user", msgs[2].(map[string]any)["role"])
	})
	t.Run("Should fail when no choices are returned", func(t *testing.T) {
		var captured map[string]any
		server := captureServer(t, "/chat/completions",
			`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`, &captured)
		gen, err := NewTextGenerator(GeneratorConfig{Provider: config.ProviderOpenAI, Model: "m", APIKey: "k", BaseURL: server.URL})
		require.NoError(t, err)
		_, err = gen.Generate(context.Background(), promptMessages)
		assert.ErrorContains(t, err, "no choices")
	})
}

func TestAnthropicGenerator_Generate(t *testing.T) {
	t.Run("Should move system prompt aside and merge user turns", func(t *testing.T) {
		var captured map[string]any
		server := captureServer(t, "/v1/messages", `{
			"id": "msg_1", "type": "message", "role": "assistant", "model": "claude-sonnet-4-5",
			"content": [{"type": "text", "text": "### Why\nClarity."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 20, "output_tokens": 5}
		}`, &captured)
		gen, err := NewTextGenerator(GeneratorConfig{
			Provider:  config.ProviderAnthropic,
			Model:     "claude-sonnet-4-5",
			APIKey:    "ak-test",
			BaseURL:   server.URL,
			MaxTokens: 1024,
		})
		require.NoError(t, err)
		result, err := gen.Generate(context.Background(), promptMessages)
		require.NoError(t, err)
		assert.Equal(t, "### Why\nClarity.", result.Content)
		assert.Equal(t, int64(25), result.Usage.TotalTokens)
		assert.Equal(t, "end_turn", result.Usage.FinishReason)
		assert.EqualValues(t, 1024, captured["max_tokens"])
		system, ok := captured["system"].([]any)
		require.True(t, ok)
		assert.Equal(t, "You write PR descriptions.", system[0].(map[string]any)["text"])
		msgs, ok := captured["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 1)
		content := msgs[0].(map[string]any)["content"].([]any)
		assert.Len(t, content, 2)
	})
}

func TestOllamaGenerator_Generate(t *testing.T) {
	t.Run("Should return the local model reply", func(t *testing.T) {
		var captured map[string]any
		server := captureServer(t, "/api/chat", `{"model":"llama3","created_at":"2024-01-01T00:00:00Z",`+
			`"message":{"role":"assistant","content":"### Why\nLocal."},"done":true,`+
			`"prompt_eval_count":9,"eval_count":3}`+"\n", &captured)
		gen, err := NewTextGenerator(GeneratorConfig{Provider: config.ProviderOllama, Model: "llama3", BaseURL: server.URL})
		require.NoError(t, err)
		result, err := gen.Generate(context.Background(), promptMessages)
		require.NoError(t, err)
		assert.Equal(t, "### Why\nLocal.", result.Content)
		assert.Equal(t, "llama3", result.Usage.Model)
		assert.Equal(t, "llama3", captured["model"])
	})
}
