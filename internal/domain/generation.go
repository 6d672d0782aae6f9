package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Usage carries the token accounting reported by the model provider.
type Usage struct {
	Model            string         `json:"model"`
	PromptTokens     int64          `json:"prompt_tokens"`
	CompletionTokens int64          `json:"completion_tokens"`
	TotalTokens      int64          `json:"total_tokens"`
	FinishReason     string         `json:"finish_reason,omitempty"`
	Extra            map[string]any `json:"extra,omitempty"`
}

// GenerationResult is the first reply of the model plus its usage metadata.
type GenerationResult struct {
	Content string
	Usage   Usage
}

// String renders the usage as a single stats line.
func (u Usage) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "model=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		u.Model, u.PromptTokens, u.CompletionTokens, u.TotalTokens)
	if u.FinishReason != "" {
		fmt.Fprintf(&b, " finish_reason=%s", u.FinishReason)
	}
	keys := make([]string, 0, len(u.Extra))
	for k := range u.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, u.Extra[k])
	}
	return b.String()
}
