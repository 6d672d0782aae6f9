// Package prompt holds the bundled system prompt and the token estimate of assembled prompts.
package prompt

import (
	_ "embed"
	"strings"
)

//go:embed system_prompt.txt
var defaultSystemPrompt string

// SectionHeaders are the headers the generated description must contain, in order.
var SectionHeaders = []string{
	"Why",
	"What",
	"How can it be used",
	"How did you test it",
	"Notes for the reviewer",
}

// DefaultSystemPrompt returns the bundled system prompt.
func DefaultSystemPrompt() string {
	return strings.TrimSpace(defaultSystemPrompt)
}
