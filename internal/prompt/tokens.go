package prompt

import (
	"sync"

	"github.com/compozy/prwriter/internal/domain"
	"github.com/pkoukk/tiktoken-go"
)

const (
	approxCharsPerToken = 4
	fallbackEncoding    = "cl100k_base"
)

var (
	encoderMu sync.Mutex
	encoders  = map[string]*tiktoken.Tiktoken{}

	estimateTokensFunc = defaultEstimateTokens
)

// EstimateTokens approximates the prompt size of messages for model.
// Unknown models use cl100k_base; without any encoder it falls back to chars/4.
func EstimateTokens(model string, messages []domain.ChatMessage) int {
	total := 0
	for _, m := range messages {
		total += estimateTokensFunc(model, m.Content)
	}
	return total
}

func defaultEstimateTokens(model, text string) int {
	if text == "" {
		return 0
	}
	if enc := encoderFor(model); enc != nil {
		if tokens := enc.Encode(text, nil, nil); len(tokens) > 0 {
			return len(tokens)
		}
	}
	return max(1, len(text)/approxCharsPerToken)
}

func encoderFor(model string) *tiktoken.Tiktoken {
	encoderMu.Lock()
	defer encoderMu.Unlock()
	if enc, ok := encoders[model]; ok {
		return enc
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			enc = nil
		}
	}
	encoders[model] = enc
	return enc
}
