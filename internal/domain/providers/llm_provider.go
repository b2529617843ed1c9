package providers

import (
	"context"
)

// LLMResult is the raw output of one model call.
type LLMResult struct {
	Content    string
	TokensUsed int
}

// LLMProvider defines the model boundary for structured document
// extraction. A failed call surfaces as an error; the summarizer treats
// every error as "no summary available" and never retries internally.
type LLMProvider interface {
	Summarize(ctx context.Context, prompt string) (*LLMResult, error)
}
