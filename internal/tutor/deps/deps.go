package deps

import (
	"context"
)

// LLMClient abstracts a chat-completion backend
type LLMClient interface {
	// GenerateContent sends a system instruction and a user turn and returns the model's text
	GenerateContent(ctx context.Context, system, user string, temperature float32, maxOutputTokens int32) (string, error)
}
