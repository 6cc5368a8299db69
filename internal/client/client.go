package client

import (
	"context"
)

// Client is a text-completion facade over one LLM provider.
// Implementations are safe to reuse across turns.
type Client interface {
	// Invoke sends prompt and returns the generated text. A response that
	// lacks the completion field yields "" without error.
	Invoke(ctx context.Context, prompt string) (string, error)

	// Provider returns the provider name ("ollama" or "gemini").
	Provider() string

	// Model returns the model identifier.
	Model() string
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
