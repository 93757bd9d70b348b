package ai

import (
	"context"
	"errors"
)

// ErrNotConfigured — no provider credential, surfaced as a configuration error.
var ErrNotConfigured = errors.New("ai: OpenAI API key is not configured")

// Provider — the completion provider, knows nothing about threads or vehicles.
type Provider interface {
	// Complete returns the raw content of the single generated reply.
	Complete(ctx context.Context, req Request) (string, error)
}

// Message — universal dialog format for the provider.
type Message struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

type Request struct {
	System   string
	Messages []Message
}
