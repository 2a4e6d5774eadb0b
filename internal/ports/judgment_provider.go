package ports

import "context"

type CompletionRequest struct {
	System string
	Prompt string
	// JSON asks the provider for a JSON object response when it supports one.
	JSON      bool
	MaxTokens int
}

// JudgmentProvider is a text-completion backend used for fuzzy remediation.
type JudgmentProvider interface {
	Name() string
	IsAvailable(ctx context.Context) bool
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
