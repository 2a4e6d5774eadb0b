package judgment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"itinerary-remediation-service/internal/ports"
)

var ErrNoProvider = errors.New("no judgment provider available")

// Chain tries providers in a fixed order and delegates to the first available one.
// It is itself a JudgmentProvider.
type Chain struct {
	providers []ports.JudgmentProvider
}

var _ ports.JudgmentProvider = (*Chain)(nil)

func NewChain(providers ...ports.JudgmentProvider) *Chain {
	kept := make([]ports.JudgmentProvider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return &Chain{providers: kept}
}

func (c *Chain) Name() string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

// Select returns the first available provider or ErrNoProvider.
func (c *Chain) Select(ctx context.Context) (ports.JudgmentProvider, error) {
	for _, p := range c.providers {
		if p.IsAvailable(ctx) {
			return p, nil
		}
	}
	return nil, ErrNoProvider
}

func (c *Chain) IsAvailable(ctx context.Context) bool {
	_, err := c.Select(ctx)
	return err == nil
}

func (c *Chain) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	p, err := c.Select(ctx)
	if err != nil {
		return "", err
	}
	out, err := p.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.Name(), err)
	}
	return out, nil
}
