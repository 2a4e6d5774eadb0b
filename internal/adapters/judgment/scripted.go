package judgment

import (
	"context"
	"sync"

	"itinerary-remediation-service/internal/ports"
)

// ScriptedProvider answers completions from a function. It backs tests and
// offline runs where canned judgments are wanted.
type ScriptedProvider struct {
	name      string
	available bool
	respond   func(ports.CompletionRequest) (string, error)

	mu       sync.Mutex
	requests []ports.CompletionRequest
}

var _ ports.JudgmentProvider = (*ScriptedProvider)(nil)

func NewScriptedProvider(name string, available bool, respond func(ports.CompletionRequest) (string, error)) *ScriptedProvider {
	return &ScriptedProvider{name: name, available: available, respond: respond}
}

func (p *ScriptedProvider) Name() string { return p.name }

func (p *ScriptedProvider) IsAvailable(context.Context) bool { return p.available }

func (p *ScriptedProvider) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.respond == nil {
		return "", nil
	}
	return p.respond(req)
}

// Requests returns a copy of every request received so far.
func (p *ScriptedProvider) Requests() []ports.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.CompletionRequest(nil), p.requests...)
}
