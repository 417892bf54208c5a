package llm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pool tries providers in order, skipping any on cooldown after a
// failure. Selection state is shared across concurrent requests.
type Pool struct {
	providers []Provider
	cooldown  time.Duration
	log       *zap.Logger

	mu             sync.Mutex
	unhealthyUntil map[string]time.Time
}

// NewPool wires a provider pool. A nil logger defaults to nop.
func NewPool(providers []Provider, cooldown time.Duration, log *zap.Logger) *Pool {
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pool{
		providers:      providers,
		cooldown:       cooldown,
		log:            log,
		unhealthyUntil: make(map[string]time.Time),
	}
}

// Size reports how many providers are configured.
func (p *Pool) Size() int {
	return len(p.providers)
}

// Generate fails over through healthy providers in order. A provider
// that errors goes on cooldown; if every provider is exhausted the
// call surfaces ErrAllProvidersFailed with the last cause attached.
func (p *Pool) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if len(p.providers) == 0 {
		return nil, fmt.Errorf("%w: pool is empty", ErrAllProvidersFailed)
	}

	var lastErr error
	for _, provider := range p.providers {
		if p.onCooldown(provider.Name()) {
			continue
		}

		resp, err := provider.Generate(ctx, req)
		if err != nil {
			lastErr = err
			p.markUnhealthy(provider.Name())
			p.log.Warn("provider failed, cooling down",
				zap.String("provider", provider.Name()),
				zap.Duration("cooldown", p.cooldown),
				zap.Error(err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		return resp, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: last error: %v", ErrAllProvidersFailed, lastErr)
	}
	return nil, fmt.Errorf("%w: all providers on cooldown", ErrAllProvidersFailed)
}

// onCooldown checks whether a provider is still benched.
func (p *Pool) onCooldown(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	until, ok := p.unhealthyUntil[name]
	if !ok {
		return false
	}
	if time.Now().After(until) {
		delete(p.unhealthyUntil, name)
		return false
	}
	return true
}

// markUnhealthy benches a provider for the cooldown window.
func (p *Pool) markUnhealthy(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unhealthyUntil[name] = time.Now().Add(p.cooldown)
}
