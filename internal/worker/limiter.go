package worker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter implements per-backend rate limiting. Backends are named
// ("vector", "sparse", or an LLM provider name); each gets its own
// token bucket.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait waits for rate limit clearance for the given backend
func (l *Limiter) Wait(ctx context.Context, backend string) error {
	return l.getLimiter(backend).Wait(ctx)
}

// Allow checks if a request is allowed without waiting
func (l *Limiter) Allow(backend string) bool {
	return l.getLimiter(backend).Allow()
}

// getLimiter returns the rate limiter for a backend
func (l *Limiter) getLimiter(backend string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[backend]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[backend]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[backend] = limiter

	return limiter
}

// SetBackendRate sets a custom rate limit for a specific backend
func (l *Limiter) SetBackendRate(backend string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[backend] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

// WaitWithDelay waits for rate limit and adds an additional delay
func (l *Limiter) WaitWithDelay(ctx context.Context, backend string, additionalDelay time.Duration) error {
	if err := l.Wait(ctx, backend); err != nil {
		return err
	}

	if additionalDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(additionalDelay):
		}
	}

	return nil
}
