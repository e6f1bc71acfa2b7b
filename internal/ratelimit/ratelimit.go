package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amishk599/wellplan/internal/ai"
)

// Limiter enforces a minimum gap between consecutive calls sharing a key.
// Keys are provider names for upstream calls and client addresses for the
// plan endpoint.
type Limiter struct {
	mu       sync.Mutex
	lastCall map[string]time.Time
	minDelay time.Duration
	now      func() time.Time
}

// NewLimiter creates a limiter with the given minimum gap. A zero gap never blocks.
func NewLimiter(minDelay time.Duration) *Limiter {
	return &Limiter{
		lastCall: make(map[string]time.Time),
		minDelay: minDelay,
		now:      time.Now,
	}
}

// Wait blocks until enough time has passed since the last call for key.
// Returns an error if the context is cancelled while waiting.
func (l *Limiter) Wait(ctx context.Context, key string) error {
	l.mu.Lock()
	now := l.now()
	last, ok := l.lastCall[key]
	if !ok || now.Sub(last) >= l.minDelay {
		l.lastCall[key] = now
		l.mu.Unlock()
		return nil
	}

	// Reserve the next slot so concurrent waiters queue behind each other.
	next := last.Add(l.minDelay)
	l.lastCall[key] = next
	remaining := next.Sub(now)
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", key, ctx.Err())
	case <-time.After(remaining):
	}
	return nil
}

// Allow records a call for key and reports whether it is permitted now. When
// it is not, the returned duration is how long the caller should back off.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.lastCall[key]; ok {
		if elapsed := now.Sub(last); elapsed < l.minDelay {
			return false, l.minDelay - elapsed
		}
	}
	l.lastCall[key] = now
	return true, 0
}

// Forget drops entries older than the minimum gap. Long-running servers call
// it periodically so per-client keys do not accumulate.
func (l *Limiter) Forget() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for k, t := range l.lastCall {
		if now.Sub(t) >= l.minDelay {
			delete(l.lastCall, k)
			removed++
		}
	}
	return removed
}

// RateLimitedProvider is a decorator that waits on a shared Limiter before
// delegating to the wrapped LLMProvider.
type RateLimitedProvider struct {
	inner   ai.LLMProvider
	limiter *Limiter
	key     string
}

// NewRateLimitedProvider wraps an LLMProvider with rate limiting under key.
func NewRateLimitedProvider(inner ai.LLMProvider, limiter *Limiter, key string) *RateLimitedProvider {
	return &RateLimitedProvider{
		inner:   inner,
		limiter: limiter,
		key:     key,
	}
}

// Complete waits for the limiter, then delegates.
func (p *RateLimitedProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if err := p.limiter.Wait(ctx, p.key); err != nil {
		return "", err
	}
	return p.inner.Complete(ctx, prompt)
}
