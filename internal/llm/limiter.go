package llm

import (
	"context"
	"fmt"
	"time"
)

// LimitedGenerator caps the number of in-flight model calls across the
// whole process with a token bucket.
type LimitedGenerator struct {
	inner    Generator
	rateChan chan struct{}
	wait     time.Duration
}

// WithConcurrencyLimit wraps g so that at most n calls run at once.
// n <= 0 disables the limit.
func WithConcurrencyLimit(g Generator, n int) Generator {
	if n <= 0 {
		return g
	}
	rateChan := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		rateChan <- struct{}{}
	}
	return &LimitedGenerator{inner: g, rateChan: rateChan, wait: 5 * time.Minute}
}

func (l *LimitedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := l.acquire(ctx); err != nil {
		return "", err
	}
	defer l.release()
	return l.inner.Generate(ctx, prompt)
}

func (l *LimitedGenerator) ModelID() string {
	return l.inner.ModelID()
}

// acquire blocks until a slot is available
func (l *LimitedGenerator) acquire(ctx context.Context) error {
	select {
	case <-l.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(l.wait):
		return fmt.Errorf("timeout waiting for generation slot")
	}
}

func (l *LimitedGenerator) release() {
	l.rateChan <- struct{}{}
}
