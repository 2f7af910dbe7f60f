// Package generate provides the text-generation backends consulted by the
// calibrator pipeline. Every backend satisfies Backend; callers treat any
// error as "no response" and continue with their deterministic fallback.
package generate

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrUnavailable reports a backend that is disabled or not configured.
	ErrUnavailable = errors.New("generation backend unavailable")
	// ErrEmptyResponse reports a backend that answered with no usable text.
	ErrEmptyResponse = errors.New("generation backend returned no text")
)

// Backend generates text for a prompt within a token budget.
type Backend interface {
	Name() string
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Nop is the always-available backend that never produces text.
type Nop struct{}

// Name implements Backend.
func (Nop) Name() string { return "none" }

// Complete implements Backend.
func (Nop) Complete(context.Context, string, int) (string, error) {
	return "", ErrUnavailable
}

// Chain consults backends in priority order and returns the first non-empty
// response. Each attempt runs under its own Timeout; failures are reported to
// OnFailure and never retried.
type Chain struct {
	Backends  []Backend
	Timeout   time.Duration
	OnFailure func(backend string, err error)
	OnSuccess func(backend string)
}

// Name implements Backend.
func (c *Chain) Name() string {
	names := make([]string, 0, len(c.Backends))
	for _, b := range c.Backends {
		if b != nil {
			names = append(names, b.Name())
		}
	}
	if len(names) == 0 {
		return Nop{}.Name()
	}
	return strings.Join(names, ">")
}

// Complete implements Backend.
func (c *Chain) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	lastErr := ErrUnavailable
	for _, b := range c.Backends {
		if b == nil {
			continue
		}
		text, err := c.attempt(ctx, b, prompt, maxTokens)
		if err != nil {
			lastErr = err
			if c.OnFailure != nil {
				c.OnFailure(b.Name(), err)
			}
			continue
		}
		if c.OnSuccess != nil {
			c.OnSuccess(b.Name())
		}
		return text, nil
	}
	return "", lastErr
}

func (c *Chain) attempt(ctx context.Context, b Backend, prompt string, maxTokens int) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	text, err := b.Complete(ctx, prompt, maxTokens)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
