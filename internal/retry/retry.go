// Package retry wraps model backend calls in bounded exponential backoff.
package retry

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"

	"docextract/internal/domain"
)

// Policy bounds how a call is retried.
type Policy struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultPolicy returns the policy used for model backends.
func DefaultPolicy(maxRetries int) Policy {
	return Policy{
		MaxRetries:      maxRetries,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
	}
}

// hintedBackOff lets a server-provided Retry-After stretch the next wait.
type hintedBackOff struct {
	backoff.BackOff
	max  time.Duration
	hint time.Duration
}

func (h *hintedBackOff) NextBackOff() time.Duration {
	next := h.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if h.hint > next {
		next = h.hint
		if h.max > 0 && next > h.max {
			next = h.max
		}
	}
	h.hint = 0
	return next
}

// Do runs op until it succeeds, fails permanently, the retry budget is spent
// or ctx is done. Only transient *domain.BackendError failures are retried.
func Do(ctx context.Context, name string, p Policy, op func(ctx context.Context) error) error {
	exp := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		exp.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		exp.MaxInterval = p.MaxInterval
	}
	exp.MaxElapsedTime = 0

	maxRetries := p.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	hinted := &hintedBackOff{BackOff: exp, max: 4 * exp.MaxInterval}
	b := backoff.WithContext(backoff.WithMaxRetries(hinted, uint64(maxRetries)), ctx)

	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		err := op(ctx)
		if err == nil {
			return nil
		}
		var be *domain.BackendError
		if !errors.As(err, &be) || !be.Transient() {
			return backoff.Permanent(err)
		}
		hinted.hint = be.RetryAfter
		return err
	}, b, func(err error, wait time.Duration) {
		log.Printf("retry.Do: %s attempt %d failed, retrying in %s: %v", name, attempt, wait, err)
	})
}
