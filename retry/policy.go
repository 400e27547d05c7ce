/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package retry

import (
	"context"
	stderrors "errors"
	"math"
	"math/rand"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/suparena/dictstore/errors"
)

// Executor runs a remote operation under a retry discipline.
type Executor interface {
	Execute(ctx context.Context, operation string, fn func(ctx context.Context) error) error
}

// Observer is notified of every attempt and of the final outcome of a call.
type Observer interface {
	ObserveAttempt(operation string, attempt int, elapsed time.Duration, err error)
	ObserveOutcome(operation string, attempts int, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveAttempt(string, int, time.Duration, error) {}
func (noopObserver) ObserveOutcome(string, int, error) {}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Policy retries transient failures with exponential backoff and jitter.
// It is safe for concurrent use and independent of the operation's result
// type; see Do for calls that return a value.
type Policy struct {
	cfg      Config
	classify Classifier
	logger   *zap.Logger
	observer Observer
	sleep    SleepFunc
	breaker  *gobreaker.CircuitBreaker
}

// Option configures a Policy
type Option func(*Policy)

// WithClassifier replaces the default IsTransient classifier.
func WithClassifier(c Classifier) Option {
	return func(p *Policy) {
		if c != nil {
			p.classify = c
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Policy) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithObserver(o Observer) Option {
	return func(p *Policy) {
		if o != nil {
			p.observer = o
		}
	}
}

// WithSleep replaces the wait between attempts. Tests use it to avoid real delays.
func WithSleep(sleep SleepFunc) Option {
	return func(p *Policy) {
		if sleep != nil {
			p.sleep = sleep
		}
	}
}

// New creates a policy. Zero config values fall back to DefaultConfig.
func New(cfg Config, opts ...Option) *Policy {
	p := &Policy{
		cfg:      cfg.withDefaults(),
		classify: IsTransient,
		logger:   zap.NewNop(),
		observer: noopObserver{},
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named("retry")
	if cfg.Breaker != nil {
		p.breaker = p.newBreaker(*cfg.Breaker)
	}
	return p
}

// Config returns the effective configuration.
func (p *Policy) Config() Config { return p.cfg }

func (p *Policy) newBreaker(bc BreakerConfig) *gobreaker.CircuitBreaker {
	d := DefaultBreakerConfig(bc.Name)
	if bc.MaxRequests == 0 {
		bc.MaxRequests = d.MaxRequests
	}
	if bc.Timeout <= 0 {
		bc.Timeout = d.Timeout
	}
	if bc.FailureThreshold <= 0 {
		bc.FailureThreshold = d.FailureThreshold
	}
	if bc.MinRequests == 0 {
		bc.MinRequests = d.MinRequests
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        bc.Name,
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bc.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= bc.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			p.logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
		// only transient failures say anything about backend health
		IsSuccessful: func(err error) bool {
			return err == nil || !p.classify(err)
		},
	})
}

// Execute runs fn until it succeeds, fails with a non-transient error, or
// MaxAttempts is reached. Non-transient errors are returned unchanged;
// exhaustion returns a TransientError wrapping the last failure.
func (p *Policy) Execute(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		err := p.attempt(ctx, fn)
		p.observer.ObserveAttempt(operation, attempt, time.Since(start), err)
		if err == nil {
			p.observer.ObserveOutcome(operation, attempt, nil)
			return nil
		}

		if isBreakerRejection(err) {
			terr := errors.NewTransientError(operation, attempt, err)
			p.observer.ObserveOutcome(operation, attempt, terr)
			return terr
		}

		if !p.classify(err) {
			p.observer.ObserveOutcome(operation, attempt, err)
			return err
		}

		lastErr = err
		if attempt == p.cfg.MaxAttempts {
			break
		}

		delay := p.delay(attempt)
		p.logger.Warn("transient failure, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
		if err := p.sleep(ctx, delay); err != nil {
			p.observer.ObserveOutcome(operation, attempt, err)
			return err
		}
	}

	terr := errors.NewTransientError(operation, p.cfg.MaxAttempts, lastErr)
	p.logger.Error("retries exhausted",
		zap.String("operation", operation),
		zap.Int("attempts", p.cfg.MaxAttempts),
		zap.Error(lastErr))
	p.observer.ObserveOutcome(operation, p.cfg.MaxAttempts, terr)
	return terr
}

func (p *Policy) attempt(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.breaker == nil {
		return fn(ctx)
	}
	_, err := p.breaker.Execute(func() (interface{}, error) {
		return nil, fn(ctx)
	})
	return err
}

// delay returns the wait after the given failed attempt (1-based).
func (p *Policy) delay(attempt int) time.Duration {
	backoff := float64(p.cfg.BaseDelay) * math.Pow(p.cfg.BackoffFactor, float64(attempt-1))
	jitter := backoff * p.cfg.JitterFactor * (rand.Float64() - 0.5) * 2
	delay := time.Duration(backoff + jitter)
	if delay > p.cfg.MaxDelay {
		delay = p.cfg.MaxDelay
	}
	return delay
}

func isBreakerRejection(err error) bool {
	return stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs fn through exec and returns its result.
func Do[R any](ctx context.Context, exec Executor, operation string, fn func(ctx context.Context) (R, error)) (R, error) {
	var result R
	err := exec.Execute(ctx, operation, func(ctx context.Context) error {
		r, err := fn(ctx)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	return result, err
}
