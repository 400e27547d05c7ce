/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package retry

import (
	"time"
)

// Config defines retry behavior configuration
type Config struct {
	MaxAttempts   int            `yaml:"max_attempts" validate:"min=1,max=20"` // Maximum number of attempts, including the first
	BaseDelay     time.Duration  `yaml:"base_delay"`                           // Delay before the first retry
	MaxDelay      time.Duration  `yaml:"max_delay"`                            // Maximum delay between retries
	BackoffFactor float64        `yaml:"backoff_factor"`                       // Exponential backoff multiplier
	JitterFactor  float64        `yaml:"jitter_factor" validate:"min=0,max=1"` // Jitter factor to prevent thundering herd
	Breaker       *BreakerConfig `yaml:"breaker"`                              // Optional circuit breaker
}

// BreakerConfig holds configuration for the optional circuit breaker
type BreakerConfig struct {
	Name        string        `yaml:"name"`
	MaxRequests uint32        `yaml:"max_requests"` // Requests allowed through while half-open
	Interval    time.Duration `yaml:"interval"`     // Closed-state window after which counts reset
	Timeout     time.Duration `yaml:"timeout"`      // Open-state duration before trying half-open
	// FailureThreshold is the transient failure ratio that trips the breaker
	FailureThreshold float64 `yaml:"failure_threshold" validate:"min=0,max=1"`
	MinRequests      uint32  `yaml:"min_requests"`
}

// DefaultConfig returns default retry configuration
func DefaultConfig() Config {
	return Config{
		MaxAttempts:   3,
		BaseDelay:     100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
		JitterFactor:  0.1,
	}
}

// DefaultBreakerConfig returns a default configuration for the circuit breaker
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// withDefaults fills unset fields. The zero Config means DefaultConfig; in
// any other Config a zero JitterFactor disables jitter.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c == (Config{}) {
		return d
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = d.BaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = d.MaxDelay
	}
	if c.BackoffFactor < 1 {
		c.BackoffFactor = d.BackoffFactor
	}
	if c.JitterFactor < 0 || c.JitterFactor > 1 {
		c.JitterFactor = d.JitterFactor
	}
	return c
}
