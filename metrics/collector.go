/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/retry"
)

var _ retry.Observer = (*Collector)(nil)

// Collector holds the Prometheus series describing remote store calls
type Collector struct {
	// Registry for this collector instance
	registry  *prometheus.Registry
	namespace string

	Attempts *prometheus.CounterVec
	Retries  *prometheus.CounterVec
	Calls    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewCollector creates a collector with the given namespace and its own registry
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	attempts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_attempts_total",
			Help:      "Total number of remote call attempts",
		},
		[]string{"operation", "result"},
	)

	retries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_retries_total",
			Help:      "Total number of attempts beyond the first",
		},
		[]string{"operation"},
	)

	calls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_calls_total",
			Help:      "Total number of remote calls by final outcome",
		},
		[]string{"operation", "outcome"},
	)

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_attempt_duration_seconds",
			Help:      "Remote call attempt duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	registry.MustRegister(attempts, retries, calls, duration)

	return &Collector{
		registry:  registry,
		namespace: namespace,
		Attempts:  attempts,
		Retries:   retries,
		Calls:     calls,
		Duration:  duration,
	}
}

// Registry returns the registry holding the collector's series
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveAttempt records one attempt of a remote call
func (c *Collector) ObserveAttempt(operation string, attempt int, elapsed time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	c.Attempts.WithLabelValues(operation, result).Inc()
	c.Duration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if attempt > 1 {
		c.Retries.WithLabelValues(operation).Inc()
	}
}

// ObserveOutcome records the final outcome of a remote call
func (c *Collector) ObserveOutcome(operation string, attempts int, err error) {
	c.Calls.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.IsTransient(err):
		return "exhausted"
	default:
		return "failed"
	}
}
