/*
Package retry implements the transient fault retry policy shared by the store clients.

Every remote call a client makes goes through one Executor. Failures the
classifier accepts as transient (throttling, server faults, timeouts, errors
marked with Transient) are retried with exponential backoff and jitter;
anything else is returned unchanged on the first attempt. When the attempts
run out the caller receives an errors.TransientError wrapping the last failure.

	policy := retry.New(retry.DefaultConfig(), retry.WithLogger(logger))
	out, err := retry.Do(ctx, policy, "GetItem", func(ctx context.Context) (*dynamodb.GetItemOutput, error) {
	    return client.GetItem(ctx, input)
	})

An optional circuit breaker (BreakerConfig) stops calling a backend that keeps
failing transiently; calls rejected by an open breaker fail immediately with a
TransientError.
*/
package retry
