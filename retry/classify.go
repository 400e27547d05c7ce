/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package retry

import (
	"context"
	stderrors "errors"
	"net"

	"github.com/aws/smithy-go"
)

// Classifier decides whether a failed attempt may be retried.
type Classifier func(err error) bool

// transientError marks an error as retryable regardless of its type.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }

func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as retryable. Adapters use it for conditions the
// backend reports as partial success, such as unprocessed batch items.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

var transientCodes = map[string]bool{
	"ProvisionedThroughputExceededException": true,
	"ThrottlingException":                    true,
	"Throttling":                             true,
	"RequestLimitExceeded":                   true,
	"LimitExceededException":                 true,
	"InternalServerError":                    true,
	"ServiceUnavailable":                     true,
	"RequestTimeout":                         true,
	"TransactionInProgressException":         true,
}

// IsTransient is the default classifier. It accepts errors marked with
// Transient, AWS throttling and server faults, errors that report
// themselves retryable, and network timeouts. Context cancellation is never
// transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var marked *transientError
	if stderrors.As(err, &marked) {
		return true
	}

	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		if transientCodes[apiErr.ErrorCode()] {
			return true
		}
		return apiErr.ErrorFault() == smithy.FaultServer
	}

	var retryable interface{ RetryableError() bool }
	if stderrors.As(err, &retryable) {
		return retryable.RetryableError()
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// Any combines classifiers; an error is transient when any of them says so.
func Any(classifiers ...Classifier) Classifier {
	return func(err error) bool {
		for _, c := range classifiers {
			if c != nil && c(err) {
				return true
			}
		}
		return false
	}
}
