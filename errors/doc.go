/*
Package errors provides the error taxonomy shared by every dictstore adapter.

Each failure kind has a sentinel that typed errors match through errors.Is, so
callers can pick a recovery strategy without inspecting backend SDK errors:

	var (
	    ErrInvalidArgument        = errors.New("invalid argument")
	    ErrOperationInvalid       = errors.New("operation invalid")
	    ErrConfiguration          = errors.New("configuration error")
	    ErrTransientRemoteFailure = errors.New("transient remote failure")
	    ErrDecodeInconsistency    = errors.New("decode inconsistency")
	    ErrNotFound               = errors.New("not found")
	)

Usage:

	ok, err := store.Delete(ctx, "note-1", "tenant-a")
	switch {
	case errors.IsInvalidArgument(err):
	    // fix the input, never retried
	case errors.IsOperationInvalid(err):
	    // table or entity does not exist
	case errors.IsTransient(err):
	    // remote call failed after the retry policy gave up
	case errors.IsDecodeInconsistency(err):
	    // stored record is corrupt
	}

Validation errors are never retried. Remote errors are retried only by the
retry policy and reach the caller wrapped in a TransientError once it gives up.
*/
package errors
