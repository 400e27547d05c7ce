package storagemodels

import (
	"time"
)

// StreamResult represents a single entity in a partition listing with metadata
type StreamResult[T any] struct {
	Item  DictionaryEntity[T] // The decoded entity
	Error error               // Set on the final result when the listing failed
	Meta  StreamMeta          // Metadata about this item
}

// StreamMeta contains metadata about a streamed item
type StreamMeta struct {
	Index      int64     // Item index in stream (0-based)
	PageNumber int       // Backend page number (1-based)
	Timestamp  time.Time // When item was retrieved
}

// ListOptions configures partition listing
type ListOptions struct {
	BufferSize      int                  // Channel buffer size (default: 100)
	PageSize        int32                // Items per backend page (default: 100)
	ProgressHandler func(StreamProgress) // Optional progress callback, invoked after each page
}

// StreamProgress tracks listing progress
type StreamProgress struct {
	ItemsProcessed int64     // Total items processed
	PagesProcessed int       // Total pages processed
	StartTime      time.Time // When listing started
	CurrentRate    float64   // Items per second
}

// ListOption is a functional option for configuring listing
type ListOption func(*ListOptions)

// DefaultListOptions returns default listing options
func DefaultListOptions() ListOptions {
	return ListOptions{
		BufferSize: 100,
		PageSize:   100,
	}
}

// ApplyListOptions returns the defaults with opts applied. Non-positive sizes
// fall back to their defaults.
func ApplyListOptions(opts ...ListOption) ListOptions {
	o := DefaultListOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := DefaultListOptions()
	if o.BufferSize <= 0 {
		o.BufferSize = d.BufferSize
	}
	if o.PageSize <= 0 {
		o.PageSize = d.PageSize
	}
	return o
}

// WithBufferSize sets the channel buffer size
func WithBufferSize(size int) ListOption {
	return func(opts *ListOptions) {
		opts.BufferSize = size
	}
}

// WithPageSize sets the backend page size
func WithPageSize(size int32) ListOption {
	return func(opts *ListOptions) {
		opts.PageSize = size
	}
}

// WithProgressHandler sets a progress callback
func WithProgressHandler(handler func(StreamProgress)) ListOption {
	return func(opts *ListOptions) {
		opts.ProgressHandler = handler
	}
}

// Progress builds a progress snapshot.
func Progress(items int64, pages int, start time.Time) StreamProgress {
	p := StreamProgress{ItemsProcessed: items, PagesProcessed: pages, StartTime: start}
	if elapsed := time.Since(start).Seconds(); elapsed > 0 {
		p.CurrentRate = float64(items) / elapsed
	}
	return p
}
