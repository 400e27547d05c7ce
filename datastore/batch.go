/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/internal/validate"
	"github.com/suparena/dictstore/storagemodels"
)

// Chunk splits items into consecutive slices of at most size elements,
// preserving order. The chunks share the backing array of items.
func Chunk[E any](items []E, size int) [][]E {
	if size <= 0 {
		size = MaxBatchSize
	}
	chunks := make([][]E, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}

// ValidateBatch checks a PutBatch argument. A nil slice is rejected; an empty
// one is valid and means nothing to write.
func ValidateBatch[T any](entities []storagemodels.DictionaryEntity[T]) error {
	if entities == nil {
		return errors.NewInvalidArgumentError("entities", "must not be nil")
	}
	for _, e := range entities {
		if err := validate.RequireKeys(e.EntityID, e.PartitionID); err != nil {
			return err
		}
	}
	return nil
}

// Collect drains a listing into a slice, stopping at the first error.
func Collect[T any](results <-chan storagemodels.StreamResult[T]) ([]storagemodels.DictionaryEntity[T], error) {
	var out []storagemodels.DictionaryEntity[T]
	for r := range results {
		if r.Error != nil {
			// drain so the producer can exit
			for range results {
			}
			return out, r.Error
		}
		out = append(out, r.Item)
	}
	return out, nil
}
