/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/dictstore/storagemodels"
)

// MaxBatchSize is the largest number of entities sent in one backend batch call.
const MaxBatchSize = 25

type DictionaryStore[T any] interface {
	// Exists reports whether an entity is stored under the key.
	Exists(ctx context.Context, entityID, partitionID string) (bool, error)

	// Get returns the stored entity, or nil without error when there is none.
	Get(ctx context.Context, entityID, partitionID string) (*storagemodels.DictionaryEntity[T], error)

	// Put creates or replaces an entity.
	Put(ctx context.Context, entity storagemodels.DictionaryEntity[T]) error

	// PutBatch writes entities in sequential chunks of at most MaxBatchSize.
	// Chunks written before a failing chunk stay written.
	PutBatch(ctx context.Context, entities []storagemodels.DictionaryEntity[T]) error

	// Delete removes an entity. Deleting a key that is not stored, or from a
	// table that does not exist, fails with OperationInvalidError.
	Delete(ctx context.Context, entityID, partitionID string) (bool, error)

	// DeletePartition removes every entity of a partition. It is not atomic.
	DeletePartition(ctx context.Context, partitionID string) (bool, error)

	// ListPartition streams every entity of a partition in backend order.
	// A failure is delivered as the last result before the channel closes.
	ListPartition(ctx context.Context, partitionID string, opts ...storagemodels.ListOption) <-chan storagemodels.StreamResult[T]
}
