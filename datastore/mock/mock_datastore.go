/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the DictionaryStore
// interface for testing
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/suparena/dictstore/datastore"
	"github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/internal/validate"
	"github.com/suparena/dictstore/storagemodels"
)

// Call records one operation against the mock. Batch operations record one
// call per chunk with its Size.
type Call struct {
	Operation   string
	PartitionID string
	EntityID    string
	Size        int
}

// DataStore is an in-memory datastore.DictionaryStore[T] for testing
type DataStore[T any] struct {
	mu          sync.RWMutex
	data        map[string]map[string]T
	calls       []Call
	batchSize   int
	listFunc    func(ctx context.Context, partitionID string, opts ...storagemodels.ListOption) <-chan storagemodels.StreamResult[T]
	getError    error
	putError    error
	deleteError error
}

var _ datastore.DictionaryStore[struct{}] = (*DataStore[struct{}])(nil)

// New creates a new mock DataStore
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		data:      make(map[string]map[string]T),
		batchSize: datastore.MaxBatchSize,
	}
}

// WithBatchSize sets the chunk size used by PutBatch and DeletePartition
func (m *DataStore[T]) WithBatchSize(size int) *DataStore[T] {
	m.batchSize = size
	return m
}

// WithListFunc sets a custom ListPartition function for testing
func (m *DataStore[T]) WithListFunc(f func(ctx context.Context, partitionID string, opts ...storagemodels.ListOption) <-chan storagemodels.StreamResult[T]) *DataStore[T] {
	m.listFunc = f
	return m
}

// WithGetError makes Exists and Get return an error
func (m *DataStore[T]) WithGetError(err error) *DataStore[T] {
	m.getError = err
	return m
}

// WithPutError makes Put and PutBatch return an error
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithDeleteError makes Delete and DeletePartition return an error
func (m *DataStore[T]) WithDeleteError(err error) *DataStore[T] {
	m.deleteError = err
	return m
}

func (m *DataStore[T]) record(c Call) {
	m.calls = append(m.calls, c)
}

// Exists reports whether an entity is stored under the key
func (m *DataStore[T]) Exists(ctx context.Context, entityID, partitionID string) (bool, error) {
	if err := validate.RequireKeys(entityID, partitionID); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(Call{Operation: "Exists", PartitionID: partitionID, EntityID: entityID})

	if m.getError != nil {
		return false, m.getError
	}
	_, ok := m.data[partitionID][entityID]
	return ok, nil
}

// Get retrieves an entity; nil when absent
func (m *DataStore[T]) Get(ctx context.Context, entityID, partitionID string) (*storagemodels.DictionaryEntity[T], error) {
	if err := validate.RequireKeys(entityID, partitionID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(Call{Operation: "Get", PartitionID: partitionID, EntityID: entityID})

	if m.getError != nil {
		return nil, m.getError
	}
	entity, ok := m.data[partitionID][entityID]
	if !ok {
		return nil, nil
	}
	out := storagemodels.NewDictionaryEntity(entityID, partitionID, entity)
	return &out, nil
}

// Put stores an entity
func (m *DataStore[T]) Put(ctx context.Context, entity storagemodels.DictionaryEntity[T]) error {
	if err := validate.RequireKeys(entity.EntityID, entity.PartitionID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(Call{Operation: "Put", PartitionID: entity.PartitionID, EntityID: entity.EntityID})

	if m.putError != nil {
		return m.putError
	}
	m.store(entity)
	return nil
}

// PutBatch stores entities chunk by chunk. With WithPutError set, the first
// chunk fails and nothing is stored.
func (m *DataStore[T]) PutBatch(ctx context.Context, entities []storagemodels.DictionaryEntity[T]) error {
	if err := datastore.ValidateBatch(entities); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	chunks := datastore.Chunk(entities, m.batchSize)
	for i, chunk := range chunks {
		m.record(Call{Operation: "PutBatch", Size: len(chunk)})
		if m.putError != nil {
			return fmt.Errorf("PutBatch chunk %d of %d: %w", i+1, len(chunks), m.putError)
		}
		for _, e := range chunk {
			m.store(e)
		}
	}
	return nil
}

func (m *DataStore[T]) store(e storagemodels.DictionaryEntity[T]) {
	if m.data[e.PartitionID] == nil {
		m.data[e.PartitionID] = make(map[string]T)
	}
	m.data[e.PartitionID][e.EntityID] = e.Entity
}

// Delete removes an entity. A key that is not stored fails with
// OperationInvalidError.
func (m *DataStore[T]) Delete(ctx context.Context, entityID, partitionID string) (bool, error) {
	if err := validate.RequireKeys(entityID, partitionID); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(Call{Operation: "Delete", PartitionID: partitionID, EntityID: entityID})

	if m.deleteError != nil {
		return false, m.deleteError
	}
	if _, ok := m.data[partitionID][entityID]; !ok {
		return false, errors.NewOperationInvalidError("Delete", "mock",
			fmt.Sprintf("entity %q does not exist in partition %q", entityID, partitionID), nil)
	}
	delete(m.data[partitionID], entityID)
	return true, nil
}

// DeletePartition removes every entity of the partition
func (m *DataStore[T]) DeletePartition(ctx context.Context, partitionID string) (bool, error) {
	if err := validate.RequireNonEmpty(partitionID, "partitionID"); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.sortedIDs(partitionID)
	for _, chunk := range datastore.Chunk(ids, m.batchSize) {
		m.record(Call{Operation: "DeletePartition", PartitionID: partitionID, Size: len(chunk)})
		if m.deleteError != nil {
			return false, m.deleteError
		}
		for _, id := range chunk {
			delete(m.data[partitionID], id)
		}
	}
	delete(m.data, partitionID)
	return true, nil
}

func (m *DataStore[T]) sortedIDs(partitionID string) []string {
	ids := make([]string, 0, len(m.data[partitionID]))
	for id := range m.data[partitionID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ListPartition streams the partition in entity ID order, split into pages
// of the requested page size
func (m *DataStore[T]) ListPartition(ctx context.Context, partitionID string, opts ...storagemodels.ListOption) <-chan storagemodels.StreamResult[T] {
	if m.listFunc != nil {
		return m.listFunc(ctx, partitionID, opts...)
	}
	options := storagemodels.ApplyListOptions(opts...)
	resultChan := make(chan storagemodels.StreamResult[T], options.BufferSize)

	// snapshot so the consumer may call back into the mock
	m.mu.Lock()
	m.record(Call{Operation: "ListPartition", PartitionID: partitionID})
	var snapshot []storagemodels.DictionaryEntity[T]
	for _, id := range m.sortedIDs(partitionID) {
		snapshot = append(snapshot, storagemodels.NewDictionaryEntity(id, partitionID, m.data[partitionID][id]))
	}
	m.mu.Unlock()

	go func() {
		defer close(resultChan)

		if err := validate.RequireNonEmpty(partitionID, "partitionID"); err != nil {
			resultChan <- storagemodels.StreamResult[T]{Error: err}
			return
		}

		start := time.Now()
		pageSize := int(options.PageSize)
		for i, e := range snapshot {
			page := i/pageSize + 1
			select {
			case <-ctx.Done():
				return
			case resultChan <- storagemodels.StreamResult[T]{
				Item: e,
				Meta: storagemodels.StreamMeta{Index: int64(i), PageNumber: page, Timestamp: time.Now()},
			}:
			}
			if options.ProgressHandler != nil && ((i+1)%pageSize == 0 || i == len(snapshot)-1) {
				options.ProgressHandler(storagemodels.Progress(int64(i+1), page, start))
			}
		}
	}()

	return resultChan
}

// Helper methods for testing

// Calls returns the recorded operations in order
func (m *DataStore[T]) Calls() []Call {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Call(nil), m.calls...)
}

// ChunkSizes returns the sizes of the recorded chunks of a batch operation
func (m *DataStore[T]) ChunkSizes(operation string) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sizes []int
	for _, c := range m.calls {
		if c.Operation == operation {
			sizes = append(sizes, c.Size)
		}
	}
	return sizes
}

// Seed stores entities directly, bypassing error injection and call recording
func (m *DataStore[T]) Seed(entities ...storagemodels.DictionaryEntity[T]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entities {
		m.store(e)
	}
}

// Count returns the number of stored entities
func (m *DataStore[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, p := range m.data {
		n += len(p)
	}
	return n
}

// Clear removes all data and recorded calls
func (m *DataStore[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]map[string]T)
	m.calls = nil
}
