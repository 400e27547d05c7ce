/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dictstore

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/dictstore/datastore"
	"github.com/suparena/dictstore/errors"
)

// TypedStorage holds named dictionary stores for a specific type T
type TypedStorage[T any] struct {
	mu     sync.RWMutex
	stores map[string]datastore.DictionaryStore[T]
}

// NewTypedStorage creates a new TypedStorage for type T
func NewTypedStorage[T any]() *TypedStorage[T] {
	return &TypedStorage[T]{
		stores: make(map[string]datastore.DictionaryStore[T]),
	}
}

// Register adds a store under the given key
func (ts *TypedStorage[T]) Register(key string, ds datastore.DictionaryStore[T]) error {
	if key == "" {
		return errors.NewInvalidArgumentError("key", "must not be empty")
	}
	if ds == nil {
		return errors.NewInvalidArgumentError("store", "must not be nil")
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.stores[key]; exists {
		return errors.NewOperationInvalidError("Register", key, fmt.Sprintf("store %q already registered", key), nil)
	}

	ts.stores[key] = ds
	return nil
}

// Get retrieves a store by key
func (ts *TypedStorage[T]) Get(key string) (datastore.DictionaryStore[T], error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	ds, exists := ts.stores[key]
	if !exists {
		return nil, errors.NewNotFoundError("datastore", key)
	}

	return ds, nil
}

// Remove deletes a store by key
func (ts *TypedStorage[T]) Remove(key string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.stores[key]; !exists {
		return errors.NewNotFoundError("datastore", key)
	}

	delete(ts.stores, key)
	return nil
}

// List returns all registered keys in sorted order
func (ts *TypedStorage[T]) List() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	keys := make([]string, 0, len(ts.stores))
	for k := range ts.stores {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MultiTypeStorage manages TypedStorage instances for different types
type MultiTypeStorage struct {
	mu       sync.Mutex
	storages map[reflect.Type]any
}

// NewMultiTypeStorage creates a new MultiTypeStorage
func NewMultiTypeStorage() *MultiTypeStorage {
	return &MultiTypeStorage{
		storages: make(map[reflect.Type]any),
	}
}

// GetTypedStorage returns the TypedStorage for T, creating it if necessary
func GetTypedStorage[T any](mts *MultiTypeStorage) *TypedStorage[T] {
	mts.mu.Lock()
	defer mts.mu.Unlock()

	typ := reflect.TypeOf((*T)(nil)).Elem()
	if storage, exists := mts.storages[typ]; exists {
		return storage.(*TypedStorage[T])
	}

	newStorage := NewTypedStorage[T]()
	mts.storages[typ] = newStorage
	return newStorage
}

// RegisterDataStore registers a store for type T
func RegisterDataStore[T any](mts *MultiTypeStorage, key string, ds datastore.DictionaryStore[T]) error {
	return GetTypedStorage[T](mts).Register(key, ds)
}

// GetDataStore returns the store registered for type T under key
func GetDataStore[T any](mts *MultiTypeStorage, key string) (datastore.DictionaryStore[T], error) {
	return GetTypedStorage[T](mts).Get(key)
}

// RemoveDataStore removes the store registered for type T under key
func RemoveDataStore[T any](mts *MultiTypeStorage, key string) error {
	return GetTypedStorage[T](mts).Remove(key)
}

// ListDataStores lists the keys registered for type T
func ListDataStores[T any](mts *MultiTypeStorage) []string {
	return GetTypedStorage[T](mts).List()
}
