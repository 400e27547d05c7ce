/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/schema"
)

// entry holds one registered type. The schema is built on first lookup and
// cached together with any build error.
type entry struct {
	declare any
	once    sync.Once
	schema  any
	err     error
}

var (
	schemaRegistry = make(map[reflect.Type]*entry)
	mu             sync.RWMutex
)

// Register associates entity type T with its field declarations.
// If T is already registered, it panics to prevent accidental overrides.
func Register[T any](declare func(b *schema.Builder[T])) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if declare == nil {
		panic(fmt.Sprintf("schema registry: nil declaration for type %s", t))
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := schemaRegistry[t]; exists {
		panic(fmt.Sprintf("schema registry: type %s already registered", t))
	}
	schemaRegistry[t] = &entry{declare: declare}
}

// Lookup returns the schema of T, building it on first use. Every later call
// returns the same schema, or the same error if building failed.
func Lookup[T any]() (*schema.Schema[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	mu.RLock()
	e, ok := schemaRegistry[t]
	mu.RUnlock()
	if !ok {
		return nil, errors.NewConfigurationError(t.String(), "entity type is not registered", errors.NewNotFoundError("schema", t.String()))
	}

	e.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				e.schema, e.err = nil, errors.NewConfigurationError(t.String(), fmt.Sprintf("field declaration panicked: %v", r), nil)
			}
		}()
		b := schema.NewBuilder[T]()
		e.declare.(func(*schema.Builder[T]))(b)
		e.schema, e.err = b.Build()
	})
	if e.err != nil {
		return nil, e.err
	}
	s, ok := e.schema.(*schema.Schema[T])
	if !ok {
		return nil, errors.NewConfigurationError(t.String(), "schema was not built", nil)
	}
	return s, nil
}

// MustLookup is like Lookup but panics on error.
func MustLookup[T any]() *schema.Schema[T] {
	s, err := Lookup[T]()
	if err != nil {
		panic(err)
	}
	return s
}

// Registered reports whether T has been registered.
func Registered[T any]() bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := schemaRegistry[reflect.TypeOf((*T)(nil)).Elem()]
	return ok
}

// Reset removes every registration. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	schemaRegistry = make(map[reflect.Type]*entry)
}
