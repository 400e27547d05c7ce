/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/suparena/dictstore/errors"
)

// ReservedNames are attribute names owned by the storage envelopes of the
// supported backends. Declaring a field with one of them is rejected.
var ReservedNames = []string{
	"EntityId",
	"PartitionId",
	"Entity",
	"PartitionKey",
	"RowKey",
	"Timestamp",
	"odata.etag",
}

// Schema is the immutable, ordered field metadata of T.
type Schema[T any] struct {
	typeName string
	fields   []Field[T]
	index    map[string]int
}

// Build validates the declarations and freezes them into a Schema.
func (b *Builder[T]) Build() (*Schema[T], error) {
	typeName := reflect.TypeOf((*T)(nil)).Elem().String()
	if len(b.errs) > 0 {
		return nil, errors.NewConfigurationError(typeName, "invalid field declaration", stderrors.Join(b.errs...))
	}
	if len(b.fields) == 0 {
		return nil, errors.NewConfigurationError(typeName, "type declares no persisted fields", nil)
	}

	s := &Schema[T]{
		typeName: typeName,
		fields:   make([]Field[T], len(b.fields)),
		index:    make(map[string]int, len(b.fields)),
	}
	for i, f := range b.fields {
		if strings.TrimSpace(f.Name) == "" {
			return nil, errors.NewConfigurationError(typeName, fmt.Sprintf("field %d has an empty name", i), nil)
		}
		if isReserved(f.Name) {
			return nil, errors.NewConfigurationError(typeName, fmt.Sprintf("field name %q is reserved", f.Name), nil)
		}
		if strings.Contains(f.Name, "@") {
			return nil, errors.NewConfigurationError(typeName, fmt.Sprintf("field name %q contains '@'", f.Name), nil)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, errors.NewConfigurationError(typeName, fmt.Sprintf("field %q declared twice", f.Name), nil)
		}
		s.fields[i] = f
		s.index[f.Name] = i
	}
	return s, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder[T]) MustBuild() *Schema[T] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func isReserved(name string) bool {
	for _, r := range ReservedNames {
		if r == name {
			return true
		}
	}
	return false
}

// TypeName is the Go type name of T, used in error messages.
func (s *Schema[T]) TypeName() string { return s.typeName }

// Fields returns a copy of the fields in declaration order.
func (s *Schema[T]) Fields() []Field[T] {
	out := make([]Field[T], len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a field by its stored name.
func (s *Schema[T]) Field(name string) (Field[T], bool) {
	i, ok := s.index[name]
	if !ok {
		return Field[T]{}, false
	}
	return s.fields[i], true
}

func (s *Schema[T]) Len() int { return len(s.fields) }

// New allocates a zero T.
func (s *Schema[T]) New() *T { return new(T) }
