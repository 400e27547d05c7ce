/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"fmt"
)

// Field describes one persisted attribute of T: its storage name, declared
// kind, and accessors bound at declaration time.
type Field[T any] struct {
	Name     string
	Kind     Kind
	Nullable bool

	get func(*T) (Value, error)
	set func(*T, Value) error
}

// Get reads the field from e as a Value.
func (f Field[T]) Get(e *T) (Value, error) {
	v, err := f.get(e)
	if err != nil {
		return Value{}, fmt.Errorf("read field %s: %w", f.Name, err)
	}
	return v, nil
}

// Set writes v into e. A null v resets the field to its zero value.
func (f Field[T]) Set(e *T, v Value) error {
	if v.Kind() != f.Kind {
		return fmt.Errorf("field %s: value kind %s does not match declared kind %s", f.Name, v.Kind(), f.Kind)
	}
	return f.set(e, v)
}

func scalarField[T, V any](name string, kind Kind, ref func(*T) *V, wrap func(V) Value, unwrap func(Value) V) Field[T] {
	return Field[T]{
		Name: name,
		Kind: kind,
		get: func(e *T) (Value, error) {
			return wrap(*ref(e)), nil
		},
		set: func(e *T, v Value) error {
			if v.IsNull() {
				var zero V
				*ref(e) = zero
				return nil
			}
			*ref(e) = unwrap(v)
			return nil
		},
	}
}

func nullableField[T, V any](name string, kind Kind, ref func(*T) **V, wrap func(V) Value, unwrap func(Value) V) Field[T] {
	return Field[T]{
		Name:     name,
		Kind:     kind,
		Nullable: true,
		get: func(e *T) (Value, error) {
			p := *ref(e)
			if p == nil {
				return NullValue(kind), nil
			}
			return wrap(*p), nil
		},
		set: func(e *T, v Value) error {
			if v.IsNull() {
				*ref(e) = nil
				return nil
			}
			x := unwrap(v)
			*ref(e) = &x
			return nil
		},
	}
}
