/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"github.com/suparena/dictstore/errors"
)

// Codec converts Values to a backend's native attribute type A and back.
// Decode receives the declared kind so it can reject attributes of the
// wrong native type.
type Codec[A any] interface {
	Encode(v Value) (A, error)
	Decode(attr A, kind Kind) (Value, error)
}

// Encoded is one field rendered as a native attribute.
type Encoded[A any] struct {
	Name string
	Attr A
}

// EncodeEntity renders every declared field of e, in declaration order.
func EncodeEntity[T, A any](s *Schema[T], codec Codec[A], e *T) ([]Encoded[A], error) {
	if e == nil {
		return nil, errors.NewInvalidArgumentError("entity", "must not be nil")
	}
	out := make([]Encoded[A], 0, len(s.fields))
	for _, f := range s.fields {
		v, err := f.Get(e)
		if err != nil {
			return nil, err
		}
		attr, err := codec.Encode(v)
		if err != nil {
			return nil, err
		}
		out = append(out, Encoded[A]{Name: f.Name, Attr: attr})
	}
	return out, nil
}

// DecodeEntity rebuilds a T from stored attributes. lookup returns the
// attribute stored under a field name; missing fields stay at their zero
// value. Attributes that cannot be decoded as the declared kind are reported
// as DecodeInconsistencyError.
func DecodeEntity[T, A any](s *Schema[T], codec Codec[A], lookup func(name string) (A, bool)) (*T, error) {
	e := s.New()
	for _, f := range s.fields {
		attr, ok := lookup(f.Name)
		if !ok {
			continue
		}
		v, err := codec.Decode(attr, f.Kind)
		if err != nil {
			return nil, errors.NewDecodeInconsistencyError(f.Name, err.Error())
		}
		if err := f.Set(e, v); err != nil {
			return nil, errors.NewDecodeInconsistencyError(f.Name, err.Error())
		}
	}
	return e, nil
}
