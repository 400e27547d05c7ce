/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Builder collects the field declarations of T. Each declaration names the
// stored attribute and passes a function returning a pointer to the struct
// field, so no struct reflection is needed at runtime:
//
//	b.String("Title", func(d *Document) *string { return &d.Title })
//	b.NullableInt64("Rank", func(d *Document) **int64 { return &d.Rank })
//	schema.JSON(b, "Tags", func(d *Document) *[]string { return &d.Tags })
//
// Fields are persisted in declaration order.
type Builder[T any] struct {
	fields []Field[T]
	errs   []error
}

func NewBuilder[T any]() *Builder[T] {
	return &Builder[T]{}
}

func (b *Builder[T]) add(name string, refIsNil bool, f Field[T]) *Builder[T] {
	if refIsNil {
		b.errs = append(b.errs, fmt.Errorf("field %q has no accessor", name))
		return b
	}
	b.fields = append(b.fields, f)
	return b
}

func (b *Builder[T]) Bool(name string, ref func(*T) *bool) *Builder[T] {
	return b.add(name, ref == nil, scalarField(name, KindBool, ref, BoolValue, Value.Bool))
}

func (b *Builder[T]) NullableBool(name string, ref func(*T) **bool) *Builder[T] {
	return b.add(name, ref == nil, nullableField(name, KindBool, ref, BoolValue, Value.Bool))
}

func (b *Builder[T]) Byte(name string, ref func(*T) *uint8) *Builder[T] {
	return b.add(name, ref == nil, scalarField(name, KindByte, ref, ByteValue, Value.Byte))
}

func (b *Builder[T]) NullableByte(name string, ref func(*T) **uint8) *Builder[T] {
	return b.add(name, ref == nil, nullableField(name, KindByte, ref, ByteValue, Value.Byte))
}

// Binary declares a byte slice field. A nil slice is stored as null.
func (b *Builder[T]) Binary(name string, ref func(*T) *[]byte) *Builder[T] {
	f := scalarField(name, KindBinary, ref, BinaryValue, Value.Binary)
	f.Nullable = true
	return b.add(name, ref == nil, f)
}

func (b *Builder[T]) Time(name string, ref func(*T) *time.Time) *Builder[T] {
	return b.add(name, ref == nil, scalarField(name, KindTime, ref, TimeValue, Value.Time))
}

func (b *Builder[T]) NullableTime(name string, ref func(*T) **time.Time) *Builder[T] {
	return b.add(name, ref == nil, nullableField(name, KindTime, ref, TimeValue, Value.Time))
}

func (b *Builder[T]) Decimal(name string, ref func(*T) *decimal.Decimal) *Builder[T] {
	return b.add(name, ref == nil, scalarField(name, KindDecimal, ref, DecimalValue, Value.Decimal))
}

func (b *Builder[T]) NullableDecimal(name string, ref func(*T) **decimal.Decimal) *Builder[T] {
	return b.add(name, ref == nil, nullableField(name, KindDecimal, ref, DecimalValue, Value.Decimal))
}

func (b *Builder[T]) Float64(name string, ref func(*T) *float64) *Builder[T] {
	return b.add(name, ref == nil, scalarField(name, KindFloat64, ref, Float64Value, Value.Float64))
}

func (b *Builder[T]) NullableFloat64(name string, ref func(*T) **float64) *Builder[T] {
	return b.add(name, ref == nil, nullableField(name, KindFloat64, ref, Float64Value, Value.Float64))
}

func (b *Builder[T]) Float32(name string, ref func(*T) *float32) *Builder[T] {
	return b.add(name, ref == nil, scalarField(name, KindFloat32, ref, Float32Value, Value.Float32))
}

func (b *Builder[T]) NullableFloat32(name string, ref func(*T) **float32) *Builder[T] {
	return b.add(name, ref == nil, nullableField(name, KindFloat32, ref, Float32Value, Value.Float32))
}

func (b *Builder[T]) UUID(name string, ref func(*T) *uuid.UUID) *Builder[T] {
	return b.add(name, ref == nil, scalarField(name, KindUUID, ref, UUIDValue, Value.UUID))
}

func (b *Builder[T]) NullableUUID(name string, ref func(*T) **uuid.UUID) *Builder[T] {
	return b.add(name, ref == nil, nullableField(name, KindUUID, ref, UUIDValue, Value.UUID))
}

func (b *Builder[T]) Int32(name string, ref func(*T) *int32) *Builder[T] {
	return b.add(name, ref == nil, scalarField(name, KindInt32, ref, Int32Value, Value.Int32))
}

func (b *Builder[T]) NullableInt32(name string, ref func(*T) **int32) *Builder[T] {
	return b.add(name, ref == nil, nullableField(name, KindInt32, ref, Int32Value, Value.Int32))
}

func (b *Builder[T]) Int64(name string, ref func(*T) *int64) *Builder[T] {
	return b.add(name, ref == nil, scalarField(name, KindInt64, ref, Int64Value, Value.Int64))
}

func (b *Builder[T]) NullableInt64(name string, ref func(*T) **int64) *Builder[T] {
	return b.add(name, ref == nil, nullableField(name, KindInt64, ref, Int64Value, Value.Int64))
}

// String declares a string field. The empty string is stored as null and
// reads back as "".
func (b *Builder[T]) String(name string, ref func(*T) *string) *Builder[T] {
	return b.add(name, ref == nil, scalarField(name, KindString, ref, StringValue, Value.Str))
}

// NullableString declares a *string field. A pointer to "" is stored as null
// and reads back as nil.
func (b *Builder[T]) NullableString(name string, ref func(*T) **string) *Builder[T] {
	return b.add(name, ref == nil, nullableField(name, KindString, ref, StringValue, Value.Str))
}

func (b *Builder[T]) Duration(name string, ref func(*T) *time.Duration) *Builder[T] {
	return b.add(name, ref == nil, scalarField(name, KindDuration, ref, DurationValue, Value.Duration))
}

func (b *Builder[T]) NullableDuration(name string, ref func(*T) **time.Duration) *Builder[T] {
	return b.add(name, ref == nil, nullableField(name, KindDuration, ref, DurationValue, Value.Duration))
}

// JSON declares a field of any other type V, stored as its JSON text. A
// value that marshals to null is stored as null.
func JSON[T, V any](b *Builder[T], name string, ref func(*T) *V) *Builder[T] {
	f := Field[T]{
		Name:     name,
		Kind:     KindJSON,
		Nullable: true,
		get: func(e *T) (Value, error) {
			raw, err := json.Marshal(*ref(e))
			if err != nil {
				return Value{}, err
			}
			return JSONValue(raw), nil
		},
		set: func(e *T, v Value) error {
			var decoded V
			if !v.IsNull() {
				if err := json.Unmarshal(v.JSON(), &decoded); err != nil {
					return err
				}
			}
			*ref(e) = decoded
			return nil
		},
	}
	return b.add(name, ref == nil, f)
}
