/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Value is a backend-neutral field value: a kind tag, a null flag and the
// payload for that kind. Codecs translate Values to and from native
// attributes; entities never see them.
type Value struct {
	kind    Kind
	null    bool
	payload any
}

// NullValue is the absent value of the given kind.
func NullValue(kind Kind) Value { return Value{kind: kind, null: true} }

func BoolValue(v bool) Value { return Value{kind: KindBool, payload: v} }
func ByteValue(v uint8) Value { return Value{kind: KindByte, payload: v} }
func Float64Value(v float64) Value { return Value{kind: KindFloat64, payload: v} }
func Float32Value(v float32) Value { return Value{kind: KindFloat32, payload: v} }
func Int32Value(v int32) Value { return Value{kind: KindInt32, payload: v} }
func Int64Value(v int64) Value { return Value{kind: KindInt64, payload: v} }
func UUIDValue(v uuid.UUID) Value { return Value{kind: KindUUID, payload: v} }
func DurationValue(v time.Duration) Value { return Value{kind: KindDuration, payload: v} }
func DecimalValue(v decimal.Decimal) Value { return Value{kind: KindDecimal, payload: v} }
func TimeValue(v time.Time) Value { return Value{kind: KindTime, payload: v} }

// BinaryValue wraps b; a nil slice is null.
func BinaryValue(b []byte) Value {
	if b == nil {
		return NullValue(KindBinary)
	}
	return Value{kind: KindBinary, payload: b}
}

// StringValue wraps s. The empty string is stored as null.
func StringValue(s string) Value {
	if s == "" {
		return NullValue(KindString)
	}
	return Value{kind: KindString, payload: s}
}

// JSONValue wraps raw JSON text. Empty text and the literal null are null.
func JSONValue(raw []byte) Value {
	if len(raw) == 0 || string(raw) == "null" {
		return NullValue(KindJSON)
	}
	return Value{kind: KindJSON, payload: raw}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.null }

func (v Value) Bool() bool {
	b, _ := v.payload.(bool)
	return b
}

func (v Value) Byte() uint8 {
	b, _ := v.payload.(uint8)
	return b
}

func (v Value) Binary() []byte {
	b, _ := v.payload.([]byte)
	return b
}

func (v Value) Time() time.Time {
	t, _ := v.payload.(time.Time)
	return t
}

func (v Value) Decimal() decimal.Decimal {
	d, _ := v.payload.(decimal.Decimal)
	return d
}

func (v Value) Float64() float64 {
	f, _ := v.payload.(float64)
	return f
}

func (v Value) Float32() float32 {
	f, _ := v.payload.(float32)
	return f
}

func (v Value) UUID() uuid.UUID {
	u, _ := v.payload.(uuid.UUID)
	return u
}

func (v Value) Int32() int32 {
	i, _ := v.payload.(int32)
	return i
}

func (v Value) Int64() int64 {
	i, _ := v.payload.(int64)
	return i
}

func (v Value) Str() string {
	s, _ := v.payload.(string)
	return s
}

func (v Value) Duration() time.Duration {
	d, _ := v.payload.(time.Duration)
	return d
}

func (v Value) JSON() []byte {
	b, _ := v.payload.([]byte)
	return b
}

func (v Value) String() string {
	if v.null {
		return fmt.Sprintf("%s(null)", v.kind)
	}
	switch v.kind {
	case KindBinary, KindJSON:
		return fmt.Sprintf("%s(%q)", v.kind, v.payload)
	default:
		return fmt.Sprintf("%s(%v)", v.kind, v.payload)
	}
}
