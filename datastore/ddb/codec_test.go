/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"math"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/dictstore/schema"
)

func TestAttributeCodecRoundTrip(t *testing.T) {
	codec := AttributeCodec{}
	tests := []struct {
		name  string
		value schema.Value
		attr  types.AttributeValue
	}{
		{"bool", schema.BoolValue(true), &types.AttributeValueMemberBOOL{Value: true}},
		{"byte", schema.ByteValue(200), number("200")},
		{"int32", schema.Int32Value(-12), number("-12")},
		{"int64", schema.Int64Value(1 << 50), number("1125899906842624")},
		{"float32", schema.Float32Value(0.1), number("0.1")},
		{"float64", schema.Float64Value(2.5e-10), number("2.5e-10")},
		{"decimal", schema.DecimalValue(decimal.RequireFromString("-0.000123")), number("-0.000123")},
		{"binary", schema.BinaryValue([]byte{1, 2, 3}), &types.AttributeValueMemberB{Value: []byte{1, 2, 3}}},
		{"time", schema.TimeValue(time.Date(2025, 1, 2, 3, 4, 5, 600, time.UTC)), str("2025-01-02T03:04:05.0000006Z")},
		{"uuid", schema.UUIDValue(uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")), str("6ba7b811-9dad-11d1-80b4-00c04fd430c8")},
		{"string", schema.StringValue("héllo"), str("héllo")},
		{"duration", schema.DurationValue(90 * time.Minute), str("1h30m0s")},
		{"json", schema.JSONValue([]byte(`{"a":1}`)), str(`{"a":1}`)},
		{"null", schema.NullValue(schema.KindInt64), &types.AttributeValueMemberNULL{Value: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr, err := codec.Encode(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.attr, attr)

			back, err := codec.Decode(attr, tt.value.Kind())
			require.NoError(t, err)
			assert.Equal(t, tt.value.String(), back.String())
			assert.Equal(t, tt.value.IsNull(), back.IsNull())
		})
	}
}

func TestAttributeCodecRejectsNonFiniteFloats(t *testing.T) {
	codec := AttributeCodec{}
	_, err := codec.Encode(schema.Float64Value(math.NaN()))
	assert.Error(t, err)
	_, err = codec.Encode(schema.Float32Value(float32(math.Inf(1))))
	assert.Error(t, err)
}

func TestAttributeCodecMismatch(t *testing.T) {
	codec := AttributeCodec{}
	tests := []struct {
		name string
		attr types.AttributeValue
		kind schema.Kind
		msg  string
	}{
		{"string for number", str("12"), schema.KindInt32, "expected N attribute"},
		{"number for string", number("12"), schema.KindString, "expected S attribute"},
		{"string for bool", str("true"), schema.KindBool, "expected BOOL attribute"},
		{"string for binary", str("AQID"), schema.KindBinary, "expected B attribute"},
		{"byte overflow", number("256"), schema.KindByte, "out of range"},
		{"int32 overflow", number("2147483648"), schema.KindInt32, "out of range"},
		{"bad time", str("yesterday"), schema.KindTime, "cannot parse"},
		{"bad uuid", str("not-a-uuid"), schema.KindUUID, "invalid UUID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.attr, tt.kind)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestAttributeCodecNullDecodesAsNullOfKind(t *testing.T) {
	v, err := AttributeCodec{}.Decode(&types.AttributeValueMemberNULL{Value: true}, schema.KindUUID)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	assert.Equal(t, schema.KindUUID, v.Kind())
}
