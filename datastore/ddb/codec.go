/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/suparena/dictstore/schema"
)

// AttributeCodec maps schema values to DynamoDB attribute values. Numbers use
// the N member with a canonical decimal string, times are RFC 3339 strings
// with nanoseconds, and nulls use the NULL member.
type AttributeCodec struct{}

var _ schema.Codec[types.AttributeValue] = AttributeCodec{}

func (AttributeCodec) Encode(v schema.Value) (types.AttributeValue, error) {
	if v.IsNull() {
		return &types.AttributeValueMemberNULL{Value: true}, nil
	}
	switch v.Kind() {
	case schema.KindBool:
		return &types.AttributeValueMemberBOOL{Value: v.Bool()}, nil
	case schema.KindByte:
		return number(strconv.FormatUint(uint64(v.Byte()), 10)), nil
	case schema.KindInt32:
		return number(strconv.FormatInt(int64(v.Int32()), 10)), nil
	case schema.KindInt64:
		return number(strconv.FormatInt(v.Int64(), 10)), nil
	case schema.KindFloat32:
		f := float64(v.Float32())
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("cannot store non-finite float %v", f)
		}
		return number(strconv.FormatFloat(f, 'g', -1, 32)), nil
	case schema.KindFloat64:
		f := v.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("cannot store non-finite float %v", f)
		}
		return number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	case schema.KindDecimal:
		return number(v.Decimal().String()), nil
	case schema.KindBinary:
		return &types.AttributeValueMemberB{Value: v.Binary()}, nil
	case schema.KindTime:
		return str(v.Time().Format(time.RFC3339Nano)), nil
	case schema.KindUUID:
		return str(v.UUID().String()), nil
	case schema.KindString:
		return str(v.Str()), nil
	case schema.KindDuration:
		return str(v.Duration().String()), nil
	case schema.KindJSON:
		return str(string(v.JSON())), nil
	default:
		return nil, fmt.Errorf("unsupported kind %s", v.Kind())
	}
}

func (AttributeCodec) Decode(attr types.AttributeValue, kind schema.Kind) (schema.Value, error) {
	if _, ok := attr.(*types.AttributeValueMemberNULL); ok {
		return schema.NullValue(kind), nil
	}
	switch kind {
	case schema.KindBool:
		b, ok := attr.(*types.AttributeValueMemberBOOL)
		if !ok {
			return schema.Value{}, mismatch("BOOL", attr)
		}
		return schema.BoolValue(b.Value), nil
	case schema.KindByte:
		n, err := numberOf(attr)
		if err != nil {
			return schema.Value{}, err
		}
		u, err := strconv.ParseUint(n, 10, 8)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.ByteValue(uint8(u)), nil
	case schema.KindInt32:
		n, err := numberOf(attr)
		if err != nil {
			return schema.Value{}, err
		}
		i, err := strconv.ParseInt(n, 10, 32)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.Int32Value(int32(i)), nil
	case schema.KindInt64:
		n, err := numberOf(attr)
		if err != nil {
			return schema.Value{}, err
		}
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.Int64Value(i), nil
	case schema.KindFloat32:
		n, err := numberOf(attr)
		if err != nil {
			return schema.Value{}, err
		}
		f, err := strconv.ParseFloat(n, 32)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.Float32Value(float32(f)), nil
	case schema.KindFloat64:
		n, err := numberOf(attr)
		if err != nil {
			return schema.Value{}, err
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.Float64Value(f), nil
	case schema.KindDecimal:
		n, err := numberOf(attr)
		if err != nil {
			return schema.Value{}, err
		}
		d, err := decimal.NewFromString(n)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.DecimalValue(d), nil
	case schema.KindBinary:
		b, ok := attr.(*types.AttributeValueMemberB)
		if !ok {
			return schema.Value{}, mismatch("B", attr)
		}
		return schema.BinaryValue(b.Value), nil
	case schema.KindTime:
		s, err := stringOf(attr)
		if err != nil {
			return schema.Value{}, err
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.TimeValue(t), nil
	case schema.KindUUID:
		s, err := stringOf(attr)
		if err != nil {
			return schema.Value{}, err
		}
		u, err := uuid.Parse(s)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.UUIDValue(u), nil
	case schema.KindString:
		s, err := stringOf(attr)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.StringValue(s), nil
	case schema.KindDuration:
		s, err := stringOf(attr)
		if err != nil {
			return schema.Value{}, err
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.DurationValue(d), nil
	case schema.KindJSON:
		s, err := stringOf(attr)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.JSONValue([]byte(s)), nil
	default:
		return schema.Value{}, fmt.Errorf("unsupported kind %s", kind)
	}
}

func number(s string) types.AttributeValue { return &types.AttributeValueMemberN{Value: s} }

func str(s string) types.AttributeValue { return &types.AttributeValueMemberS{Value: s} }

func numberOf(attr types.AttributeValue) (string, error) {
	n, ok := attr.(*types.AttributeValueMemberN)
	if !ok {
		return "", mismatch("N", attr)
	}
	return n.Value, nil
}

func stringOf(attr types.AttributeValue) (string, error) {
	s, ok := attr.(*types.AttributeValueMemberS)
	if !ok {
		return "", mismatch("S", attr)
	}
	return s.Value, nil
}

func mismatch(want string, got types.AttributeValue) error {
	return fmt.Errorf("expected %s attribute, got %T", want, got)
}
