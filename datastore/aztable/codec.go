/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package aztable

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/suparena/dictstore/schema"
)

// EDM type names used in property annotations
const (
	EdmBinary   = "Edm.Binary"
	EdmBoolean  = "Edm.Boolean"
	EdmDateTime = "Edm.DateTime"
	EdmDouble   = "Edm.Double"
	EdmGUID     = "Edm.Guid"
	EdmInt32    = "Edm.Int32"
	EdmInt64    = "Edm.Int64"
	EdmString   = "Edm.String"
)

// the service keeps DateTime values at 100ns precision
const dateTimeFormat = "2006-01-02T15:04:05.0000000Z"

// Property is one entity property in the Table service JSON format. A nil
// Value is a null property, which is omitted from the stored entity.
type Property struct {
	Value   any
	EdmType string
}

// edmType is the single EDM type each kind is stored as.
func edmType(k schema.Kind) string {
	switch k {
	case schema.KindBool:
		return EdmBoolean
	case schema.KindByte, schema.KindInt32:
		return EdmInt32
	case schema.KindInt64:
		return EdmInt64
	case schema.KindFloat32, schema.KindFloat64:
		return EdmDouble
	case schema.KindBinary:
		return EdmBinary
	case schema.KindTime:
		return EdmDateTime
	case schema.KindUUID:
		return EdmGUID
	default:
		return EdmString
	}
}

// annotated reports whether the JSON value alone does not identify the EDM
// type, so the property needs an @odata.type annotation.
func annotated(k schema.Kind) bool {
	switch edmType(k) {
	case EdmBoolean, EdmInt32, EdmString:
		return false
	default:
		return true
	}
}

// PropertyCodec maps schema values to Table service properties. Int64, Guid,
// Binary and DateTime values are JSON strings annotated with their EDM type;
// floats are annotated Edm.Double numbers; decimals, durations and JSON
// fallback values are plain strings.
type PropertyCodec struct{}

var _ schema.Codec[Property] = PropertyCodec{}

func (PropertyCodec) Encode(v schema.Value) (Property, error) {
	if v.IsNull() {
		return Property{}, nil
	}
	var out any
	switch v.Kind() {
	case schema.KindBool:
		out = v.Bool()
	case schema.KindByte:
		out = json.Number(strconv.FormatUint(uint64(v.Byte()), 10))
	case schema.KindInt32:
		out = json.Number(strconv.FormatInt(int64(v.Int32()), 10))
	case schema.KindInt64:
		out = strconv.FormatInt(v.Int64(), 10)
	case schema.KindFloat32:
		f := float64(v.Float32())
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Property{}, fmt.Errorf("cannot store non-finite float %v", f)
		}
		out = json.Number(strconv.FormatFloat(f, 'g', -1, 32))
	case schema.KindFloat64:
		f := v.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Property{}, fmt.Errorf("cannot store non-finite float %v", f)
		}
		out = json.Number(strconv.FormatFloat(f, 'g', -1, 64))
	case schema.KindDecimal:
		out = v.Decimal().String()
	case schema.KindBinary:
		out = base64.StdEncoding.EncodeToString(v.Binary())
	case schema.KindTime:
		out = v.Time().UTC().Truncate(100 * time.Nanosecond).Format(dateTimeFormat)
	case schema.KindUUID:
		out = v.UUID().String()
	case schema.KindString:
		out = v.Str()
	case schema.KindDuration:
		out = v.Duration().String()
	case schema.KindJSON:
		out = string(v.JSON())
	default:
		return Property{}, fmt.Errorf("unsupported kind %s", v.Kind())
	}

	p := Property{Value: out}
	if annotated(v.Kind()) {
		p.EdmType = edmType(v.Kind())
	}
	return p, nil
}

func (PropertyCodec) Decode(p Property, kind schema.Kind) (schema.Value, error) {
	if p.EdmType != "" && p.EdmType != edmType(kind) {
		return schema.Value{}, fmt.Errorf("expected %s property, got %s", edmType(kind), p.EdmType)
	}
	if p.Value == nil {
		return schema.NullValue(kind), nil
	}

	switch kind {
	case schema.KindBool:
		b, ok := p.Value.(bool)
		if !ok {
			return schema.Value{}, mismatch("boolean", p.Value)
		}
		return schema.BoolValue(b), nil
	case schema.KindByte:
		n, err := numberOf(p.Value)
		if err != nil {
			return schema.Value{}, err
		}
		u, err := strconv.ParseUint(n, 10, 8)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.ByteValue(uint8(u)), nil
	case schema.KindInt32:
		n, err := numberOf(p.Value)
		if err != nil {
			return schema.Value{}, err
		}
		i, err := strconv.ParseInt(n, 10, 32)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.Int32Value(int32(i)), nil
	case schema.KindInt64:
		// Edm.Int64 travels as a string; accept a plain number too
		n, err := numberOrString(p.Value)
		if err != nil {
			return schema.Value{}, err
		}
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.Int64Value(i), nil
	case schema.KindFloat32:
		n, err := numberOf(p.Value)
		if err != nil {
			return schema.Value{}, err
		}
		f, err := strconv.ParseFloat(n, 32)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.Float32Value(float32(f)), nil
	case schema.KindFloat64:
		n, err := numberOf(p.Value)
		if err != nil {
			return schema.Value{}, err
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.Float64Value(f), nil
	case schema.KindDecimal:
		s, err := stringOf(p.Value)
		if err != nil {
			return schema.Value{}, err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.DecimalValue(d), nil
	case schema.KindBinary:
		s, err := stringOf(p.Value)
		if err != nil {
			return schema.Value{}, err
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.BinaryValue(b), nil
	case schema.KindTime:
		s, err := stringOf(p.Value)
		if err != nil {
			return schema.Value{}, err
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.TimeValue(t), nil
	case schema.KindUUID:
		s, err := stringOf(p.Value)
		if err != nil {
			return schema.Value{}, err
		}
		u, err := uuid.Parse(s)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.UUIDValue(u), nil
	case schema.KindString:
		s, err := stringOf(p.Value)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.StringValue(s), nil
	case schema.KindDuration:
		s, err := stringOf(p.Value)
		if err != nil {
			return schema.Value{}, err
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.DurationValue(d), nil
	case schema.KindJSON:
		s, err := stringOf(p.Value)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.JSONValue([]byte(s)), nil
	default:
		return schema.Value{}, fmt.Errorf("unsupported kind %s", kind)
	}
}

func numberOf(v any) (string, error) {
	switch n := v.(type) {
	case json.Number:
		return n.String(), nil
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64), nil
	default:
		return "", mismatch("number", v)
	}
}

func numberOrString(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return numberOf(v)
}

func stringOf(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", mismatch("string", v)
	}
	return s, nil
}

func mismatch(want string, got any) error {
	return fmt.Errorf("expected %s property, got %T", want, got)
}
