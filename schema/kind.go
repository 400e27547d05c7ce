/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

// Kind is the declared storage kind of a field. Each backend codec maps a
// kind to exactly one native attribute representation.
type Kind int

const (
	KindBool Kind = iota + 1
	KindByte
	KindBinary
	KindTime
	KindDecimal
	KindFloat64
	KindFloat32
	KindUUID
	KindInt32
	KindInt64
	KindString
	KindDuration
	// KindJSON stores any other type as its JSON text.
	KindJSON
)

var kindNames = map[Kind]string{
	KindBool:     "bool",
	KindByte:     "byte",
	KindBinary:   "binary",
	KindTime:     "time",
	KindDecimal:  "decimal",
	KindFloat64:  "float64",
	KindFloat32:  "float32",
	KindUUID:     "uuid",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindString:   "string",
	KindDuration: "duration",
	KindJSON:     "json",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}
