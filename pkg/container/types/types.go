// Copyright 2021 - 2022 Helicon DB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package types holds the semantic type system of the expression engine.
// A Type is an oid plus two optional decorations: nullable and dictionary.
// The oid T_any is the null-only type; a scalar NULL constant is typed
// nullable-of-T_any and matches any required type during plan building.
package types

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

type T uint8

const (
	// T_any is the null-only type ("nothing"). It carries no values.
	T_any T = iota

	T_bool

	T_int8
	T_int16
	T_int32
	T_int64
	T_uint8
	T_uint16
	T_uint32
	T_uint64

	T_float32
	T_float64

	T_date
	T_datetime
	T_timestamp

	T_char
	T_varchar
)

// Type is the declared type of one column. At most one nullable and one
// dictionary decoration can be active at a time; a dictionary-encoded
// nullable column carries both flags.
type Type struct {
	Oid T

	// Nullable marks the nullable decoration. It is a property of the
	// declared type, not of whether nulls happen to be present.
	Nullable bool

	// Dict marks the dictionary decoration. IndexOid is the integer type
	// of the index array and is only meaningful when Dict is set.
	Dict     bool
	IndexOid T

	Size  int32
	Width int32
	Scale int32
}

// FixedSizeT is the constraint for element types stored directly in a
// vector's fixed-width column.
type FixedSizeT interface {
	constraints.Integer | constraints.Float | bool
}

func New(oid T) Type {
	return Type{Oid: oid, Size: oid.TypeSize()}
}

func (t T) ToType() Type {
	return New(t)
}

func (t Type) IsString() bool {
	return t.Oid == T_char || t.Oid == T_varchar
}

// IsNull reports whether t is the null-only type, i.e. the declared type
// of a scalar NULL constant. Decorations do not change the answer.
func (t Type) IsNull() bool {
	return t.Oid == T_any
}

func (t Type) WrapNullable() Type {
	t.Nullable = true
	return t
}

func (t Type) StripNullable() Type {
	t.Nullable = false
	return t
}

// WrapDict decorates t as dictionary-encoded with the given index type.
func (t Type) WrapDict(indexOid T) Type {
	t.Dict = true
	t.IndexOid = indexOid
	return t
}

// StripDict returns the dictionary's value type.
func (t Type) StripDict() Type {
	t.Dict = false
	t.IndexOid = 0
	return t
}

// Eq compares declared types including decorations. Width and scale do not
// participate; two varchar columns of different widths are the same type to
// the execution layer.
func (t Type) Eq(o Type) bool {
	return t.Oid == o.Oid && t.Nullable == o.Nullable &&
		t.Dict == o.Dict && t.IndexOid == o.IndexOid
}

func (t Type) String() string {
	s := t.Oid.String()
	if t.Nullable {
		s = "nullable(" + s + ")"
	}
	if t.Dict {
		s = fmt.Sprintf("dict(%s, %s)", s, t.IndexOid.String())
	}
	return s
}

func (t T) String() string {
	switch t {
	case T_any:
		return "ANY"
	case T_bool:
		return "BOOL"
	case T_int8:
		return "TINYINT"
	case T_int16:
		return "SMALLINT"
	case T_int32:
		return "INT"
	case T_int64:
		return "BIGINT"
	case T_uint8:
		return "TINYINT UNSIGNED"
	case T_uint16:
		return "SMALLINT UNSIGNED"
	case T_uint32:
		return "INT UNSIGNED"
	case T_uint64:
		return "BIGINT UNSIGNED"
	case T_float32:
		return "FLOAT"
	case T_float64:
		return "DOUBLE"
	case T_date:
		return "DATE"
	case T_datetime:
		return "DATETIME"
	case T_timestamp:
		return "TIMESTAMP"
	case T_char:
		return "CHAR"
	case T_varchar:
		return "VARCHAR"
	}
	return fmt.Sprintf("unexpected_type[%d]", t)
}

// TypeSize returns the fixed element size in bytes, or -1 for var-length
// types.
func (t T) TypeSize() int32 {
	switch t {
	case T_any:
		return 0
	case T_bool, T_int8, T_uint8:
		return 1
	case T_int16, T_uint16:
		return 2
	case T_int32, T_uint32, T_float32, T_date:
		return 4
	case T_int64, T_uint64, T_float64, T_datetime, T_timestamp:
		return 8
	}
	return -1
}

// FixedSize reports whether values of t are stored as fixed-width elements.
func (t T) FixedSize() bool {
	return t.TypeSize() >= 0
}

var unsignedRank = map[T]int{
	T_uint8:  1,
	T_uint16: 2,
	T_uint32: 3,
	T_uint64: 4,
}

// LeastSupertype returns the smallest unsigned integer type every input
// widens to. It is used for dictionary index types only; ts must be
// non-empty and each element one of the unsigned integer oids.
func LeastSupertype(ts ...T) (T, bool) {
	best, seen := 0, false
	for _, t := range ts {
		r, ok := unsignedRank[t]
		if !ok {
			return T_any, false
		}
		if r > best {
			best = r
		}
		seen = true
	}
	if !seen {
		return T_any, false
	}
	for t, r := range unsignedRank {
		if r == best {
			return t, true
		}
	}
	return T_any, false
}
