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

package vector

import (
	"context"

	"github.com/helicondb/helicon/pkg/common/moerr"
	"github.com/helicondb/helicon/pkg/container/nulls"
	"github.com/helicondb/helicon/pkg/container/types"
)

const (
	FLAT     = iota // flat vector represents an uncompressed column
	CONSTANT        // const vector, one value logically repeated length times
	DICT            // dictionary vector, index array over a unique-value vector
)

// Vector represents a column. Vectors are immutable once published into a
// batch position; adapters that need a different shape build a new vector
// (possibly sharing storage) instead of mutating in place.
type Vector struct {
	// vector's class
	class int
	// typ represents the declared type of the column
	typ types.Type
	nsp *nulls.Nulls // nulls list

	// col holds []T for fixed-width types or [][]byte for string types.
	// For a CONSTANT vector only slot 0 is meaningful.
	col any

	length int

	// dictionary representation, class == DICT only. The effective value
	// at row i is unique[indexes[i]]. unique may be shared between
	// vectors encoded against the same dictionary.
	unique  *Vector
	indexes []uint32
}

func NewVec(typ types.Type) *Vector {
	return &Vector{
		typ:   typ,
		class: FLAT,
		nsp:   &nulls.Nulls{},
	}
}

func NewConstNull(typ types.Type, length int) *Vector {
	vec := &Vector{
		typ:    typ,
		class:  CONSTANT,
		nsp:    nulls.Build(1, 0),
		length: length,
	}
	return vec
}

func NewConstFixed[T types.FixedSizeT](typ types.Type, val T, length int) *Vector {
	return &Vector{
		typ:    typ,
		class:  CONSTANT,
		nsp:    &nulls.Nulls{},
		col:    []T{val},
		length: length,
	}
}

func NewConstBytes(typ types.Type, val []byte, length int) *Vector {
	return &Vector{
		typ:    typ,
		class:  CONSTANT,
		nsp:    &nulls.Nulls{},
		col:    [][]byte{val},
		length: length,
	}
}

// NewDict builds a dictionary vector over a shared unique-value vector.
// typ must carry the dictionary decoration; unique carries the value type.
func NewDict(typ types.Type, unique *Vector, indexes []uint32) *Vector {
	return &Vector{
		typ:     typ,
		class:   DICT,
		nsp:     &nulls.Nulls{},
		unique:  unique,
		indexes: indexes,
		length:  len(indexes),
	}
}

func (v *Vector) Length() int {
	return v.length
}

func (v *Vector) SetLength(n int) {
	v.length = n
}

func (v *Vector) GetType() *types.Type {
	return &v.typ
}

func (v *Vector) SetType(typ types.Type) {
	v.typ = typ
}

func (v *Vector) GetNulls() *nulls.Nulls {
	return v.nsp
}

func (v *Vector) SetNulls(nsp *nulls.Nulls) {
	v.nsp = nsp
}

func (v *Vector) Class() int {
	return v.class
}

func (v *Vector) IsConst() bool {
	return v.class == CONSTANT
}

func (v *Vector) IsDict() bool {
	return v.class == DICT
}

// IsConstNull returns true if the vector is a scalar NULL.
// e.g. a + NULL, the vector of the right part will return true.
func (v *Vector) IsConstNull() bool {
	return v.IsConst() && v.nsp != nil && nulls.Contains(v.nsp, 0)
}

// OnlyNull reports whether every row of the vector is provably NULL.
func (v *Vector) OnlyNull() bool {
	if v.IsConstNull() {
		return true
	}
	return v.typ.IsNull()
}

// MustFixedCol gets the fixed-width column data of the vector. It panics
// if T does not match the vector's element type; callers have already
// checked the declared type.
func MustFixedCol[T types.FixedSizeT](v *Vector) []T {
	if v.col == nil {
		return nil
	}
	return v.col.([]T)
}

// MustBytesCol gets the byte-slice column data of a string-typed vector.
func MustBytesCol(v *Vector) [][]byte {
	if v.col == nil {
		return nil
	}
	return v.col.([][]byte)
}

// GetFixedAt reads one value, resolving constant and dictionary encodings.
// The null bitmap is not consulted.
func GetFixedAt[T types.FixedSizeT](v *Vector, i int) T {
	switch v.class {
	case CONSTANT:
		i = 0
	case DICT:
		return GetFixedAt[T](v.unique, int(v.indexes[i]))
	}
	return MustFixedCol[T](v)[i]
}

// GetBytesAt reads one string value, resolving constant and dictionary
// encodings. The null bitmap is not consulted.
func (v *Vector) GetBytesAt(i int) []byte {
	switch v.class {
	case CONSTANT:
		i = 0
	case DICT:
		return v.unique.GetBytesAt(int(v.indexes[i]))
	}
	return MustBytesCol(v)[i]
}

func (v *Vector) GetStringAt(i int) string {
	return string(v.GetBytesAt(i))
}

func AppendFixed[T types.FixedSizeT](v *Vector, val T, isNull bool, ctx context.Context) error {
	if v.class != FLAT {
		return moerr.NewInvalidState(ctx, "append to non-flat vector")
	}
	var col []T
	if v.col != nil {
		col = v.col.([]T)
	}
	if isNull {
		var zero T
		col = append(col, zero)
		v.nsp.Set(uint64(len(col) - 1))
	} else {
		col = append(col, val)
	}
	v.col = col
	v.length = len(col)
	return nil
}

func AppendBytes(v *Vector, val []byte, isNull bool, ctx context.Context) error {
	if v.class != FLAT {
		return moerr.NewInvalidState(ctx, "append to non-flat vector")
	}
	var col [][]byte
	if v.col != nil {
		col = v.col.([][]byte)
	}
	if isNull {
		col = append(col, nil)
		v.nsp.Set(uint64(len(col) - 1))
	} else {
		col = append(col, val)
	}
	v.col = col
	v.length = len(col)
	return nil
}

func AppendFixedList[T types.FixedSizeT](v *Vector, vals []T, nsp *nulls.Nulls, ctx context.Context) error {
	for i, val := range vals {
		if err := AppendFixed(v, val, nulls.Contains(nsp, uint64(i)), ctx); err != nil {
			return err
		}
	}
	return nil
}

func AppendBytesList(v *Vector, vals [][]byte, nsp *nulls.Nulls, ctx context.Context) error {
	for i, val := range vals {
		if err := AppendBytes(v, val, nulls.Contains(nsp, uint64(i)), ctx); err != nil {
			return err
		}
	}
	return nil
}

// UnConst converts a constant vector into a flat single-row vector sharing
// the same storage. The declared type, including the nullable decoration
// and the null bit of a scalar NULL, is preserved.
func (v *Vector) UnConst() *Vector {
	w := &Vector{
		class:  FLAT,
		typ:    v.typ,
		col:    v.col,
		length: 1,
		nsp:    &nulls.Nulls{},
	}
	if v.IsConstNull() {
		w.nsp = nulls.Build(1, 0)
	}
	return w
}

// ResizeConst returns a constant vector sharing v's single value with a new
// row count.
func (v *Vector) ResizeConst(length int) *Vector {
	w := *v
	w.length = length
	return &w
}

// StripNullable returns a vector sharing v's storage with the nullable
// decoration removed from its declared type and no null bitmap. The value
// at formerly-NULL rows is unspecified, as it was underneath the bitmap.
func (v *Vector) StripNullable() *Vector {
	w := *v
	w.typ = v.typ.StripNullable()
	w.nsp = &nulls.Nulls{}
	return &w
}

// WrapNullable returns a vector sharing v's storage with the nullable
// decoration added to its declared type and the given null bitmap. A nil
// bitmap means no row is NULL.
func (v *Vector) WrapNullable(nsp *nulls.Nulls) *Vector {
	w := *v
	w.typ = v.typ.WrapNullable()
	if nsp == nil {
		nsp = &nulls.Nulls{}
	}
	w.nsp = nsp
	return &w
}

// ToFlat materializes v as a flat vector of the given length. Constants
// are expanded value by value; flat vectors are returned as-is when the
// length already matches.
func (v *Vector) ToFlat(length int, ctx context.Context) (*Vector, error) {
	switch v.class {
	case FLAT:
		return v, nil
	case CONSTANT:
		w := NewVec(v.typ)
		if v.IsConstNull() {
			for i := 0; i < length; i++ {
				if err := appendOneAny(w, nil, true, ctx); err != nil {
					return nil, err
				}
			}
			return w, nil
		}
		for i := 0; i < length; i++ {
			var err error
			if v.typ.IsString() {
				err = AppendBytes(w, v.GetBytesAt(0), false, ctx)
			} else {
				err = appendOneAny(w, v.col, false, ctx)
			}
			if err != nil {
				return nil, err
			}
		}
		return w, nil
	case DICT:
		return v.DecodeDict(ctx)
	}
	return nil, moerr.NewInternalError(ctx, "unknown vector class %d", v.class)
}

// appendOneAny appends slot 0 of a stored column (or a null) without the
// caller knowing the element type.
func appendOneAny(w *Vector, col any, isNull bool, ctx context.Context) error {
	if w.typ.IsString() {
		var val []byte
		if !isNull {
			val = col.([][]byte)[0]
		}
		return AppendBytes(w, val, isNull, ctx)
	}
	switch w.typ.Oid {
	case types.T_bool:
		return appendSlot0[bool](w, col, isNull, ctx)
	case types.T_int8:
		return appendSlot0[int8](w, col, isNull, ctx)
	case types.T_int16:
		return appendSlot0[int16](w, col, isNull, ctx)
	case types.T_int32:
		return appendSlot0[int32](w, col, isNull, ctx)
	case types.T_int64:
		return appendSlot0[int64](w, col, isNull, ctx)
	case types.T_uint8:
		return appendSlot0[uint8](w, col, isNull, ctx)
	case types.T_uint16:
		return appendSlot0[uint16](w, col, isNull, ctx)
	case types.T_uint32:
		return appendSlot0[uint32](w, col, isNull, ctx)
	case types.T_uint64:
		return appendSlot0[uint64](w, col, isNull, ctx)
	case types.T_float32:
		return appendSlot0[float32](w, col, isNull, ctx)
	case types.T_float64:
		return appendSlot0[float64](w, col, isNull, ctx)
	case types.T_date, types.T_datetime, types.T_timestamp:
		return appendSlot0[int64](w, col, isNull, ctx)
	case types.T_any:
		// the null-only type stores no values
		return AppendFixed[bool](w, false, true, ctx)
	}
	return moerr.NewNYI(ctx, "append for type %s", w.typ.Oid)
}

func appendSlot0[T types.FixedSizeT](w *Vector, col any, isNull bool, ctx context.Context) error {
	var val T
	if !isNull {
		val = col.([]T)[0]
	}
	return AppendFixed(w, val, isNull, ctx)
}

// ConstFromRow wraps row i of a flat vector back into a constant of the
// given row count. A NULL row yields a scalar NULL constant.
func ConstFromRow(src *Vector, row int, length int, ctx context.Context) (*Vector, error) {
	if src.IsConst() {
		// already constant: only the row count changes
		w := src.ResizeConst(length)
		return w, nil
	}
	if nulls.Contains(src.nsp, uint64(row)) || src.typ.IsNull() {
		return NewConstNull(src.typ, length), nil
	}
	w := &Vector{
		typ:    src.typ,
		class:  CONSTANT,
		nsp:    &nulls.Nulls{},
		length: length,
	}
	if src.typ.IsString() {
		w.col = [][]byte{src.GetBytesAt(row)}
		return w, nil
	}
	w.col = sliceOfRow(src, row)
	if w.col == nil {
		return nil, moerr.NewNYI(ctx, "const wrap for type %s", src.typ.Oid)
	}
	return w, nil
}

func sliceOfRow(src *Vector, row int) any {
	switch src.typ.Oid {
	case types.T_bool:
		return []bool{GetFixedAt[bool](src, row)}
	case types.T_int8:
		return []int8{GetFixedAt[int8](src, row)}
	case types.T_int16:
		return []int16{GetFixedAt[int16](src, row)}
	case types.T_int32:
		return []int32{GetFixedAt[int32](src, row)}
	case types.T_int64:
		return []int64{GetFixedAt[int64](src, row)}
	case types.T_uint8:
		return []uint8{GetFixedAt[uint8](src, row)}
	case types.T_uint16:
		return []uint16{GetFixedAt[uint16](src, row)}
	case types.T_uint32:
		return []uint32{GetFixedAt[uint32](src, row)}
	case types.T_uint64:
		return []uint64{GetFixedAt[uint64](src, row)}
	case types.T_float32:
		return []float32{GetFixedAt[float32](src, row)}
	case types.T_float64:
		return []float64{GetFixedAt[float64](src, row)}
	case types.T_date, types.T_datetime, types.T_timestamp:
		return []int64{GetFixedAt[int64](src, row)}
	}
	return nil
}
