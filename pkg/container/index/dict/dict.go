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

// Package dict builds dictionaries: a unique-value vector plus a reverse
// index from value to position. The execution layer uses it to re-encode
// a raw result as a dictionary vector without materializing full columns.
package dict

import (
	"context"

	"github.com/helicondb/helicon/pkg/container/nulls"
	"github.com/helicondb/helicon/pkg/container/types"
	"github.com/helicondb/helicon/pkg/container/vector"
)

type Dict struct {
	typ types.Type

	idx    reverseIndex
	unique *vector.Vector

	// position of the NULL entry in unique, if one was inserted
	nullPos int
	hasNull bool
}

// New creates an empty dictionary for values of the given type. typ is the
// value type, without the dictionary decoration.
func New(typ types.Type) *Dict {
	d := &Dict{
		typ:    typ,
		unique: vector.NewVec(typ),
	}
	if d.fixed() {
		d.idx = newFixedReverseIndex()
	} else {
		d.idx = newVarReverseIndex()
	}
	return d
}

func (d *Dict) GetUnique() *vector.Vector {
	return d.unique
}

func (d *Dict) Cardinality() int {
	return d.unique.Length()
}

// InsertBatch dedup-inserts every row of data and returns, for each row,
// its position in the unique-value vector.
func (d *Dict) InsertBatch(data *vector.Vector, ctx context.Context) ([]uint32, error) {
	n := data.Length()
	ips /* insertion points */ := make([]uint32, n)
	nsp := data.GetNulls()
	for i := 0; i < n; i++ {
		if nulls.Contains(nsp, uint64(i)) {
			pos, err := d.insertNull(ctx)
			if err != nil {
				return nil, err
			}
			ips[i] = pos
			continue
		}
		pos, found := d.idx.find(data, i)
		if !found {
			var err error
			if pos, err = d.insertRow(data, i, ctx); err != nil {
				return nil, err
			}
		}
		ips[i] = pos
	}
	return ips, nil
}

// FindBatch returns the dictionary position of every row of data, with a
// found flag per row. Rows absent from the dictionary report false.
func (d *Dict) FindBatch(data *vector.Vector) ([]uint32, []bool) {
	n := data.Length()
	poses := make([]uint32, n)
	founds := make([]bool, n)
	for i := 0; i < n; i++ {
		poses[i], founds[i] = d.idx.find(data, i)
	}
	return poses, founds
}

func (d *Dict) insertRow(data *vector.Vector, row int, ctx context.Context) (uint32, error) {
	pos := uint32(d.unique.Length())
	if err := appendRow(d.unique, data, row, ctx); err != nil {
		return 0, err
	}
	d.idx.add(d.unique, int(pos))
	return pos, nil
}

func (d *Dict) insertNull(ctx context.Context) (uint32, error) {
	if d.hasNull {
		return uint32(d.nullPos), nil
	}
	pos := d.unique.Length()
	if err := appendNull(d.unique, ctx); err != nil {
		return 0, err
	}
	d.hasNull = true
	d.nullPos = pos
	return uint32(pos), nil
}

func (d *Dict) fixed() bool { return !d.typ.IsString() }

// appendNull appends a NULL entry, keeping the stored column's element type
// consistent with the value type.
func appendNull(dst *vector.Vector, ctx context.Context) error {
	if dst.GetType().IsString() {
		return vector.AppendBytes(dst, nil, true, ctx)
	}
	switch dst.GetType().Oid {
	case types.T_bool:
		return vector.AppendFixed(dst, false, true, ctx)
	case types.T_int8:
		return vector.AppendFixed[int8](dst, 0, true, ctx)
	case types.T_int16:
		return vector.AppendFixed[int16](dst, 0, true, ctx)
	case types.T_int32:
		return vector.AppendFixed[int32](dst, 0, true, ctx)
	case types.T_int64:
		return vector.AppendFixed[int64](dst, 0, true, ctx)
	case types.T_uint8:
		return vector.AppendFixed[uint8](dst, 0, true, ctx)
	case types.T_uint16:
		return vector.AppendFixed[uint16](dst, 0, true, ctx)
	case types.T_uint32:
		return vector.AppendFixed[uint32](dst, 0, true, ctx)
	case types.T_uint64:
		return vector.AppendFixed[uint64](dst, 0, true, ctx)
	case types.T_float32:
		return vector.AppendFixed[float32](dst, 0, true, ctx)
	case types.T_float64:
		return vector.AppendFixed[float64](dst, 0, true, ctx)
	case types.T_date, types.T_datetime, types.T_timestamp:
		return vector.AppendFixed[int64](dst, 0, true, ctx)
	}
	panic("unreachable")
}

func appendRow(dst, src *vector.Vector, row int, ctx context.Context) error {
	if src.GetType().IsString() {
		return vector.AppendBytes(dst, src.GetBytesAt(row), false, ctx)
	}
	switch src.GetType().Oid {
	case types.T_bool:
		return vector.AppendFixed(dst, vector.GetFixedAt[bool](src, row), false, ctx)
	case types.T_int8:
		return vector.AppendFixed(dst, vector.GetFixedAt[int8](src, row), false, ctx)
	case types.T_int16:
		return vector.AppendFixed(dst, vector.GetFixedAt[int16](src, row), false, ctx)
	case types.T_int32:
		return vector.AppendFixed(dst, vector.GetFixedAt[int32](src, row), false, ctx)
	case types.T_int64:
		return vector.AppendFixed(dst, vector.GetFixedAt[int64](src, row), false, ctx)
	case types.T_uint8:
		return vector.AppendFixed(dst, vector.GetFixedAt[uint8](src, row), false, ctx)
	case types.T_uint16:
		return vector.AppendFixed(dst, vector.GetFixedAt[uint16](src, row), false, ctx)
	case types.T_uint32:
		return vector.AppendFixed(dst, vector.GetFixedAt[uint32](src, row), false, ctx)
	case types.T_uint64:
		return vector.AppendFixed(dst, vector.GetFixedAt[uint64](src, row), false, ctx)
	case types.T_float32:
		return vector.AppendFixed(dst, vector.GetFixedAt[float32](src, row), false, ctx)
	case types.T_float64:
		return vector.AppendFixed(dst, vector.GetFixedAt[float64](src, row), false, ctx)
	case types.T_date, types.T_datetime, types.T_timestamp:
		return vector.AppendFixed(dst, vector.GetFixedAt[int64](src, row), false, ctx)
	}
	panic("unreachable")
}
