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

package dict

import (
	"math"

	"github.com/helicondb/helicon/pkg/container/types"
	"github.com/helicondb/helicon/pkg/container/vector"
)

// reverseIndex maps a value (one row of a vector) back to its dictionary
// position.
type reverseIndex interface {
	// add records that row of vec is at dictionary position pos.
	add(vec *vector.Vector, pos int)
	// find returns the dictionary position of row of vec.
	find(vec *vector.Vector, row int) (uint32, bool)
}

type fixedReverseIndex struct {
	ht map[uint64]uint32
}

func newFixedReverseIndex() *fixedReverseIndex {
	return &fixedReverseIndex{ht: make(map[uint64]uint32)}
}

func (idx *fixedReverseIndex) add(vec *vector.Vector, pos int) {
	idx.ht[encodeFixed(vec, pos)] = uint32(pos)
}

func (idx *fixedReverseIndex) find(vec *vector.Vector, row int) (uint32, bool) {
	pos, ok := idx.ht[encodeFixed(vec, row)]
	return pos, ok
}

// encodeFixed widens any fixed-width value to a uint64 hash key. Floats go
// through their bit pattern so distinct values stay distinct.
func encodeFixed(vec *vector.Vector, row int) uint64 {
	switch vec.GetType().Oid {
	case types.T_bool:
		if vector.GetFixedAt[bool](vec, row) {
			return 1
		}
		return 0
	case types.T_int8:
		return uint64(vector.GetFixedAt[int8](vec, row))
	case types.T_int16:
		return uint64(vector.GetFixedAt[int16](vec, row))
	case types.T_int32:
		return uint64(vector.GetFixedAt[int32](vec, row))
	case types.T_int64:
		return uint64(vector.GetFixedAt[int64](vec, row))
	case types.T_uint8:
		return uint64(vector.GetFixedAt[uint8](vec, row))
	case types.T_uint16:
		return uint64(vector.GetFixedAt[uint16](vec, row))
	case types.T_uint32:
		return uint64(vector.GetFixedAt[uint32](vec, row))
	case types.T_uint64:
		return vector.GetFixedAt[uint64](vec, row)
	case types.T_float32:
		return uint64(math.Float32bits(vector.GetFixedAt[float32](vec, row)))
	case types.T_float64:
		return math.Float64bits(vector.GetFixedAt[float64](vec, row))
	case types.T_date, types.T_datetime, types.T_timestamp:
		return uint64(vector.GetFixedAt[int64](vec, row))
	}
	panic("unreachable")
}

type varReverseIndex struct {
	ht map[string]uint32
}

func newVarReverseIndex() *varReverseIndex {
	return &varReverseIndex{ht: make(map[string]uint32)}
}

func (idx *varReverseIndex) add(vec *vector.Vector, pos int) {
	idx.ht[string(vec.GetBytesAt(pos))] = uint32(pos)
}

func (idx *varReverseIndex) find(vec *vector.Vector, row int) (uint32, bool) {
	pos, ok := idx.ht[string(vec.GetBytesAt(row))]
	return pos, ok
}
