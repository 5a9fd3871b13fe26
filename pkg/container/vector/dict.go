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

// Dictionary returns the unique-value vector and the index array of a
// dictionary vector. A vector claiming dictionary encoding without the
// expected structure is an engine defect, not user input.
func (v *Vector) Dictionary(ctx context.Context) (*Vector, []uint32, error) {
	if v.class != DICT {
		return nil, nil, moerr.NewInternalError(ctx, "expected dictionary vector, got class %d", v.class)
	}
	if v.unique == nil || v.indexes == nil {
		return nil, nil, moerr.NewInternalError(ctx, "dictionary vector of type %s lacks unique/index structure", v.typ)
	}
	return v.unique, v.indexes, nil
}

// GetUnique returns the shared unique-value vector of a dictionary vector,
// or nil for other classes.
func (v *Vector) GetUnique() *Vector {
	return v.unique
}

// GetIndexes returns the index array of a dictionary vector, or nil for
// other classes.
func (v *Vector) GetIndexes() []uint32 {
	return v.indexes
}

// SameDictionary reports whether two dictionary vectors are encoded
// against the same shared dictionary.
func (v *Vector) SameDictionary(o *Vector) bool {
	return v.class == DICT && o.class == DICT && v.unique == o.unique
}

// DecodeDict materializes the full expanded column of a dictionary vector.
func (v *Vector) DecodeDict(ctx context.Context) (*Vector, error) {
	unique, indexes, err := v.Dictionary(ctx)
	if err != nil {
		return nil, err
	}
	w := NewVec(v.typ.StripDict())
	unsp := unique.GetNulls()
	if unique.typ.IsString() {
		for _, idx := range indexes {
			isNull := nulls.Contains(unsp, uint64(idx))
			if err := AppendBytes(w, unique.GetBytesAt(int(idx)), isNull, ctx); err != nil {
				return nil, err
			}
		}
		return w, nil
	}
	for _, idx := range indexes {
		if nulls.Contains(unsp, uint64(idx)) {
			if err := appendNullAny(w, ctx); err != nil {
				return nil, err
			}
			continue
		}
		if err := appendRowAny(w, unique, int(idx), ctx); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func appendNullAny(w *Vector, ctx context.Context) error {
	switch w.typ.Oid {
	case types.T_bool:
		return AppendFixed(w, false, true, ctx)
	case types.T_int8:
		return AppendFixed[int8](w, 0, true, ctx)
	case types.T_int16:
		return AppendFixed[int16](w, 0, true, ctx)
	case types.T_int32:
		return AppendFixed[int32](w, 0, true, ctx)
	case types.T_int64, types.T_date, types.T_datetime, types.T_timestamp:
		return AppendFixed[int64](w, 0, true, ctx)
	case types.T_uint8:
		return AppendFixed[uint8](w, 0, true, ctx)
	case types.T_uint16:
		return AppendFixed[uint16](w, 0, true, ctx)
	case types.T_uint32:
		return AppendFixed[uint32](w, 0, true, ctx)
	case types.T_uint64:
		return AppendFixed[uint64](w, 0, true, ctx)
	case types.T_float32:
		return AppendFixed[float32](w, 0, true, ctx)
	case types.T_float64:
		return AppendFixed[float64](w, 0, true, ctx)
	}
	return moerr.NewNYI(ctx, "dictionary decode for type %s", w.typ.Oid)
}

func appendRowAny(w *Vector, src *Vector, row int, ctx context.Context) error {
	switch w.typ.Oid {
	case types.T_bool:
		return AppendFixed(w, GetFixedAt[bool](src, row), false, ctx)
	case types.T_int8:
		return AppendFixed(w, GetFixedAt[int8](src, row), false, ctx)
	case types.T_int16:
		return AppendFixed(w, GetFixedAt[int16](src, row), false, ctx)
	case types.T_int32:
		return AppendFixed(w, GetFixedAt[int32](src, row), false, ctx)
	case types.T_int64:
		return AppendFixed(w, GetFixedAt[int64](src, row), false, ctx)
	case types.T_uint8:
		return AppendFixed(w, GetFixedAt[uint8](src, row), false, ctx)
	case types.T_uint16:
		return AppendFixed(w, GetFixedAt[uint16](src, row), false, ctx)
	case types.T_uint32:
		return AppendFixed(w, GetFixedAt[uint32](src, row), false, ctx)
	case types.T_uint64:
		return AppendFixed(w, GetFixedAt[uint64](src, row), false, ctx)
	case types.T_float32:
		return AppendFixed(w, GetFixedAt[float32](src, row), false, ctx)
	case types.T_float64:
		return AppendFixed(w, GetFixedAt[float64](src, row), false, ctx)
	case types.T_date, types.T_datetime, types.T_timestamp:
		return AppendFixed(w, GetFixedAt[int64](src, row), false, ctx)
	}
	return moerr.NewNYI(ctx, "dictionary decode for type %s", w.typ.Oid)
}
