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

package function

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/helicondb/helicon/pkg/container/nulls"
	"github.com/helicondb/helicon/pkg/container/types"
	"github.com/helicondb/helicon/pkg/container/vector"
)

// rowsOf adapts a vector to the compiled row-function form.
func rowsOf(v *vector.Vector) RowFn {
	return func(row int) (any, bool) {
		if v.OnlyNull() || nulls.Contains(v.GetNulls(), uint64(rowFor(v, row))) {
			return nil, true
		}
		if v.GetType().IsString() {
			return v.GetBytesAt(row), false
		}
		return vector.GetFixedAt[int64](v, row), false
	}
}

func rowFor(v *vector.Vector, row int) int {
	if v.IsConst() {
		return 0
	}
	return row
}

func TestCompilePlain(t *testing.T) {
	ctx := context.Background()
	ov := getOverload(t, "+", int64Types(2))
	a := flatInt64(t, []int64{1, 2, 3})
	b := flatInt64(t, []int64{10, 20, 30})

	fn, err := ov.Compile(ctx, int64Types(2), []RowFn{rowsOf(a), rowsOf(b)})
	require.NoError(t, err)
	for i, want := range []int64{11, 22, 33} {
		got, isNull := fn(i)
		require.False(t, isNull)
		require.Equal(t, want, got)
	}
}

// The compiled path and the vector path must produce identical rows.
func TestCompileMatchesVectorPath(t *testing.T) {
	ctx := context.Background()
	ov := getOverload(t, "+", int64Types(2))
	a := nullableInt64(t, []int64{1, 2, 3, 4}, 1)
	b := nullableInt64(t, []int64{10, 20, 30, 40}, 2)
	argTypes := []types.Type{*a.GetType(), *b.GetType()}

	vecRes, err := run(t, ov, 4, a, b)
	require.NoError(t, err)

	fn, err := ov.Compile(ctx, argTypes, []RowFn{rowsOf(a), rowsOf(b)})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		got, isNull := fn(i)
		require.Equal(t, nulls.Contains(vecRes.GetNulls(), uint64(i)), isNull, "row %d", i)
		if !isNull {
			require.Equal(t, vector.GetFixedAt[int64](vecRes, i), got, "row %d", i)
		}
	}
}

// Every argument is evaluated before the NULL branch is taken; a NULL in
// the first argument must not short-circuit the second.
func TestCompileNullWrapperEvaluatesAllArgs(t *testing.T) {
	ctx := context.Background()
	ov := getOverload(t, "+", int64Types(2))
	argTypes := []types.Type{
		types.New(types.T_int64).WrapNullable(),
		types.New(types.T_int64).WrapNullable(),
	}

	evalsA, evalsB := 0, 0
	argA := func(int) (any, bool) { evalsA++; return nil, true }
	argB := func(int) (any, bool) { evalsB++; return int64(5), false }

	fn, err := ov.Compile(ctx, argTypes, []RowFn{argA, argB})
	require.NoError(t, err)

	_, isNull := fn(0)
	require.True(t, isNull)
	require.Equal(t, 1, evalsA)
	require.Equal(t, 1, evalsB)
}

func TestCompileIsNull(t *testing.T) {
	ctx := context.Background()
	ov := getOverload(t, "isnull", []types.Type{types.New(types.T_int64).WrapNullable()})
	v := nullableInt64(t, []int64{1, 2}, 0)

	fn, err := ov.Compile(ctx, []types.Type{*v.GetType()}, []RowFn{rowsOf(v)})
	require.NoError(t, err)

	got, isNull := fn(0)
	require.False(t, isNull, "isnull itself never returns NULL")
	require.Equal(t, true, got)

	got, isNull = fn(1)
	require.False(t, isNull)
	require.Equal(t, false, got)
}

func TestCompileNotSupported(t *testing.T) {
	ctx := context.Background()
	ov := getOverload(t, "upper", []types.Type{types.New(types.T_varchar)})
	require.False(t, ov.IsCompilable([]types.Type{types.New(types.T_varchar)}))
	_, err := ov.Compile(ctx, []types.Type{types.New(types.T_varchar)}, []RowFn{rowsOf(flatVarchar(t, []string{"a"}))})
	require.Error(t, err)
}

func TestCompileLengthBytes(t *testing.T) {
	ctx := context.Background()
	ov := getOverload(t, "length", []types.Type{types.New(types.T_varchar)})
	v := flatVarchar(t, []string{"", "abcd"})

	fn, err := ov.Compile(ctx, []types.Type{*v.GetType()}, []RowFn{rowsOf(v)})
	require.NoError(t, err)

	got, _ := fn(0)
	require.Equal(t, int64(0), got)
	got, _ = fn(1)
	require.Equal(t, int64(4), got)
}
