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

	"github.com/helicondb/helicon/pkg/common/moerr"
	"github.com/helicondb/helicon/pkg/container/batch"
	"github.com/helicondb/helicon/pkg/container/types"
	"github.com/helicondb/helicon/pkg/container/vector"
	"github.com/helicondb/helicon/pkg/vm/process"
)

func dictVarchar(t *testing.T, uniques []string, indexes []uint32) *vector.Vector {
	t.Helper()
	unique := flatVarchar(t, uniques)
	typ := types.New(types.T_varchar).WrapDict(types.T_uint32)
	return vector.NewDict(typ, unique, indexes)
}

func dictInt64(t *testing.T, uniques []int64, indexes []uint32) *vector.Vector {
	t.Helper()
	unique := flatInt64(t, uniques)
	typ := types.New(types.T_int64).WrapDict(types.T_uint32)
	return vector.NewDict(typ, unique, indexes)
}

func decodeStrings(t *testing.T, v *vector.Vector) []string {
	t.Helper()
	out := make([]string, v.Length())
	for i := range out {
		out[i] = v.GetStringAt(i)
	}
	return out
}

func TestDictFastPath(t *testing.T) {
	calls := 0
	lengths := []int{}
	ov := &Overload{
		name:           "test_upper",
		Args:           []types.T{types.T_varchar},
		RetFn:          fixedRetFn(types.T_varchar),
		UseNullDefault: true,
		UseConstFold:   true,
		UseDictDefault: true,
		Fn: func(vs []*vector.Vector, proc *process.Process, length int) (*vector.Vector, error) {
			calls++
			lengths = append(lengths, length)
			return upperFn(vs, proc, length)
		},
	}
	// 3 unique values, 6 rows
	v := dictVarchar(t, []string{"aa", "bb", "cc"}, []uint32{2, 0, 1, 0, 2, 0})
	res, err := run(t, ov, 6, v)
	require.NoError(t, err)

	require.True(t, res.IsDict())
	require.True(t, res.GetType().Dict)
	require.Equal(t, []string{"CC", "AA", "BB", "AA", "CC", "AA"}, decodeStrings(t, res))
	require.Equal(t, 1, calls)
	require.Equal(t, []int{3}, lengths, "the body runs once per unique value, not per row")
}

func TestDictFastPathWithConstArg(t *testing.T) {
	ov := getOverload(t, "+", int64Types(2))
	v := dictInt64(t, []int64{10, 20}, []uint32{1, 0, 1})
	c := vector.NewConstFixed[int64](types.New(types.T_int64), 5, 3)
	res, err := run(t, ov, 3, v, c)
	require.NoError(t, err)

	require.True(t, res.IsDict())
	require.Equal(t, int64(25), vector.GetFixedAt[int64](res, 0))
	require.Equal(t, int64(15), vector.GetFixedAt[int64](res, 1))
	require.Equal(t, int64(25), vector.GetFixedAt[int64](res, 2))
}

func TestDictDecodedPath(t *testing.T) {
	// a flat second argument forces full materialization
	ov := getOverload(t, "+", int64Types(2))
	v := dictInt64(t, []int64{10, 20}, []uint32{0, 1, 0})
	f := flatInt64(t, []int64{1, 2, 3})
	res, err := run(t, ov, 3, v, f)
	require.NoError(t, err)

	require.True(t, res.IsDict())
	require.Equal(t, int64(11), vector.GetFixedAt[int64](res, 0))
	require.Equal(t, int64(22), vector.GetFixedAt[int64](res, 1))
	require.Equal(t, int64(13), vector.GetFixedAt[int64](res, 2))
}

func TestDictTwoDictArgsDecoded(t *testing.T) {
	ov := getOverload(t, "+", int64Types(2))
	a := dictInt64(t, []int64{1, 2}, []uint32{0, 1, 0})
	b := dictInt64(t, []int64{100, 200}, []uint32{1, 1, 0})
	res, err := run(t, ov, 3, a, b)
	require.NoError(t, err)

	require.True(t, res.IsDict())
	require.Equal(t, int64(201), vector.GetFixedAt[int64](res, 0))
	require.Equal(t, int64(202), vector.GetFixedAt[int64](res, 1))
	require.Equal(t, int64(101), vector.GetFixedAt[int64](res, 2))
}

func TestDictFastAndDecodedAgree(t *testing.T) {
	ov := getOverload(t, "upper", []types.Type{types.New(types.T_varchar)})
	uniques := []string{"x", "yy", "zzz", "w"}
	indexes := []uint32{3, 1, 0, 2, 1, 1, 0}

	fast, err := run(t, ov, len(indexes), dictVarchar(t, uniques, indexes))
	require.NoError(t, err)

	// evaluating over the pre-expanded column must give the same rows
	full := flatVarchar(t, decodeStrings(t, dictVarchar(t, uniques, indexes)))
	plain, err := run(t, ov, len(indexes), full)
	require.NoError(t, err)

	require.Equal(t, decodeStrings(t, plain), decodeStrings(t, fast))
}

func TestDictWithNullableUnique(t *testing.T) {
	ctx := context.Background()
	unique := vector.NewVec(types.New(types.T_varchar).WrapNullable())
	require.NoError(t, vector.AppendBytes(unique, []byte("ab"), false, ctx))
	require.NoError(t, vector.AppendBytes(unique, nil, true, ctx))
	typ := types.New(types.T_varchar).WrapNullable().WrapDict(types.T_uint32)
	v := vector.NewDict(typ, unique, []uint32{0, 1, 0})

	ov := getOverload(t, "length", []types.Type{*v.GetType()})
	res, err := run(t, ov, 3, v)
	require.NoError(t, err)

	require.True(t, res.IsDict())
	require.True(t, res.GetType().Nullable)
	full, err := res.DecodeDict(ctx)
	require.NoError(t, err)
	require.False(t, full.GetNulls().Contains(0))
	require.True(t, full.GetNulls().Contains(1))
	require.Equal(t, int64(2), vector.GetFixedAt[int64](full, 2))
}

func TestDictResolverDisagreementIsInternal(t *testing.T) {
	// a plain declared result type for a dictionary call is an engine
	// defect and must not be reported as user error
	ov := getOverload(t, "upper", []types.Type{types.New(types.T_varchar)})
	proc := testProc()
	v := dictVarchar(t, []string{"a"}, []uint32{0, 0})

	bat := batch.NewWithSize(2)
	bat.SetVector(0, v)
	bat.SetVector(1, vector.NewVec(types.New(types.T_varchar)))
	bat.SetRowCount(2)
	err := ov.Execute(proc, bat, []int32{0}, 1, 2)
	require.Error(t, err)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInternal))
}
