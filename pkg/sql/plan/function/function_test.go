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
	"github.com/helicondb/helicon/pkg/container/types"
)

func TestEncodeOverloadID(t *testing.T) {
	cases := [][2]int32{{0, 0}, {1, 0}, {LENGTH, 1}, {FUNCTION_END_NUMBER - 1, 300}}
	for _, c := range cases {
		fid, index := DecodeOverloadID(EncodeOverloadID(c[0], c[1]))
		require.Equal(t, c[0], fid)
		require.Equal(t, c[1], index)
	}
}

func TestGetFunctionByID(t *testing.T) {
	ctx := context.Background()
	ov, err := GetFunctionByID(ctx, EncodeOverloadID(LENGTH, 1))
	require.NoError(t, err)
	require.Equal(t, "length", ov.Name())
	require.Equal(t, int32(1), ov.Index)
	require.Equal(t, []types.T{types.T_char}, ov.Args)

	_, err = GetFunctionByID(ctx, EncodeOverloadID(FUNCTION_END_NUMBER, 0))
	require.Error(t, err)
	_, err = GetFunctionByID(ctx, EncodeOverloadID(LENGTH, 99))
	require.Error(t, err)
}

func TestGetFunctionByName(t *testing.T) {
	ctx := context.Background()

	ov, _, err := GetFunctionByName(ctx, "+", int64Types(2))
	require.NoError(t, err)
	require.Equal(t, "+", ov.Name())
	require.Equal(t, int32(0), ov.Index)

	// the float overload is a different index of the same function
	f64 := types.New(types.T_float64)
	ovf, _, err := GetFunctionByName(ctx, "+", []types.Type{f64, f64})
	require.NoError(t, err)
	require.Equal(t, int32(1), ovf.Index)

	_, _, err = GetFunctionByName(ctx, "no_such_fn", nil)
	require.Error(t, err)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrNotSupported))

	// no overload of + takes varchar
	vc := types.New(types.T_varchar)
	_, _, err = GetFunctionByName(ctx, "+", []types.Type{vc, vc})
	require.Error(t, err)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidArg))
}

func TestNullConstantMatchesAnyOverload(t *testing.T) {
	ctx := context.Background()
	anyNull := types.New(types.T_any).WrapNullable()

	// length(NULL) matches the varchar overload through the null-only type
	ov, ret, err := GetFunctionByName(ctx, "length", []types.Type{anyNull})
	require.NoError(t, err)
	require.Equal(t, "length", ov.Name())
	require.True(t, ret.Eq(anyNull))
}

func TestDecorationsDoNotChangeMatching(t *testing.T) {
	ctx := context.Background()
	base := types.New(types.T_varchar)
	for _, typ := range []types.Type{
		base,
		base.WrapNullable(),
		base.WrapDict(types.T_uint16),
		base.WrapNullable().WrapDict(types.T_uint32),
	} {
		ov, _, err := GetFunctionByName(ctx, "upper", []types.Type{typ})
		require.NoError(t, err)
		require.Equal(t, "upper", ov.Name())
	}
}
