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
	"bytes"

	"github.com/helicondb/helicon/pkg/container/nulls"
	"github.com/helicondb/helicon/pkg/container/types"
	"github.com/helicondb/helicon/pkg/container/vector"
	"github.com/helicondb/helicon/pkg/vm/process"
)

var supportedBuiltins = []Functions{
	{
		Id:   LENGTH,
		Name: "length",
		Overloads: []Overload{
			{
				Args:           []types.T{types.T_varchar},
				RetFn:          fixedRetFn(types.T_int64),
				Fn:             lengthFn,
				UseNullDefault: true,
				UseConstFold:   true,
				UseDictDefault: true,
				CompileFn:      compileLength,
			},
			{
				Args:           []types.T{types.T_char},
				RetFn:          fixedRetFn(types.T_int64),
				Fn:             lengthFn,
				UseNullDefault: true,
				UseConstFold:   true,
				UseDictDefault: true,
				CompileFn:      compileLength,
			},
		},
	},
	{
		Id:   UPPER,
		Name: "upper",
		Overloads: []Overload{
			{
				Args:           []types.T{types.T_varchar},
				RetFn:          fixedRetFn(types.T_varchar),
				Fn:             upperFn,
				UseNullDefault: true,
				UseConstFold:   true,
				UseDictDefault: true,
			},
		},
	},
	{
		Id:   ISNULL,
		Name: "isnull",
		Overloads: []Overload{
			{
				// isnull inspects the null bitmap itself, so it opts out
				// of the NULL-propagation adapter: a NULL argument yields
				// true, not NULL.
				Args:           []types.T{ScalarNull},
				RetFn:          fixedRetFn(types.T_bool),
				Fn:             isNullFn,
				UseNullDefault: false,
				UseConstFold:   true,
				UseDictDefault: false,
				CompileFn:      compileIsNull,
			},
		},
	},
}

func lengthFn(vs []*vector.Vector, proc *process.Process, length int) (*vector.Vector, error) {
	res := vector.NewVec(types.New(types.T_int64))
	for i := 0; i < length; i++ {
		n := int64(len(vs[0].GetBytesAt(i)))
		if err := vector.AppendFixed(res, n, false, proc.Ctx); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func compileLength(args []RowFn) RowFn {
	return func(row int) (any, bool) {
		v, _ := args[0](row)
		return int64(len(v.([]byte))), false
	}
}

func upperFn(vs []*vector.Vector, proc *process.Process, length int) (*vector.Vector, error) {
	res := vector.NewVec(types.New(types.T_varchar))
	for i := 0; i < length; i++ {
		if err := vector.AppendBytes(res, bytes.ToUpper(vs[0].GetBytesAt(i)), false, proc.Ctx); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func isNullFn(vs []*vector.Vector, proc *process.Process, length int) (*vector.Vector, error) {
	v := vs[0]
	res := vector.NewVec(types.New(types.T_bool))
	for i := 0; i < length; i++ {
		if err := vector.AppendFixed(res, rowIsNull(v, i), false, proc.Ctx); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func rowIsNull(v *vector.Vector, i int) bool {
	if v.OnlyNull() {
		return true
	}
	if v.IsConst() {
		i = 0
	}
	return nulls.Contains(v.GetNulls(), uint64(i))
}

func compileIsNull(args []RowFn) RowFn {
	return func(row int) (any, bool) {
		_, isNull := args[0](row)
		return isNull, false
	}
}
