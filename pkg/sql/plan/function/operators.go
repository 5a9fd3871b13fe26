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
	"golang.org/x/exp/constraints"

	"github.com/helicondb/helicon/pkg/container/types"
	"github.com/helicondb/helicon/pkg/container/vector"
	"github.com/helicondb/helicon/pkg/vm/process"
)

var supportedOperators = []Functions{
	{
		Id:   PLUS,
		Name: "+",
		Overloads: []Overload{
			{
				Args:           []types.T{types.T_int64, types.T_int64},
				RetFn:          fixedRetFn(types.T_int64),
				Fn:             arithFn(types.T_int64, func(a, b int64) int64 { return a + b }),
				UseNullDefault: true,
				UseConstFold:   true,
				UseDictDefault: true,
				CompileFn:      compileArith(func(a, b int64) int64 { return a + b }),
			},
			{
				Args:           []types.T{types.T_float64, types.T_float64},
				RetFn:          fixedRetFn(types.T_float64),
				Fn:             arithFn(types.T_float64, func(a, b float64) float64 { return a + b }),
				UseNullDefault: true,
				UseConstFold:   true,
				UseDictDefault: true,
				CompileFn:      compileArith(func(a, b float64) float64 { return a + b }),
			},
		},
	},
	{
		Id:   MINUS,
		Name: "-",
		Overloads: []Overload{
			{
				Args:           []types.T{types.T_int64, types.T_int64},
				RetFn:          fixedRetFn(types.T_int64),
				Fn:             arithFn(types.T_int64, func(a, b int64) int64 { return a - b }),
				UseNullDefault: true,
				UseConstFold:   true,
				UseDictDefault: true,
				CompileFn:      compileArith(func(a, b int64) int64 { return a - b }),
			},
			{
				Args:           []types.T{types.T_float64, types.T_float64},
				RetFn:          fixedRetFn(types.T_float64),
				Fn:             arithFn(types.T_float64, func(a, b float64) float64 { return a - b }),
				UseNullDefault: true,
				UseConstFold:   true,
				UseDictDefault: true,
				CompileFn:      compileArith(func(a, b float64) float64 { return a - b }),
			},
		},
	},
}

func fixedRetFn(oid types.T) func([]types.Type) types.Type {
	return func([]types.Type) types.Type {
		return types.New(oid)
	}
}

// arithFn lifts a binary scalar op to a vector body. The arguments may be
// flat or constant; element reads broadcast constants by themselves.
func arithFn[T constraints.Integer | constraints.Float](oid types.T, op func(T, T) T) func([]*vector.Vector, *process.Process, int) (*vector.Vector, error) {
	return func(vs []*vector.Vector, proc *process.Process, length int) (*vector.Vector, error) {
		res := vector.NewVec(types.New(oid))
		for i := 0; i < length; i++ {
			v := op(vector.GetFixedAt[T](vs[0], i), vector.GetFixedAt[T](vs[1], i))
			if err := vector.AppendFixed(res, v, false, proc.Ctx); err != nil {
				return nil, err
			}
		}
		return res, nil
	}
}

func compileArith[T constraints.Integer | constraints.Float](op func(T, T) T) func([]RowFn) RowFn {
	return func(args []RowFn) RowFn {
		return func(row int) (any, bool) {
			a, _ := args[0](row)
			b, _ := args[1](row)
			return op(a.(T), b.(T)), false
		}
	}
}
