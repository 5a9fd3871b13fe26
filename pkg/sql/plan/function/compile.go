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

	"github.com/helicondb/helicon/pkg/common/moerr"
	"github.com/helicondb/helicon/pkg/container/types"
)

// RowFn is the compiled, row-at-a-time form of an expression: it returns
// the value at one row and whether that value is NULL. A RowFn is owned
// by a single worker and must not be shared across goroutines.
type RowFn func(row int) (value any, isNull bool)

// IsCompilable reports whether the overload can take the compiled path
// for the given argument types. Nullable decorations are stripped before
// asking the overload: the NULL branch is supplied by the wrapper in
// Compile, so the overload only ever judges the bare value types.
func (ov *Overload) IsCompilable(argTypes []types.Type) bool {
	if ov.CompileFn == nil {
		return false
	}
	if ov.CanCompile == nil {
		return true
	}
	stripped := make([]types.Type, len(argTypes))
	for i, t := range argTypes {
		stripped[i] = t.StripNullable()
	}
	return ov.CanCompile(stripped)
}

// Compile builds the row function for the overload over already-compiled
// argument row functions.
//
// When the overload leaves NULL handling to the framework and some
// argument type is nullable, the compiled body is wrapped so that every
// argument is evaluated before the NULL branch is taken. Short-circuiting
// on the first NULL would skip argument evaluations the vector path
// always performs, and the two paths must stay observationally identical.
func (ov *Overload) Compile(ctx context.Context, argTypes []types.Type, args []RowFn) (RowFn, error) {
	if err := ov.checkNumberOfArguments(ctx, len(args)); err != nil {
		return nil, err
	}
	if !ov.IsCompilable(argTypes) {
		return nil, moerr.NewNotSupported(ctx, "compilation of function %s", ov.name)
	}

	needWrap := false
	if ov.UseNullDefault {
		for _, t := range argTypes {
			if t.Nullable || t.IsNull() {
				needWrap = true
				break
			}
		}
	}
	if !needWrap {
		return ov.CompileFn(args), nil
	}

	// The inner body reads argument values out of a cache the wrapper
	// fills on every row, so by the time the body runs all arguments
	// have been evaluated and none is NULL.
	vals := make([]any, len(args))
	inner := make([]RowFn, len(args))
	for i := range inner {
		i := i
		inner[i] = func(int) (any, bool) {
			return vals[i], false
		}
	}
	body := ov.CompileFn(inner)

	return func(row int) (any, bool) {
		anyNull := false
		for i, arg := range args {
			v, isNull := arg(row)
			vals[i] = v
			anyNull = anyNull || isNull
		}
		if anyNull {
			return nil, true
		}
		return body(row)
	}, nil
}
