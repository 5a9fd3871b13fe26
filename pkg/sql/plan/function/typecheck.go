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

// ResolveReturnType predicts, at plan time, the exact declared type the
// execution path will produce for the given argument types. It applies
// the same decoration peeling as Execute, in the same order, so the two
// can never disagree: dictionary first, then nullable.
func (ov *Overload) ResolveReturnType(ctx context.Context, argTypes []types.Type) (types.Type, error) {
	hasDict := false
	for _, t := range argTypes {
		if t.Dict {
			hasDict = true
			break
		}
	}
	if !hasDict {
		return ov.resolveWithoutDict(ctx, argTypes)
	}

	stripped := make([]types.Type, len(argTypes))
	indexOids := make([]types.T, 0, len(argTypes))
	for i, t := range argTypes {
		if t.Dict {
			indexOids = append(indexOids, t.IndexOid)
			stripped[i] = t.StripDict()
		} else {
			stripped[i] = t
		}
	}
	inner, err := ov.resolveWithoutDict(ctx, stripped)
	if err != nil {
		return types.Type{}, err
	}
	if !ov.UseDictDefault {
		// the executor expands dictionary arguments for this overload,
		// so the result stays plain
		return inner, nil
	}
	idxOid, ok := types.LeastSupertype(indexOids...)
	if !ok {
		return types.Type{}, moerr.NewInternalError(ctx,
			"function %s got dictionary argument with non-integer index type", ov.name)
	}
	return inner.WrapDict(idxOid), nil
}

// resolveWithoutDict mirrors the NULL-propagation adapter: an all-NULL
// argument forces a nullable null-only result, a nullable argument makes
// the intrinsic result nullable, and otherwise the overload's own RetFn
// answers directly.
func (ov *Overload) resolveWithoutDict(ctx context.Context, argTypes []types.Type) (types.Type, error) {
	if err := ov.checkNumberOfArguments(ctx, len(argTypes)); err != nil {
		return types.Type{}, err
	}
	if !ov.UseNullDefault {
		return ov.RetFn(argTypes), nil
	}

	hasNullConstant := false
	hasNullable := false
	for _, t := range argTypes {
		if t.IsNull() {
			hasNullConstant = true
		} else if t.Nullable {
			hasNullable = true
		}
	}
	if hasNullConstant {
		return types.New(types.T_any).WrapNullable(), nil
	}
	if hasNullable {
		stripped := make([]types.Type, len(argTypes))
		for i, t := range argTypes {
			stripped[i] = t.StripNullable()
		}
		return ov.RetFn(stripped).WrapNullable(), nil
	}
	return ov.RetFn(argTypes), nil
}
