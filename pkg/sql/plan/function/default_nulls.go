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

	"github.com/helicondb/helicon/pkg/container/batch"
	"github.com/helicondb/helicon/pkg/container/nulls"
	"github.com/helicondb/helicon/pkg/container/types"
	"github.com/helicondb/helicon/pkg/container/vector"
	"github.com/helicondb/helicon/pkg/vm/process"
)

// nullPresence classifies the argument columns for the NULL-propagation
// adapter. nullConstant means some argument is provably NULL on every
// row; nullable means some argument's declared type carries the nullable
// decoration, whether or not nulls are present at runtime.
type nullPresence struct {
	nullConstant bool
	nullable     bool
}

func analyzeNulls(bat *batch.Batch, args []int32) nullPresence {
	var p nullPresence
	for _, pos := range args {
		v := bat.GetVector(pos)
		if v.OnlyNull() {
			p.nullConstant = true
		} else if v.GetType().Nullable {
			p.nullable = true
		}
	}
	return p
}

// defaultNullHandle implements NULL propagation for bodies that never
// want to see a NULL. All-NULL arguments were already short-circuited by
// the orchestrator; here nullable arguments are stripped, the body runs
// on the bare values, and the result is re-wrapped with the OR of the
// argument bitmaps.
func (ov *Overload) defaultNullHandle(proc *process.Process, bat *batch.Batch, args []int32, result int32, rowCount int) (bool, error) {
	ctx := proc.Ctx
	p := analyzeNulls(bat, args)
	declared := *bat.GetVector(result).GetType()

	if !p.nullable {
		return false, nil
	}

	// Same positions, stripped columns. The values underneath NULL rows
	// are unspecified but well-typed, so the body may compute on them;
	// the bitmap re-applied below hides whatever it produced there.
	tmp := batch.NewWithSize(bat.VectorCount())
	tmp.SetRowCount(bat.RowCount())
	copy(tmp.Vecs, bat.Vecs)
	for _, pos := range args {
		v := bat.GetVector(pos)
		if v.GetType().Nullable {
			tmp.SetVector(pos, v.StripNullable())
		}
	}
	tmp.SetVector(result, vector.NewVec(declared.StripNullable()))

	if err := ov.executeWithoutDict(proc, tmp, args, result, rowCount); err != nil {
		return false, err
	}

	argVecs := make([]*vector.Vector, len(args))
	for i, pos := range args {
		argVecs[i] = bat.GetVector(pos)
	}
	wrapped, err := wrapInNullable(ctx, tmp.GetVector(result), argVecs, declared, rowCount)
	if err != nil {
		return false, err
	}
	bat.SetVector(result, wrapped)
	return true, nil
}

// wrapInNullable pairs a bare result with the union of the argument null
// bitmaps. Bitmaps are merged copy-on-write: the first contributing
// bitmap is adopted by reference and only cloned once a second
// contributor has to be OR-ed in, so the single-nullable-argument case
// shares the argument's bitmap outright.
func wrapInNullable(ctx context.Context, src *vector.Vector, args []*vector.Vector, resTyp types.Type, rowCount int) (*vector.Vector, error) {
	if src.OnlyNull() {
		return src, nil
	}

	var accum *nulls.Nulls
	owned := false
	if src.GetType().Nullable {
		accum = src.GetNulls()
		src = src.StripNullable()
	}

	for _, arg := range args {
		if arg.OnlyNull() {
			return vector.NewConstNull(resTyp, rowCount), nil
		}
		if !arg.GetType().Nullable {
			continue
		}
		if arg.IsConst() {
			// a non-NULL constant contributes no null rows
			continue
		}
		m := arg.GetNulls()
		if accum == nil {
			accum = m
			continue
		}
		if !owned {
			accum = accum.Clone()
			owned = true
		}
		nulls.Set(accum, m)
	}

	if accum == nil {
		accum = nulls.NewWithSize(rowCount)
	}
	if src.IsConst() {
		// a constant cannot pair with a per-row bitmap
		full, err := src.ToFlat(rowCount, ctx)
		if err != nil {
			return nil, err
		}
		src = full
	}
	return src.WrapNullable(accum), nil
}
