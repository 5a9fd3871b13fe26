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
	"github.com/helicondb/helicon/pkg/common/moerr"
	"github.com/helicondb/helicon/pkg/container/batch"
	"github.com/helicondb/helicon/pkg/container/vector"
	"github.com/helicondb/helicon/pkg/vm/process"
)

// Execute evaluates the overload over the argument columns at positions
// args of bat and stores the result at position result. The caller must
// have placed an empty vector of the resolved return type at the result
// position; its declared type drives the dictionary and nullable
// adaptation and the final vector is guaranteed to carry it.
//
// Adapters peel one encoding at a time: dictionary first, then constant
// folding, then NULL propagation, and only then the raw function body.
func (ov *Overload) Execute(proc *process.Process, bat *batch.Batch, args []int32, result int32, rowCount int) error {
	ctx := proc.Ctx
	if err := ov.checkNumberOfArguments(ctx, len(args)); err != nil {
		return err
	}
	if bat.GetVector(result) == nil {
		return moerr.NewInternalError(ctx, "result position %d of function %s holds no typed vector", result, ov.name)
	}
	for _, pos := range args {
		if bat.GetVector(pos) == nil {
			return moerr.NewInternalError(ctx, "argument position %d of function %s holds no vector", pos, ov.name)
		}
	}

	hasDict := false
	for _, pos := range args {
		if bat.GetVector(pos).IsDict() {
			hasDict = true
			break
		}
	}
	if hasDict {
		return ov.executeDict(proc, bat, args, result, rowCount)
	}
	return ov.executeWithoutDict(proc, bat, args, result, rowCount)
}

// executeWithoutDict runs the constant-folding and NULL-propagation
// adapters, then the raw body. Arguments at this level are flat or
// constant, never dictionary-encoded.
//
// The all-NULL short circuit comes before folding: an all-NULL argument
// of a concrete type is only detectable while it is still a constant,
// and neither the fold nor the body may ever see it.
func (ov *Overload) executeWithoutDict(proc *process.Process, bat *batch.Batch, args []int32, result int32, rowCount int) error {
	if ov.UseNullDefault {
		if p := analyzeNulls(bat, args); p.nullConstant {
			declared := *bat.GetVector(result).GetType()
			bat.SetVector(result, vector.NewConstNull(declared, rowCount))
			return nil
		}
	}

	handled, err := ov.defaultConstFold(proc, bat, args, result, rowCount)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}

	if ov.UseNullDefault {
		handled, err = ov.defaultNullHandle(proc, bat, args, result, rowCount)
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
	}

	return ov.executeRaw(proc, bat, args, result, rowCount)
}

// executeRaw invokes the function body and checks that its output type
// matches the declared type of the result slot. A mismatch here means the
// body and the return-type resolver disagree, an engine defect.
func (ov *Overload) executeRaw(proc *process.Process, bat *batch.Batch, args []int32, result int32, rowCount int) error {
	ctx := proc.Ctx
	vs := make([]*vector.Vector, len(args))
	for i, pos := range args {
		vs[i] = bat.GetVector(pos)
	}
	res, err := ov.Fn(vs, proc, rowCount)
	if err != nil {
		return err
	}
	declared := bat.GetVector(result).GetType()
	if !res.GetType().Eq(*declared) {
		return moerr.NewInternalError(ctx,
			"function %s produced %s, resolver declared %s",
			ov.name, res.GetType(), declared)
	}
	bat.SetVector(result, res)
	return nil
}
