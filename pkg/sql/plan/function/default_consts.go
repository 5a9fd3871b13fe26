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
	"fmt"

	"github.com/helicondb/helicon/pkg/common/moerr"
	"github.com/helicondb/helicon/pkg/container/batch"
	"github.com/helicondb/helicon/pkg/container/vector"
	"github.com/helicondb/helicon/pkg/vm/process"
)

// defaultConstFold evaluates the body once on a single-row batch when
// every argument is constant, then re-wraps the result as a constant of
// the original row count. Returns handled=false when folding does not
// apply; the caller continues down the chain.
//
// Must-const positions are validated before anything else, including the
// applicability checks, so a misplaced non-constant argument is reported
// even when folding would not run.
func (ov *Overload) defaultConstFold(proc *process.Process, bat *batch.Batch, args []int32, result int32, rowCount int) (bool, error) {
	ctx := proc.Ctx

	for i, pos := range args {
		if ov.mustConstAt(i) && !bat.GetVector(pos).IsConst() {
			return false, moerr.NewInvalidArg(ctx,
				fmt.Sprintf("%d of function %s, must be constant", i, ov.name),
				bat.GetVector(pos).GetType())
		}
	}

	if len(args) == 0 || !ov.UseConstFold || ov.CannotFold() {
		return false, nil
	}
	for _, pos := range args {
		if !bat.GetVector(pos).IsConst() {
			return false, nil
		}
	}

	// Single-row temporary batch. Must-const arguments stay constant;
	// every other argument is de-constantized so the recursion cannot
	// fold again.
	tmp := batch.NewWithSize(len(args) + 1)
	tmp.SetRowCount(1)
	declared := bat.GetVector(result).GetType()
	tmp.SetVector(0, vector.NewVec(*declared))
	tmpArgs := make([]int32, len(args))
	converted := false
	for i, pos := range args {
		v := bat.GetVector(pos)
		if ov.mustConstAt(i) {
			tmp.SetVector(int32(i+1), v.ResizeConst(1))
		} else {
			tmp.SetVector(int32(i+1), v.UnConst())
			converted = true
		}
		tmpArgs[i] = int32(i + 1)
	}
	if !converted {
		return false, moerr.NewArgumentCountMismatch(ctx, ov.name, len(args), len(args)+1)
	}

	if err := ov.executeWithoutDict(proc, tmp, tmpArgs, 0, 1); err != nil {
		return false, err
	}

	folded, err := vector.ConstFromRow(tmp.GetVector(0), 0, rowCount, ctx)
	if err != nil {
		return false, err
	}
	bat.SetVector(result, folded)
	return true, nil
}
