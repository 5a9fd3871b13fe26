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
	"github.com/helicondb/helicon/pkg/container/index/dict"
	"github.com/helicondb/helicon/pkg/container/vector"
	"github.com/helicondb/helicon/pkg/logutil"
	"github.com/helicondb/helicon/pkg/vm/process"
)

// executeDict adapts the call when at least one argument is
// dictionary-encoded.
//
// With exactly one dictionary argument and every other argument constant,
// the body runs once per unique value and the result is re-encoded under
// the original index array. Any other mix is materialized to full columns
// first and the full result re-encoded afterwards. Either way the caller
// observes a dictionary result of the declared type.
func (ov *Overload) executeDict(proc *process.Process, bat *batch.Batch, args []int32, result int32, rowCount int) error {
	ctx := proc.Ctx
	declared := *bat.GetVector(result).GetType()

	if !ov.UseDictDefault {
		// The body does not understand dictionaries; expand them and run
		// the plain path. The resolver declared a plain result type for
		// this overload, so no re-encoding happens.
		tmp := batch.NewWithSize(bat.VectorCount())
		tmp.SetRowCount(bat.RowCount())
		copy(tmp.Vecs, bat.Vecs)
		for _, pos := range args {
			v := bat.GetVector(pos)
			if v.IsDict() {
				full, err := v.DecodeDict(ctx)
				if err != nil {
					return err
				}
				tmp.SetVector(pos, full)
			}
		}
		if err := ov.executeWithoutDict(proc, tmp, args, result, rowCount); err != nil {
			return err
		}
		bat.SetVector(result, tmp.GetVector(result))
		return nil
	}

	if !declared.Dict {
		return moerr.NewInternalError(ctx,
			"function %s got dictionary arguments but resolver declared plain result type %s",
			ov.name, declared)
	}

	numDict := 0
	var dictPos int32 = -1
	allOthersConst := true
	for _, pos := range args {
		v := bat.GetVector(pos)
		if v.IsDict() {
			numDict++
			dictPos = pos
		} else if !v.IsConst() {
			allOthersConst = false
		}
	}

	if numDict == 1 && allOthersConst {
		return ov.executeOnUniques(proc, bat, args, result, dictPos, rowCount)
	}
	logutil.Debugf("function %s decodes %d dictionary arguments to run over all %d rows",
		ov.name, numDict, rowCount)
	return ov.executeOnDecoded(proc, bat, args, result, rowCount)
}

// executeOnUniques runs the body over the unique values of the single
// dictionary argument, then re-attaches the original index array through
// a fresh dictionary built from the per-unique results. Cost is
// proportional to the cardinality, not the row count.
func (ov *Overload) executeOnUniques(proc *process.Process, bat *batch.Batch, args []int32, result, dictPos int32, rowCount int) error {
	ctx := proc.Ctx
	declared := *bat.GetVector(result).GetType()

	unique, indexes, err := bat.GetVector(dictPos).Dictionary(ctx)
	if err != nil {
		return err
	}
	uniqueRows := unique.Length()

	tmp := batch.NewWithSize(len(args) + 1)
	tmp.SetRowCount(uniqueRows)
	tmp.SetVector(0, vector.NewVec(declared.StripDict()))
	tmpArgs := make([]int32, len(args))
	for i, pos := range args {
		v := bat.GetVector(pos)
		if pos == dictPos {
			tmp.SetVector(int32(i+1), unique)
		} else {
			tmp.SetVector(int32(i+1), v.ResizeConst(uniqueRows))
		}
		tmpArgs[i] = int32(i + 1)
	}

	if err := ov.executeWithoutDict(proc, tmp, tmpArgs, 0, uniqueRows); err != nil {
		return err
	}

	res, err := tmp.GetVector(0).ToFlat(uniqueRows, ctx)
	if err != nil {
		return err
	}
	d := dict.New(*res.GetType())
	remap, err := d.InsertBatch(res, ctx)
	if err != nil {
		return err
	}
	finalIdx := make([]uint32, len(indexes))
	for i, ix := range indexes {
		finalIdx[i] = remap[ix]
	}
	bat.SetVector(result, vector.NewDict(declared, d.GetUnique(), finalIdx))
	return nil
}

// executeOnDecoded materializes every dictionary argument to a full
// column, runs the body over all rows, and dictionary-encodes the full
// result. Correct for any argument mix, at full-column cost.
func (ov *Overload) executeOnDecoded(proc *process.Process, bat *batch.Batch, args []int32, result int32, rowCount int) error {
	ctx := proc.Ctx
	declared := *bat.GetVector(result).GetType()

	tmp := batch.NewWithSize(len(args) + 1)
	tmp.SetRowCount(rowCount)
	tmp.SetVector(0, vector.NewVec(declared.StripDict()))
	tmpArgs := make([]int32, len(args))
	for i, pos := range args {
		v := bat.GetVector(pos)
		if v.IsDict() {
			full, err := v.DecodeDict(ctx)
			if err != nil {
				return err
			}
			tmp.SetVector(int32(i+1), full)
		} else {
			tmp.SetVector(int32(i+1), v)
		}
		tmpArgs[i] = int32(i + 1)
	}

	if err := ov.executeWithoutDict(proc, tmp, tmpArgs, 0, rowCount); err != nil {
		return err
	}

	res, err := tmp.GetVector(0).ToFlat(rowCount, ctx)
	if err != nil {
		return err
	}
	d := dict.New(*res.GetType())
	finalIdx, err := d.InsertBatch(res, ctx)
	if err != nil {
		return err
	}
	bat.SetVector(result, vector.NewDict(declared, d.GetUnique(), finalIdx))
	return nil
}
