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

// Package projection evaluates a list of function calls over each
// incoming batch and appends the results as new columns. Projection
// columns are independent of each other, so they evaluate concurrently
// on a shared worker pool.
package projection

import (
	"context"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/helicondb/helicon/pkg/container/batch"
	"github.com/helicondb/helicon/pkg/container/types"
	"github.com/helicondb/helicon/pkg/container/vector"
	"github.com/helicondb/helicon/pkg/sql/plan/function"
	"github.com/helicondb/helicon/pkg/vm/process"
)

// Column is one projection output: a resolved overload applied to
// argument positions of the input batch.
type Column struct {
	Name   string
	Ov     *function.Overload
	Args   []int32
	RetTyp types.Type
}

// NewColumn resolves a function by name against the declared types of
// the argument positions.
func NewColumn(ctx context.Context, name, fname string, argTypes []types.Type, args []int32) (Column, error) {
	ov, retTyp, err := function.GetFunctionByName(ctx, fname, argTypes)
	if err != nil {
		return Column{}, err
	}
	return Column{Name: name, Ov: ov, Args: args, RetTyp: retTyp}, nil
}

type Projection struct {
	cols []Column
	pool *ants.Pool
}

// New builds a projection over a worker pool of the given size.
// parallelism <= 0 means one worker per CPU.
func New(cols []Column, parallelism int) (*Projection, error) {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	pool, err := ants.NewPool(parallelism)
	if err != nil {
		return nil, err
	}
	return &Projection{cols: cols, pool: pool}, nil
}

func (p *Projection) Close() {
	p.pool.Release()
}

// Eval appends one result column per projection column to bat. The batch
// is extended before any worker starts, so workers write to disjoint,
// pre-allocated positions.
func (p *Projection) Eval(proc *process.Process, bat *batch.Batch) (*batch.Batch, error) {
	base := bat.VectorCount()
	for _, col := range p.cols {
		bat.Append(col.Name, vector.NewVec(col.RetTyp))
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for i := range p.cols {
		i := i
		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()
			col := &p.cols[i]
			if err := col.Ov.Execute(proc, bat, col.Args, int32(base+i), bat.RowCount()); err != nil {
				setErr(err)
			}
		}); err != nil {
			wg.Done()
			setErr(err)
		}
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return bat, nil
}
