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

// Package nulls wraps up the manipulation of the null bitmap attached to a
// column. A set bit means the value at that row is NULL; the underlying
// value at that row is unspecified and must be ignored.
package nulls

import (
	"github.com/helicondb/helicon/pkg/common/bitmap"
)

type Nulls struct {
	Np *bitmap.Bitmap
}

func NewWithSize(size int) *Nulls {
	return &Nulls{Np: bitmap.New(size)}
}

func Build(size int, rows ...uint64) *Nulls {
	nsp := NewWithSize(size)
	Add(nsp, rows...)
	return nsp
}

func (nsp *Nulls) Clone() *Nulls {
	if nsp == nil {
		return nil
	}
	return &Nulls{Np: nsp.Np.Clone()}
}

// Any returns true if any bit in the Nulls is set.
func Any(nsp *Nulls) bool {
	return nsp != nil && nsp.Np != nil && !nsp.Np.IsEmpty()
}

// Contains returns true if the row is NULL.
func Contains(nsp *Nulls, row uint64) bool {
	return nsp != nil && nsp.Np != nil && nsp.Np.Contains(row)
}

func Add(nsp *Nulls, rows ...uint64) {
	if len(rows) == 0 {
		return
	}
	if nsp.Np == nil {
		nsp.Np = bitmap.New(0)
	}
	nsp.Np.AddMany(rows)
}

func AddRange(nsp *Nulls, start, end uint64) {
	if nsp.Np == nil {
		nsp.Np = bitmap.New(0)
	}
	nsp.Np.AddRange(start, end)
}

func Del(nsp *Nulls, rows ...uint64) {
	if nsp == nil || nsp.Np == nil {
		return
	}
	for _, row := range rows {
		nsp.Np.Remove(row)
	}
}

// Set performs union operation on Nulls nsp,m and stores the result in nsp.
func Set(nsp, m *Nulls) {
	if m != nil && m.Np != nil {
		if nsp.Np == nil {
			nsp.Np = bitmap.New(0)
		}
		nsp.Np.Or(m.Np)
	}
}

// Or performs union operation on Nulls nsp,m and stores the result in r.
func Or(nsp, m, r *Nulls) {
	if !Any(nsp) && !Any(m) {
		r.Np = nil
		return
	}
	r.Np = bitmap.New(0)
	if Any(nsp) {
		r.Np.Or(nsp.Np)
	}
	if Any(m) {
		r.Np.Or(m.Np)
	}
}

func Length(nsp *Nulls) int {
	if nsp == nil || nsp.Np == nil {
		return 0
	}
	return nsp.Np.Count()
}

func Reset(nsp *Nulls) {
	if nsp.Np != nil {
		nsp.Np.Clear()
	}
}

func (nsp *Nulls) Any() bool {
	return Any(nsp)
}

func (nsp *Nulls) Set(row uint64) {
	if nsp.Np == nil {
		nsp.Np = bitmap.New(0)
	}
	nsp.Np.Add(row)
}

func (nsp *Nulls) Contains(row uint64) bool {
	return Contains(nsp, row)
}

func (nsp *Nulls) Count() int {
	return Length(nsp)
}

func (nsp *Nulls) IsSame(m *Nulls) bool {
	switch {
	case nsp == nil && m == nil:
		return true
	case nsp == nil || m == nil:
		return !Any(nsp) && !Any(m)
	case nsp.Np == nil || m.Np == nil:
		return !Any(nsp) && !Any(m)
	default:
		return nsp.Np.IsSame(m.Np)
	}
}

func (nsp *Nulls) ToArray() []uint64 {
	if nsp == nil || nsp.Np == nil {
		return []uint64{}
	}
	return nsp.Np.ToArray()
}
