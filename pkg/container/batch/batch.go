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

// Package batch holds the row batch, the unit of work for one execution
// call: an ordered, named sequence of columns of equal logical row count.
// Constant vectors report their own row count and broadcast to any.
package batch

import (
	"bytes"
	"fmt"

	"github.com/helicondb/helicon/pkg/container/vector"
)

type Batch struct {
	// Cnt is the reference count of the batch.
	Cnt int

	Attrs []string
	Vecs  []*vector.Vector

	rowCount int
}

func New(attrs []string) *Batch {
	return &Batch{
		Cnt:   1,
		Attrs: attrs,
		Vecs:  make([]*vector.Vector, len(attrs)),
	}
}

func NewWithSize(n int) *Batch {
	return &Batch{
		Cnt:  1,
		Vecs: make([]*vector.Vector, n),
	}
}

func (bat *Batch) RowCount() int {
	return bat.rowCount
}

func (bat *Batch) SetRowCount(n int) {
	bat.rowCount = n
}

func (bat *Batch) VectorCount() int {
	return len(bat.Vecs)
}

func (bat *Batch) GetVector(pos int32) *vector.Vector {
	return bat.Vecs[pos]
}

func (bat *Batch) SetVector(pos int32, vec *vector.Vector) {
	bat.Vecs[pos] = vec
}

// Append adds one named column binding to the batch. Attribute names are
// not required to be unique; positions are what addresses a column.
func (bat *Batch) Append(attr string, vec *vector.Vector) *Batch {
	bat.Attrs = append(bat.Attrs, attr)
	bat.Vecs = append(bat.Vecs, vec)
	return bat
}

func (bat *Batch) String() string {
	var buf bytes.Buffer
	for i, vec := range bat.Vecs {
		name := ""
		if i < len(bat.Attrs) {
			name = bat.Attrs[i]
		}
		if vec == nil {
			fmt.Fprintf(&buf, "%d(%s): nil\n", i, name)
			continue
		}
		fmt.Fprintf(&buf, "%d(%s): %s[%d]\n", i, name, vec.GetType(), vec.Length())
	}
	return buf.String()
}
