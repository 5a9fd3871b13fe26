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

// Package bitmap is a thin wrapper around roaring bitmaps. Rows are
// addressed as uint64 to match the rest of the engine, though roaring
// itself is 32-bit keyed; row counts above 1<<32 do not occur in one batch.
package bitmap

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

type Bitmap struct {
	rb *roaring.Bitmap
}

func New(_ int) *Bitmap {
	return &Bitmap{rb: roaring.New()}
}

func (n *Bitmap) Clone() *Bitmap {
	if n == nil {
		return nil
	}
	return &Bitmap{rb: n.rb.Clone()}
}

func (n *Bitmap) IsEmpty() bool {
	return n == nil || n.rb.IsEmpty()
}

func (n *Bitmap) Add(row uint64) {
	n.rb.Add(uint32(row))
}

func (n *Bitmap) AddMany(rows []uint64) {
	for _, row := range rows {
		n.rb.Add(uint32(row))
	}
}

func (n *Bitmap) AddRange(start, end uint64) {
	if start >= end {
		return
	}
	n.rb.AddRange(start, end)
}

func (n *Bitmap) Remove(row uint64) {
	n.rb.Remove(uint32(row))
}

func (n *Bitmap) Contains(row uint64) bool {
	return n.rb.Contains(uint32(row))
}

func (n *Bitmap) Or(m *Bitmap) {
	if m == nil {
		return
	}
	n.rb.Or(m.rb)
}

func (n *Bitmap) And(m *Bitmap) {
	n.rb.And(m.rb)
}

func (n *Bitmap) Clear() {
	n.rb.Clear()
}

func (n *Bitmap) Count() int {
	return int(n.rb.GetCardinality())
}

func (n *Bitmap) IsSame(m *Bitmap) bool {
	if n == nil || m == nil {
		return n == m
	}
	return n.rb.Equals(m.rb)
}

func (n *Bitmap) ToArray() []uint64 {
	rows := n.rb.ToArray()
	r := make([]uint64, len(rows))
	for i, row := range rows {
		r[i] = uint64(row)
	}
	return r
}

func (n *Bitmap) String() string {
	return fmt.Sprintf("%v", n.ToArray())
}

func (n *Bitmap) Marshal() ([]byte, error) {
	return n.rb.ToBytes()
}

func (n *Bitmap) Unmarshal(data []byte) error {
	n.rb = roaring.New()
	return n.rb.UnmarshalBinary(data)
}
