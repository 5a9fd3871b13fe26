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

package bitmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddContains(t *testing.T) {
	bm := New(0)
	require.True(t, bm.IsEmpty())
	bm.Add(3)
	bm.AddMany([]uint64{5, 7})
	require.True(t, bm.Contains(3))
	require.True(t, bm.Contains(5))
	require.False(t, bm.Contains(4))
	require.Equal(t, 3, bm.Count())

	bm.Remove(5)
	require.False(t, bm.Contains(5))
	require.Equal(t, []uint64{3, 7}, bm.ToArray())
}

func TestAddRange(t *testing.T) {
	bm := New(0)
	bm.AddRange(2, 5)
	require.Equal(t, []uint64{2, 3, 4}, bm.ToArray())
	bm.AddRange(5, 5)
	require.Equal(t, 3, bm.Count())
}

func TestCloneIsIndependent(t *testing.T) {
	bm := New(0)
	bm.Add(1)
	cp := bm.Clone()
	cp.Add(2)
	require.False(t, bm.Contains(2))
	require.True(t, cp.Contains(1))

	var nilBm *Bitmap
	require.Nil(t, nilBm.Clone())
}

func TestOrIsSame(t *testing.T) {
	a, b := New(0), New(0)
	a.Add(1)
	b.Add(2)
	a.Or(b)
	require.Equal(t, []uint64{1, 2}, a.ToArray())
	require.True(t, b.Contains(2))
	require.False(t, b.Contains(1))

	c := New(0)
	c.AddMany([]uint64{1, 2})
	require.True(t, a.IsSame(c))
	c.Add(9)
	require.False(t, a.IsSame(c))
}

func TestMarshalRoundTrip(t *testing.T) {
	bm := New(0)
	bm.AddMany([]uint64{0, 100, 4096})
	data, err := bm.Marshal()
	require.NoError(t, err)

	var out Bitmap
	require.NoError(t, out.Unmarshal(data))
	require.True(t, bm.IsSame(&out))
}
