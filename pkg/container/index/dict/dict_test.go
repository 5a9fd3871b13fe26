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

package dict

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/helicondb/helicon/pkg/container/nulls"
	"github.com/helicondb/helicon/pkg/container/types"
	"github.com/helicondb/helicon/pkg/container/vector"
)

func TestInsertBatchFixed(t *testing.T) {
	ctx := context.Background()
	data := vector.NewVec(types.New(types.T_int64))
	require.NoError(t, vector.AppendFixedList(data, []int64{7, 7, 3, 7, 3}, nil, ctx))

	d := New(types.New(types.T_int64))
	ips, err := d.InsertBatch(data, ctx)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 0, 1, 0, 1}, ips)
	require.Equal(t, 2, d.Cardinality())
	require.Equal(t, int64(7), vector.GetFixedAt[int64](d.GetUnique(), 0))
	require.Equal(t, int64(3), vector.GetFixedAt[int64](d.GetUnique(), 1))
}

func TestInsertBatchVar(t *testing.T) {
	ctx := context.Background()
	data := vector.NewVec(types.New(types.T_varchar))
	for _, s := range []string{"b", "a", "b", "c", "a"} {
		require.NoError(t, vector.AppendBytes(data, []byte(s), false, ctx))
	}

	d := New(types.New(types.T_varchar))
	ips, err := d.InsertBatch(data, ctx)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1, 0, 2, 1}, ips)
	require.Equal(t, 3, d.Cardinality())
	require.Equal(t, "c", d.GetUnique().GetStringAt(2))
}

func TestInsertBatchWithNulls(t *testing.T) {
	ctx := context.Background()
	data := vector.NewVec(types.New(types.T_int64).WrapNullable())
	require.NoError(t, vector.AppendFixedList(data, []int64{1, 0, 2, 0}, nulls.Build(4, 1, 3), ctx))

	d := New(types.New(types.T_int64).WrapNullable())
	ips, err := d.InsertBatch(data, ctx)
	require.NoError(t, err)
	// the NULL entry is inserted once and reused
	require.Equal(t, ips[1], ips[3])
	require.Equal(t, 3, d.Cardinality())
	require.True(t, nulls.Contains(d.GetUnique().GetNulls(), uint64(ips[1])))
	require.False(t, nulls.Contains(d.GetUnique().GetNulls(), uint64(ips[0])))
}

func TestInsertBatchFloats(t *testing.T) {
	ctx := context.Background()
	data := vector.NewVec(types.New(types.T_float64))
	require.NoError(t, vector.AppendFixedList(data, []float64{1.5, 2.5, 1.5}, nil, ctx))

	d := New(types.New(types.T_float64))
	ips, err := d.InsertBatch(data, ctx)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1, 0}, ips)
}

func TestFindBatch(t *testing.T) {
	ctx := context.Background()
	data := vector.NewVec(types.New(types.T_varchar))
	for _, s := range []string{"x", "y"} {
		require.NoError(t, vector.AppendBytes(data, []byte(s), false, ctx))
	}
	d := New(types.New(types.T_varchar))
	_, err := d.InsertBatch(data, ctx)
	require.NoError(t, err)

	probe := vector.NewVec(types.New(types.T_varchar))
	for _, s := range []string{"y", "z"} {
		require.NoError(t, vector.AppendBytes(probe, []byte(s), false, ctx))
	}
	poses, founds := d.FindBatch(probe)
	require.True(t, founds[0])
	require.Equal(t, uint32(1), poses[0])
	require.False(t, founds[1])
}
