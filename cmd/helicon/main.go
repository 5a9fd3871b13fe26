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

// helicon evaluates a small projection over a sample batch. It exists to
// smoke-test the expression engine wiring from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/helicondb/helicon/pkg/config"
	"github.com/helicondb/helicon/pkg/container/batch"
	"github.com/helicondb/helicon/pkg/container/nulls"
	"github.com/helicondb/helicon/pkg/container/types"
	"github.com/helicondb/helicon/pkg/container/vector"
	"github.com/helicondb/helicon/pkg/logutil"
	"github.com/helicondb/helicon/pkg/sql/colexec/projection"
	"github.com/helicondb/helicon/pkg/vm/process"
)

var cfgFile = flag.String("cfg", "", "path to the TOML configuration file")

func main() {
	flag.Parse()
	ctx := context.Background()

	cfg, err := config.Load(ctx, *cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logutil.Setup(cfg.Log)

	if err := demo(ctx, cfg); err != nil {
		logutil.Errorf("demo projection failed: %v", err)
		os.Exit(1)
	}
}

func demo(ctx context.Context, cfg *config.Configuration) error {
	i64 := types.New(types.T_int64)
	ni64 := i64.WrapNullable()

	a := vector.NewVec(i64)
	if err := vector.AppendFixedList(a, []int64{1, 2, 3, 4}, nil, ctx); err != nil {
		return err
	}
	b := vector.NewVec(ni64)
	if err := vector.AppendFixedList(b, []int64{10, 20, 30, 40}, nulls.Build(4, 2), ctx); err != nil {
		return err
	}

	bat := batch.New([]string{"a", "b"})
	bat.SetVector(0, a)
	bat.SetVector(1, b)
	bat.SetRowCount(4)

	cols := make([]projection.Column, 0, 2)
	for _, def := range []struct {
		name string
		fn   string
		typs []types.Type
		args []int32
	}{
		{"a_plus_b", "+", []types.Type{i64, ni64}, []int32{0, 1}},
		{"b_is_null", "isnull", []types.Type{ni64}, []int32{1}},
	} {
		col, err := projection.NewColumn(ctx, def.name, def.fn, def.typs, def.args)
		if err != nil {
			return err
		}
		cols = append(cols, col)
	}

	p, err := projection.New(cols, cfg.Evaluator.Parallelism)
	if err != nil {
		return err
	}
	defer p.Close()

	out, err := p.Eval(process.New(ctx), bat)
	if err != nil {
		return err
	}
	fmt.Print(out.String())
	return nil
}
