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

package config

import (
	"context"

	"github.com/BurntSushi/toml"

	"github.com/helicondb/helicon/pkg/common/moerr"
	"github.com/helicondb/helicon/pkg/logutil"
)

// EvaluatorParameters tunes the expression evaluator.
type EvaluatorParameters struct {
	// Parallelism is the number of workers evaluating independent batches.
	// 0 means one worker per CPU.
	Parallelism int `toml:"parallelism"`

	// BatchRows is the preferred row count per batch handed to operators.
	BatchRows int `toml:"batchRows"`
}

// Configuration is the root of the engine config file.
type Configuration struct {
	Log logutil.LogConfig `toml:"log"`

	Evaluator EvaluatorParameters `toml:"evaluator"`
}

func Default() *Configuration {
	return &Configuration{
		Log: logutil.LogConfig{
			Level: "info",
		},
		Evaluator: EvaluatorParameters{
			Parallelism: 0,
			BatchRows:   8192,
		},
	}
}

// Load parses a TOML config file over the defaults.
func Load(ctx context.Context, path string) (*Configuration, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, moerr.NewBadConfig(ctx, "parse %s: %v", path, err)
	}
	if cfg.Evaluator.BatchRows <= 0 {
		return nil, moerr.NewBadConfig(ctx, "evaluator.batchRows must be positive, got %d", cfg.Evaluator.BatchRows)
	}
	if cfg.Evaluator.Parallelism < 0 {
		return nil, moerr.NewBadConfig(ctx, "evaluator.parallelism must not be negative, got %d", cfg.Evaluator.Parallelism)
	}
	logutil.Infof("configuration loaded from %s", path)
	return cfg, nil
}
