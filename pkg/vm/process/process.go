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

// Package process keeps the per-query execution context that is threaded
// through every operator and function call.
package process

import (
	"context"

	"go.uber.org/zap"

	"github.com/helicondb/helicon/pkg/logutil"
)

// Process contains the execution context of one query. A Process is owned
// by a single worker; concurrent workers each carry their own.
type Process struct {
	Ctx context.Context

	logger *zap.Logger
}

func New(ctx context.Context) *Process {
	return &Process{
		Ctx:    ctx,
		logger: logutil.GetLogger(),
	}
}

func (proc *Process) Logger() *zap.Logger {
	return proc.logger
}
