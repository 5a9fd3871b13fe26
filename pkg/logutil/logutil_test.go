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

package logutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	require.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	require.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	require.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	require.Equal(t, zapcore.InfoLevel, parseLevel(""))
	require.Equal(t, zapcore.InfoLevel, parseLevel("chatty"))
}

func TestSetupIsIdempotent(t *testing.T) {
	Setup(LogConfig{Level: "warn"})
	first := GetLogger()
	require.NotNil(t, first)

	Setup(LogConfig{Level: "debug"})
	require.Same(t, first, GetLogger())
}

func TestLoggingDoesNotPanic(t *testing.T) {
	Setup(LogConfig{Level: "error"})
	Debug("debug", zap.Int("n", 1))
	Info("info")
	Warn("warn")
	Error("error")
	Debugf("debug %d", 1)
	Infof("info %s", "x")
	Warnf("warn")
	Errorf("error %v", nil)
}
