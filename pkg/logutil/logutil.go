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

// Package logutil wraps the zap global logger for engine-wide use.
package logutil

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig configures the engine logger. An empty Filename logs to
// stderr; otherwise output rotates through lumberjack.
type LogConfig struct {
	Level      string `toml:"level"`
	Filename   string `toml:"filename"`
	MaxSize    int    `toml:"max-size"`
	MaxDays    int    `toml:"max-days"`
	MaxBackups int    `toml:"max-backups"`
}

var (
	once   sync.Once
	logger *zap.Logger = zap.NewNop()
)

// Setup installs the global logger. It is idempotent; only the first call
// takes effect.
func Setup(cfg LogConfig) {
	once.Do(func() {
		level := parseLevel(cfg.Level)
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		var ws zapcore.WriteSyncer
		if cfg.Filename != "" {
			ws = zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.Filename,
				MaxSize:    cfg.MaxSize,
				MaxAge:     cfg.MaxDays,
				MaxBackups: cfg.MaxBackups,
			})
		} else {
			ws, _, _ = zap.Open("stderr")
		}

		core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, level)
		logger = zap.New(core)
		zap.ReplaceGlobals(logger)
	})
}

// parseLevel maps a level name to a zap level. Empty or unrecognized
// names fall back to info.
func parseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if s == "" || level.UnmarshalText([]byte(s)) != nil {
		return zapcore.InfoLevel
	}
	return level
}

func GetLogger() *zap.Logger {
	return logger
}

func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}

func Debugf(msg string, args ...any) {
	logger.Sugar().Debugf(msg, args...)
}

func Infof(msg string, args ...any) {
	logger.Sugar().Infof(msg, args...)
}

func Warnf(msg string, args ...any) {
	logger.Sugar().Warnf(msg, args...)
}

func Errorf(msg string, args ...any) {
	logger.Sugar().Errorf(msg, args...)
}
