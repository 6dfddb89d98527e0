// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package ecslogger - rotation.go
// Builds a rotating-file sink using the lumberjack library. Rotation keeps
// the local log file bounded by size, age, and backup count; it is a sink
// concern and does not change the logger's write semantics.

package ecslogger

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// newRotationWriter returns a rotating file sink for cfg, or nil when
// rotation is disabled or no filename is configured.
func newRotationWriter(cfg RotationConfig) io.Writer {
	if !cfg.Enable || cfg.Filename == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}
}
