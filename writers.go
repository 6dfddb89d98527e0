// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package ecslogger - writers.go
// Sink helpers. A sink is any io.Writer; the optional flush capability is
// discovered through a one-method interface so in-memory buffers, pipes,
// and bufio-wrapped destinations all work unchanged.

package ecslogger

import (
	"io"
	"os"
)

// flusher is the optional capability a sink may implement to support Flush.
type flusher interface {
	Flush() error
}

// flushWriter flushes w when it supports flushing and is a no-op otherwise.
func flushWriter(w io.Writer) error {
	if f, ok := w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// Stderr returns the process's standard error stream, the default sink.
func Stderr() io.Writer {
	return os.Stderr
}

// Stdout returns the process's standard output stream, for hosts that route
// logs through stdout collection.
func Stdout() io.Writer {
	return os.Stdout
}
