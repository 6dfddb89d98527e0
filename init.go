// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package ecslogger - init.go
// Process-wide registration. Exactly one Logger may become the process-wide
// handler per process lifetime; a second attempt fails distinguishably and
// leaves the active logger untouched. Registration also installs the logger
// as the slog default so host call-sites flow through it.

package ecslogger

import (
	"errors"
	"log/slog"
	"os"
	"sync"
)

// FilterEnv is the environment variable Init and TryInit read the filter
// directive string from.
const FilterEnv = "ECS_LOG"

// ErrAlreadyRegistered is returned when a process-wide logger has already
// been registered.
var ErrAlreadyRegistered = errors.New("ecslogger: a process-wide logger is already registered")

var (
	registryMu   sync.Mutex
	activeLogger *Logger
)

// Init builds a logger from the ECS_LOG environment variable, writing to
// standard error, and registers it as the process-wide handler. It panics
// when a logger is already registered; use TryInit to handle that case.
func Init() {
	if err := TryInit(); err != nil {
		panic("ecslogger: Init must not be called after a logger is registered")
	}
}

// TryInit is like Init but reports a double registration as
// ErrAlreadyRegistered instead of panicking.
func TryInit() error {
	return New(Config{Filter: os.Getenv(FilterEnv)}).TryInit()
}

// TryInit registers l as the process-wide handler. The transition is
// one-way: once a logger is active it stays active until process exit.
// A second registration, of this logger or any other, returns
// ErrAlreadyRegistered and leaves the active logger unaffected.
func (l *Logger) TryInit() error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if activeLogger != nil {
		return ErrAlreadyRegistered
	}
	activeLogger = l
	slog.SetDefault(slog.New(NewHandler(l)))
	return nil
}

// ActiveLogger returns the registered process-wide logger, or nil when none
// has been registered yet.
func ActiveLogger() *Logger {
	registryMu.Lock()
	defer registryMu.Unlock()
	return activeLogger
}

// Flush flushes the process-wide logger's sink, if a logger is registered
// and its sink supports flushing.
func Flush() error {
	l := ActiveLogger()
	if l == nil {
		return nil
	}
	return l.Flush()
}
