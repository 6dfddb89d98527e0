// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package ecslogger - logger_core.go
// Contains the Logger factory and the emit path: filter check, event build,
// serialization, extra-fields merge, and the mutex-guarded single-writer
// write. Every call is synchronous; there is no buffering and no retry.

package ecslogger

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// New creates an unregistered Logger from cfg. The filter, sink, and
// extra-fields store are fixed for the lifetime of the logger.
func New(cfg Config) *Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	if rw := newRotationWriter(cfg.Rotation); rw != nil {
		w = rw
	}
	extra := cfg.ExtraFields
	if extra == nil {
		extra = defaultExtraFields
	}
	return &Logger{
		filter: NewFilter(cfg.Filter),
		extra:  extra,
		w:      w,
	}
}

// Log emits one event. Events rejected by the filter return immediately
// with no further work, no lock acquisition, and no I/O. A serialization or
// write failure is returned to the caller; it is never swallowed, since a
// silently dropped log line would defeat the point of logging.
func (l *Logger) Log(r Record) error {
	if !l.filter.Accepts(r.Level, r.Target) {
		return nil
	}
	ev := newEvent(time.Now(), r.Level, r.Message, r.Target, r.File, r.Line, r.ModulePath)
	return l.emit(ev, nil)
}

// Filter returns the logger's filter for use by call-site collaborators
// that want to skip rendering work for events that cannot be emitted.
func (l *Logger) Filter() *Filter {
	return l.filter
}

// Flush flushes the sink when it supports flushing, and is a no-op
// otherwise. The logger itself performs unbuffered writes; Flush exists for
// interface symmetry with buffered sinks the host may supply.
func (l *Logger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return flushWriter(l.w)
}

// Trace logs an already-formatted message at TRACE level, deriving the
// call-site origin from the runtime. Emit failures are reported to stderr.
func (l *Logger) Trace(target, format string, args ...any) {
	l.logf(TRACE, target, format, args...)
}

// Debug logs a message at DEBUG level. See Trace.
func (l *Logger) Debug(target, format string, args ...any) {
	l.logf(DEBUG, target, format, args...)
}

// Info logs a message at INFO level. See Trace.
func (l *Logger) Info(target, format string, args ...any) {
	l.logf(INFO, target, format, args...)
}

// Warn logs a message at WARN level. See Trace.
func (l *Logger) Warn(target, format string, args ...any) {
	l.logf(WARN, target, format, args...)
}

// Error logs a message at ERROR level. See Trace.
func (l *Logger) Error(target, format string, args ...any) {
	l.logf(ERROR, target, format, args...)
}

// logf is the shared body of the leveled helpers. The filter check runs
// before message rendering so rejected calls pay neither the Sprintf nor the
// runtime.Caller cost. An empty target defaults to the caller's package
// path, which is the call-site collaborator's job, not the core's.
func (l *Logger) logf(level Level, target, format string, args ...any) {
	if target != "" && !l.filter.Accepts(level, target) {
		return
	}
	r := Record{
		Level:   level,
		Target:  target,
		Message: fmt.Sprintf(format, args...),
	}
	if pc, file, line, ok := runtime.Caller(2); ok {
		r.File = file
		r.Line = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			r.ModulePath = funcPackage(fn.Name())
		}
	}
	if r.Target == "" {
		r.Target = r.ModulePath
	}
	if err := l.Log(r); err != nil {
		fmt.Fprintf(os.Stderr, "ecslogger: %v\n", err)
	}
}

// emit serializes ev, folds in the given per-call fields and the
// extra-fields overlay, and writes the result as one line under the sink
// lock. The JSON body and trailing newline go out as a single write so a
// line can never interleave with another writer's bytes.
func (l *Logger) emit(ev Event, fields map[string]any) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("ecslogger: cannot serialize event: %w", err)
	}

	if len(fields) > 0 || l.extra.present() {
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("ecslogger: cannot rebuild event document: %w", err)
		}
		if len(fields) > 0 {
			mergeObjects(doc, fields)
		}
		doc = l.extra.mergeInto(doc)
		raw, err = json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("ecslogger: cannot serialize merged event: %w", err)
		}
	}

	line := append(raw, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.w.Write(line); err != nil {
		return fmt.Errorf("ecslogger: sink write failed: %w", err)
	}
	return nil
}

// funcPackage extracts the package path from a runtime function name such
// as "github.com/acme/app/server.(*Handler).Serve".
func funcPackage(name string) string {
	slash := strings.LastIndex(name, "/")
	dot := strings.Index(name[slash+1:], ".")
	if dot < 0 {
		return name
	}
	return name[:slash+1+dot]
}
