// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package ecslogger emits log events as single-line JSON documents in the
// Elastic Common Schema (ECS) shape. This file defines the core data types:
// the severity Level, the Config struct used to build a Logger, and the
// Logger itself.

package ecslogger

import (
	"io"
	"strings"
	"sync"
)

// Level represents the severity of a log event.
// Levels are ordered from least to most severe: TRACE < DEBUG < INFO < WARN < ERROR.
type Level int32

// Log level constants.
const (
	// TRACE level is for very fine-grained diagnostic information.
	TRACE Level = iota
	// DEBUG level is for detailed information, typically of interest only when diagnosing problems.
	DEBUG
	// INFO level is for informational messages that highlight the progress of the application.
	INFO
	// WARN level is for potentially harmful situations or events that are not errors.
	WARN
	// ERROR level is for error events that might still allow the application to continue running.
	ERROR
)

// String returns the uppercase string representation of the log level.
// This is the exact form emitted in the "log.level" field.
func (lvl Level) String() string {
	switch lvl {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// parseLevel converts a level name to a Level, case-insensitively.
// The second return value reports whether the name was recognized.
func parseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TRACE, true
	case "debug":
		return DEBUG, true
	case "info":
		return INFO, true
	case "warn":
		return WARN, true
	case "error":
		return ERROR, true
	default:
		return ERROR, false
	}
}

// RotationConfig configures log file rotation using the lumberjack library.
// When enabled, the rotating file becomes the logger's sink.
type RotationConfig struct {
	// Enable turns log rotation on or off.
	Enable bool
	// Filename is the path to the log file. Required if rotation is enabled.
	Filename string
	// MaxSizeMB is the maximum size in megabytes a log file can reach before it is rotated.
	MaxSizeMB int
	// MaxAge is the maximum number of days to retain old log files.
	MaxAge int
	// MaxBackups is the maximum number of old log files to keep.
	MaxBackups int
	// Compress determines if rotated log files should be compressed using gzip.
	Compress bool
}

// Config is the configuration struct for creating a new Logger instance.
// All fields are optional; the zero value yields a logger that writes to
// standard error and accepts only ERROR events.
type Config struct {
	// Filter is the filter directive string, e.g. "info" or
	// "warn,myapp/server=debug". An empty or unparseable string degrades to
	// the default "error". See NewFilter for the directive grammar.
	Filter string
	// Writer is the sink the logger writes to. Defaults to os.Stderr.
	// The sink is fixed for the lifetime of the logger.
	Writer io.Writer
	// Rotation configures a rotating file sink. When enabled it takes
	// precedence over Writer.
	Rotation RotationConfig
	// ExtraFields is the store whose document is deep-merged into every
	// emitted event. Defaults to the shared process-wide store manipulated
	// by SetExtraFields and ClearExtraFields.
	ExtraFields *ExtraFields
}

// Record carries the data of a single log call-site. Target is required;
// the remaining origin fields are optional and omitted from the output
// when left at their zero values.
type Record struct {
	// Level is the severity of the event.
	Level Level
	// Target is the logical category the event is attributed to, used for
	// per-target filtering. Call-site collaborators that have no explicit
	// target conventionally pass the module path here.
	Target string
	// Message is the fully rendered message string.
	Message string
	// File is the source file path as supplied by the caller.
	File string
	// Line is the source line number; zero means unknown.
	Line int
	// ModulePath is the fully qualified package path of the call-site.
	ModulePath string
}

// Logger filters, formats, and writes log events. All methods are safe for
// concurrent use: the filter is immutable after construction and the sink is
// guarded by a mutex so that individual lines are never interleaved.
//
// A Logger starts unregistered. TryInit installs it as the process-wide
// handler exactly once; there is no way back.
type Logger struct {
	filter *Filter
	extra  *ExtraFields

	mu sync.Mutex // guards w; held for the whole of one line write
	w  io.Writer
}
