// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package ecslogger emits log events as single-line JSON documents
// compatible with Elastic Common Schema (ECS) Logging:
// https://www.elastic.co/guide/en/ecs-logging/overview/current/intro.html
//
// Each accepted event becomes one UTF-8 JSON object terminated by a
// newline, carrying "@timestamp", "log.level", "message", "ecs.version",
// and a "log.origin" object describing the call-site. Lines are written
// under a single lock, so concurrent producers never interleave bytes
// within a line.
//
// Main features:
//   - Level/target filtering with an env_logger-style directive grammar
//     ("info,myapp/server=debug"), sourced from the ECS_LOG environment
//     variable at Init time or passed through Config.Filter.
//   - Process-wide extra fields: SetExtraFields installs a JSON-object
//     document that is deep-merged into every emitted event, with the
//     stored values taking precedence.
//   - A log/slog bridge: registration installs the logger as the slog
//     default, mapping slog levels, flattening attributes into document
//     fields, and resolving the call-site from the record's PC.
//   - OpenTelemetry correlation: events logged with a context carrying a
//     valid span gain "trace.id" and "span.id" fields.
//   - Pluggable sinks: any io.Writer, with stderr as the default and an
//     optional lumberjack-backed rotating file.
//
// Quick start:
//
//	package main
//
//	import (
//		"log/slog"
//
//		"github.com/phuonguno98/ecslogger"
//	)
//
//	func main() {
//		// Reads the filter from ECS_LOG, writes to stderr, and becomes
//		// both the process-wide handler and the slog default.
//		ecslogger.Init()
//
//		// Fields present in every following event.
//		_ = ecslogger.SetExtraFields(map[string]any{
//			"service": map[string]any{"name": "checkout", "version": "1.4.2"},
//		})
//
//		slog.Error("payment failed", "order_id", 1001)
//	}
//
// For private instances, build a Logger directly:
//
//	l := ecslogger.New(ecslogger.Config{Filter: "debug", Writer: os.Stdout})
//	l.Info("worker", "started %d workers", 4)
package ecslogger
