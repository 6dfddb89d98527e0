// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package ecslogger - event.go
// Builds the ECS log event document from call-site data. The document
// follows the ECS Logging spec: https://github.com/elastic/ecs-logging/tree/master/spec

package ecslogger

import (
	"strings"
	"time"
)

// ecsVersion identifies the ECS schema revision emitted in "ecs.version".
const ecsVersion = "1.12.1"

// Event is one ECS-shaped log document. Optional fields carry omitempty so
// that absent call-site metadata is left out of the output entirely rather
// than serialized as null or a zero value.
type Event struct {
	Timestamp  Timestamp `json:"@timestamp"`
	Level      string    `json:"log.level"`
	Message    string    `json:"message"`
	ECSVersion string    `json:"ecs.version"`
	Origin     Origin    `json:"log.origin"`
}

// Origin locates the call-site that produced an event.
type Origin struct {
	File OriginFile `json:"file"`
	Go   OriginGo   `json:"go"`
}

// OriginFile identifies the source file of the call-site.
type OriginFile struct {
	// Line is the source line number, omitted when unknown.
	Line int `json:"line,omitempty"`
	// Name is the base name of the source file, directory stripped.
	Name string `json:"name,omitempty"`
}

// OriginGo carries the Go-runtime view of the call-site.
type OriginGo struct {
	// Target is the logical category the event is attributed to.
	Target string `json:"target"`
	// ModulePath is the fully qualified package path of the call-site.
	ModulePath string `json:"module_path,omitempty"`
	// FilePath is the source file path exactly as supplied by the caller.
	FilePath string `json:"file_path,omitempty"`
}

// newEvent builds an Event from call-site data. It is a pure function of its
// inputs; the timestamp is a parameter so formatting is testable against a
// fixed instant. Optional inputs left at their zero values propagate as
// absent fields.
func newEvent(now time.Time, level Level, message, target, file string, line int, modulePath string) Event {
	if line < 0 {
		line = 0
	}
	return Event{
		Timestamp:  Timestamp(now),
		Level:      level.String(),
		Message:    message,
		ECSVersion: ecsVersion,
		Origin: Origin{
			File: OriginFile{
				Line: line,
				Name: baseName(file),
			},
			Go: OriginGo{
				Target:     target,
				ModulePath: modulePath,
				FilePath:   file,
			},
		},
	}
}

// baseName returns the final path segment of a source file path. Source
// metadata may originate from either path convention, so both '/' and '\'
// count as separators.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
