// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package ecslogger - adapter.go
// Bridges log/slog call-sites onto a Logger. The Handler maps slog levels
// onto this package's levels, resolves the call-site origin from the
// record's program counter, and flattens record attributes into top-level
// document fields that are folded in before the extra-fields overlay.

package ecslogger

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// TargetKey is the attribute key a call-site may use to set the event
// target explicitly. Without it the target defaults to the calling
// function's package path.
const TargetKey = "logger"

// LevelTrace is the slog level that maps onto TRACE. slog has no trace
// constant of its own; anything below slog.LevelDebug maps to TRACE.
const LevelTrace = slog.LevelDebug - 4

// Handler implements slog.Handler over a Logger.
//
// Attribute keys are kept verbatim as top-level document keys, so dotted ECS
// names such as "event.action" come out flat, alongside the standard fields.
// slog groups become nested objects under the group key.
type Handler struct {
	logger *Logger
	target string
	fields map[string]any
	groups []string
}

// NewHandler returns a Handler that emits through l.
func NewHandler(l *Logger) *Handler {
	return &Handler{logger: l}
}

// WithTarget returns a copy of the handler whose events are attributed to
// the given target instead of the derived package path.
func (h *Handler) WithTarget(target string) *Handler {
	c := h.clone()
	c.target = target
	return c
}

// Enabled implements slog.Handler. It answers against the most verbose
// level the filter accepts for any target; the per-target decision happens
// in Handle once the target is known.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return levelFromSlog(level) >= h.logger.filter.MinLevel()
}

// Handle implements slog.Handler.
func (h *Handler) Handle(ctx context.Context, rec slog.Record) error {
	r := Record{
		Level:   levelFromSlog(rec.Level),
		Message: rec.Message,
		Target:  h.target,
	}
	if rec.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{rec.PC}).Next()
		r.File = frame.File
		r.Line = frame.Line
		r.ModulePath = funcPackage(frame.Function)
	}

	fields := deepCopyObject(h.fields)
	dst := fields
	for _, g := range h.groups {
		dst = nestedObject(dst, g)
	}
	rec.Attrs(func(a slog.Attr) bool {
		setAttr(dst, a)
		return true
	})

	if t, ok := fields[TargetKey].(string); ok && t != "" {
		r.Target = t
		delete(fields, TargetKey)
	}
	if r.Target == "" {
		r.Target = r.ModulePath
	}
	if !h.logger.filter.Accepts(r.Level, r.Target) {
		return nil
	}

	for k, v := range traceFields(ctx) {
		fields[k] = v
	}

	now := rec.Time
	if now.IsZero() {
		now = time.Now()
	}
	ev := newEvent(now, r.Level, r.Message, r.Target, r.File, r.Line, r.ModulePath)
	return h.logger.emit(ev, fields)
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	c := h.clone()
	dst := c.fields
	for _, g := range c.groups {
		dst = nestedObject(dst, g)
	}
	for _, a := range attrs {
		setAttr(dst, a)
	}
	return c
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.groups = append(c.groups, name)
	return c
}

// clone copies the handler with its accumulated fields, so derived handlers
// never mutate their parent.
func (h *Handler) clone() *Handler {
	return &Handler{
		logger: h.logger,
		target: h.target,
		fields: deepCopyObject(h.fields),
		groups: append([]string(nil), h.groups...),
	}
}

// deepCopyObject copies a field map, returning an empty map for nil input.
func deepCopyObject(m map[string]any) map[string]any {
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = deepCopyValue(v)
	}
	return c
}

// nestedObject returns the object stored at key, creating it when absent or
// when the existing value is not an object.
func nestedObject(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	n := make(map[string]any)
	m[key] = n
	return n
}

// setAttr resolves a and stores it in dst. Group attributes become nested
// objects; empty groups and empty-keyed scalar attributes are dropped, per
// the slog.Handler contract.
func setAttr(dst map[string]any, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		grp := a.Value.Group()
		if len(grp) == 0 {
			return
		}
		if a.Key != "" {
			dst = nestedObject(dst, a.Key)
		}
		for _, ga := range grp {
			setAttr(dst, ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	dst[a.Key] = attrValue(a.Value)
}

// attrValue converts a resolved slog.Value to a JSON-friendly Go value.
func attrValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time()
	default:
		return v.Any()
	}
}

// levelFromSlog maps a slog level onto this package's levels. Levels below
// slog.LevelDebug map to TRACE; levels at or above slog.LevelError map to
// ERROR.
func levelFromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelDebug:
		return TRACE
	case l < slog.LevelInfo:
		return DEBUG
	case l < slog.LevelWarn:
		return INFO
	case l < slog.LevelError:
		return WARN
	default:
		return ERROR
	}
}
