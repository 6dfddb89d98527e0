// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package ecslogger - otel_integration.go
// Extracts OpenTelemetry trace correlation from a context.Context. When the
// context carries a valid span, the emitted document gains the ECS tracing
// fields "trace.id" and "span.id", which lets log aggregators join log lines
// with distributed traces.

package ecslogger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// traceFields returns the ECS tracing fields for the span in ctx, or nil
// when the context carries no valid trace ID.
func traceFields(ctx context.Context) map[string]any {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.HasTraceID() {
		return nil
	}
	fields := map[string]any{"trace.id": sc.TraceID().String()}
	if sc.HasSpanID() {
		fields["span.id"] = sc.SpanID().String()
	}
	return fields
}
