// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package ecslogger - timestamp.go
// Defines the Timestamp type used for the "@timestamp" field. ECS tooling
// expects RFC 3339 with a fixed-width nanosecond fraction, so the layout
// always emits nine fractional digits, trailing zeros included.

package ecslogger

import (
	"time"

	json "github.com/goccy/go-json"
)

// timestampLayout is RFC 3339 with a fixed nine-digit fraction in UTC.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Timestamp marshals a time.Time as RFC 3339 with nanosecond precision in UTC.
type Timestamp time.Time

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(timestampLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed.UTC())
	return nil
}
