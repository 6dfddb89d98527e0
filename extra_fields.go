// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package ecslogger - extra_fields.go
// Implements the extra-fields store: a mutable JSON-object document that is
// deep-merged into every emitted event. The store is guarded by a
// reader/writer lock so any number of in-flight emissions may read it while
// Set and Clear require exclusive access. A write that races with reads may
// be observed by some of those reads and not others; each individual call is
// atomic.

package ecslogger

import (
	"errors"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
)

// ErrNotObject is returned by SetExtraFields when the given value serializes
// to something other than a JSON object at the top level.
var ErrNotObject = errors.New("ecslogger: extra fields must serialize to a JSON object")

// defaultExtraFields is the process-wide store used by every Logger that is
// not given a private one.
var defaultExtraFields = NewExtraFields()

// SetExtraFields replaces the process-wide extra-fields document with the
// serialized form of v. See ExtraFields.Set for the error contract.
func SetExtraFields(v any) error {
	return defaultExtraFields.Set(v)
}

// ClearExtraFields resets the process-wide extra-fields store to absent.
// It never fails and is safe to call at any time, including concurrently
// with in-flight log emissions.
func ClearExtraFields() {
	defaultExtraFields.Clear()
}

// ExtraFields is a concurrency-safe holder for a JSON-object document.
// The zero value is ready to use and holds no document.
type ExtraFields struct {
	mu  sync.RWMutex
	doc map[string]any
}

// NewExtraFields returns an empty store. Most applications use the shared
// process-wide store via SetExtraFields; a private store can be injected
// through Config.ExtraFields when isolation is needed.
func NewExtraFields() *ExtraFields {
	return &ExtraFields{}
}

// Set serializes v and atomically replaces the stored document with the
// result. If v cannot be serialized, or its serialized form is not a JSON
// object at the top level, Set returns an error and the store is unchanged.
func (s *ExtraFields) Set(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("ecslogger: cannot serialize extra fields: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return ErrNotObject
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

// Clear atomically resets the store to absent. It never fails.
func (s *ExtraFields) Clear() {
	s.mu.Lock()
	s.doc = nil
	s.mu.Unlock()
}

// present reports whether a document is currently stored. It is a fast-path
// hint only; callers must still go through mergeInto for the real snapshot.
func (s *ExtraFields) present() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc != nil
}

// mergeInto deep-merges the stored document into base, with stored values
// taking precedence, and returns the result. When the store is absent, base
// is returned unchanged. Ownership of base transfers in: callers must not
// use the original map after the call.
func (s *ExtraFields) mergeInto(base map[string]any) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return base
	}
	mergeObjects(base, s.doc)
	return base
}

// mergeObjects deep-merges overlay into base. Keys only in base are left
// untouched. When both sides hold an object the objects merge recursively;
// any other pairing replaces the base value with a deep copy of the
// overlay's. No array concatenation, no scalar coercion.
func mergeObjects(base, overlay map[string]any) {
	for k, ov := range overlay {
		if bv, ok := base[k]; ok {
			bo, baseIsObj := bv.(map[string]any)
			oo, overlayIsObj := ov.(map[string]any)
			if baseIsObj && overlayIsObj {
				mergeObjects(bo, oo)
				continue
			}
		}
		base[k] = deepCopyValue(ov)
	}
}

// deepCopyValue copies JSON-generic values so merged documents never alias
// the stored overlay.
func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = deepCopyValue(e)
		}
		return m
	case []any:
		c := make([]any, len(t))
		for i, e := range t {
			c[i] = deepCopyValue(e)
		}
		return c
	default:
		return v
	}
}
