// Copyright 2025 Nguyen Thanh Phuong. All rights reserved.

package ecslogger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestLogger builds a logger with an in-memory sink and a private
// extra-fields store so tests never touch process-wide state.
func newTestLogger(filter string) (*Logger, *bytes.Buffer, *ExtraFields) {
	buf := &bytes.Buffer{}
	extra := NewExtraFields()
	l := New(Config{Filter: filter, Writer: buf, ExtraFields: extra})
	return l, buf, extra
}

func TestDefaultFilterEmitsOnlyErrors(t *testing.T) {
	l, buf, _ := newTestLogger("")

	require.NoError(t, l.Log(Record{Level: DEBUG, Target: "myApp", Message: "quiet"}))
	require.Empty(t, buf.String())

	require.NoError(t, l.Log(Record{Level: ERROR, Target: "myApp", Message: "loud"}))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &doc))
	require.Equal(t, "ERROR", doc["log.level"])
	require.Equal(t, "loud", doc["message"])
}

func TestEmittedLineIsNewlineTerminated(t *testing.T) {
	l, buf, _ := newTestLogger("trace")
	require.NoError(t, l.Log(Record{Level: INFO, Target: "t", Message: "m"}))
	out := buf.String()
	require.True(t, strings.HasSuffix(out, "\n"))
	require.Equal(t, 1, strings.Count(out, "\n"))
}

func TestExtraFieldsAppearInOutput(t *testing.T) {
	l, buf, extra := newTestLogger("trace")
	require.NoError(t, extra.Set(map[string]any{
		"a": 1,
		"b": map[string]any{"c": 2},
	}))

	require.NoError(t, l.Log(Record{Level: INFO, Target: "myApp", Message: "with extras"}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, float64(1), doc["a"])
	require.Equal(t, map[string]any{"c": float64(2)}, doc["b"])
	// The standard fields are still present alongside the extras.
	require.Equal(t, "with extras", doc["message"])
	require.Equal(t, "INFO", doc["log.level"])
}

func TestNoExtraFieldsMeansNoExtraKeys(t *testing.T) {
	l, buf, _ := newTestLogger("trace")
	require.NoError(t, l.Log(Record{Level: INFO, Target: "myApp", Message: "plain"}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.ElementsMatch(t,
		[]string{"@timestamp", "log.level", "message", "ecs.version", "log.origin"},
		mapKeys(doc))
}

func TestExtraFieldsOverrideStandardFields(t *testing.T) {
	l, buf, extra := newTestLogger("trace")
	require.NoError(t, extra.Set(map[string]any{"message": "overridden"}))

	require.NoError(t, l.Log(Record{Level: INFO, Target: "t", Message: "original"}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, "overridden", doc["message"])
}

func TestConcurrentLoggingProducesWholeLines(t *testing.T) {
	const goroutines = 32
	l, buf, _ := newTestLogger("trace")

	errs := make(chan error, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- l.Log(Record{Level: INFO, Target: "conc", Message: "message"})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	out := strings.TrimRight(buf.String(), "\n")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, goroutines)
	for _, line := range lines {
		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &doc), "line %q", line)
		require.Equal(t, "message", doc["message"])
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteFailureIsReturned(t *testing.T) {
	l := New(Config{Filter: "trace", Writer: failingWriter{}, ExtraFields: NewExtraFields()})
	err := l.Log(Record{Level: ERROR, Target: "t", Message: "m"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "sink write failed")
}

func TestRejectedEventDoesNoWork(t *testing.T) {
	// A filtered-out call must not touch the sink at all, even a broken one.
	l := New(Config{Filter: "error", Writer: failingWriter{}, ExtraFields: NewExtraFields()})
	require.NoError(t, l.Log(Record{Level: DEBUG, Target: "t", Message: "m"}))
}

func TestLeveledHelpersDeriveOrigin(t *testing.T) {
	l, buf, _ := newTestLogger("trace")
	l.Info("", "count=%d", 7)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, "INFO", doc["log.level"])
	require.Equal(t, "count=7", doc["message"])

	origin := doc["log.origin"].(map[string]any)
	file := origin["file"].(map[string]any)
	require.Equal(t, "logger_test.go", file["name"])
	require.Greater(t, file["line"], float64(0))

	goOrigin := origin["go"].(map[string]any)
	// With no explicit target, the helper falls back to the package path.
	require.Equal(t, "github.com/phuonguno98/ecslogger", goOrigin["module_path"])
	require.Equal(t, "github.com/phuonguno98/ecslogger", goOrigin["target"])
}

type flushRecorder struct {
	bytes.Buffer
	flushed bool
}

func (f *flushRecorder) Flush() error {
	f.flushed = true
	return nil
}

func TestFlushDelegatesToCapableSinks(t *testing.T) {
	fr := &flushRecorder{}
	l := New(Config{Filter: "trace", Writer: fr, ExtraFields: NewExtraFields()})
	require.NoError(t, l.Flush())
	require.True(t, fr.flushed)

	// Plain buffers have nothing to flush; Flush is a no-op.
	plain, _, _ := newTestLogger("trace")
	require.NoError(t, plain.Flush())
}

func TestRotationConfigSelectsSink(t *testing.T) {
	require.Nil(t, newRotationWriter(RotationConfig{}))
	require.Nil(t, newRotationWriter(RotationConfig{Enable: true}))
	require.NotNil(t, newRotationWriter(RotationConfig{Enable: true, Filename: "app.log"}))
}
