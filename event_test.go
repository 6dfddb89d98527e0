// Copyright 2025 Nguyen Thanh Phuong. All rights reserved.

package ecslogger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewEventPopulatesOrigin(t *testing.T) {
	now := time.Date(2021, 11, 24, 17, 38, 21, 98765, time.UTC)
	ev := newEvent(now, ERROR, "Error!", "myApp", "internal/server/server.go", 144, "github.com/acme/app/internal/server")

	require.Equal(t, "ERROR", ev.Level)
	require.Equal(t, "Error!", ev.Message)
	require.Equal(t, "1.12.1", ev.ECSVersion)
	require.Equal(t, 144, ev.Origin.File.Line)
	require.Equal(t, "server.go", ev.Origin.File.Name)
	require.Equal(t, "myApp", ev.Origin.Go.Target)
	require.Equal(t, "github.com/acme/app/internal/server", ev.Origin.Go.ModulePath)
	require.Equal(t, "internal/server/server.go", ev.Origin.Go.FilePath)
}

func TestBaseNameHandlesBothSeparators(t *testing.T) {
	require.Equal(t, "file.go", baseName("src/path/to/file.go"))
	require.Equal(t, "file.go", baseName(`C:\src\path\to\file.go`))
	require.Equal(t, "file.go", baseName(`src/mixed\file.go`))
	require.Equal(t, "file.go", baseName("file.go"))
	require.Equal(t, "", baseName(""))
}

func TestFileNameMatchesFilePathSegment(t *testing.T) {
	ev := newEvent(time.Now(), INFO, "m", "t", "a/b/c.go", 1, "")
	require.Equal(t, baseName(ev.Origin.Go.FilePath), ev.Origin.File.Name)
}

func TestEventSerializationOmitsAbsentFields(t *testing.T) {
	now := time.Date(2023, 3, 31, 9, 25, 6, 576136800, time.UTC)
	ev := newEvent(now, INFO, "plain", "myTarget", "", 0, "")

	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	origin, ok := doc["log.origin"].(map[string]any)
	require.True(t, ok)

	file, ok := origin["file"].(map[string]any)
	require.True(t, ok)
	require.NotContains(t, file, "line")
	require.NotContains(t, file, "name")

	goOrigin, ok := origin["go"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "myTarget", goOrigin["target"])
	require.NotContains(t, goOrigin, "module_path")
	require.NotContains(t, goOrigin, "file_path")
}

func TestEventSerializationRoundTripKeySet(t *testing.T) {
	now := time.Date(2023, 3, 31, 9, 25, 6, 576136800, time.UTC)
	ev := newEvent(now, TRACE, "tracing msg", "myCustomTarget123", "src/path/to/file.go", 1234, "github.com/acme/app/path/to")

	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.ElementsMatch(t,
		[]string{"@timestamp", "log.level", "message", "ecs.version", "log.origin"},
		mapKeys(doc))

	require.Equal(t, "2023-03-31T09:25:06.576136800Z", doc["@timestamp"])
	require.Equal(t, "TRACE", doc["log.level"])
	require.Equal(t, "tracing msg", doc["message"])

	origin := doc["log.origin"].(map[string]any)
	require.ElementsMatch(t, []string{"file", "go"}, mapKeys(origin))

	file := origin["file"].(map[string]any)
	require.ElementsMatch(t, []string{"line", "name"}, mapKeys(file))
	require.Equal(t, float64(1234), file["line"])
	require.Equal(t, "file.go", file["name"])

	goOrigin := origin["go"].(map[string]any)
	require.ElementsMatch(t, []string{"target", "module_path", "file_path"}, mapKeys(goOrigin))
	require.Equal(t, "src/path/to/file.go", goOrigin["file_path"])
}

func TestNewEventClampsNegativeLine(t *testing.T) {
	ev := newEvent(time.Now(), WARN, "m", "t", "f.go", -5, "")
	require.Equal(t, 0, ev.Origin.File.Line)
}

func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
