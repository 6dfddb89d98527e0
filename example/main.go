// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/phuonguno98/ecslogger"
)

// main demonstrates the ecslogger library: process-wide registration,
// extra fields, the slog bridge, and a private logger with its own sink.
func main() {
	// 1. Register the process-wide logger. The filter comes from ECS_LOG;
	// set a verbose one here so every demo line is emitted.
	_ = os.Setenv(ecslogger.FilterEnv, "trace")
	ecslogger.Init()

	// A second registration fails distinguishably.
	if err := ecslogger.TryInit(); err != nil {
		fmt.Fprintln(os.Stderr, "second init rejected:", err)
	}

	// 2. Extra fields are deep-merged into every event from now on.
	err := ecslogger.SetExtraFields(map[string]any{
		"service": map[string]any{"name": "example", "version": "0.1.0"},
		"labels":  map[string]any{"env": "dev"},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "set extra fields:", err)
	}

	// 3. Host call-sites use plain slog; the bridge resolves the origin
	// and flattens attributes into the document.
	slog.Info("checkout started", "order_id", 1001)
	slog.Warn("inventory low", slog.Group("item", "sku", "A-17", "count", 2))
	slog.Error("payment failed", ecslogger.TargetKey, "example/payments")

	// 4. Direct leveled calls on the active logger.
	ecslogger.ActiveLogger().Debug("example/worker", "spawned %d workers", 4)

	// 5. A private logger with its own sink and filter, unaffected by the
	// process-wide registration.
	var buf bytes.Buffer
	private := ecslogger.New(ecslogger.Config{
		Filter:      "example=info",
		Writer:      &buf,
		ExtraFields: ecslogger.NewExtraFields(),
	})
	private.Info("example", "captured in memory")
	fmt.Print("private sink captured: ", buf.String())

	// 6. Rotation: the same API, but the sink is a size-bounded file.
	rotated := ecslogger.New(ecslogger.Config{
		Filter: "info",
		Rotation: ecslogger.RotationConfig{
			Enable:     true,
			Filename:   "example.log",
			MaxSizeMB:  5,
			MaxBackups: 2,
			Compress:   true,
		},
	})
	rotated.Info("example", "written to a rotating file")

	_ = ecslogger.Flush()
}
