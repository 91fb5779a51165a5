// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/targets/internal/adapters/config"
	_ "go.trai.ch/targets/internal/adapters/logger"
	_ "go.trai.ch/targets/internal/adapters/manifest"
	_ "go.trai.ch/targets/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/targets/internal/app"
	_ "go.trai.ch/targets/internal/engine/scheduler"
)
