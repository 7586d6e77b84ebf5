// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/telly/internal/adapters/cas"
	_ "go.trai.ch/telly/internal/adapters/config"
	_ "go.trai.ch/telly/internal/adapters/logger"
	_ "go.trai.ch/telly/internal/adapters/shell"
	_ "go.trai.ch/telly/internal/adapters/toolchain"
	// Register app and catalog nodes.
	_ "go.trai.ch/telly/internal/app"
	_ "go.trai.ch/telly/internal/tvos"
)
