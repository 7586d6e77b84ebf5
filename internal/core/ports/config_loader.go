// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/telly/internal/core/domain"

// ConfigLoader defines the interface for loading the project build configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration file at or above cwd and returns the build configuration.
	Load(cwd string) (*domain.BuildConfig, error)

	// DiscoverRoot walks up from cwd and returns the directory containing telly.yaml.
	DiscoverRoot(cwd string) (string, error)
}
