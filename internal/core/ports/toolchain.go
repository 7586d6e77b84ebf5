package ports

import (
	"context"

	"go.trai.ch/telly/internal/core/domain"
)

// Toolchain drives the external compiler, signing and archiving tools.
//
//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// Build compiles the application bundle for platform.
	Build(ctx context.Context, cfg *domain.BuildConfig, platform domain.Platform) error
	// Codesign signs the bundle built for platform.
	Codesign(ctx context.Context, cfg *domain.BuildConfig, platform domain.Platform) error
	// Archive packages the signed device bundle into the archive.
	Archive(ctx context.Context, cfg *domain.BuildConfig) error
}
