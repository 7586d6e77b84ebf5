package ports

import (
	"context"

	"go.trai.ch/telly/internal/core/domain"
)

// ProcessRunner runs external processes.
//
//go:generate mockgen -source=process.go -destination=mocks/mock_process.go -package=mocks
type ProcessRunner interface {
	// Run executes the invocation in the given mode and waits for it to exit.
	//
	// A non-zero exit status is reported in the result, not as an error.
	// The error is reserved for processes that could not be started.
	Run(ctx context.Context, inv domain.Invocation, mode domain.Mode) (domain.ProcessResult, error)
}
