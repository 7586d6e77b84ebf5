//go:build unix

package main

import (
	"bytes"
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/telly/internal/adapters/interrupt"
	"go.trai.ch/telly/internal/core/domain"
)

// TestRun_InterruptWhileHeld verifies that an interrupt reaching the process
// while a debug session owns the terminal does not fail the run.
func TestRun_InterruptWhileHeld(t *testing.T) {
	provider, _ := newProvider(t, func(ctx context.Context, _ *domain.Run) error {
		release := interrupt.Default().Hold()
		require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))
		time.Sleep(200 * time.Millisecond)
		release()
		return ctx.Err()
	})

	exitCode := run(context.Background(), []string{"run", "debug=1", "-o", "quiet"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
}
