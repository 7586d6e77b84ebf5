package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for task progress output.
// It is fed from telemetry spans so the scheduler never writes to the terminal itself.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer.
	Start(ctx context.Context) error

	// Stop flushes any buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called once the prerequisite closure of the targets is known.
	// tasks are listed in execution order.
	OnPlanEmit(tasks []string, targets []string)

	// OnTaskStart is called when a task body begins.
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskComplete is called when a task body finishes. err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
