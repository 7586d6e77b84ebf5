// Package scheduler runs tasks of the graph with invoke-once semantics.
package scheduler

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/telly/internal/core/ports"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is planned but has not run yet.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task body is executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the task body failed.
	StatusFailed TaskStatus = "Failed"
)

// Scheduler executes tasks sequentially in prerequisite order.
type Scheduler struct {
	tracer ports.Tracer

	mu         sync.RWMutex
	taskStatus map[domain.InternedString]TaskStatus
}

// NewScheduler creates a new Scheduler reporting spans to tracer.
func NewScheduler(tracer ports.Tracer) *Scheduler {
	return &Scheduler{
		tracer:     tracer,
		taskStatus: make(map[domain.InternedString]TaskStatus),
	}
}

// Status returns the status of the named task in the last run.
func (s *Scheduler) Status(name string) (TaskStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.taskStatus[domain.NewInternedString(name)]
	return status, ok
}

func (s *Scheduler) updateStatus(name domain.InternedString, status TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[name] = status
}

// Run invokes target and its prerequisites within run. An empty target
// means the default task. The closure is resolved up front so unknown
// names and cycles fail before any body runs.
func (s *Scheduler) Run(ctx context.Context, graph *domain.Graph, run *domain.Run, target string) error {
	if target == "" {
		target = domain.DefaultTaskName
	}

	plan, err := graph.Resolve(target)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for _, name := range plan {
		s.taskStatus[domain.NewInternedString(name)] = StatusPending
	}
	s.mu.Unlock()

	s.tracer.EmitPlan(ctx, plan, []string{target})

	inv := &invocation{
		scheduler: s,
		graph:     graph,
		run:       run,
		invoked:   make(map[domain.InternedString]bool),
	}
	run.Bind(inv.invoke)

	return inv.invoke(ctx, target)
}

// invocation is the state of one top-level run: the tasks already invoked
// and the current call chain.
type invocation struct {
	scheduler *Scheduler
	graph     *domain.Graph
	run       *domain.Run
	invoked   map[domain.InternedString]bool
	stack     []domain.InternedString
}

func (i *invocation) invoke(ctx context.Context, name string) error {
	task, err := i.graph.Task(name)
	if err != nil {
		return err
	}

	if slices.Contains(i.stack, task.Name) {
		return domain.CycleError(i.stack, task.Name)
	}
	if i.invoked[task.Name] {
		return nil
	}
	i.invoked[task.Name] = true

	i.stack = append(i.stack, task.Name)
	defer func() { i.stack = i.stack[:len(i.stack)-1] }()

	for _, prereq := range task.Prerequisites {
		if err := i.invoke(ctx, prereq.String()); err != nil {
			return err
		}
	}

	return i.execute(ctx, &task)
}

func (i *invocation) execute(ctx context.Context, task *domain.Task) error {
	if len(task.Actions) == 0 {
		i.scheduler.updateStatus(task.Name, StatusCompleted)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, span := i.scheduler.tracer.Start(ctx, task.Name.String())
	defer span.End()

	i.scheduler.updateStatus(task.Name, StatusRunning)
	for _, action := range task.Actions {
		if err := action(ctx, i.run); err != nil {
			span.RecordError(err)
			i.scheduler.updateStatus(task.Name, StatusFailed)
			return err
		}
	}

	i.scheduler.updateStatus(task.Name, StatusCompleted)
	return nil
}
