package domain

import "context"

const (
	// DefaultTaskName is the task invoked when no target is given.
	DefaultTaskName = "default"

	// NamespaceSeparator joins a namespace prefix and a task name.
	NamespaceSeparator = ":"
)

// Action is one part of a task body. Bodies receive the run they belong to
// and may read or mutate its configuration or invoke further tasks.
type Action func(ctx context.Context, run *Run) error

// Task represents a named unit of orchestration work.
// It uses InternedString for names since they repeat across prerequisite lists.
type Task struct {
	Name          InternedString
	Description   string
	Prerequisites []InternedString
	Actions       []Action
}

// TaskSpec describes a single task definition handed to a GraphBuilder.
type TaskSpec struct {
	Name          string
	Description   string
	Prerequisites []string
	Action        Action
}

// TaskInfo is the listing view of a task.
type TaskInfo struct {
	Name          string
	Description   string
	Prerequisites []string
}

// Hidden reports whether the task is left out of listings.
func (i TaskInfo) Hidden() bool {
	return i.Description == ""
}
