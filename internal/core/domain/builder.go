package domain

import (
	"strings"
	"unicode"

	"go.trai.ch/zerr"
)

// GraphBuilder collects task definitions and produces an immutable Graph.
// Builders returned by Namespace share their parent's definitions.
type GraphBuilder struct {
	scope string
	defs  *definitions
}

type definitions struct {
	tasks map[string]*pendingTask
	err   error
}

type scopedName struct {
	scope string
	name  string
}

type pendingTask struct {
	description string
	prereqs     []scopedName
	actions     []Action
}

// NewGraphBuilder returns an empty builder at the top-level scope.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		defs: &definitions{tasks: make(map[string]*pendingTask)},
	}
}

// Define registers a task. Redefining a name accumulates prerequisites,
// appends the action and replaces the description when a new one is given.
// Errors are reported by Build.
func (b *GraphBuilder) Define(spec TaskSpec) *GraphBuilder {
	if b.defs.err != nil {
		return b
	}
	if err := validateTaskName(spec.Name); err != nil {
		b.defs.err = err
		return b
	}

	name := b.qualify(spec.Name)
	task, ok := b.defs.tasks[name]
	if !ok {
		task = &pendingTask{}
		b.defs.tasks[name] = task
	}

	if spec.Description != "" {
		task.description = spec.Description
	}
	for _, p := range spec.Prerequisites {
		if err := validateTaskName(p); err != nil {
			b.defs.err = zerr.With(err, "task", name)
			return b
		}
		task.prereqs = append(task.prereqs, scopedName{scope: b.scope, name: p})
	}
	if spec.Action != nil {
		task.actions = append(task.actions, spec.Action)
	}

	return b
}

// Namespace runs fn with a builder whose task names are prefixed with
// "prefix:". Namespaces nest.
func (b *GraphBuilder) Namespace(prefix string, fn func(*GraphBuilder)) *GraphBuilder {
	if b.defs.err != nil {
		return b
	}
	if prefix == "" || strings.Contains(prefix, NamespaceSeparator) || strings.ContainsFunc(prefix, unicode.IsSpace) {
		b.defs.err = zerr.With(zerr.Wrap(ErrInvalidNamespace, "namespace prefix must be a single non-empty word"), "namespace", prefix)
		return b
	}

	fn(&GraphBuilder{scope: b.qualify(prefix), defs: b.defs})
	return b
}

// Build resolves every prerequisite name and returns the graph.
// Unresolvable prerequisites are kept as written and surface as unknown
// tasks when the graph is resolved.
func (b *GraphBuilder) Build() (*Graph, error) {
	if b.defs.err != nil {
		return nil, b.defs.err
	}

	g := &Graph{tasks: make(map[InternedString]Task, len(b.defs.tasks))}
	for name, pending := range b.defs.tasks {
		seen := make(map[string]struct{}, len(pending.prereqs))
		prereqs := make([]InternedString, 0, len(pending.prereqs))
		for _, p := range pending.prereqs {
			resolved := b.lookup(p)
			if _, dup := seen[resolved]; dup {
				continue
			}
			seen[resolved] = struct{}{}
			prereqs = append(prereqs, NewInternedString(resolved))
		}

		actions := make([]Action, len(pending.actions))
		copy(actions, pending.actions)

		interned := NewInternedString(name)
		g.tasks[interned] = Task{
			Name:          interned,
			Description:   pending.description,
			Prerequisites: prereqs,
			Actions:       actions,
		}
	}

	return g, nil
}

// lookup resolves a prerequisite written inside scope, trying the innermost
// scope first and walking out to the top level.
func (b *GraphBuilder) lookup(p scopedName) string {
	scope := p.scope
	for scope != "" {
		candidate := scope + NamespaceSeparator + p.name
		if _, ok := b.defs.tasks[candidate]; ok {
			return candidate
		}
		idx := strings.LastIndex(scope, NamespaceSeparator)
		if idx < 0 {
			break
		}
		scope = scope[:idx]
	}
	return p.name
}

func (b *GraphBuilder) qualify(name string) string {
	if b.scope == "" {
		return name
	}
	return b.scope + NamespaceSeparator + name
}

func validateTaskName(name string) error {
	if name == "" {
		return zerr.Wrap(ErrInvalidTaskName, "task name must not be empty")
	}
	if strings.ContainsFunc(name, unicode.IsSpace) {
		return zerr.With(zerr.Wrap(ErrInvalidTaskName, "task name must not contain whitespace"), "task", name)
	}
	if strings.HasPrefix(name, NamespaceSeparator) || strings.HasSuffix(name, NamespaceSeparator) {
		return zerr.With(zerr.Wrap(ErrInvalidTaskName, "task name must not start or end with ':'"), "task", name)
	}
	return nil
}
