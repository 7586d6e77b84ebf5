// Package domain contains the core domain models: the task graph, the build
// configuration shared by task bodies, and process invocation descriptors.
package domain

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph is the immutable set of registered tasks and their prerequisite edges.
// It is produced by GraphBuilder.Build.
type Graph struct {
	tasks map[InternedString]Task
}

// Task returns the task registered under name.
func (g *Graph) Task(name string) (Task, error) {
	task, ok := g.tasks[NewInternedString(name)]
	if !ok {
		return Task{}, unknownTaskError(name, "")
	}
	return task, nil
}

// Has reports whether a task with the given name is registered.
func (g *Graph) Has(name string) bool {
	_, ok := g.tasks[NewInternedString(name)]
	return ok
}

// Tasks returns a listing of every registered task sorted by name.
func (g *Graph) Tasks() []TaskInfo {
	infos := make([]TaskInfo, 0, len(g.tasks))
	for _, task := range g.tasks {
		prereqs := make([]string, len(task.Prerequisites))
		for i, p := range task.Prerequisites {
			prereqs[i] = p.String()
		}
		infos = append(infos, TaskInfo{
			Name:          task.Name.String(),
			Description:   task.Description,
			Prerequisites: prereqs,
		})
	}
	slices.SortFunc(infos, func(a, b TaskInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return infos
}

// Resolve returns the prerequisite closure of name in execution order:
// every prerequisite appears after its own prerequisites and before the
// tasks that need it, and name itself comes last. No task is listed twice.
func (g *Graph) Resolve(name string) ([]string, error) {
	root := NewInternedString(name)
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString
	var order []string

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		task, exists := g.tasks[u]
		if !exists {
			var requiredBy string
			if len(path) > 0 {
				requiredBy = path[len(path)-1].String()
			}
			return unknownTaskError(u.String(), requiredBy)
		}

		visited[u] = 1
		path = append(path, u)

		for _, dep := range task.Prerequisites {
			switch visited[dep] {
			case 1:
				return CycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		order = append(order, u.String())
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return order, nil
}

// CycleError builds the cyclic dependency error for a traversal stack that
// reached dep again. The cycle path is attached as metadata.
func CycleError(stack []InternedString, dep InternedString) error {
	startIdx := 0
	for i, node := range stack {
		if node == dep {
			startIdx = i
			break
		}
	}

	parts := make([]string, 0, len(stack)-startIdx+1)
	for _, node := range stack[startIdx:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	cyclePath := strings.Join(parts, " -> ")

	return zerr.With(zerr.Wrap(ErrCyclicDependency, "cycle "+cyclePath), "cycle", cyclePath)
}

func unknownTaskError(name, requiredBy string) error {
	msg := fmt.Sprintf("don't know how to build task '%s'", name)
	if requiredBy != "" {
		msg += fmt.Sprintf(" (required by '%s')", requiredBy)
	}
	return zerr.With(zerr.Wrap(ErrUnknownTask, msg), "task", name)
}
