// Package shell runs external tools for the task bodies.
package shell

import (
	"bytes"
	"context"
	"io"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.trai.ch/telly/internal/adapters/interrupt"
	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/telly/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// DefaultWaitDelay is how long a cancelled child gets after SIGINT before it is killed.
const DefaultWaitDelay = 5 * time.Second

// Executor implements ports.ProcessRunner using os/exec.
type Executor struct {
	logger    ports.Logger
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	waitDelay time.Duration
	gate      *interrupt.Gate
}

// Option configures an Executor.
type Option func(*Executor)

// WithStreams replaces the standard streams handed to child processes.
func WithStreams(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(e *Executor) {
		e.stdin = stdin
		e.stdout = stdout
		e.stderr = stderr
	}
}

// WithWaitDelay sets the grace period between SIGINT and kill on cancellation.
func WithWaitDelay(d time.Duration) Option {
	return func(e *Executor) {
		e.waitDelay = d
	}
}

// WithInterruptGate sets the gate held while a child owns interrupts.
func WithInterruptGate(g *interrupt.Gate) Option {
	return func(e *Executor) {
		e.gate = g
	}
}

// NewExecutor creates an Executor attached to the process's standard streams.
func NewExecutor(logger ports.Logger, opts ...Option) *Executor {
	e := &Executor{
		logger:    logger,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		waitDelay: DefaultWaitDelay,
		gate:      interrupt.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes inv in the given mode. A non-zero exit status is reported in
// the result, never as an error; the error return means the process could
// not be started.
func (e *Executor) Run(ctx context.Context, inv domain.Invocation, mode domain.Mode) (domain.ProcessResult, error) {
	if inv.Path == "" {
		return domain.ProcessResult{ExitCode: -1}, domain.ErrEmptyCommand
	}

	if inv.IgnoreInterrupt {
		// The child shares the terminal's process group and receives the
		// interrupt itself; the parent keeps running until it exits.
		ctx = context.WithoutCancel(ctx)
		release := e.gate.Hold()
		defer release()
	}

	cmdEnv := resolveEnvironment(os.Environ(), inv.Env)

	executable := inv.Path
	if !strings.ContainsRune(inv.Path, filepath.Separator) {
		if lp, err := lookPath(inv.Path, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, inv.Args...) //nolint:gosec // tools come from the configured bin dir
	cmd.Args[0] = inv.Path
	cmd.Env = cmdEnv
	cmd.Dir = inv.Dir
	cmd.WaitDelay = e.waitDelay
	setGracefulShutdown(cmd)

	cmd.Stdin = e.stdin
	cmd.Stderr = e.stderr

	var captured bytes.Buffer
	if mode == domain.ModeCapture {
		cmd.Stdout = &captured
	} else {
		cmd.Stdout = e.stdout
		if restore := e.saveTerminal(); restore != nil {
			defer restore()
		}
	}

	code, err := exitStatus(cmd, cmd.Run())
	if err != nil {
		return domain.ProcessResult{ExitCode: code}, zerr.With(zerr.Wrap(domain.ErrProcessStartFailed, err.Error()), "path", inv.Path)
	}

	result := domain.ProcessResult{ExitCode: code}
	if mode == domain.ModeCapture {
		result.Output = strings.TrimRightFunc(captured.String(), unicode.IsSpace)
	}

	if mode == domain.ModeFireAndForget && !result.Success() {
		e.logger.Warn(inv.Path + " exited with status " + strconv.Itoa(code) + ", continuing")
	}

	return result, nil
}

// exitStatus separates a finished process's status from a start failure.
// A process that ran to completion after cancellation keeps its own status.
func exitStatus(cmd *exec.Cmd, err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode(), nil
	}
	return -1, err
}

// saveTerminal returns a func restoring the terminal attached to stdin, or
// nil when stdin is not a terminal.
func (e *Executor) saveTerminal() func() {
	f, ok := e.stdin.(*os.File)
	if !ok {
		return nil
	}
	fd := int(f.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return nil
	}
	state, err := term.GetState(fd)
	if err != nil {
		return nil
	}
	return func() {
		_ = term.Restore(fd, state)
	}
}

// resolveEnvironment overlays env on the ambient environment. The result is
// sorted by key.
func resolveEnvironment(sysEnv []string, overlay map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overlay))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	maps.Copy(envMap, overlay)

	result := make([]string, 0, len(envMap))
	for _, k := range slices.Sorted(maps.Keys(envMap)) {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
