package domain

import (
	"context"
	"sync"
)

// Options are the operator overrides for a single run.
type Options struct {
	// TargetVersion overrides the simulated OS version.
	TargetVersion string
	// Debug attaches a debugger and leaves interrupts to the child process.
	Debug bool
	// SkipBuild launches the simulator without building first.
	SkipBuild bool
	// AppArgs are passed through to the launched application.
	AppArgs []string
	// DeviceID overrides the configured device identifier.
	DeviceID string
	// InstallOnly installs on the device without launching.
	InstallOnly bool
	// Trace turns on verbose output of the deploy tool.
	Trace bool
	// Verbose echoes every external invocation before running it.
	Verbose bool
	// Tmux is set when running inside a tmux session.
	Tmux bool
}

// RunState is the state tasks share within a run.
type RunState struct {
	// DeployedAppPath is the install path captured by an install-only deploy.
	DeployedAppPath string
}

// ConfigProvider loads the build configuration.
type ConfigProvider func() (*BuildConfig, error)

// Invoker runs a task and its prerequisites within the current run.
type Invoker func(ctx context.Context, name string) error

// Run is the context handed to every task body.
type Run struct {
	Options Options
	State   RunState

	provider  ConfigProvider
	once      sync.Once
	config    *BuildConfig
	configErr error
	invoker   Invoker
}

// NewRun creates a run whose configuration is loaded through provider on first use.
func NewRun(opts Options, provider ConfigProvider) *Run {
	return &Run{
		Options:  opts,
		provider: provider,
	}
}

// Config returns the build configuration, loading it on the first call.
// Later calls return the same instance, including any mutations.
func (r *Run) Config() (*BuildConfig, error) {
	r.once.Do(func() {
		if r.provider == nil {
			r.config = &BuildConfig{}
			return
		}
		r.config, r.configErr = r.provider()
	})
	return r.config, r.configErr
}

// Bind attaches the invoker used by Invoke.
func (r *Run) Bind(invoker Invoker) {
	r.invoker = invoker
}

// Invoke runs the named task within this run. Tasks already invoked in the
// run are skipped.
func (r *Run) Invoke(ctx context.Context, name string) error {
	if r.invoker == nil {
		return ErrNoInvoker
	}
	return r.invoker(ctx, name)
}
