// Package app implements the application layer for telly.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/telly/internal/adapters/detector"
	"go.trai.ch/telly/internal/adapters/linear"
	"go.trai.ch/telly/internal/adapters/telemetry"
	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/telly/internal/core/ports"
	"go.trai.ch/telly/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	graph        *domain.Graph
	logger       ports.Logger
	store        ports.DeployStore
	stderr       io.Writer
	getwd        func() (string, error)
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	graph *domain.Graph,
	log ports.Logger,
	store ports.DeployStore,
) *App {
	return &App{
		configLoader: loader,
		graph:        graph,
		logger:       log,
		store:        store,
		stderr:       os.Stderr,
		getwd:        os.Getwd,
	}
}

// WithStderr redirects task progress output.
// This is primarily used for testing.
func (a *App) WithStderr(w io.Writer) *App {
	a.stderr = w
	return a
}

// WithWorkingDir makes the App discover telly.yaml from dir instead of the
// process working directory.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	Options    domain.Options
	OutputMode string
}

// RunResult is the state a run leaves behind for the caller.
type RunResult struct {
	// DeployedAppPath is set by install-only device deploys.
	DeployedAppPath string
}

// Run invokes target and its prerequisites. An empty target runs the default task.
func (a *App) Run(ctx context.Context, target string, opts RunOptions) (*RunResult, error) {
	run := domain.NewRun(opts.Options, a.loadConfig)

	mode := detector.ResolveMode(detector.DetectEnvironment().Mode(), opts.OutputMode)
	if mode != detector.ModeLinear {
		sched := scheduler.NewScheduler(telemetry.NewNoOpTracer())
		if err := sched.Run(ctx, a.graph, run, target); err != nil {
			return nil, errors.Join(domain.ErrBuildExecutionFailed, err)
		}
		return &RunResult{DeployedAppPath: run.State.DeployedAppPath}, nil
	}

	renderer := linear.NewRenderer(a.stderr)

	// Spans started by the tracer below reach the renderer through the bridge.
	setupOTel(telemetry.NewBridge(renderer))
	tracer := telemetry.NewOTelTracer("telly").WithRenderer(renderer)

	sched := scheduler.NewScheduler(tracer)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()

		if err := sched.Run(ctx, a.graph, run, target); err != nil {
			return errors.Join(domain.ErrBuildExecutionFailed, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &RunResult{DeployedAppPath: run.State.DeployedAppPath}, nil
}

// Tasks lists the described tasks sorted by name.
func (a *App) Tasks() []domain.TaskInfo {
	all := a.graph.Tasks()
	infos := make([]domain.TaskInfo, 0, len(all))
	for _, info := range all {
		if info.Hidden() {
			continue
		}
		infos = append(infos, info)
	}
	return infos
}

// Installed returns the last install-only deploy recorded for deviceID.
// An empty deviceID selects the configured device.
func (a *App) Installed(_ context.Context, deviceID string) (*domain.DeployRecord, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	if deviceID == "" {
		deviceID = cfg.DeviceID
	}
	if deviceID == "" {
		return nil, zerr.Wrap(domain.ErrMissingDeviceID, "set device_id in telly.yaml or pass a device")
	}

	record, err := a.store.Get(cfg.Root, deviceID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoDeployRecord, "run 'telly run device install_only=1' first"), "device_id", deviceID)
	}
	return record, nil
}

// Clean removes the build directory and the deploy record store.
func (a *App) Clean(_ context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	var errs error

	a.logger.Info(fmt.Sprintf("removing %s...", cfg.BuildDir))
	if err := os.RemoveAll(cfg.BuildDir); err != nil {
		errs = errors.Join(errs, zerr.With(zerr.Wrap(domain.ErrCleanFailed, err.Error()), "path", cfg.BuildDir))
	}

	a.logger.Info("removing deploy records...")
	if err := a.store.Clean(cfg.Root); err != nil {
		errs = errors.Join(errs, err)
	}

	return errs
}

func (a *App) loadConfig() (*domain.BuildConfig, error) {
	cwd, err := a.getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get working directory")
	}
	return a.configLoader.Load(cwd)
}

// setupOTel configures the OpenTelemetry SDK with the renderer bridge.
func setupOTel(bridge *telemetry.Bridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}
