// Package tvos defines the build, simulator, archive, deploy and crashlog
// tasks of a tvOS application.
package tvos

import (
	"context"
	"time"

	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/telly/internal/core/ports"
)

// Tool names relative to the configured bin directory.
const (
	SimulatorTool = "tvos/sim"
	DeployTool    = "tvos/deploy"
)

// Task names.
const (
	TaskBuild               = "build"
	TaskBuildSimulator      = "build:simulator"
	TaskBuildDevice         = "build:device"
	TaskSimulator           = "simulator"
	TaskArchive             = "archive"
	TaskArchiveDistribution = "archive:distribution"
	TaskSpec                = "spec"
	TaskSpecSimulator       = "spec:simulator"
	TaskSpecDevice          = "spec:device"
	TaskDevice              = "device"
	TaskCrashlog            = "crashlog"
	TaskCrashlogSimulator   = "crashlog:simulator"
	TaskCrashlogDevice      = "crashlog:device"
	TaskLocalCrashlog       = "__local_crashlog"
)

// Catalog builds the task graph of a tvOS project.
type Catalog struct {
	runner    ports.ProcessRunner
	toolchain ports.Toolchain
	logger    ports.Logger
	store     ports.DeployStore
	now       func() time.Time
}

// NewCatalog creates a Catalog whose tasks use the given collaborators.
func NewCatalog(
	runner ports.ProcessRunner,
	toolchain ports.Toolchain,
	logger ports.Logger,
	store ports.DeployStore,
) *Catalog {
	return &Catalog{
		runner:    runner,
		toolchain: toolchain,
		logger:    logger,
		store:     store,
		now:       time.Now,
	}
}

// Graph registers every task and returns the immutable graph.
func (c *Catalog) Graph() (*domain.Graph, error) {
	b := domain.NewGraphBuilder()

	b.Define(domain.TaskSpec{
		Name:          domain.DefaultTaskName,
		Description:   "Build the project, then run the simulator",
		Prerequisites: []string{TaskSimulator},
	})

	b.Define(domain.TaskSpec{
		Name:          TaskBuild,
		Description:   "Build everything",
		Prerequisites: []string{TaskBuildSimulator, TaskBuildDevice},
	})

	b.Namespace("build", func(ns *domain.GraphBuilder) {
		ns.Define(domain.TaskSpec{
			Name:        "simulator",
			Description: "Build the simulator version",
			Action:      c.buildSimulator,
		})
		ns.Define(domain.TaskSpec{
			Name:        "device",
			Description: "Build the device version",
			Action:      c.buildDevice,
		})
	})

	b.Define(domain.TaskSpec{
		Name:        TaskSimulator,
		Description: "Run the simulator",
		Action:      c.simulator,
	})

	b.Define(domain.TaskSpec{
		Name:          TaskArchive,
		Description:   "Create an .ipa archive",
		Prerequisites: []string{TaskBuildDevice},
		Action:        c.archive,
	})

	b.Namespace("archive", func(ns *domain.GraphBuilder) {
		ns.Define(domain.TaskSpec{
			Name:        "distribution",
			Description: "Create an .ipa archive for distribution (AppStore)",
			Action:      c.archiveDistribution,
		})
	})

	b.Define(domain.TaskSpec{
		Name:          TaskSpec,
		Description:   "Same as 'spec:simulator'",
		Prerequisites: []string{TaskSpecSimulator},
	})

	b.Namespace("spec", func(ns *domain.GraphBuilder) {
		ns.Define(domain.TaskSpec{
			Name:        "simulator",
			Description: "Run the test/spec suite on the simulator",
			Action:      specMode(TaskSimulator),
		})
		ns.Define(domain.TaskSpec{
			Name:        "device",
			Description: "Run the test/spec suite on the device",
			Action:      specMode(TaskDevice),
		})
	})

	b.Define(domain.TaskSpec{
		Name:          TaskDevice,
		Description:   "Deploy on the device",
		Prerequisites: []string{TaskArchive},
		Action:        c.deploy,
	})

	b.Define(domain.TaskSpec{
		Name:          TaskCrashlog,
		Description:   "Same as 'crashlog:simulator'",
		Prerequisites: []string{TaskCrashlogSimulator},
	})

	b.Namespace("crashlog", func(ns *domain.GraphBuilder) {
		ns.Define(domain.TaskSpec{
			Name:          "simulator",
			Description:   "Open the latest crash report generated by the app in the simulator",
			Prerequisites: []string{TaskLocalCrashlog},
		})
		ns.Define(domain.TaskSpec{
			Name:        "device",
			Description: "Retrieve and symbolicate crash logs generated by the app on the device, and open the latest generated one",
			Action:      c.crashlogDevice,
		})
	})

	b.Define(domain.TaskSpec{
		Name:   TaskLocalCrashlog,
		Action: c.localCrashlog,
	})

	return b.Build()
}

// specMode switches the run into spec mode, then invokes target.
func specMode(target string) domain.Action {
	return func(ctx context.Context, run *domain.Run) error {
		cfg, err := run.Config()
		if err != nil {
			return err
		}
		cfg.SetSpecMode()
		return run.Invoke(ctx, target)
	}
}

func (c *Catalog) archive(ctx context.Context, run *domain.Run) error {
	cfg, err := run.Config()
	if err != nil {
		return err
	}
	return c.toolchain.Archive(ctx, cfg)
}

func (c *Catalog) archiveDistribution(ctx context.Context, run *domain.Run) error {
	cfg, err := run.Config()
	if err != nil {
		return err
	}
	cfg.SetReleaseDistribution()
	return run.Invoke(ctx, TaskArchive)
}

// execute echoes inv in verbose runs, then runs it.
func (c *Catalog) execute(ctx context.Context, run *domain.Run, inv domain.Invocation, mode domain.Mode) (domain.ProcessResult, error) {
	if run.Options.Verbose {
		c.logger.Info(inv.String())
	}
	return c.runner.Run(ctx, inv, mode)
}
