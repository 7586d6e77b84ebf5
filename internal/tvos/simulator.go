package tvos

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/zerr"
)

// Environment variables read by the simulator launcher.
const (
	EnvBuiltExecutable = "TELLY_BUILT_EXECUTABLE"
	EnvSpecMode        = "TELLY_SPEC_MODE"
)

const tmuxHint = `It appears you are using tmux without 'reattach-to-user-namespace', the simulator might not work properly. You can either disable tmux or run the following commands:

  $ brew install reattach-to-user-namespace
  $ echo 'set-option -g default-command "reattach-to-user-namespace -l $SHELL"' >> ~/.tmux.conf`

const crashHint = "The application terminated. A crash report file may have been generated by the system, " +
	"use 'telly run crashlog' to open it. Use 'telly run simulator debug=1' to restart the app in the debugger."

func (c *Catalog) simulator(ctx context.Context, run *domain.Run) error {
	cfg, err := run.Config()
	if err != nil {
		return err
	}

	target, err := ResolveTargetVersion(cfg, run.Options.TargetVersion)
	if err != nil {
		return err
	}

	if !run.Options.SkipBuild {
		if err := run.Invoke(ctx, TaskBuildSimulator); err != nil {
			return err
		}
	}

	if run.Options.Tmux {
		c.checkTmux(ctx)
	}

	inv := SimulatorInvocation(cfg, run.Options, target)
	c.logger.Info("Simulate " + cfg.AppBundle(domain.PlatformSimulator))

	result, err := c.execute(ctx, run, inv, domain.ModeStream)
	if err != nil {
		return err
	}
	if !result.Success() {
		if !cfg.SpecMode {
			c.logger.Warn(crashHint)
		}
		return domain.ToolFailure(SimulatorTool, result.ExitCode)
	}
	return nil
}

// ResolveTargetVersion returns the OS version to simulate. An override must
// not be older than the deployment target; without one the SDK version is used.
func ResolveTargetVersion(cfg *domain.BuildConfig, override string) (string, error) {
	if override == "" {
		return cfg.SDKVersion, nil
	}

	cmp, err := domain.CompareVersions(override, cfg.DeploymentTarget)
	if err != nil {
		return "", err
	}
	if cmp < 0 {
		msg := fmt.Sprintf("it is not possible to simulate an SDK version (%s) lower than the app's deployment target (%s)",
			override, cfg.DeploymentTarget)
		err := zerr.With(zerr.Wrap(domain.ErrTargetBelowDeploymentTarget, msg), "target", override)
		return "", zerr.With(err, "deployment_target", cfg.DeploymentTarget)
	}
	return override, nil
}

// SimulatorInvocation builds the simulator launcher call for target.
func SimulatorInvocation(cfg *domain.BuildConfig, opts domain.Options, target string) domain.Invocation {
	args := []string{
		debugLevel(cfg, opts),
		"0",
		cfg.SimulatorDevice,
		target,
		cfg.XcodeDir,
		cfg.AppBundle(domain.PlatformSimulator),
	}
	args = append(args, opts.AppArgs...)

	env := map[string]string{
		EnvBuiltExecutable: cfg.AppBundleExecutable(domain.PlatformSimulator),
	}
	if cfg.SpecMode {
		env[EnvSpecMode] = "1"
	}

	return domain.Invocation{
		Path:            cfg.ToolPath(SimulatorTool),
		Args:            args,
		Env:             env,
		IgnoreInterrupt: opts.Debug,
	}
}

func debugLevel(cfg *domain.BuildConfig, opts domain.Options) string {
	switch {
	case opts.Debug:
		return "1"
	case cfg.SpecMode:
		return "0"
	default:
		return "2"
	}
}

// checkTmux warns when tmux is not configured to reattach to the user namespace.
func (c *Catalog) checkTmux(ctx context.Context) {
	result, err := c.runner.Run(ctx, domain.Invocation{
		Path: "tmux",
		Args: []string{"show-options", "-g", "default-command"},
	}, domain.ModeCapture)
	if err == nil && strings.Contains(result.Output, "reattach-to-user-namespace") {
		return
	}
	c.logger.Warn(tmuxHint)
}
