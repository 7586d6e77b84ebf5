// Package toolchain drives the external build, codesign and archive tools.
package toolchain

import (
	"context"
	"strings"

	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/telly/internal/core/ports"
)

// Tool names relative to the configured bin directory.
const (
	BuildTool    = "tvos/build"
	CodesignTool = "tvos/codesign"
	ArchiveTool  = "tvos/archive"
)

// Driver implements ports.Toolchain by running the tools in stream mode.
type Driver struct {
	runner ports.ProcessRunner
	logger ports.Logger
}

// New creates a Driver.
func New(runner ports.ProcessRunner, logger ports.Logger) *Driver {
	return &Driver{runner: runner, logger: logger}
}

// Build compiles the application bundle for platform.
func (d *Driver) Build(ctx context.Context, cfg *domain.BuildConfig, platform domain.Platform) error {
	d.logger.Info("Build " + cfg.VersionedBuildDir(platform))
	return d.run(ctx, cfg, BuildTool, BuildArgs(cfg, platform))
}

// Codesign signs the bundle built for platform.
func (d *Driver) Codesign(ctx context.Context, cfg *domain.BuildConfig, platform domain.Platform) error {
	d.logger.Info("Codesign " + cfg.AppBundle(platform))
	return d.run(ctx, cfg, CodesignTool, CodesignArgs(cfg, platform))
}

// Archive packages the device bundle.
func (d *Driver) Archive(ctx context.Context, cfg *domain.BuildConfig) error {
	d.logger.Info("Create " + cfg.ArchivePath())
	return d.run(ctx, cfg, ArchiveTool, ArchiveArgs(cfg))
}

func (d *Driver) run(ctx context.Context, cfg *domain.BuildConfig, tool string, args []string) error {
	inv := domain.Invocation{
		Path: cfg.ToolPath(tool),
		Args: args,
		Env:  map[string]string{"XCODE_DIR": cfg.XcodeDir},
		Dir:  cfg.Root,
	}

	result, err := d.runner.Run(ctx, inv, domain.ModeStream)
	if err != nil {
		return err
	}
	if !result.Success() {
		return domain.ToolFailure(tool, result.ExitCode)
	}
	return nil
}

// BuildArgs returns the arguments of the build tool for platform.
func BuildArgs(cfg *domain.BuildConfig, platform domain.Platform) []string {
	args := []string{
		"--platform", string(platform),
		"--sdk", cfg.SDKVersion,
		"--deployment-target", cfg.DeploymentTarget,
		"--mode", string(cfg.BuildMode),
		"--name", cfg.Name,
		"--output", cfg.VersionedBuildDir(platform),
	}
	if archs := cfg.Archs[platform]; len(archs) > 0 {
		args = append(args, "--archs", strings.Join(archs, ","))
	}
	for _, dir := range cfg.ResourcesDirs {
		args = append(args, "--resources", dir)
	}
	if cfg.SpecMode {
		args = append(args, "--spec")
	}
	return args
}

// CodesignArgs returns the arguments of the codesign tool for platform.
func CodesignArgs(cfg *domain.BuildConfig, platform domain.Platform) []string {
	args := []string{
		"--platform", string(platform),
		"--bundle", cfg.AppBundle(platform),
	}
	if cfg.Provisioning.Profile != "" {
		args = append(args, "--profile", cfg.Provisioning.Profile)
	}
	if cfg.DistributionMode {
		args = append(args, "--distribution")
	}
	return args
}

// ArchiveArgs returns the arguments of the archive tool.
func ArchiveArgs(cfg *domain.BuildConfig) []string {
	args := []string{
		"--bundle", cfg.AppBundle(domain.PlatformDevice),
		"--output", cfg.ArchivePath(),
	}
	if cfg.DistributionMode {
		args = append(args, "--distribution")
	}
	return args
}
