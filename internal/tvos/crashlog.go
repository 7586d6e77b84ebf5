package tvos

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *Catalog) localCrashlog(ctx context.Context, run *domain.Run) error {
	cfg, err := run.Config()
	if err != nil {
		return err
	}
	return c.openNewestReport(ctx, run, cfg, cfg.SimulatorCrashReportsDir)
}

func (c *Catalog) crashlogDevice(ctx context.Context, run *domain.Run) error {
	cfg, err := run.Config()
	if err != nil {
		return err
	}

	deviceID, err := ResolveDeviceID(cfg, run.Options)
	if err != nil {
		return err
	}

	dir := cfg.DeviceCrashReportsDir
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCrashReportsDirFailed, err.Error()), "path", dir)
	}

	// Retrieval is best effort; whatever reports already exist are still opened.
	if _, err := c.execute(ctx, run, CrashlogInvocation(cfg, run.Options, deviceID), domain.ModeFireAndForget); err != nil {
		c.logger.Warn("could not retrieve crash reports: " + err.Error())
	}

	return c.openNewestReport(ctx, run, cfg, dir)
}

// CrashlogInvocation builds the deploy tool call retrieving and
// symbolicating the crash reports of deviceID.
func CrashlogInvocation(cfg *domain.BuildConfig, opts domain.Options, deviceID string) domain.Invocation {
	args := []string{"-l"}
	if opts.Trace {
		args = append(args, "-d")
	}
	args = append(args, deviceID, cfg.ArchivePath())

	return domain.Invocation{
		Path: cfg.ToolPath(DeployTool),
		Args: args,
		Env: map[string]string{
			EnvXcodeDir:        cfg.XcodeDir,
			EnvCrashReportsDir: cfg.DeviceCrashReportsDir,
		},
	}
}

// NewestReport returns the most recently modified crash report of the app
// in dir, or "" when there is none.
func NewestReport(dir, appName string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, appName+"_*"))
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrCrashReportsDirFailed, err.Error()), "path", dir)
	}

	var newest string
	var newestInfo os.FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		if newestInfo == nil || info.ModTime().After(newestInfo.ModTime()) {
			newest, newestInfo = match, info
		}
	}
	return newest, nil
}

func (c *Catalog) openNewestReport(ctx context.Context, run *domain.Run, cfg *domain.BuildConfig, dir string) error {
	report, err := NewestReport(dir, cfg.Name)
	if err != nil {
		return err
	}
	if report == "" {
		c.logger.Info("No crash report found for " + cfg.Name + " in " + dir)
		return nil
	}

	if len(cfg.LogViewer) == 0 {
		return zerr.Wrap(domain.ErrEmptyCommand, "no log viewer configured")
	}

	args := append(append([]string(nil), cfg.LogViewer[1:]...), report)
	inv := domain.Invocation{Path: cfg.LogViewer[0], Args: args}

	result, err := c.execute(ctx, run, inv, domain.ModeStream)
	if err != nil {
		return err
	}
	if !result.Success() {
		return domain.ToolFailure(filepath.Base(cfg.LogViewer[0]), result.ExitCode)
	}
	return nil
}
