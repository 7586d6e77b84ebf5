package tvos

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/zerr"
)

// Environment variables read by the deploy tool.
const (
	EnvXcodeDir        = "XCODE_DIR"
	EnvAvailableArchs  = "TELLY_AVAILABLE_ARCHS"
	EnvCrashReportsDir = "CRASH_REPORTS_DIR"
)

func (c *Catalog) deploy(ctx context.Context, run *domain.Run) error {
	cfg, err := run.Config()
	if err != nil {
		return err
	}

	c.logger.Info("Deploy " + cfg.ArchivePath())

	deviceID, err := ResolveDeviceID(cfg, run.Options)
	if err != nil {
		return err
	}
	if !cfg.IsProvisioned(deviceID) {
		msg := fmt.Sprintf("device ID '%s' not provisioned in profile '%s'", deviceID, cfg.Provisioning.Profile)
		err := zerr.With(zerr.Wrap(domain.ErrDeviceNotProvisioned, msg), "device_id", deviceID)
		return zerr.With(err, "profile", cfg.Provisioning.Profile)
	}

	inv := DeployInvocation(cfg, run.Options, deviceID)

	if !run.Options.InstallOnly {
		result, err := c.execute(ctx, run, inv, domain.ModeStream)
		if err != nil {
			return err
		}
		if !result.Success() {
			return domain.ToolFailure(DeployTool, result.ExitCode)
		}
		return nil
	}

	result, err := c.execute(ctx, run, inv, domain.ModeCapture)
	if err != nil {
		return err
	}
	if !result.Success() {
		return domain.ToolFailure(DeployTool, result.ExitCode)
	}

	run.State.DeployedAppPath = result.Output
	record := domain.DeployRecord{
		DeviceID:    deviceID,
		ArchivePath: cfg.ArchivePath(),
		AppPath:     result.Output,
		Timestamp:   c.now().UTC(),
	}
	if err := c.store.Put(cfg.Root, record); err != nil {
		c.logger.Warn("could not remember the install path: " + err.Error())
	}
	return nil
}

// ResolveDeviceID returns the device override, falling back to the configured device.
func ResolveDeviceID(cfg *domain.BuildConfig, opts domain.Options) (string, error) {
	deviceID := opts.DeviceID
	if deviceID == "" {
		deviceID = cfg.DeviceID
	}
	if deviceID == "" {
		return "", zerr.Wrap(domain.ErrMissingDeviceID, "set device_id in telly.yaml or pass id=<device>")
	}
	return deviceID, nil
}

// DeployInvocation builds the deploy tool call installing the archive on deviceID.
func DeployInvocation(cfg *domain.BuildConfig, opts domain.Options, deviceID string) domain.Invocation {
	env := map[string]string{EnvXcodeDir: cfg.XcodeDir}
	if opts.Debug {
		env[EnvAvailableArchs] = strings.Join(cfg.Archs[domain.PlatformDevice], ":")
	}

	var args []string
	if opts.Trace {
		args = append(args, "-d")
	}
	args = append(args, "-tvos", deviceID, cfg.ArchivePath())

	return domain.Invocation{
		Path:            cfg.ToolPath(DeployTool),
		Args:            args,
		Env:             env,
		IgnoreInterrupt: opts.Debug,
	}
}
