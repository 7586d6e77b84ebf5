package tvos_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/telly/internal/tvos"
	"go.uber.org/mock/gomock"
)

const deployPath = testBinDir + "/tvos/deploy"

func expectDeviceArchive(h *harness) {
	h.toolchain.EXPECT().Build(gomock.Any(), h.cfg, domain.PlatformDevice).Return(nil)
	h.toolchain.EXPECT().Codesign(gomock.Any(), h.cfg, domain.PlatformDevice).Return(nil)
	h.toolchain.EXPECT().Archive(gomock.Any(), h.cfg).Return(nil)
}

func TestDevice_NotProvisioned(t *testing.T) {
	h := newHarness(t)
	expectDeviceArchive(h)

	_, err := h.run(t, tvos.TaskDevice, domain.Options{DeviceID: "stranger"})

	require.ErrorIs(t, err, domain.ErrDeviceNotProvisioned)
	assert.Contains(t, err.Error(), "device ID 'stranger' not provisioned in profile 'dev.mobileprovision'")
}

func TestDevice_AllDevicesProvisioned(t *testing.T) {
	h := newHarness(t)
	h.cfg.Provisioning.AllDevices = true
	expectDeviceArchive(h)
	h.runner.EXPECT().Run(gomock.Any(), gomock.Any(), domain.ModeStream).
		DoAndReturn(func(_ context.Context, inv domain.Invocation, _ domain.Mode) (domain.ProcessResult, error) {
			assert.Equal(t, []string{"-tvos", "stranger", h.cfg.ArchivePath()}, inv.Args)
			return domain.ProcessResult{}, nil
		})

	_, err := h.run(t, tvos.TaskDevice, domain.Options{DeviceID: "stranger"})
	require.NoError(t, err)
}

func TestDevice_Deploys(t *testing.T) {
	h := newHarness(t)
	expectDeviceArchive(h)
	h.runner.EXPECT().Run(gomock.Any(), gomock.Any(), domain.ModeStream).
		DoAndReturn(func(_ context.Context, inv domain.Invocation, _ domain.Mode) (domain.ProcessResult, error) {
			assert.Equal(t, deployPath, inv.Path)
			assert.Equal(t, []string{"-tvos", testDevice, h.cfg.ArchivePath()}, inv.Args)
			assert.Equal(t, testXcodeDir, inv.Env[tvos.EnvXcodeDir])
			assert.NotContains(t, inv.Env, tvos.EnvAvailableArchs)
			return domain.ProcessResult{}, nil
		})

	_, err := h.run(t, tvos.TaskDevice, domain.Options{})
	require.NoError(t, err)
}

func TestDevice_DeployFailure(t *testing.T) {
	h := newHarness(t)
	expectDeviceArchive(h)
	h.runner.EXPECT().Run(gomock.Any(), gomock.Any(), domain.ModeStream).Return(domain.ProcessResult{ExitCode: 7}, nil)

	_, err := h.run(t, tvos.TaskDevice, domain.Options{})

	require.ErrorIs(t, err, domain.ErrToolFailed)
	code, ok := domain.ExitCode(err)
	require.True(t, ok)
	assert.Equal(t, 7, code)
}

func TestDevice_MissingDeviceID(t *testing.T) {
	h := newHarness(t)
	h.cfg.DeviceID = ""
	expectDeviceArchive(h)

	_, err := h.run(t, tvos.TaskDevice, domain.Options{})

	require.ErrorIs(t, err, domain.ErrMissingDeviceID)
}

func TestDevice_InstallOnly(t *testing.T) {
	h := newHarness(t)
	stamp := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	h.catalog.SetClock(func() time.Time { return stamp })
	expectDeviceArchive(h)

	h.runner.EXPECT().Run(gomock.Any(), gomock.Any(), domain.ModeCapture).
		Return(domain.ProcessResult{Output: "/private/var/containers/Hello.app"}, nil)
	h.store.EXPECT().Put(h.cfg.Root, domain.DeployRecord{
		DeviceID:    testDevice,
		ArchivePath: h.cfg.ArchivePath(),
		AppPath:     "/private/var/containers/Hello.app",
		Timestamp:   stamp,
	}).Return(nil)

	run, err := h.run(t, tvos.TaskDevice, domain.Options{InstallOnly: true})

	require.NoError(t, err)
	assert.Equal(t, "/private/var/containers/Hello.app", run.State.DeployedAppPath)
}

func TestDevice_InstallOnly_StoreFailureWarns(t *testing.T) {
	h := newHarness(t)
	expectDeviceArchive(h)

	h.runner.EXPECT().Run(gomock.Any(), gomock.Any(), domain.ModeCapture).
		Return(domain.ProcessResult{Output: "/private/var/containers/Hello.app"}, nil)
	h.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	h.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "disk full")
	})

	run, err := h.run(t, tvos.TaskDevice, domain.Options{InstallOnly: true})

	require.NoError(t, err)
	assert.Equal(t, "/private/var/containers/Hello.app", run.State.DeployedAppPath)
}

func TestDevice_InstallOnly_Failure(t *testing.T) {
	h := newHarness(t)
	expectDeviceArchive(h)
	h.runner.EXPECT().Run(gomock.Any(), gomock.Any(), domain.ModeCapture).Return(domain.ProcessResult{ExitCode: 1}, nil)

	run, err := h.run(t, tvos.TaskDevice, domain.Options{InstallOnly: true})

	require.ErrorIs(t, err, domain.ErrToolFailed)
	assert.Empty(t, run.State.DeployedAppPath)
}

func TestSpec_Device(t *testing.T) {
	h := newHarness(t)
	h.toolchain.EXPECT().Build(gomock.Any(), h.cfg, domain.PlatformDevice).
		DoAndReturn(func(_ context.Context, cfg *domain.BuildConfig, _ domain.Platform) error {
			assert.True(t, cfg.SpecMode)
			return nil
		})
	h.toolchain.EXPECT().Codesign(gomock.Any(), h.cfg, domain.PlatformDevice).Return(nil)
	h.toolchain.EXPECT().Archive(gomock.Any(), h.cfg).Return(nil)
	h.runner.EXPECT().Run(gomock.Any(), gomock.Any(), domain.ModeStream).Return(domain.ProcessResult{}, nil)

	_, err := h.run(t, tvos.TaskSpecDevice, domain.Options{})
	require.NoError(t, err)
}

func TestDeployInvocation(t *testing.T) {
	cfg := &domain.BuildConfig{
		Name:       "Hello",
		SDKVersion: "9.0",
		BuildDir:   "/work/hello/build",
		XcodeDir:   testXcodeDir,
		BinDir:     testBinDir,
		Archs:      map[domain.Platform][]string{domain.PlatformDevice: {"arm64", "arm64e"}},
		BuildMode:  domain.BuildModeDevelopment,
	}
	opts := domain.Options{Debug: true, Trace: true}

	inv := tvos.DeployInvocation(cfg, opts, testDevice)

	assert.True(t, inv.IgnoreInterrupt)
	g := goldie.New(t)
	g.Assert(t, "deploy_invocation", []byte(inv.String()+"\n"))
}
