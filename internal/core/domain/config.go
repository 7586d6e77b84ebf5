package domain

import (
	"path/filepath"
	"slices"
)

// Platform names an SDK platform the toolchain can build for.
type Platform string

const (
	// PlatformSimulator is the tvOS simulator platform.
	PlatformSimulator Platform = "AppleTVSimulator"
	// PlatformDevice is the tvOS device platform.
	PlatformDevice Platform = "AppleTVOS"
)

// BuildMode selects the optimisation and signing profile of a build.
type BuildMode string

const (
	// BuildModeDevelopment is the default build mode.
	BuildModeDevelopment BuildMode = "development"
	// BuildModeRelease produces optimised, distribution-ready builds.
	BuildModeRelease BuildMode = "release"
)

const (
	// DefaultSimulatorDevice is the simulated hardware used when none is configured.
	DefaultSimulatorDevice = "Apple TV 1080p"

	// InfoPlistName is the generated metadata file removed before every build.
	InfoPlistName = "Info.plist"
)

// Provisioning describes the provisioning profile used for device builds.
type Provisioning struct {
	Profile    string
	Devices    []string
	AllDevices bool
}

// BuildConfig is the configuration shared by task bodies during a run.
// It is loaded on first access and may be mutated by tasks that switch
// modes before invoking the tasks that depend on those modes.
type BuildConfig struct {
	Name             string
	Root             string
	SDKVersion       string
	DeploymentTarget string
	BuildDir         string
	ResourcesDirs    []string
	Archs            map[Platform][]string
	XcodeDir         string
	BinDir           string
	DeviceID         string
	Provisioning     Provisioning
	SimulatorDevice  string

	SimulatorCrashReportsDir string
	DeviceCrashReportsDir    string
	LogViewer                []string

	BuildMode        BuildMode
	DistributionMode bool
	SpecMode         bool
}

// ModeName returns the capitalised build mode used in directory names.
func (c *BuildConfig) ModeName() string {
	if c.BuildMode == BuildModeRelease {
		return "Release"
	}
	return "Development"
}

// VersionedBuildDir returns the directory holding artifacts for platform.
func (c *BuildConfig) VersionedBuildDir(platform Platform) string {
	return filepath.Join(c.BuildDir, string(platform)+"-"+c.SDKVersion+"-"+c.ModeName())
}

// AppBundle returns the path of the .app bundle built for platform.
func (c *BuildConfig) AppBundle(platform Platform) string {
	return filepath.Join(c.VersionedBuildDir(platform), c.Name+".app")
}

// AppBundleExecutable returns the executable inside the bundle built for platform.
func (c *BuildConfig) AppBundleExecutable(platform Platform) string {
	return filepath.Join(c.AppBundle(platform), c.Name)
}

// InfoPlistPath returns the generated metadata file of the bundle built for platform.
func (c *BuildConfig) InfoPlistPath(platform Platform) string {
	return filepath.Join(c.AppBundle(platform), InfoPlistName)
}

// ArchivePath returns the path of the device archive.
func (c *BuildConfig) ArchivePath() string {
	return filepath.Join(c.VersionedBuildDir(PlatformDevice), c.Name+".ipa")
}

// ToolPath returns the path of an external tool in the configured bin directory.
func (c *BuildConfig) ToolPath(tool string) string {
	return filepath.Join(c.BinDir, tool)
}

// IsProvisioned reports whether deviceID may receive a device build.
func (c *BuildConfig) IsProvisioned(deviceID string) bool {
	if c.Provisioning.AllDevices {
		return true
	}
	return slices.Contains(c.Provisioning.Devices, deviceID)
}

// SetReleaseDistribution switches the configuration to release builds signed for distribution.
func (c *BuildConfig) SetReleaseDistribution() {
	c.BuildMode = BuildModeRelease
	c.DistributionMode = true
}

// SetSpecMode switches the external tools into their test harness variant.
func (c *BuildConfig) SetSpecMode() {
	c.SpecMode = true
}
