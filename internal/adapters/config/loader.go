// Package config provides the telly.yaml configuration loader.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/telly/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Defaults applied when telly.yaml leaves a value out.
const (
	DefaultBuildDir      = "build"
	DefaultResourcesDir  = "resources"
	DefaultXcodeDir      = "/Applications/Xcode.app/Contents/Developer"
	DefaultBinDir        = "/Library/Telly/bin"
	DefaultSimulatorLogs = "~/Library/Logs/DiagnosticReports"
	DefaultDeviceLogs    = "~/Library/Logs/Telly Device"
)

// DefaultLogViewer opens crash reports in the Console application.
var DefaultLogViewer = []string{"/usr/bin/open", "-a", "Console"}

var defaultArchs = map[domain.Platform][]string{
	domain.PlatformSimulator: {"x86_64"},
	domain.PlatformDevice:    {"arm64"},
}

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// DiscoverRoot walks up from cwd and returns the directory containing telly.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

// Load reads the nearest telly.yaml at or above cwd.
func (l *Loader) Load(cwd string) (*domain.BuildConfig, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var file Tellyfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := l.buildConfig(filepath.Dir(configPath), &file)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, error) {
	currentDir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no telly.yaml in any parent directory"), "cwd", cwd)
}

func (l *Loader) buildConfig(root string, file *Tellyfile) (*domain.BuildConfig, error) {
	if strings.TrimSpace(file.Name) == "" {
		return nil, zerr.Wrap(domain.ErrMissingAppName, "the name field is required")
	}

	if file.SDKVersion == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidVersion, "sdk_version is required"), "field", "sdk_version")
	}
	deploymentTarget := file.DeploymentTarget
	if deploymentTarget == "" {
		deploymentTarget = file.SDKVersion
	}
	cmp, err := domain.CompareVersions(deploymentTarget, file.SDKVersion)
	if err != nil {
		return nil, err
	}
	if cmp > 0 {
		l.Logger.Warn("deployment_target " + deploymentTarget + " is newer than sdk_version " + file.SDKVersion)
	}

	mode, err := parseBuildMode(file.Mode)
	if err != nil {
		return nil, err
	}

	resourcesDirs := file.ResourcesDirs
	if len(resourcesDirs) == 0 {
		resourcesDirs = []string{DefaultResourcesDir}
	}

	cfg := &domain.BuildConfig{
		Name:             file.Name,
		Root:             root,
		SDKVersion:       file.SDKVersion,
		DeploymentTarget: deploymentTarget,
		BuildDir:         resolvePath(root, valueOr(file.BuildDir, DefaultBuildDir)),
		ResourcesDirs:    resolvePaths(root, resourcesDirs),
		Archs:            resolveArchs(file.Archs),
		XcodeDir:         resolvePath(root, valueOr(file.XcodeDir, DefaultXcodeDir)),
		BinDir:           resolvePath(root, valueOr(file.BinDir, DefaultBinDir)),
		DeviceID:         file.DeviceID,
		Provisioning: domain.Provisioning{
			Profile:    resolveOptionalPath(root, file.Provisioning.Profile),
			Devices:    file.Provisioning.Devices,
			AllDevices: file.Provisioning.AllDevices,
		},
		SimulatorDevice:          valueOr(file.Simulator.DeviceName, domain.DefaultSimulatorDevice),
		SimulatorCrashReportsDir: resolvePath(root, valueOr(file.CrashReports.SimulatorDir, DefaultSimulatorLogs)),
		DeviceCrashReportsDir:    resolvePath(root, valueOr(file.CrashReports.DeviceDir, DefaultDeviceLogs)),
		LogViewer:                file.LogViewer,
		BuildMode:                mode,
	}
	if len(cfg.LogViewer) == 0 {
		cfg.LogViewer = append([]string(nil), DefaultLogViewer...)
	}

	return cfg, nil
}

func parseBuildMode(mode string) (domain.BuildMode, error) {
	switch domain.BuildMode(strings.ToLower(mode)) {
	case "", domain.BuildModeDevelopment:
		return domain.BuildModeDevelopment, nil
	case domain.BuildModeRelease:
		return domain.BuildModeRelease, nil
	default:
		return "", zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "unknown build mode"), "mode", mode)
	}
}

func resolveArchs(configured map[string][]string) map[domain.Platform][]string {
	archs := make(map[domain.Platform][]string, len(defaultArchs))
	for platform, list := range defaultArchs {
		archs[platform] = append([]string(nil), list...)
	}
	for platform, list := range configured {
		archs[domain.Platform(platform)] = list
	}
	return archs
}

// resolvePath expands a leading "~" and anchors relative paths at root.
func resolvePath(root, path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(root, path))
}

func resolveOptionalPath(root, path string) string {
	if path == "" {
		return ""
	}
	return resolvePath(root, path)
}

func resolvePaths(root string, paths []string) []string {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		resolved = append(resolved, resolvePath(root, p))
	}
	return resolved
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by the loader
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(domain.ErrConfigReadFailed, err.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(domain.ErrConfigParseFailed, parseErr.Error())
	}

	return nil
}
