package config

// Tellyfile represents the structure of the telly.yaml configuration file.
type Tellyfile struct {
	Name             string              `yaml:"name"`
	SDKVersion       string              `yaml:"sdk_version"`
	DeploymentTarget string              `yaml:"deployment_target"`
	Mode             string              `yaml:"mode"`
	BuildDir         string              `yaml:"build_dir"`
	ResourcesDirs    []string            `yaml:"resources_dirs"`
	Archs            map[string][]string `yaml:"archs"`
	XcodeDir         string              `yaml:"xcode_dir"`
	BinDir           string              `yaml:"bin_dir"`
	DeviceID         string              `yaml:"device_id"`
	Provisioning     ProvisioningDTO     `yaml:"provisioning"`
	Simulator        SimulatorDTO        `yaml:"simulator"`
	CrashReports     CrashReportsDTO     `yaml:"crash_reports"`
	LogViewer        []string            `yaml:"log_viewer"`
}

// ProvisioningDTO represents the provisioning profile section.
type ProvisioningDTO struct {
	Profile    string   `yaml:"profile"`
	Devices    []string `yaml:"devices"`
	AllDevices bool     `yaml:"all_devices"`
}

// SimulatorDTO represents the simulator section.
type SimulatorDTO struct {
	DeviceName string `yaml:"device_name"`
}

// CrashReportsDTO represents the crash report locations.
type CrashReportsDTO struct {
	SimulatorDir string `yaml:"simulator_dir"`
	DeviceDir    string `yaml:"device_dir"`
}
