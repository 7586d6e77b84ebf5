package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownTask is returned when a requested task is not registered in the graph.
	ErrUnknownTask = zerr.New("unknown task")

	// ErrCyclicDependency is returned when resolution revisits a task that is still on the traversal stack.
	ErrCyclicDependency = zerr.New("cyclic dependency")

	// ErrInvalidTaskName is returned when a task is defined with an empty or malformed name.
	ErrInvalidTaskName = zerr.New("invalid task name")

	// ErrInvalidNamespace is returned when a namespace prefix is empty or contains a separator.
	ErrInvalidNamespace = zerr.New("invalid namespace")

	// ErrNoInvoker is returned when a run is asked to invoke a task outside of a scheduler.
	ErrNoInvoker = zerr.New("run is not bound to a scheduler")

	// ErrReservedResourcesDir is returned when a resources directory contains a "Resources" subdirectory.
	ErrReservedResourcesDir = zerr.New("resources directory contains a reserved 'Resources' subdirectory")

	// ErrResourcesDirUnreadable is returned when a configured resources directory exists but cannot be listed.
	ErrResourcesDirUnreadable = zerr.New("failed to read resources directory")

	// ErrTargetBelowDeploymentTarget is returned when the requested OS version is older than the deployment target.
	ErrTargetBelowDeploymentTarget = zerr.New("target version is lower than the deployment target")

	// ErrInvalidVersion is returned when a version string cannot be parsed.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrDeviceNotProvisioned is returned when the device is not listed in the provisioning profile.
	ErrDeviceNotProvisioned = zerr.New("device is not provisioned")

	// ErrMissingDeviceID is returned when no device identifier is configured or requested.
	ErrMissingDeviceID = zerr.New("no device identifier given")

	// ErrToolFailed is returned when an external tool exits with a non-zero status.
	ErrToolFailed = zerr.New("external tool failed")

	// ErrProcessStartFailed is returned when an external process cannot be started.
	ErrProcessStartFailed = zerr.New("failed to start process")

	// ErrEmptyCommand is returned when an invocation has no executable path.
	ErrEmptyCommand = zerr.New("invocation has no executable")

	// ErrCrashReportsDirFailed is returned when the crash report directory cannot be created or read.
	ErrCrashReportsDirFailed = zerr.New("failed to prepare crash reports directory")

	// ErrBundleCleanupFailed is returned when stale bundle metadata cannot be removed.
	ErrBundleCleanupFailed = zerr.New("failed to remove stale bundle metadata")

	// ErrConfigNotFound is returned when no telly.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find telly.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMissingAppName is returned when the config file does not name the application.
	ErrMissingAppName = zerr.New("missing application name")

	// ErrInvalidOption is returned when an operator option cannot be parsed.
	ErrInvalidOption = zerr.New("invalid option")

	// ErrStoreCreateFailed is returned when the deploy record store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create deploy record store directory")

	// ErrStoreReadFailed is returned when a deploy record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read deploy record")

	// ErrStoreUnmarshalFailed is returned when a deploy record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal deploy record")

	// ErrStoreMarshalFailed is returned when a deploy record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal deploy record")

	// ErrStoreWriteFailed is returned when a deploy record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write deploy record")

	// ErrNoDeployRecord is returned when no install was recorded for a device.
	ErrNoDeployRecord = zerr.New("no install recorded for device")

	// ErrCleanFailed is returned when build artifacts cannot be removed.
	ErrCleanFailed = zerr.New("failed to remove build artifacts")

	// ErrBuildExecutionFailed is returned when the run fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
