// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode for task progress.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeLinear prints one line per task start and finish.
	ModeLinear
	// ModeQuiet prints nothing besides the tools' own output.
	ModeQuiet
)

// Environment describes the terminal the process runs in.
type Environment struct {
	StdinTTY  bool
	StderrTTY bool
	CI        bool
}

// DetectEnvironment inspects the standard streams and the CI variable.
func DetectEnvironment() Environment {
	ci := os.Getenv("CI")
	return Environment{
		StdinTTY:  isTerminal(os.Stdin),
		StderrTTY: isTerminal(os.Stderr),
		CI:        ci == "true" || ci == "1",
	}
}

// Mode returns the recommended output mode for the environment.
// CI logs and interactive terminals get task lines; piped output stays quiet.
func (e Environment) Mode() OutputMode {
	if e.CI || e.StderrTTY {
		return ModeLinear
	}
	return ModeQuiet
}

// ResolveMode applies user override flag to auto-detection.
// userFlag should be one of: "auto", "linear", "ci", "quiet", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "linear", "ci":
		return ModeLinear
	case "quiet", "none":
		return ModeQuiet
	default:
		return autoDetected
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
