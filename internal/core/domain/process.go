package domain

import (
	"maps"
	"slices"
	"strings"
)

// Mode selects how an external process is attached to the caller.
type Mode int

const (
	// ModeStream attaches the process to the caller's standard streams.
	ModeStream Mode = iota
	// ModeCapture captures standard output and returns it trimmed of trailing whitespace.
	ModeCapture
	// ModeFireAndForget streams like ModeStream but a non-zero status is only advisory.
	ModeFireAndForget
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeCapture:
		return "capture"
	case ModeFireAndForget:
		return "fire-and-forget"
	default:
		return "unknown"
	}
}

// Invocation describes one external process call.
type Invocation struct {
	// Path is the executable, either absolute or looked up on PATH.
	Path string
	// Args are passed to the executable verbatim.
	Args []string
	// Env is merged over the ambient environment for this call only.
	Env map[string]string
	// Dir is the working directory. Empty means the current one.
	Dir string
	// IgnoreInterrupt leaves interrupts to the child for the duration of the call.
	IgnoreInterrupt bool
}

// String renders the invocation as a shell command line.
// Environment entries come first, sorted by key.
func (i Invocation) String() string {
	parts := make([]string, 0, len(i.Env)+len(i.Args)+1)
	for _, k := range slices.Sorted(maps.Keys(i.Env)) {
		parts = append(parts, k+"="+shellQuote(i.Env[k]))
	}
	parts = append(parts, shellQuote(i.Path))
	for _, a := range i.Args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

// ProcessResult is the outcome of a finished process.
type ProcessResult struct {
	ExitCode int
	Output   string
}

// Success reports whether the process exited with status zero.
func (r ProcessResult) Success() bool {
	return r.ExitCode == 0
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := strings.IndexFunc(s, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		case strings.ContainsRune("_-./:=@%+,", r):
			return false
		}
		return true
	}) < 0
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
