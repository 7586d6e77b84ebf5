package domain

import "go.trai.ch/zerr"

// ExitCodeKey is the zerr metadata key carrying an external tool's exit status.
const ExitCodeKey = "exit_code"

type metadataCarrier interface {
	Metadata() map[string]any
}

// ToolFailure builds the error reported when an external tool exits with a non-zero status.
func ToolFailure(tool string, code int) error {
	err := zerr.With(zerr.Wrap(ErrToolFailed, tool+" exited with a non-zero status"), "tool", tool)
	return zerr.With(err, ExitCodeKey, code)
}

// ExitCode reports the exit status recorded anywhere in err's chain.
// It follows both single and joined unwrapping.
func ExitCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}

	if mc, ok := err.(metadataCarrier); ok {
		if code, ok := mc.Metadata()[ExitCodeKey].(int); ok {
			return code, true
		}
	}

	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			if code, ok := ExitCode(inner); ok {
				return code, true
			}
		}
	case interface{ Unwrap() error }:
		return ExitCode(u.Unwrap())
	}

	return 0, false
}
