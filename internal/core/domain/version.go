package domain

import (
	"strings"

	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

// CompareVersions compares two dotted OS versions such as "9.0" or "9.2.1".
// The result is -1, 0 or +1 as a is older than, equal to or newer than b.
func CompareVersions(a, b string) (int, error) {
	ca, err := canonicalVersion(a)
	if err != nil {
		return 0, err
	}
	cb, err := canonicalVersion(b)
	if err != nil {
		return 0, err
	}
	return semver.Compare(ca, cb), nil
}

func canonicalVersion(v string) (string, error) {
	trimmed := strings.TrimSpace(v)
	candidate := "v" + strings.TrimPrefix(trimmed, "v")
	if trimmed == "" || !semver.IsValid(candidate) || semver.Prerelease(candidate) != "" || semver.Build(candidate) != "" {
		return "", zerr.With(zerr.Wrap(ErrInvalidVersion, "expected a dotted numeric version"), "version", v)
	}
	return candidate, nil
}
