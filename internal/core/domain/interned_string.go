package domain

import "unique"

// InternedString wraps a unique.Handle[string] so that task names, which
// repeat across prerequisite lists, compare by handle.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	return is.h.Value()
}
