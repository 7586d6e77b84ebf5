// Package build holds build-time information.
package build

// Version metadata, overwritten by linker flags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
