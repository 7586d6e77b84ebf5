package domain

import "path/filepath"

const (
	// TellyDirName is the name of the per-project metadata directory.
	TellyDirName = ".telly"

	// StoreDirName is the name of the deploy record store directory.
	StoreDirName = "store"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "telly.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStorePath returns the deploy record store relative to the project root.
// It joins .telly and store.
func DefaultStorePath() string {
	return filepath.Join(TellyDirName, StoreDirName)
}
