package domain

import "time"

// DeployRecord remembers where an install-only deploy put the application.
type DeployRecord struct {
	DeviceID    string    `json:"device_id"`
	ArchivePath string    `json:"archive_path"`
	AppPath     string    `json:"app_path"`
	Timestamp   time.Time `json:"timestamp"`
}
