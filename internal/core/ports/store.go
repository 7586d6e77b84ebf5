package ports

import "go.trai.ch/telly/internal/core/domain"

// DeployStore defines the interface for storing and retrieving deploy records.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type DeployStore interface {
	// Get retrieves the last record for a device under the project root.
	// Returns nil, nil if not found.
	Get(root, deviceID string) (*domain.DeployRecord, error)

	// Put stores the record.
	Put(root string, record domain.DeployRecord) error

	// Clean removes every record under the project root.
	Clean(root string) error
}
