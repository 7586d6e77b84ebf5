// Package cas stores deploy records addressed by a hash of the device identifier.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.DeployStore using a file-per-device strategy.
type Store struct{}

// NewStore creates a new DeployStore. Every operation takes the project root.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the last deploy record for deviceID under root.
// It returns nil, nil when no record exists.
func (s *Store) Get(root, deviceID string) (*domain.DeployRecord, error) {
	filename := s.getFilename(root, deviceID)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "path", filename)
	}

	var record domain.DeployRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreUnmarshalFailed, err.Error()), "path", filename)
	}

	return &record, nil
}

// Put stores record under root, replacing any earlier record for the same device.
func (s *Store) Put(root string, record domain.DeployRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrStoreMarshalFailed, err.Error())
	}

	filename := s.getFilename(root, record.DeviceID)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreCreateFailed, err.Error()), "path", filepath.Dir(filename))
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", filename)
	}

	return nil
}

// Clean removes every stored record under root.
func (s *Store) Clean(root string) error {
	dir := filepath.Join(root, domain.DefaultStorePath())
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", dir)
	}
	return nil
}

func (s *Store) getFilename(root, deviceID string) string {
	name := strconv.FormatUint(xxhash.Sum64String(deviceID), 16)
	return filepath.Join(root, domain.DefaultStorePath(), name+".json")
}
