package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/telly/internal/adapters/cas"
	"go.trai.ch/telly/internal/core/domain"
)

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := cas.NewStore()

	record := domain.DeployRecord{
		DeviceID:    "00008110-000A1C2E0C38801E",
		ArchivePath: "build/AppleTVOS-9.0-Development/Hello.ipa",
		AppPath:     "/private/var/containers/Bundle/Application/Hello.app",
		Timestamp:   time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, store.Put(root, record))

	got, err := store.Get(root, record.DeviceID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record, *got)

	entries, err := os.ReadDir(filepath.Join(root, domain.DefaultStorePath()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".json", filepath.Ext(entries[0].Name()))
}

func TestStore_PutReplaces(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := cas.NewStore()

	require.NoError(t, store.Put(root, domain.DeployRecord{DeviceID: "dev", AppPath: "/old"}))
	require.NoError(t, store.Put(root, domain.DeployRecord{DeviceID: "dev", AppPath: "/new"}))
	require.NoError(t, store.Put(root, domain.DeployRecord{DeviceID: "other", AppPath: "/other"}))

	got, err := store.Get(root, "dev")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "/new", got.AppPath)
}

func TestStore_GetMissing(t *testing.T) {
	t.Parallel()

	got, err := cas.NewStore().Get(t.TempDir(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_GetCorrupt(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := cas.NewStore()
	require.NoError(t, store.Put(root, domain.DeployRecord{DeviceID: "dev"}))

	dir := filepath.Join(root, domain.DefaultStorePath())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{ invalid json"), 0o600))

	_, err = store.Get(root, "dev")
	require.ErrorIs(t, err, domain.ErrStoreUnmarshalFailed)
}

func TestStore_Clean(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := cas.NewStore()
	require.NoError(t, store.Put(root, domain.DeployRecord{DeviceID: "dev"}))

	require.NoError(t, store.Clean(root))

	got, err := store.Get(root, "dev")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoDirExists(t, filepath.Join(root, domain.DefaultStorePath()))
}
