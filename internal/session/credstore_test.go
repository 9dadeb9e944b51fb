package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestBadger(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBadgerStore_MissingTokenReadsEmpty(t *testing.T) {
	store := openTestBadger(t)

	token, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestBadgerStore_WriteReadClear(t *testing.T) {
	store := openTestBadger(t)

	require.NoError(t, store.Write("a.b.c"))
	token, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", token)

	require.NoError(t, store.Write("d.e.f"))
	token, err = store.Read()
	require.NoError(t, err)
	assert.Equal(t, "d.e.f", token, "write replaces under the fixed key")

	require.NoError(t, store.Clear())
	token, err = store.Read()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestBadgerStore_ClearWithoutWrite(t *testing.T) {
	store := openTestBadger(t)
	require.NoError(t, store.Clear())
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenBadger(dir)
	require.NoError(t, err)
	require.NoError(t, store.Write("a.b.c"))
	require.NoError(t, store.Close())

	store, err = OpenBadger(dir)
	require.NoError(t, err)
	defer store.Close()

	token, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", token)
}
