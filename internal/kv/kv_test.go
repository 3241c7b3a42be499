package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	store, err := OpenFile(path)
	require.NoError(t, err)

	_, ok := store.GetItem("missing")
	assert.False(t, ok)

	require.NoError(t, store.SetItem("document", "hello\n\nworld"))
	require.NoError(t, store.SetItem("notes", `{"0":{"status":"resolved"}}`))

	reopened, err := OpenFile(path)
	require.NoError(t, err)

	doc, ok := reopened.GetItem("document")
	require.True(t, ok)
	assert.Equal(t, "hello\n\nworld", doc)
	notes, ok := reopened.GetItem("notes")
	require.True(t, ok)
	assert.Equal(t, `{"0":{"status":"resolved"}}`, notes)
}

func TestFileStoreCorruptPayloadStartsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := OpenFile(path)
	require.NoError(t, err)
	_, ok := store.GetItem("document")
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	_, ok := store.GetItem("a")
	assert.False(t, ok)
	require.NoError(t, store.SetItem("a", "1"))
	got, ok := store.GetItem("a")
	require.True(t, ok)
	assert.Equal(t, "1", got)
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := OpenBadgerInMemory()
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.GetItem("missing")
	assert.False(t, ok)

	require.NoError(t, store.SetItem("document", "draft text"))
	got, ok := store.GetItem("document")
	require.True(t, ok)
	assert.Equal(t, "draft text", got)

	require.NoError(t, store.SetItem("document", "replaced"))
	got, _ = store.GetItem("document")
	assert.Equal(t, "replaced", got)
}
