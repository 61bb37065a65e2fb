package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKV(t *testing.T, kv KV) {
	t.Helper()

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("k", `[{"desc":"a","sql":"SELECT 1"}]`))
	v, ok, err := kv.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"desc":"a","sql":"SELECT 1"}]`, v)

	require.NoError(t, kv.Set("k", "[]"))
	v, _, err = kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestSQLiteStore(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	testKV(t, s)
}

func TestMemoryStore(t *testing.T) {
	testKV(t, NewMemory())
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "askdb.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("saved_queries", `[{"desc":"q","sql":"SELECT 2"}]`))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get("saved_queries")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"desc":"q","sql":"SELECT 2"}]`, v)
}
