package saved

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/askdb/internal/storage"
)

// mirror decodes what the store last wrote to kv
func mirror(t *testing.T, kv storage.KV) []SavedQuery {
	t.Helper()
	raw, ok, err := kv.Get(StorageKey)
	require.NoError(t, err)
	require.True(t, ok, "nothing persisted")
	var out []SavedQuery
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func seeded(t *testing.T, kv storage.KV, n int) *Store {
	t.Helper()
	s := NewStore(kv)
	for i := 0; i < n; i++ {
		require.NoError(t, s.Save(string(rune('a'+i)), "SELECT "+string(rune('0'+i))))
	}
	return s
}

func TestSaveAppendsAndPersists(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv)

	require.NoError(t, s.Save("how many users", "SELECT COUNT(*) FROM users"))
	require.NoError(t, s.Save("latest order", "SELECT * FROM orders ORDER BY id DESC LIMIT 1"))

	want := []SavedQuery{
		{Description: "how many users", SQL: "SELECT COUNT(*) FROM users"},
		{Description: "latest order", SQL: "SELECT * FROM orders ORDER BY id DESC LIMIT 1"},
	}
	assert.Equal(t, want, s.List())
	assert.Equal(t, want, mirror(t, kv))
}

func TestPersistedFormat(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv)
	require.NoError(t, s.Save("d", "SELECT 1"))

	raw, _, err := kv.Get(StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"desc":"d","sql":"SELECT 1"}]`, raw)
}

func TestLoadRoundTripInFreshSession(t *testing.T) {
	kv := storage.NewMemory()
	before := seeded(t, kv, 3).List()

	fresh := NewStore(kv)
	require.NoError(t, fresh.Load())
	assert.Equal(t, before, fresh.List())
}

func TestLoadWithoutPersistedKeyIsEmpty(t *testing.T) {
	s := NewStore(storage.NewMemory())
	require.NoError(t, s.Load())
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.List())
}

func TestLoadCorruptMirror(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(StorageKey, "{not json"))

	s := NewStore(kv)
	assert.Error(t, s.Load())
	assert.Equal(t, 0, s.Len())
}

func TestRemoveShiftsFollowingEntries(t *testing.T) {
	kv := storage.NewMemory()
	s := seeded(t, kv, 4)
	before := s.List()

	ok, err := s.Remove(1)
	require.NoError(t, err)
	assert.True(t, ok)

	after := s.List()
	require.Len(t, after, len(before)-1)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[1])
	assert.Equal(t, before[3], after[2])
	assert.Equal(t, after, mirror(t, kv))
}

func TestRemoveLastEntryPersistsEmptyList(t *testing.T) {
	kv := storage.NewMemory()
	s := seeded(t, kv, 1)

	ok, err := s.Remove(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []SavedQuery{}, mirror(t, kv))
}

func TestRemoveOutOfRangeIsNoop(t *testing.T) {
	kv := storage.NewMemory()
	s := seeded(t, kv, 2)
	before := s.List()

	for _, i := range []int{-1, 2, 100} {
		ok, err := s.Remove(i)
		require.NoError(t, err)
		assert.False(t, ok, "index %d", i)
	}
	assert.Equal(t, before, s.List())
	assert.Equal(t, before, mirror(t, kv))
}

func TestGet(t *testing.T) {
	s := seeded(t, storage.NewMemory(), 2)

	q, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, SavedQuery{Description: "b", SQL: "SELECT 1"}, q)

	_, ok = s.Get(2)
	assert.False(t, ok)
	_, ok = s.Get(-1)
	assert.False(t, ok)
}

func TestListReturnsCopy(t *testing.T) {
	s := seeded(t, storage.NewMemory(), 1)
	list := s.List()
	list[0].SQL = "DROP TABLE users"

	q, _ := s.Get(0)
	assert.Equal(t, "SELECT 0", q.SQL)
}

type failingKV struct {
	*storage.Memory
	fail bool
}

func (f *failingKV) Set(key, value string) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Memory.Set(key, value)
}

func TestFailedWriteRollsBack(t *testing.T) {
	kv := &failingKV{Memory: storage.NewMemory()}
	s := seeded(t, kv, 2)
	before := s.List()

	kv.fail = true
	err := s.Save("c", "SELECT 3")
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, before, s.List())

	ok, err := s.Remove(0)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, s.List())

	kv.fail = false
	assert.Equal(t, before, mirror(t, kv))
}

func TestSQLiteBackedRoundTrip(t *testing.T) {
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	s := seeded(t, db, 2)
	_, err = s.Remove(0)
	require.NoError(t, err)

	fresh := NewStore(db)
	require.NoError(t, fresh.Load())
	assert.Equal(t, s.List(), fresh.List())
}
