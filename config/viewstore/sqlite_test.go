package viewstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates an in-memory SQLiteStore with a fixed clock.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	store.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(View{Document: "/docs/a.md", Open: []int{0, 2}, Focused: 2, Mode: "free"}))

	got, err := store.Load("/docs/a.md")
	require.NoError(t, err)
	assert.Equal(t, View{
		Document:  "/docs/a.md",
		Open:      []int{0, 2},
		Focused:   2,
		Mode:      "free",
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}, got)
}

func TestSQLiteStore_SaveReplaces(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(View{Document: "a.md", Open: []int{1}, Focused: 1}))
	require.NoError(t, store.Save(View{Document: "a.md", Focused: -1}))

	got, err := store.Load("a.md")
	require.NoError(t, err)
	assert.Empty(t, got.Open)
	assert.Equal(t, -1, got.Focused)

	views, err := store.List()
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestSQLiteStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load("nope.md")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_SaveRequiresDocument(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.Save(View{}))
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(View{Document: "b.md"}))
	require.NoError(t, store.Save(View{Document: "a.md"}))

	views, err := store.List()
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "a.md", views[0].Document)

	require.NoError(t, store.Delete("a.md"))
	require.NoError(t, store.Delete("a.md"))
	_, err = store.Load("a.md")
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := store.DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSQLiteStore_FileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "views.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(View{Document: "a.md", Open: []int{3}}))
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()
	got, err := store.Load("a.md")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, got.Open)
}

func TestParseIndices(t *testing.T) {
	assert.Nil(t, parseIndices(""))
	assert.Equal(t, []int{0, 4}, parseIndices("0, x,4,-1"))
	assert.Equal(t, "1,2", formatIndices([]int{1, 2}))
}
