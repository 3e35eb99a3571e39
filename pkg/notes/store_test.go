package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore checks the behaviour every backend shares.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()

	t.Run("no notes yet", func(t *testing.T) {
		lines, err := store.ReadAll("111")
		assert.ErrorIs(t, err, ErrNoNotes)
		assert.Nil(t, lines)
	})

	t.Run("append order is preserved", func(t *testing.T) {
		contents := []string{"buy milk", "call mom", "buy milk", "finish report: due friday"}
		for _, c := range contents {
			require.NoError(t, store.Append("222", c))
		}

		lines, err := store.ReadAll("222")
		require.NoError(t, err)
		assert.Equal(t, contents, lines)
	})

	t.Run("users are isolated", func(t *testing.T) {
		require.NoError(t, store.Append("333", "mine"))
		require.NoError(t, store.Append("444", "yours"))

		lines, err := store.ReadAll("333")
		require.NoError(t, err)
		assert.Equal(t, []string{"mine"}, lines)

		lines, err = store.ReadAll("444")
		require.NoError(t, err)
		assert.Equal(t, []string{"yours"}, lines)
	})

	t.Run("rejects path-like user ids", func(t *testing.T) {
		assert.Error(t, store.Append("../etc/passwd", "x"))
		_, err := store.ReadAll("a/b")
		assert.Error(t, err)
	})
}

func TestFileStore(t *testing.T) {
	exerciseStore(t, NewFileStore(t.TempDir()))
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	require.NoError(t, store.Append("123456789", "first"))
	require.NoError(t, store.Append("123456789", "second"))

	path := filepath.Join(dir, "notes_123456789.txt")
	assert.Equal(t, path, store.Path("123456789"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestFileStore_AppendsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes_42.txt")
	require.NoError(t, os.WriteFile(path, []byte("from before\n"), 0644))

	store := NewFileStore(dir)
	require.NoError(t, store.Append("42", "new"))

	lines, err := store.ReadAll("42")
	require.NoError(t, err)
	assert.Equal(t, []string{"from before", "new"}, lines)
}

func TestFileStore_ConcurrentAppends(t *testing.T) {
	store := NewFileStore(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Append("7", fmt.Sprintf("note %02d", i)))
		}(i)
	}
	wg.Wait()

	lines, err := store.ReadAll("7")
	require.NoError(t, err)
	require.Len(t, lines, 20)

	sort.Strings(lines)
	for i, l := range lines {
		assert.Equal(t, fmt.Sprintf("note %02d", i), l)
	}
}

func TestFileStore_LongLine(t *testing.T) {
	store := NewFileStore(t.TempDir())
	long := strings.Repeat("x", 100*1024)

	require.NoError(t, store.Append("8", long))
	lines, err := store.ReadAll("8")
	require.NoError(t, err)
	assert.Equal(t, []string{long}, lines)
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "notes.db"))
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Append("9", "persisted"))
	require.NoError(t, store.Close())

	store, err = OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()

	lines, err := store.ReadAll("9")
	require.NoError(t, err)
	assert.Equal(t, []string{"persisted"}, lines)
}
