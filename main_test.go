package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"pocketbot/pkg/config"
	"pocketbot/pkg/lastq"
	"pocketbot/pkg/notes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOpenNoteStore_File(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadConfig(writeConfig(t, "notes:\n  dir: "+dir+"\n"))
	require.NoError(t, err)

	store, closeFn, err := openNoteStore(cfg, &config.Secrets{})
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &notes.FileStore{}, store)
}

func TestOpenNoteStore_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")
	cfg, err := config.LoadConfig(writeConfig(t, "notes:\n  backend: sqlite\n  sqlite_path: "+path+"\n"))
	require.NoError(t, err)

	store, closeFn, err := openNoteStore(cfg, &config.Secrets{})
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &notes.SQLiteStore{}, store)
	require.NoError(t, store.Append("1", "hello"))
}

func TestOpenNoteStore_SurrealNeedsHost(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, "notes:\n  backend: surreal\n"))
	require.NoError(t, err)

	_, _, err = openNoteStore(cfg, &config.Secrets{})
	assert.ErrorContains(t, err, "SURREAL_DB_HOST")
}

func TestOpenQuestionStore_Memory(t *testing.T) {
	cfg, err := config.LoadConfig("non_existent_config.yml")
	require.NoError(t, err)

	store, closeFn, err := openQuestionStore(cfg, &config.Secrets{})
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &lastq.MemoryStore{}, store)
}

func TestNotesCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, "notes:\n  dir: "+dir+"\n")

	store := notes.NewFileStore(dir)
	require.NoError(t, store.Append("42", "first"))
	require.NoError(t, store.Append("42", "second"))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"notes", "42", "--config", path})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "first\nsecond\n", out.String())
}

func TestNotesCommand_NoNotes(t *testing.T) {
	path := writeConfig(t, "notes:\n  dir: "+t.TempDir()+"\n")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"notes", "42", "--config", path})

	assert.ErrorIs(t, cmd.Execute(), notes.ErrNoNotes)
}
