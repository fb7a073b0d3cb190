package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-reckon/reckon/errors"
	"github.com/stretchr/testify/require"
)

func TestFileWriterWritesLines(t *testing.T) {
	dir := t.TempDir()
	w, err := CreateFileWriter(dir)
	require.Nil(t, err)

	location, err := w.WriteLines("vocab", []string{"2 a", "1 b"})
	require.Nil(t, err)
	require.Equal(t, filepath.Join(dir, "vocab"), location)

	data, err := os.ReadFile(location)
	require.Nil(t, err)
	require.Equal(t, "2 a\n1 b\n", string(data))
}

func TestFileWriterLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := CreateFileWriter(dir)
	require.Nil(t, err)
	_, err = w.WriteLines("vocab", []string{"a"})
	require.Nil(t, err)

	entries, err := os.ReadDir(dir)
	require.Nil(t, err)
	require.Equal(t, 1, len(entries))
	require.Equal(t, "vocab", entries[0].Name())
}

func TestFileWriterOverwrites(t *testing.T) {
	dir := t.TempDir()
	w, err := CreateFileWriter(dir)
	require.Nil(t, err)
	_, err = w.WriteLines("vocab", []string{"old"})
	require.Nil(t, err)
	location, err := w.WriteLines("vocab", []string{"new"})
	require.Nil(t, err)

	data, err := os.ReadFile(location)
	require.Nil(t, err)
	require.Equal(t, "new\n", string(data))
}

func TestFileWriterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deeper")
	w, err := CreateFileWriter(dir)
	require.Nil(t, err)
	_, err = w.WriteLines("vocab", []string{"a"})
	require.Nil(t, err)
}

func TestCreateFileWriterFailsOnUnusableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.Nil(t, os.WriteFile(blocker, []byte("x"), 0644))
	_, err := CreateFileWriter(filepath.Join(blocker, "out"))
	require.NotNil(t, err)
	require.IsType(t, errors.ArtifactWriteError{}, err)
}
