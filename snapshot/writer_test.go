// ABOUTME: Tests for the snapshot file writer and reader
// ABOUTME: Validates directory creation, extension handling, and clean failures

package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteCreatesParentDirs(t *testing.T) {
	snap := testSnapshot(t)
	dest := filepath.Join(t.TempDir(), "dumps", "nested", "heap_dump_0.json")

	path, err := Write(snap, dest, "")
	require.NoError(t, err)
	require.Equal(t, dest, path)

	back, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, snap.Len(), back.Len())
}

func TestWriteAppendsJSONExtension(t *testing.T) {
	snap := testSnapshot(t)
	dest := filepath.Join(t.TempDir(), "heap_dump_7")

	path, err := Write(snap, dest, "")
	require.NoError(t, err)
	require.Equal(t, dest+".json", path)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestWriteFailureLeavesNoPartialFile(t *testing.T) {
	snap := testSnapshot(t)

	// A regular file blocks directory creation below it.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	dest := filepath.Join(blocker, "sub", "heap_dump.json")

	_, err := Write(snap, dest, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to create dump directory")

	_, statErr := os.Stat(dest)
	require.Error(t, statErr)
}

func TestWriteUnknownCodec(t *testing.T) {
	snap := testSnapshot(t)
	_, err := Write(snap, filepath.Join(t.TempDir(), "d.json"), "xml")
	require.ErrorIs(t, err, ErrNoCodec)
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	snap := testSnapshot(t)
	dir := t.TempDir()

	_, err := Write(snap, filepath.Join(dir, "dump.json"), "")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "dump.json", entries[0].Name())
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
