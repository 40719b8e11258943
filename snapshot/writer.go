// ABOUTME: File writer and reader for assembled snapshots
// ABOUTME: Creates parent directories and writes atomically via rename

package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write serializes snap to dest using the named codec ("" selects json).
// A destination without an extension gets ".json" appended. Parent
// directories are created as needed. The file is written to a temporary
// name in the destination directory and renamed into place, so a failed
// write never leaves a partial dump behind. Returns the final path.
func Write(snap *Snapshot, dest string, codecName string) (string, error) {
	if codecName == "" {
		codecName = "json"
	}
	codec, err := LookupCodec(codecName)
	if err != nil {
		return "", err
	}

	if filepath.Ext(dest) == "" {
		dest += ".json"
	}
	dir := filepath.Dir(dest)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create dump directory %q: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(dest)+".tmp*")
	if err != nil {
		return "", fmt.Errorf("failed to create dump file in %q: %w", dir, err)
	}
	tmpName := tmp.Name()

	if err := codec.Encode(tmp, snap); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to flush dump file: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to move dump into place at %q: %w", dest, err)
	}
	return dest, nil
}

// Read opens the dump file at path and decodes it with whichever codec
// recognizes the format.
func Read(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dump %q: %w", path, err)
	}
	defer f.Close()
	return Open(f)
}
