package fs

import (
	"context"
	"os"
	"path/filepath"
)

// renameWithRetry wraps os.Rename with retry logic.
func renameWithRetry(ctx context.Context, oldPath, newPath string) error {
	err := retry(ctx, "rename", func() error {
		return os.Rename(oldPath, newPath)
	})
	return Wrap("rename", oldPath, err)
}

// writeAtomic writes data next to path and renames it into place, so readers
// never observe a half-written rules file.
func writeAtomic(ctx context.Context, path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return Wrap("write", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return Wrap("write", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return Wrap("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return Wrap("write", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return Wrap("write", path, err)
	}

	if err := retry(ctx, "write", func() error {
		return os.Rename(tmpName, path)
	}); err != nil {
		_ = os.Remove(tmpName)
		return Wrap("write", path, err)
	}
	return nil
}
