package fs

import (
	"context"
	"errors"
	iofs "io/fs"
)

// Replace renames oldPath to newPath, clearing newPath first when a plain
// rename would refuse it: a populated directory target, or a file and a
// directory on either side. Two files are left to Rename, which overwrites.
func Replace(ctx context.Context, fsys FS, oldPath, newPath string) error {
	src, err := fsys.Stat(oldPath)
	if err != nil {
		return Wrap("rename", oldPath, err)
	}

	dst, err := fsys.Stat(newPath)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
	case err != nil:
		return Wrap("rename", newPath, err)
	case src.IsDir || dst.IsDir:
		if err := fsys.RemoveAll(newPath); err != nil {
			return Wrap("remove", newPath, err)
		}
	}

	return Wrap("rename", oldPath, fsys.Rename(ctx, oldPath, newPath))
}
