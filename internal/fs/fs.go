// Package fs defines the filesystem abstraction used by pages-prep.
// It provides the FS interface, the DirEntry and FileInfo types shared across
// the system, a disk-backed implementation and an in-memory one for tests.
package fs

import (
	"context"
	"io"
	"time"
)

type DirEntry struct {
	Name      string
	IsDir     bool
	IsRegular bool
}

type FileInfo struct {
	Path  string
	Size  int64
	MTime time.Time
	IsDir bool
	Inode uint64
}

type FS interface {
	ReadDir(dir string) ([]DirEntry, error)
	Stat(path string) (FileInfo, error)
	Open(path string) (io.ReadCloser, error)
	Rename(ctx context.Context, oldPath, newPath string) error
	WriteFile(ctx context.Context, path string, data []byte) error
	MkdirAll(path string) error
	RemoveAll(path string) error
}

// Changed reports whether a file looks different between two stats.
func Changed(orig, now FileInfo) bool {
	if now.Inode != 0 && orig.Inode != 0 && now.Inode != orig.Inode {
		return true
	}
	if !now.MTime.Equal(orig.MTime) {
		return true
	}
	return now.Size != orig.Size
}
