package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// OSFS is the concrete implementation of FS backed by the local filesystem.
// Platform-specific details (such as inode extraction) are handled in
// build-tagged files.
type OSFS struct{}

func New() *OSFS {
	return &OSFS{}
}

func (o *OSFS) ReadDir(dir string) ([]DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, Wrap("readdir", dir, err)
	}

	out := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		mode := e.Type()
		if mode&os.ModeSymlink != 0 {
			// links report their target, so linked dirs are walked and
			// linked files are renamed (the link itself moves)
			p := filepath.Join(dir, e.Name())
			st, err := os.Stat(p)
			if err != nil {
				return nil, Wrap("stat", p, err)
			}
			mode = st.Mode().Type()
		}
		out = append(out, DirEntry{
			Name:      e.Name(),
			IsDir:     mode.IsDir(),
			IsRegular: mode.IsRegular(),
		})
	}
	return out, nil
}

func (o *OSFS) Stat(path string) (FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, Wrap("stat", path, err)
	}

	return FileInfo{
		Path:  path,
		Size:  st.Size(),
		MTime: st.ModTime(),
		IsDir: st.IsDir(),
		Inode: inodeOf(st),
	}, nil
}

func (o *OSFS) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Wrap("open", path, err)
	}
	return f, nil
}

func (o *OSFS) MkdirAll(path string) error {
	return Wrap("mkdir", path, os.MkdirAll(path, 0o755))
}

func (o *OSFS) RemoveAll(path string) error {
	return Wrap("remove", path, os.RemoveAll(path))
}

func (o *OSFS) Rename(ctx context.Context, oldPath, newPath string) error {
	return renameWithRetry(ctx, oldPath, newPath)
}

func (o *OSFS) WriteFile(ctx context.Context, path string, data []byte) error {
	return writeAtomic(ctx, path, data)
}
