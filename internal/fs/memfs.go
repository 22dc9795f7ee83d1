package fs

import (
	"bytes"
	"context"
	"io"
	iofs "io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemFS is an in-memory FS. Paths are cleaned with filepath.Clean and every
// parent directory is created implicitly when a file is added.
type MemFS struct {
	mu    sync.Mutex
	nodes map[string]*memNode
	clock func() time.Time

	// NoReplace makes Rename fail with ErrExist when the target exists,
	// mimicking a non-overwriting rename primitive.
	NoReplace bool
}

type memNode struct {
	dir   bool
	data  []byte
	mtime time.Time
}

func NewMem() *MemFS {
	return &MemFS{
		nodes: map[string]*memNode{},
		clock: time.Now,
	}
}

// AddFile creates or replaces a file, creating parent directories.
func (m *MemFS) AddFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	m.mkdirAllLocked(filepath.Dir(path))
	m.nodes[path] = &memNode{data: append([]byte(nil), data...), mtime: m.clock()}
}

// Files returns a snapshot of every file path and its content.
func (m *MemFS) Files() map[string][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := map[string][]byte{}
	for p, n := range m.nodes {
		if !n.dir {
			out[p] = append([]byte(nil), n.data...)
		}
	}
	return out
}

func (m *MemFS) ReadDir(dir string) ([]DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir = filepath.Clean(dir)
	n, ok := m.nodes[dir]
	if !ok {
		return nil, &IOError{Op: "readdir", Path: dir, Err: iofs.ErrNotExist}
	}
	if !n.dir {
		return nil, &IOError{Op: "readdir", Path: dir, Err: iofs.ErrInvalid}
	}

	var out []DirEntry
	for p, child := range m.nodes {
		if p == dir || filepath.Dir(p) != dir {
			continue
		}
		out = append(out, DirEntry{
			Name:      filepath.Base(p),
			IsDir:     child.dir,
			IsRegular: !child.dir,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemFS) Stat(path string) (FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	n, ok := m.nodes[path]
	if !ok {
		return FileInfo{}, &IOError{Op: "stat", Path: path, Err: iofs.ErrNotExist}
	}
	return FileInfo{
		Path:  path,
		Size:  int64(len(n.data)),
		MTime: n.mtime,
		IsDir: n.dir,
	}, nil
}

func (m *MemFS) Open(path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	n, ok := m.nodes[path]
	if !ok {
		return nil, &IOError{Op: "open", Path: path, Err: iofs.ErrNotExist}
	}
	if n.dir {
		return nil, &IOError{Op: "open", Path: path, Err: iofs.ErrInvalid}
	}
	return io.NopCloser(bytes.NewReader(append([]byte(nil), n.data...))), nil
}

func (m *MemFS) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	oldPath, newPath = filepath.Clean(oldPath), filepath.Clean(newPath)
	src, ok := m.nodes[oldPath]
	if !ok {
		return &IOError{Op: "rename", Path: oldPath, Err: iofs.ErrNotExist}
	}
	if oldPath == newPath {
		return nil
	}
	parent, ok := m.nodes[filepath.Dir(newPath)]
	if !ok || !parent.dir {
		return &IOError{Op: "rename", Path: newPath, Err: iofs.ErrNotExist}
	}

	if dst, exists := m.nodes[newPath]; exists {
		if m.NoReplace {
			return &IOError{Op: "rename", Path: newPath, Err: iofs.ErrExist}
		}
		if dst.dir != src.dir || (dst.dir && m.hasChildrenLocked(newPath)) {
			return &IOError{Op: "rename", Path: newPath, Err: iofs.ErrExist}
		}
	}

	moved := map[string]*memNode{}
	prefix := oldPath + string(filepath.Separator)
	for p, n := range m.nodes {
		if p == oldPath {
			moved[newPath] = n
			delete(m.nodes, p)
		} else if strings.HasPrefix(p, prefix) {
			moved[newPath+string(filepath.Separator)+strings.TrimPrefix(p, prefix)] = n
			delete(m.nodes, p)
		}
	}
	for p, n := range moved {
		m.nodes[p] = n
	}
	return nil
}

func (m *MemFS) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	parent, ok := m.nodes[filepath.Dir(path)]
	if !ok || !parent.dir {
		return &IOError{Op: "write", Path: path, Err: iofs.ErrNotExist}
	}
	if n, ok := m.nodes[path]; ok && n.dir {
		return &IOError{Op: "write", Path: path, Err: iofs.ErrExist}
	}
	m.nodes[path] = &memNode{data: append([]byte(nil), data...), mtime: m.clock()}
	return nil
}

func (m *MemFS) MkdirAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if n, ok := m.nodes[path]; ok && !n.dir {
		return &IOError{Op: "mkdir", Path: path, Err: iofs.ErrExist}
	}
	m.mkdirAllLocked(path)
	return nil
}

func (m *MemFS) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	prefix := path + string(filepath.Separator)
	for p := range m.nodes {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(m.nodes, p)
		}
	}
	return nil
}

func (m *MemFS) mkdirAllLocked(path string) {
	for {
		if _, ok := m.nodes[path]; ok {
			return
		}
		m.nodes[path] = &memNode{dir: true, mtime: m.clock()}
		parent := filepath.Dir(path)
		if parent == path {
			return
		}
		path = parent
	}
}

func (m *MemFS) hasChildrenLocked(dir string) bool {
	prefix := dir + string(filepath.Separator)
	for p := range m.nodes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
