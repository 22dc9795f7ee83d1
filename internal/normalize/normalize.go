// Package normalize reshapes a built asset tree to match the hosting
// platform's routing: pre-compressed files lose their compression suffix and
// the optional index directory is flattened into its parent.
//
// Nothing here is transactional. The first error aborts the walk and every
// rename applied before it stays applied; re-running is safe for Normalize
// because renamed files no longer carry the suffix.
package normalize

import (
	"context"
	"fmt"
	"io"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"

	"github.com/raoulx24/pages-prep/internal/fs"
	"github.com/raoulx24/pages-prep/internal/logging"
)

// DefaultSuffix marks brotli payloads produced by the asset build.
const DefaultSuffix = ".br"

// Rename is one applied move.
type Rename struct {
	Old string
	New string
}

type Normalizer struct {
	fs     fs.FS
	log    logging.Logger
	suffix string
	verify bool
}

type Option func(*Normalizer)

// WithSuffix overrides DefaultSuffix.
func WithSuffix(s string) Option {
	return func(n *Normalizer) { n.suffix = s }
}

// WithVerify decodes every payload as brotli before renaming it.
func WithVerify(v bool) Option {
	return func(n *Normalizer) { n.verify = v }
}

func New(filesystem fs.FS, log logging.Logger, opts ...Option) *Normalizer {
	if filesystem == nil {
		filesystem = fs.New()
	}
	n := &Normalizer{
		fs:     filesystem,
		log:    log,
		suffix: DefaultSuffix,
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Normalize walks rootDir depth-first and strips the suffix from every
// regular file carrying it.
func (n *Normalizer) Normalize(ctx context.Context, rootDir string) ([]Rename, error) {
	n.log.Debug("normalizing tree", "root", rootDir, "suffix", n.suffix)
	var done []Rename
	err := n.walk(ctx, rootDir, &done)
	return done, err
}

func (n *Normalizer) walk(ctx context.Context, dir string, done *[]Rename) error {
	entries, err := n.fs.ReadDir(dir)
	if err != nil {
		return fs.Wrap("readdir", dir, err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		p := filepath.Join(dir, e.Name)

		if e.IsDir {
			if err := n.walk(ctx, p, done); err != nil {
				return err
			}
			continue
		}

		if !e.IsRegular || !n.eligible(e.Name) {
			continue
		}

		if n.verify {
			if err := n.verifyPayload(p); err != nil {
				return err
			}
		}

		np := strings.TrimSuffix(p, n.suffix)
		if err := n.fs.Rename(ctx, p, np); err != nil {
			return fs.Wrap("rename", p, err)
		}
		n.log.Info("renamed", "old", p, "new", np)
		*done = append(*done, Rename{Old: p, New: np})
	}
	return nil
}

// eligible rejects a bare ".br" so a rename never produces an empty name.
func (n *Normalizer) eligible(name string) bool {
	return len(name) > len(n.suffix) && strings.HasSuffix(name, n.suffix)
}

func (n *Normalizer) verifyPayload(p string) error {
	f, err := n.fs.Open(p)
	if err != nil {
		return fs.Wrap("open", p, err)
	}
	defer f.Close()

	if _, err := io.Copy(io.Discard, brotli.NewReader(f)); err != nil {
		return fmt.Errorf("verifying %s: not a valid brotli stream: %w", p, err)
	}
	return nil
}

// Flatten moves every immediate entry of indexDir into its parent. Colliding
// names in the parent are overwritten in listing order, whether file or
// directory. An entry named like indexDir itself is refused. indexDir is left
// in place, empty.
func (n *Normalizer) Flatten(ctx context.Context, indexDir string) ([]Rename, error) {
	entries, err := n.fs.ReadDir(indexDir)
	if err != nil {
		return nil, fs.Wrap("readdir", indexDir, err)
	}

	cleanIndex := filepath.Clean(indexDir)
	parent := filepath.Dir(cleanIndex)
	var done []Rename
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return done, err
		}

		oldPath := filepath.Join(indexDir, e.Name)
		newPath := filepath.Join(parent, e.Name)
		// clearing the target would remove indexDir with its unmoved entries
		if newPath == cleanIndex {
			return done, &fs.IOError{Op: "rename", Path: oldPath, Err: iofs.ErrExist}
		}
		if err := fs.Replace(ctx, n.fs, oldPath, newPath); err != nil {
			return done, err
		}
		n.log.Info("renamed", "old", oldPath, "new", newPath)
		done = append(done, Rename{Old: oldPath, New: newPath})
	}
	return done, nil
}
