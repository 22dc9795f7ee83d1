// Package limits checks a prepared deployment against the hosting platform's
// ceilings: 20000 files, 2000 redirect rules and 100 header rules.
package limits

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/raoulx24/pages-prep/internal/fs"
)

// Limits are the ceilings. Zero disables a check.
type Limits struct {
	Files     int
	Redirects int
	Headers   int
}

type Counts struct {
	Files     int
	Redirects int
	Headers   int
}

var ErrLimitExceeded = errors.New("platform limit exceeded")

// Check returns one joined error naming every ceiling that c exceeds.
func Check(c Counts, l Limits) error {
	var errs []error
	check := func(what string, got, max int) {
		if max > 0 && got > max {
			errs = append(errs, fmt.Errorf("%w: %d %s (max %d)", ErrLimitExceeded, got, what, max))
		}
	}
	check("files", c.Files, l.Files)
	check("redirect rules", c.Redirects, l.Redirects)
	check("header rules", c.Headers, l.Headers)
	return errors.Join(errs...)
}

// CountFiles counts regular files under root, recursively.
func CountFiles(fsys fs.FS, root string) (int, error) {
	entries, err := fsys.ReadDir(root)
	if err != nil {
		return 0, fs.Wrap("readdir", root, err)
	}

	n := 0
	for _, e := range entries {
		switch {
		case e.IsDir:
			sub, err := CountFiles(fsys, filepath.Join(root, e.Name))
			if err != nil {
				return 0, err
			}
			n += sub
		case e.IsRegular:
			n++
		}
	}
	return n, nil
}
