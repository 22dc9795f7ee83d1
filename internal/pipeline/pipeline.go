// Package pipeline runs one preparation pass over a built asset tree:
// flatten index, normalize app, write _headers and _redirects.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/raoulx24/pages-prep/internal/config"
	"github.com/raoulx24/pages-prep/internal/fs"
	"github.com/raoulx24/pages-prep/internal/limits"
	"github.com/raoulx24/pages-prep/internal/logging"
	"github.com/raoulx24/pages-prep/internal/normalize"
	"github.com/raoulx24/pages-prep/internal/rules"
)

const (
	HeadersFile   = "_headers"
	RedirectsFile = "_redirects"
	AppDir        = "app"
	IndexDir      = "index"
)

// Report summarizes one run.
type Report struct {
	Flattened   []normalize.Rename
	Renamed     []normalize.Rename
	HeaderRules int
	Redirects   int
	Files       int
}

// Pipeline holds the configuration of a run. It is safe to call UpdateConfig
// while another goroutine waits to call Run.
type Pipeline struct {
	mu  sync.RWMutex
	cfg *config.Config
	fs  fs.FS
	log logging.Logger
	now func() time.Time
}

// New creates a pipeline. A nil filesystem selects the local disk.
func New(cfg *config.Config, log logging.Logger, filesystem fs.FS) *Pipeline {
	log.Debug("creating pipeline")
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Pipeline{
		cfg: cfg,
		fs:  filesystem,
		log: log,
		now: time.Now,
	}
}

func (p *Pipeline) UpdateConfig(cfg *config.Config) {
	p.log.Debug("entering Pipeline.UpdateConfig()")
	p.mu.Lock()
	p.cfg = cfg
	p.mu.Unlock()
}

// Run executes the pass. The first failure stops it; earlier renames stay.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	p.mu.RLock()
	cfg := p.cfg
	p.mu.RUnlock()

	var rep Report
	n := normalize.New(p.fs, p.log,
		normalize.WithSuffix(cfg.Suffix),
		normalize.WithVerify(cfg.Verify),
	)

	if cfg.FlattenIndex {
		flattened, err := n.Flatten(ctx, filepath.Join(cfg.Root, IndexDir))
		rep.Flattened = flattened
		if err != nil {
			return rep, fmt.Errorf("flattening index: %w", err)
		}
	}

	renamed, err := n.Normalize(ctx, filepath.Join(cfg.Root, AppDir))
	rep.Renamed = renamed
	if err != nil {
		return rep, fmt.Errorf("normalizing app: %w", err)
	}

	redirects := rules.Redirects(RedirectParams(cfg))
	if err := rules.ValidateRedirectOrder(redirects); err != nil {
		return rep, err
	}
	headers := rules.Headers(HeaderParams(cfg, p.now()))
	rep.Redirects = len(redirects)
	rep.HeaderRules = len(headers)

	files, err := limits.CountFiles(p.fs, cfg.Root)
	if err != nil {
		return rep, fmt.Errorf("counting files: %w", err)
	}
	rep.Files = files

	if err := limits.Check(limits.Counts{
		Files:     files,
		Redirects: len(redirects),
		Headers:   len(headers),
	}, limits.Limits(cfg.Limits)); err != nil {
		return rep, err
	}

	if err := p.fs.MkdirAll(cfg.Output); err != nil {
		return rep, fmt.Errorf("creating output dir: %w", err)
	}

	redirectsText := rules.RenderRedirects(redirects)
	p.log.Info(fmt.Sprintf("creating %s file with %d rules", RedirectsFile, len(redirects)))
	p.log.Debug("redirects", "content", redirectsText)
	if err := p.fs.WriteFile(ctx, filepath.Join(cfg.Output, RedirectsFile), []byte(redirectsText)); err != nil {
		return rep, fmt.Errorf("writing %s: %w", RedirectsFile, err)
	}

	headersText := rules.RenderHeaders(headers)
	p.log.Info(fmt.Sprintf("creating %s file with %d rules", HeadersFile, len(headers)))
	p.log.Debug("headers", "content", headersText)
	if err := p.fs.WriteFile(ctx, filepath.Join(cfg.Output, HeadersFile), []byte(headersText)); err != nil {
		return rep, fmt.Errorf("writing %s: %w", HeadersFile, err)
	}

	p.log.Info("prepared asset tree",
		"root", cfg.Root,
		"release", cfg.Release,
		"renamed", len(rep.Renamed),
		"flattened", len(rep.Flattened),
		"files", rep.Files,
	)
	return rep, nil
}

// HeaderParams maps configuration onto the _headers generator.
func HeaderParams(cfg *config.Config, now time.Time) rules.HeaderParams {
	return rules.HeaderParams{
		Types:             cfg.Types,
		Version:           cfg.Release,
		CanonicalBase:     cfg.Headers.CanonicalBase,
		Now:               now,
		MaxAge:            cfg.Headers.MaxAge,
		Encoding:          cfg.Headers.Encoding,
		EncodedExtensions: cfg.Headers.EncodedExtensions,
		DirectoryIndex:    cfg.Headers.DirectoryIndex,
	}
}

// RedirectParams maps configuration onto the _redirects generator.
func RedirectParams(cfg *config.Config) rules.RedirectParams {
	rp := rules.RedirectParams{
		Types:   cfg.Types,
		Version: cfg.Release,
		Favicon: rules.Redirect{
			From:   cfg.Redirects.Favicon.From,
			To:     cfg.Redirects.Favicon.To,
			Status: cfg.Redirects.Favicon.Status,
		},
	}
	for _, rw := range cfg.Redirects.Rewrites {
		rp.Rewrites = append(rp.Rewrites, rules.Rewrite{From: rw.From, To: rw.To})
	}
	return rp
}
