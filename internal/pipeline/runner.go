package pipeline

import (
	"context"

	"github.com/raoulx24/pages-prep/internal/mailbox"
	"github.com/raoulx24/pages-prep/internal/watcher"
)

// Start runs a pass for every trigger until ctx ends. A failed pass is logged
// and the loop waits for the next build.
func (p *Pipeline) Start(ctx context.Context, triggers *mailbox.Mailbox[watcher.Trigger]) {
	p.log.Info("waiting for builds")
	for {
		tr, ok := triggers.Take(ctx)
		if !ok {
			return
		}
		p.log.Debug("trigger received", "path", tr.Path, "at", tr.At)
		if _, err := p.Run(ctx); err != nil {
			p.log.Error("preparation failed", "error", err)
		}
	}
}
