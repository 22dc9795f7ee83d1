package watcher

import (
	"time"

	"github.com/raoulx24/pages-prep/internal/fs"
)

// detect posts a trigger if the stamp file differs from the last one seen.
func (w *Watcher) detect() {
	w.mu.RLock()
	path := w.triggerPath()
	last := w.last
	w.mu.RUnlock()

	info, err := w.fs.Stat(path)
	if err != nil {
		w.log.Debug("trigger not present", "path", path, "error", err)
		return
	}

	if !fs.Changed(last, info) {
		return
	}

	w.mu.Lock()
	w.last = info
	w.mu.Unlock()

	w.log.Info("build stamp changed", "path", path)
	w.mb.Put(Trigger{Path: path, At: time.Now()})
}
