package watcher

import (
	"path/filepath"

	"github.com/raoulx24/pages-prep/internal/config"
	"github.com/raoulx24/pages-prep/internal/fs"
)

// UpdateConfig updates watcher fields for hot-reload and restarts the running
// watch loop, so a new root or trigger directory is watched from then on.
func (w *Watcher) UpdateConfig(root string, cfg config.WatchConfig) {
	w.mu.Lock()
	defer w.mu.Unlock()

	triggerChanged := filepath.Join(root, cfg.Trigger) != w.triggerPath()

	w.root = root
	w.trigger = cfg.Trigger
	w.interval = cfg.PollInterval
	w.mode = cfg.Mode
	w.debounce = cfg.DebounceWindow

	if triggerChanged {
		w.last = fs.FileInfo{}
	}

	select {
	case w.reload <- struct{}{}:
	default:
	}
}
