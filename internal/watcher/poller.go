package watcher

import (
	"context"
	"time"
)

// StartPolling triggers detect() on a fixed interval. It returns nil when ctx
// ends and errReload after UpdateConfig.
func (w *Watcher) StartPolling(ctx context.Context) error {
	w.mu.RLock()
	interval := w.interval
	w.mu.RUnlock()
	if interval <= 0 {
		interval = 2 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.reload:
			return errReload
		case <-ticker.C:
			w.detect()
		}
	}
}
