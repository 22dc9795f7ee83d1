// Package watcher monitors the asset root and emits a trigger whenever the
// external build touches its stamp file.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/raoulx24/pages-prep/internal/config"
	"github.com/raoulx24/pages-prep/internal/fs"
	"github.com/raoulx24/pages-prep/internal/fsprobe"
	"github.com/raoulx24/pages-prep/internal/logging"
	"github.com/raoulx24/pages-prep/internal/mailbox"
)

// Trigger asks the runner for a new preparation pass.
type Trigger struct {
	Path string
	At   time.Time
}

// Watcher observes the trigger file and posts a Trigger when it changes.
type Watcher struct {
	mu sync.RWMutex

	root     string
	trigger  string
	interval time.Duration
	mode     string
	debounce time.Duration

	fs  fs.FS
	log logging.Logger

	last fs.FileInfo

	mb     *mailbox.Mailbox[Trigger]
	reload chan struct{}
}

// New creates a watcher for root. A nil filesystem selects the local disk.
func New(root string, cfg config.WatchConfig, log logging.Logger, mb *mailbox.Mailbox[Trigger], filesystem fs.FS) *Watcher {
	if filesystem == nil {
		filesystem = fs.New()
	}
	w := &Watcher{
		root:     root,
		trigger:  cfg.Trigger,
		interval: cfg.PollInterval,
		mode:     cfg.Mode,
		debounce: cfg.DebounceWindow,
		fs:       filesystem,
		log:      log,
		mb:       mb,
		reload:   make(chan struct{}, 1),
	}
	// the current stamp is what the initial run already covered
	w.last, _ = filesystem.Stat(w.triggerPath())
	return w
}

// errReload ends the current watch loop so Start picks up new config.
var errReload = errors.New("watcher: config reloaded")

// Start chooses the watching strategy from config and blocks until ctx ends.
// UpdateConfig restarts the strategy with the new root, trigger and mode.
func (w *Watcher) Start(ctx context.Context) error {
	for {
		err := w.run(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if !errors.Is(err, errReload) {
			return err
		}
		w.log.Info("watch restarted after config reload")
	}
}

func (w *Watcher) run(ctx context.Context) error {
	w.mu.RLock()
	mode, root := w.mode, w.root
	w.mu.RUnlock()

	switch mode {
	case "fsnotify":
		return w.StartFsNotify(ctx)

	case "poll":
		return w.StartPolling(ctx)

	case "", "auto":
		res := fsprobe.Probe(root, 200*time.Millisecond)
		if res.FsnotifySupported {
			return w.StartFsNotify(ctx)
		}
		w.log.Info("fsnotify disabled, polling", "reason", res.Reason)
		return w.StartPolling(ctx)

	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func (w *Watcher) triggerPath() string {
	return filepath.Join(w.root, w.trigger)
}
