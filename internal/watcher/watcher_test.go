package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/pages-prep/internal/config"
	"github.com/raoulx24/pages-prep/internal/fs"
	"github.com/raoulx24/pages-prep/internal/logging"
	"github.com/raoulx24/pages-prep/internal/mailbox"
)

func watchConfig(mode string) config.WatchConfig {
	return config.WatchConfig{
		Mode:           mode,
		Trigger:        ".build-stamp",
		PollInterval:   10 * time.Millisecond,
		DebounceWindow: 10 * time.Millisecond,
	}
}

func TestDetectPostsOnlyOnChange(t *testing.T) {
	m := fs.NewMem()
	require.NoError(t, m.MkdirAll("site"))
	mb := mailbox.New[Trigger]()
	w := New("site", watchConfig("poll"), logging.Nop(), mb, m)

	w.detect()
	assert.False(t, mb.Pending(), "no stamp yet")

	m.AddFile("site/.build-stamp", []byte("1"))
	w.detect()
	tr, ok := mb.TryTake()
	require.True(t, ok)
	assert.Equal(t, filepath.Join("site", ".build-stamp"), tr.Path)

	w.detect()
	assert.False(t, mb.Pending(), "unchanged stamp")

	m.AddFile("site/.build-stamp", []byte("22"))
	w.detect()
	assert.True(t, mb.Pending())
}

func TestExistingStampDoesNotTrigger(t *testing.T) {
	m := fs.NewMem()
	m.AddFile("site/.build-stamp", []byte("1"))
	mb := mailbox.New[Trigger]()

	w := New("site", watchConfig("poll"), logging.Nop(), mb, m)
	w.detect()
	assert.False(t, mb.Pending())
}

func TestUpdateConfigResetsOnNewTrigger(t *testing.T) {
	m := fs.NewMem()
	m.AddFile("site/.build-stamp", []byte("1"))
	m.AddFile("site/done", []byte("1"))
	mb := mailbox.New[Trigger]()
	w := New("site", watchConfig("poll"), logging.Nop(), mb, m)

	cfg := watchConfig("poll")
	cfg.Trigger = "done"
	w.UpdateConfig("site", cfg)

	w.detect()
	tr, ok := mb.TryTake()
	require.True(t, ok)
	assert.Equal(t, filepath.Join("site", "done"), tr.Path)
}

func TestPollingOnDisk(t *testing.T) {
	root := t.TempDir()
	mb := mailbox.New[Trigger]()
	w := New(root, watchConfig("poll"), logging.Nop(), mb, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go func() { _ = w.Start(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(root, ".build-stamp"), []byte("done"), 0o644))

	_, ok := mb.Take(ctx)
	assert.True(t, ok)
}

func TestStartUnknownMode(t *testing.T) {
	w := New(t.TempDir(), watchConfig("inotify"), logging.Nop(), mailbox.New[Trigger](), nil)
	assert.ErrorContains(t, w.Start(context.Background()), `unknown mode "inotify"`)
}

func waitForTrigger(t *testing.T, mb *mailbox.Mailbox[Trigger], stamp string) Trigger {
	t.Helper()
	// keep rewriting the stamp: the restarted loop may not be watching yet
	n := 0
	require.Eventually(t, func() bool {
		n++
		_ = os.WriteFile(stamp, []byte(strings.Repeat("x", n)), 0o644)
		return mb.Pending()
	}, 3*time.Second, 50*time.Millisecond)
	tr, ok := mb.TryTake()
	require.True(t, ok)
	return tr
}

func TestUpdateConfigRestartsPolling(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	mb := mailbox.New[Trigger]()

	slow := watchConfig("poll")
	slow.PollInterval = time.Hour
	w := New(first, slow, logging.Nop(), mb, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Start(ctx) }()

	w.UpdateConfig(second, watchConfig("poll"))

	tr := waitForTrigger(t, mb, filepath.Join(second, ".build-stamp"))
	assert.Equal(t, filepath.Join(second, ".build-stamp"), tr.Path)
}

func TestUpdateConfigRestartsFsNotify(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	mb := mailbox.New[Trigger]()
	w := New(first, watchConfig("fsnotify"), logging.Nop(), mb, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	w.UpdateConfig(second, watchConfig("fsnotify"))

	tr := waitForTrigger(t, mb, filepath.Join(second, ".build-stamp"))
	assert.Equal(t, filepath.Join(second, ".build-stamp"), tr.Path)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
