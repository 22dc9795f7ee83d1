package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/raoulx24/pages-prep/internal/config"
	"github.com/raoulx24/pages-prep/internal/fs"
	"github.com/raoulx24/pages-prep/internal/limits"
	"github.com/raoulx24/pages-prep/internal/logging"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Root = "site"
	cfg.Output = "site"
	cfg.Release = "1.0"
	return cfg
}

func builtTree() *fs.MemFS {
	m := fs.NewMem()
	m.AddFile("site/app/1.0/x.js.br", []byte("js"))
	m.AddFile("site/app/1.0/index.html.br", []byte("html"))
	m.AddFile("site/app/1.0/logo.png", []byte("png"))
	m.AddFile("site/index/index.html", []byte("landing"))
	m.AddFile("site/image/favicon.ico", []byte("ico"))
	return m
}

func newPipeline(cfg *config.Config, m fs.FS, log logging.Logger) *Pipeline {
	p := New(cfg, log, m)
	p.now = func() time.Time { return time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC) }
	return p
}

func TestRunWritesRulesAndRenames(t *testing.T) {
	m := builtTree()
	core, logs := observer.New(zapcore.InfoLevel)

	rep, err := newPipeline(testConfig(), m, logging.FromZap(zap.New(core))).Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, rep.Renamed, 2)
	assert.Empty(t, rep.Flattened)
	assert.Equal(t, 6, rep.Redirects)
	assert.Equal(t, 11, rep.HeaderRules)
	assert.Equal(t, 5, rep.Files)

	files := m.Files()
	assert.Contains(t, files, "site/app/1.0/x.js")
	assert.Contains(t, files, "site/index/index.html", "flatten is opt-in")

	redirects := string(files["site/_redirects"])
	assert.True(t, strings.HasPrefix(redirects, "/favicon.ico /image/favicon.ico 200\n/app /app/1.0/ 307"))
	assert.True(t, strings.HasSuffix(redirects, "/pwa/* /app/:splat 200"))

	headers := string(files["site/_headers"])
	assert.True(t, strings.HasPrefix(headers, "/*\n\tService-Worker-Allowed: /\n\n"))
	assert.Contains(t, headers, "\tLast-Modified: Sun, 18 Oct 2026 00:00:00 GMT\n")

	assert.Equal(t, 1, logs.FilterMessage("creating _redirects file with 6 rules").Len())
	assert.Equal(t, 1, logs.FilterMessage("creating _headers file with 11 rules").Len())
	assert.Equal(t, 2, logs.FilterMessage("renamed").Len())
}

func TestRunFlattensWhenEnabled(t *testing.T) {
	m := builtTree()
	cfg := testConfig()
	cfg.FlattenIndex = true

	rep, err := newPipeline(cfg, m, logging.Nop()).Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, rep.Flattened, 1)
	assert.Equal(t, []byte("landing"), m.Files()["site/index.html"])
}

func TestRunFlattenMissingIndexFails(t *testing.T) {
	m := fs.NewMem()
	m.AddFile("site/app/a.js.br", nil)
	cfg := testConfig()
	cfg.FlattenIndex = true

	_, err := newPipeline(cfg, m, logging.Nop()).Run(context.Background())
	assert.ErrorContains(t, err, "flattening index")
}

func TestRunStopsOnLimits(t *testing.T) {
	m := builtTree()
	cfg := testConfig()
	cfg.Limits.Files = 2

	_, err := newPipeline(cfg, m, logging.Nop()).Run(context.Background())
	require.ErrorIs(t, err, limits.ErrLimitExceeded)
	assert.NotContains(t, m.Files(), "site/_headers")
}

func TestRunIsRepeatable(t *testing.T) {
	m := builtTree()
	p := newPipeline(testConfig(), m, logging.Nop())

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	first := m.Files()

	rep, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rep.Renamed)
	assert.Equal(t, first, m.Files())
}

func TestUpdateConfigChangesRelease(t *testing.T) {
	m := builtTree()
	p := newPipeline(testConfig(), m, logging.Nop())

	next := testConfig()
	next.Release = "2.0"
	p.UpdateConfig(next)

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(m.Files()["site/_redirects"]), "/app /app/2.0/ 307")
}

func TestRunOnDisk(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app", "1.0"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app", "1.0", "x.js.br"), []byte("x"), 0o644))

	cfg := testConfig()
	cfg.Root = root
	cfg.Output = filepath.Join(root, "out")

	_, err := New(cfg, logging.Nop(), nil).Run(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "app", "1.0", "x.js"))
	assert.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(root, "out", RedirectsFile))
	require.NoError(t, err)
	assert.Len(t, strings.Split(string(data), "\n"), 6)
}
