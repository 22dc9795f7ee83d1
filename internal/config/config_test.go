package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pages-prep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
release: 2.0.0
types: [app]
headers:
  maxAge: 1h
watch:
  debounceWindow: 250ms
`)

	cfg, err := Load(path, false)
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", cfg.Release)
	assert.Equal(t, []string{"app"}, cfg.Types)
	assert.Equal(t, time.Hour, cfg.Headers.MaxAge)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.DebounceWindow)
	// untouched defaults survive
	assert.Equal(t, ".br", cfg.Suffix)
	assert.Equal(t, "https://wide.video", cfg.Headers.CanonicalBase)
	assert.Equal(t, 2000, cfg.Limits.Redirects)
	require.NoError(t, cfg.Validate())
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("PAGES_RELEASE", "9.9.9")
	path := writeConfig(t, "release: $(PAGES_RELEASE)\n")

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", cfg.Release)
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := Load(missing, true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(missing, false)
	assert.ErrorContains(t, err, "reading config file")
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "types: [app\n")
	_, err := Load(path, false)
	assert.ErrorContains(t, err, "unmarshalling yaml")
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	cfg := Default()
	cfg.Release = ""
	cfg.Types = nil
	cfg.Suffix = "br"
	cfg.Watch.Mode = "inotify"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "release must be set")
	assert.Contains(t, err.Error(), "at least one asset type")
	assert.Contains(t, err.Error(), `suffix "br"`)
	assert.Contains(t, err.Error(), `unknown watch mode "inotify"`)
}
