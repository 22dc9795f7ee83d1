package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	// keep a developer's pages-prep.yaml out of the test
	cmd.SetArgs(append([]string{"--config", writeEmptyConfig(t)}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeEmptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pages-prep.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: error\n"), 0o644))
	return path
}

func TestRedirectsCommand(t *testing.T) {
	out, err := execute(t, "redirects", "--release", "3.1.0")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "/favicon.ico /image/favicon.ico 200", lines[0])
	assert.Equal(t, "/app /app/3.1.0/ 307", lines[1])
	assert.Equal(t, "/pwa/* /app/:splat 200", lines[5])
}

func TestHeadersCommand(t *testing.T) {
	out, err := execute(t, "headers", "--release", "3.1.0")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "/*\n\tService-Worker-Allowed: /\n\n/app/*\n"))
	assert.Contains(t, out, `<https://wide.video/app/3.1.0/>; rel="canonical"`)
}

func TestMatchCommand(t *testing.T) {
	out, err := execute(t, "match", "/pwa/1.0/main.js")
	require.NoError(t, err)

	assert.Contains(t, out, "/pwa/:version/*.js\n\tContent-Encoding: br")
	assert.Contains(t, out, "redirect: /pwa/* /app/:splat 200")
	assert.NotContains(t, out, "/app/:version/*.js")
}

func TestBuildCommand(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "app", "2.0")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.js.br"), []byte("x"), 0o644))

	_, err := execute(t, "build", "--root", root, "--output", root, "--release", "2.0")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "main.js"))
	assert.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(root, "_redirects"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "/app/ /app/2.0/ 307")
	_, err = os.Stat(filepath.Join(root, "_headers"))
	assert.NoError(t, err)
}

func TestBuildFailsWithoutApp(t *testing.T) {
	_, err := execute(t, "--root", t.TempDir())
	assert.ErrorContains(t, err, "normalizing app")
}

func TestExplicitMissingConfigFails(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"headers", "--config", filepath.Join(t.TempDir(), "absent.yaml")})
	cmd.SetOut(&bytes.Buffer{})
	assert.ErrorContains(t, cmd.Execute(), "reading config file")
}

func TestInvalidReleaseRejected(t *testing.T) {
	_, err := execute(t, "redirects", "--release", "")
	assert.ErrorContains(t, err, "release must be set")
}
