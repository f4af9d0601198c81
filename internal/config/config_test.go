package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calfront/calfront/internal/config"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.Trace.Enabled)
	assert.Equal(t, 200, cfg.Diagnostics.MaxDiagnostics)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	content := "trace:\n  enabled: true\ndiagnostics:\n  max: 50\noutput:\n  color: false\n  format: json\nencoding: utf-16le\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "calfront.yaml"), []byte(content), 0o644))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Trace.Enabled)
	assert.Equal(t, 50, cfg.Diagnostics.MaxDiagnostics)
	assert.False(t, cfg.Output.Color)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "utf-16le", cfg.Encoding)
}

func TestLoad_RejectsInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "calfront.yaml"), []byte("output:\n  format: xml\n"), 0o644))

	_, err := config.Load()
	assert.Error(t, err)
}

func TestFindProjectRoot_WalksUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "calfront.yaml"), []byte(""), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	found, err := config.FindProjectRoot()
	require.NoError(t, err)
	assert.Equal(t, root, found)
}
