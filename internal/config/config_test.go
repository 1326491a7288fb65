package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
start_dir = "/home/me/scenes"

[window]
width = 1920
height = 1080

[preview]
material = "Red"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, 1080, cfg.Window.Height)
	assert.Equal(t, "/home/me/scenes", cfg.StartDir)
	assert.Equal(t, "Red", cfg.Preview.Material)
	// Unset fields keep their defaults.
	assert.Equal(t, Default().Window.Title, cfg.Window.Title)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, "[window\nwidth = ")
	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSanitizeClampsBadValues(t *testing.T) {
	path := writeConfig(t, `
[window]
width = -5
height = 0
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Window.Width, cfg.Window.Width)
	assert.Equal(t, Default().Window.Height, cfg.Window.Height)
}
