package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagextract/internal/layout"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultConverter(), cfg.Converter)
	assert.Equal(t, "both", cfg.Mode)
	assert.True(t, cfg.TUI)
	assert.Empty(t, cfg.LogFile)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bagextract.yml")
	content := `
converter: /opt/realsense/bin/rs-convert
mode: png
tui: false
exclude:
  - "*_calib.bag"
unknown_setting: "should be ignored"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/realsense/bin/rs-convert", cfg.Converter)
	assert.False(t, cfg.TUI)
	assert.Equal(t, []string{"*_calib.bag"}, cfg.Exclude)

	mode, err := cfg.ExtractionMode()
	require.NoError(t, err)
	assert.Equal(t, layout.ModePngOnly, mode)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BAGEXTRACT_CONVERTER", "/usr/local/bin/rs-convert")
	t.Setenv("BAGEXTRACT_MODE", "ply")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/rs-convert", cfg.Converter)
	assert.Equal(t, "ply", cfg.Mode)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadMode(t *testing.T) {
	cfg := &Config{Mode: "tiff"}
	assert.Error(t, cfg.Validate())
}
