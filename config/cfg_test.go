package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyrup-ai/blitz-sub000/common"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 800.0, cfg.Viewport.WidthPx)
	assert.Equal(t, 600.0, cfg.Viewport.HeightPx)
	assert.Equal(t, 1.0, cfg.Viewport.Scale)
	assert.Equal(t, common.ScreenshotFormatPNG, cfg.Screenshot.Format)
	assert.Equal(t, 100, cfg.Screenshot.Quality)
}

func TestLoadConfiguration_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfiguration("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfiguration_OverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rendercore.yaml")
	body := "viewport:\n  width_px: 1024\n  height_px: 768\n  scale: 2\n  color_scheme: 0\nscreenshot:\n  format: 1\n  quality: 80\nlogging:\n  console:\n    level: normal\nreporting:\n  destination: " + filepath.Join(dir, "report.zip") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := LoadConfiguration(path)
	require.NoError(t, err)
	assert.Equal(t, 1024.0, cfg.Viewport.WidthPx)
	assert.Equal(t, common.ScreenshotFormatJPEG, cfg.Screenshot.Format)
	assert.Equal(t, 80, cfg.Screenshot.Quality)
}

func TestLoadConfiguration_MissingFileErrors(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfiguration_InvalidViewportFailsValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("viewport:\n  width_px: 0\n  height_px: 600\n  scale: 1\n"), 0644))

	_, err := LoadConfiguration(path)
	assert.Error(t, err)
}

func TestDump_RoundTripsThroughYAML(t *testing.T) {
	cfg := Default()
	data, err := Dump(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "width_px")
}

func TestPrepare_MatchesDump(t *testing.T) {
	expected, err := Dump(Default())
	require.NoError(t, err)
	got, err := Prepare()
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}
