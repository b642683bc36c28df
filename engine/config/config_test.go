package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/rts-navigation/engine/nav"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "navview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
log:
  level: debug
window:
  title: Test
map:
  path: maps/test.json
nav:
  field_rows: 32
  field_cols: 16
  workers: 2
  symmetric_links: false
  max_portals_per_chunk: 64
  overlay:
    epsilon: 0.5
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "Test", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, "maps/test.json", cfg.Map.Path)

	assert.Equal(t, 32, cfg.Nav.FieldRows)
	assert.Equal(t, 16, cfg.Nav.FieldCols)
	assert.Equal(t, 2, cfg.Nav.Workers)
	assert.False(t, cfg.Nav.SymmetricLinks)
	assert.Equal(t, 64, cfg.Nav.MaxPortalsPerChunk)
	assert.Equal(t, 0.5, cfg.Nav.Overlay.Epsilon)
	assert.Equal(t, 8.0, cfg.Nav.Overlay.XCoordsPerTile)
	assert.Equal(t, nav.DefaultConfig().RouteCacheSize, cfg.Nav.RouteCacheSize)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	_, err := Load(writeFile(t, "nav: [1, 2"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := Load(writeFile(t, "nav:\n  field_rows: 0\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, nav.ErrInvalidNavData)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"
	cfg.Window.Width = 0
	cfg.Map.DemoWidth = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
	assert.Contains(t, err.Error(), "xml")
	assert.Contains(t, err.Error(), "window size")
	assert.Contains(t, err.Error(), "demo map")
}

func TestDemoSizeIgnoredWithMapPath(t *testing.T) {
	cfg := Default()
	cfg.Map.Path = "maps/a.json"
	cfg.Map.DemoWidth = 0
	assert.NoError(t, cfg.Validate())
}

func TestNewLogger(t *testing.T) {
	l, err := LogConfig{Level: "warn", Format: "json"}.NewLogger()
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	l, err = LogConfig{Level: "debug", Format: "text"}.NewLogger()
	require.NoError(t, err)
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)

	_, err = LogConfig{Level: "nope"}.NewLogger()
	assert.Error(t, err)
}
