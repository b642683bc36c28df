package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/1siamBot/rts-navigation/engine/nav"
)

// Config holds everything the navigation viewer needs at startup.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Window WindowConfig `yaml:"window"`
	Map    MapConfig    `yaml:"map"`
	Nav    nav.Config   `yaml:"nav"`
}

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// WindowConfig sizes the viewer window.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// MapConfig points at the terrain to load. An empty Path builds the demo map.
type MapConfig struct {
	Path string `yaml:"path"`

	// Demo map size in chunks and tiles per chunk
	DemoWidth   int `yaml:"demo_width"`
	DemoHeight  int `yaml:"demo_height"`
	ChunkTilesW int `yaml:"chunk_tiles_w"`
	ChunkTilesH int `yaml:"chunk_tiles_h"`
}

// Default returns Config with sensible defaults.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "RTS Navigation Viewer",
		},
		Map: MapConfig{
			DemoWidth:   4,
			DemoHeight:  3,
			ChunkTilesW: 8,
			ChunkTilesH: 8,
		},
		Nav: nav.DefaultConfig(),
	}
}

// Load reads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late, at window or map load.
func (c Config) Validate() error {
	var errs []error
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Map.Path == "" {
		if c.Map.DemoWidth <= 0 || c.Map.DemoHeight <= 0 || c.Map.ChunkTilesW <= 0 || c.Map.ChunkTilesH <= 0 {
			errs = append(errs, errors.New("demo map dimensions must be positive"))
		}
	}
	if err := c.Nav.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// NewLogger builds a logrus logger from the log section.
func (c LogConfig) NewLogger() (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetLevel(lvl)
	if c.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l, nil
}
