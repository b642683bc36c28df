package nav

import (
	"fmt"
	"runtime"
)

// Default cost field resolution per chunk
const (
	DefaultFieldRows = 64
	DefaultFieldCols = 64
)

// Config controls how a Store is built
type Config struct {
	FieldRows int `yaml:"field_rows"`
	FieldCols int `yaml:"field_cols"`

	// MaxPortalsPerChunk caps the portals a chunk may hold. 0 means unbounded.
	MaxPortalsPerChunk int `yaml:"max_portals_per_chunk"`

	// Workers bounds the goroutines used for per-chunk build phases. 1 is serial.
	Workers int `yaml:"workers"`

	// SymmetricLinks runs one search per unordered portal pair and mirrors the
	// result. The cost grid is undirected so both directions cost the same.
	SymmetricLinks bool `yaml:"symmetric_links"`

	// RouteCacheSize is the number of route results kept. 0 disables the cache.
	RouteCacheSize int64 `yaml:"route_cache_size"`

	Overlay OverlayConfig `yaml:"overlay"`
}

// OverlayConfig describes the physical size of terrain tiles for debug quads
type OverlayConfig struct {
	XCoordsPerTile float64 `yaml:"x_coords_per_tile"`
	ZCoordsPerTile float64 `yaml:"z_coords_per_tile"`
	Epsilon        float64 `yaml:"epsilon"`
}

// DefaultConfig returns the configuration used by the engine
func DefaultConfig() Config {
	return Config{
		FieldRows:      DefaultFieldRows,
		FieldCols:      DefaultFieldCols,
		Workers:        runtime.NumCPU(),
		SymmetricLinks: true,
		RouteCacheSize: 4096,
		Overlay: OverlayConfig{
			XCoordsPerTile: 8,
			ZCoordsPerTile: 8,
			Epsilon:        1.0 / 10000.0,
		},
	}
}

// Validate checks the values that do not depend on map layout
func (c Config) Validate() error {
	if c.FieldRows <= 0 || c.FieldCols <= 0 {
		return fmt.Errorf("%w: field resolution %dx%d", ErrInvalidNavData, c.FieldRows, c.FieldCols)
	}
	if c.MaxPortalsPerChunk < 0 {
		return fmt.Errorf("%w: negative portal capacity %d", ErrInvalidNavData, c.MaxPortalsPerChunk)
	}
	if c.RouteCacheSize < 0 {
		return fmt.Errorf("route cache size %d is negative", c.RouteCacheSize)
	}
	if c.Overlay.XCoordsPerTile <= 0 || c.Overlay.ZCoordsPerTile <= 0 {
		return fmt.Errorf("overlay tile size %gx%g must be positive", c.Overlay.XCoordsPerTile, c.Overlay.ZCoordsPerTile)
	}
	return nil
}
