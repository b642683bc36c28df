package maplib

import (
	"encoding/json"
	"fmt"
	"os"
)

// Default chunk dimensions in tiles
const (
	DefaultChunkTilesW = 32
	DefaultChunkTilesH = 32
)

// TileDesc addresses one tile of a chunked map
type TileDesc struct {
	ChunkR, ChunkC int
	TileR, TileC   int
}

// TileMap is a chunked terrain map. Width and Height count chunks; each chunk
// holds ChunkTilesW x ChunkTilesH tiles stored row-major.
type TileMap struct {
	Name        string   `json:"name"`
	Author      string   `json:"author"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	ChunkTilesW int      `json:"chunk_tiles_w"`
	ChunkTilesH int      `json:"chunk_tiles_h"`
	Chunks      [][]Tile `json:"chunks"`
}

// NewTileMap creates a map of w x h chunks filled with flat pathable tiles
func NewTileMap(name string, w, h, chunkTilesW, chunkTilesH int) *TileMap {
	tm := &TileMap{
		Name:        name,
		Width:       w,
		Height:      h,
		ChunkTilesW: chunkTilesW,
		ChunkTilesH: chunkTilesH,
		Chunks:      make([][]Tile, w*h),
	}
	for i := range tm.Chunks {
		tiles := make([]Tile, chunkTilesW*chunkTilesH)
		for j := range tiles {
			tiles[j] = FlatTile()
		}
		tm.Chunks[i] = tiles
	}
	return tm
}

// Validate checks that the chunk and tile slices match the declared dimensions
func (tm *TileMap) Validate() error {
	if tm.Width <= 0 || tm.Height <= 0 {
		return fmt.Errorf("map %q: bad chunk grid %dx%d", tm.Name, tm.Width, tm.Height)
	}
	if tm.ChunkTilesW <= 0 || tm.ChunkTilesH <= 0 {
		return fmt.Errorf("map %q: bad chunk size %dx%d", tm.Name, tm.ChunkTilesW, tm.ChunkTilesH)
	}
	if len(tm.Chunks) != tm.Width*tm.Height {
		return fmt.Errorf("map %q: have %d chunks, want %d", tm.Name, len(tm.Chunks), tm.Width*tm.Height)
	}
	for i, tiles := range tm.Chunks {
		if len(tiles) != tm.ChunkTilesW*tm.ChunkTilesH {
			return fmt.Errorf("map %q: chunk %d has %d tiles, want %d",
				tm.Name, i, len(tiles), tm.ChunkTilesW*tm.ChunkTilesH)
		}
		for j, t := range tiles {
			if !t.Type.Valid() {
				return fmt.Errorf("map %q: chunk %d tile %d: unknown type %d", tm.Name, i, j, t.Type)
			}
		}
	}
	return nil
}

// InBounds checks if a descriptor addresses a tile inside the map
func (tm *TileMap) InBounds(d TileDesc) bool {
	return d.ChunkR >= 0 && d.ChunkR < tm.Height &&
		d.ChunkC >= 0 && d.ChunkC < tm.Width &&
		d.TileR >= 0 && d.TileR < tm.ChunkTilesH &&
		d.TileC >= 0 && d.TileC < tm.ChunkTilesW
}

// At returns a pointer to the tile at d, or nil when out of bounds
func (tm *TileMap) At(d TileDesc) *Tile {
	if !tm.InBounds(d) {
		return nil
	}
	return &tm.Chunks[d.ChunkR*tm.Width+d.ChunkC][d.TileR*tm.ChunkTilesW+d.TileC]
}

// SetTile overwrites the tile at d
func (tm *TileMap) SetTile(d TileDesc, t Tile) error {
	p := tm.At(d)
	if p == nil {
		return fmt.Errorf("tile %+v out of map bounds", d)
	}
	*p = t
	return nil
}

// Fill applies fn to every tile in the global tile rectangle [x1,x2]x[y1,y2]
func (tm *TileMap) Fill(x1, y1, x2, y2 int, fn func(*Tile)) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if t := tm.At(tm.Desc(x, y)); t != nil {
				fn(t)
			}
		}
	}
}

// Desc converts global tile coordinates (x = column, y = row) to a descriptor
func (tm *TileMap) Desc(x, y int) TileDesc {
	if x < 0 || y < 0 {
		return TileDesc{ChunkR: -1, ChunkC: -1}
	}
	return TileDesc{
		ChunkR: y / tm.ChunkTilesH,
		ChunkC: x / tm.ChunkTilesW,
		TileR:  y % tm.ChunkTilesH,
		TileC:  x % tm.ChunkTilesW,
	}
}

// TilesWide is the map width in tiles
func (tm *TileMap) TilesWide() int { return tm.Width * tm.ChunkTilesW }

// TilesHigh is the map height in tiles
func (tm *TileMap) TilesHigh() int { return tm.Height * tm.ChunkTilesH }

// SaveJSON saves the map to a JSON file
func (tm *TileMap) SaveJSON(path string) error {
	data, err := json.MarshalIndent(tm, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJSON loads and validates a map from a JSON file
func LoadJSON(path string) (*TileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tm TileMap
	if err := json.Unmarshal(data, &tm); err != nil {
		return nil, fmt.Errorf("parsing map %s: %w", path, err)
	}
	if err := tm.Validate(); err != nil {
		return nil, err
	}
	return &tm, nil
}
