package nav

import (
	"fmt"

	"github.com/1siamBot/rts-navigation/engine/maplib"
)

// Cost cell values
const (
	CostPassable   uint8 = 1
	CostImpassable uint8 = 0xff
)

// Coord addresses a cell of a chunk's cost field
type Coord struct {
	R, C int
}

// CostField is a chunk's dense cost grid, stored row-major
type CostField struct {
	Rows, Cols int
	Cells      []uint8
}

// NewCostField returns a fully passable field
func NewCostField(rows, cols int) *CostField {
	f := &CostField{Rows: rows, Cols: cols, Cells: make([]uint8, rows*cols)}
	for i := range f.Cells {
		f.Cells[i] = CostPassable
	}
	return f
}

// InBounds reports whether c lies inside the field
func (f *CostField) InBounds(c Coord) bool {
	return c.R >= 0 && c.C >= 0 && c.R < f.Rows && c.C < f.Cols
}

// At returns the cost at c. Out of bounds cells read as impassable.
func (f *CostField) At(c Coord) uint8 {
	if !f.InBounds(c) {
		return CostImpassable
	}
	return f.Cells[c.R*f.Cols+c.C]
}

// Set writes the cost at c; out of bounds writes are dropped
func (f *CostField) Set(c Coord, cost uint8) {
	if f.InBounds(c) {
		f.Cells[c.R*f.Cols+c.C] = cost
	}
}

// Impassable counts the cells holding CostImpassable
func (f *CostField) Impassable() int {
	n := 0
	for _, v := range f.Cells {
		if v == CostImpassable {
			n++
		}
	}
	return n
}

// Size, Passable and Cost satisfy pathfind.Grid with X = column, Y = row.

func (f *CostField) Size() (w, h int) { return f.Cols, f.Rows }

func (f *CostField) Passable(x, y int) bool {
	return f.At(Coord{R: y, C: x}) != CostImpassable
}

func (f *CostField) Cost(x, y int) float64 {
	return float64(f.At(Coord{R: y, C: x}))
}

// TilePathable reports whether units can stand on t. Non-flat tiles are only
// walkable while their ramp rises by at most one height level.
func TilePathable(t maplib.Tile) bool {
	if !t.Pathable {
		return false
	}
	if t.Type != maplib.TileFlat && t.RampHeight > 1 {
		return false
	}
	return true
}

// SetTile rasterizes one terrain tile into its block of cells. tilesW and
// tilesH are the chunk dimensions in tiles; only the tile's own block changes.
func (f *CostField) SetTile(tilesW, tilesH, tileR, tileC int, t maplib.Tile) {
	perTileR := f.Rows / tilesH
	perTileC := f.Cols / tilesW

	rBase := tileR * perTileR
	cBase := tileC * perTileC

	cost := CostPassable
	if !TilePathable(t) {
		cost = CostImpassable
	}

	for r := 0; r < perTileR; r++ {
		row := f.Cells[(rBase+r)*f.Cols:]
		for c := 0; c < perTileC; c++ {
			row[cBase+c] = cost
		}
	}
}

// TileBlock returns the top-left cell and block size of a tile in the field
func (f *CostField) TileBlock(tilesW, tilesH, tileR, tileC int) (origin Coord, rows, cols int) {
	rows, cols = f.Rows/tilesH, f.Cols/tilesW
	return Coord{R: tileR * rows, C: tileC * cols}, rows, cols
}

func checkResolution(rows, cols, tilesW, tilesH int) error {
	if tilesW <= 0 || tilesH <= 0 {
		return fmt.Errorf("%w: chunk size %dx%d tiles", ErrInvalidNavData, tilesW, tilesH)
	}
	if rows < tilesH || rows%tilesH != 0 {
		return fmt.Errorf("%w: %d field rows not a multiple of %d tile rows", ErrInvalidNavData, rows, tilesH)
	}
	if cols < tilesW || cols%tilesW != 0 {
		return fmt.Errorf("%w: %d field cols not a multiple of %d tile cols", ErrInvalidNavData, cols, tilesW)
	}
	return nil
}
