package nav

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"golang.org/x/image/colornames"

	"github.com/1siamBot/rts-navigation/engine/geom"
)

// Overlay colors
var (
	ColorPassable   = colornames.Lime
	ColorImpassable = colornames.Red
	ColorPortal     = colornames.Yellow
	ColorPath       = colornames.Blue
)

// Quad is one colored cell rectangle in chunk-local XZ space
type Quad struct {
	Corners [4]geom.Vec2
	Color   color.RGBA
}

// Renderer draws overlay quads placed in the world by a chunk model matrix.
// Renderers must not keep the quad slice after returning.
type Renderer interface {
	DrawMapOverlayQuads(quads []Quad, model geom.Mat4)
}

// OverlayGeometry maps cost field cells to chunk-local rectangles. X runs
// negative with the column and Z positive with the row, like terrain tiles.
type OverlayGeometry struct {
	Rows, Cols     int
	ChunkX, ChunkZ float64
	Epsilon        float64
}

// CellQuad returns the rectangle of cell c shrunk by Epsilon so neighbouring
// quads never share an edge
func (g OverlayGeometry) CellQuad(c Coord, clr color.RGBA) Quad {
	lenX := (1.0/float64(g.Cols))*g.ChunkX - g.Epsilon
	lenZ := (1.0/float64(g.Rows))*g.ChunkZ - g.Epsilon
	x := -(float64(c.C) / float64(g.Cols)) * g.ChunkX
	z := (float64(c.R) / float64(g.Rows)) * g.ChunkZ

	return Quad{
		Corners: [4]geom.Vec2{
			{X: x, Z: z},
			{X: x, Z: z + lenZ},
			{X: x - lenX, Z: z + lenZ},
			{X: x - lenX, Z: z},
		},
		Color: clr,
	}
}

// AppendCostQuads appends one quad per field cell, row-major
func (g OverlayGeometry) AppendCostQuads(dst []Quad, f *CostField) []Quad {
	dst = slices.Grow(dst, f.Rows*f.Cols)
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			clr := ColorPassable
			if f.Cells[r*f.Cols+c] == CostImpassable {
				clr = ColorImpassable
			}
			dst = append(dst, g.CellQuad(Coord{R: r, C: c}, clr))
		}
	}
	return dst
}

// AppendPortalQuads appends one quad per cell of every portal span
func (g OverlayGeometry) AppendPortalQuads(dst []Quad, portals []Portal) []Quad {
	for i := range portals {
		for _, c := range portals[i].Cells() {
			dst = append(dst, g.CellQuad(c, ColorPortal))
		}
	}
	return dst
}

// AppendPathQuads appends one quad per path cell
func (g OverlayGeometry) AppendPathQuads(dst []Quad, path []Coord) []Quad {
	dst = slices.Grow(dst, len(path))
	for _, c := range path {
		dst = append(dst, g.CellQuad(c, ColorPath))
	}
	return dst
}

// ChunkModel places chunk (r, c) in the world. Chunks advance along -X by
// column and +Z by row, continuing the cell layout.
func (g OverlayGeometry) ChunkModel(chunkR, chunkC int) geom.Mat4 {
	return geom.Mat4Translate(-float64(chunkC)*g.ChunkX, 0, float64(chunkR)*g.ChunkZ)
}

// Locate finds the chunk and cell under world point (x, z). The chunk may lie
// outside the map; callers check it against the store.
func (g OverlayGeometry) Locate(x, z float64) (chunkR, chunkC int, cell Coord) {
	vx, vz := -x, z
	chunkC = int(math.Floor(vx / g.ChunkX))
	chunkR = int(math.Floor(vz / g.ChunkZ))
	cell.C = int((vx - float64(chunkC)*g.ChunkX) / g.ChunkX * float64(g.Cols))
	cell.R = int((vz - float64(chunkR)*g.ChunkZ) / g.ChunkZ * float64(g.Rows))
	cell.C = min(max(cell.C, 0), g.Cols-1)
	cell.R = min(max(cell.R, 0), g.Rows-1)
	return chunkR, chunkC, cell
}

// Overlay returns the cell geometry for this store's chunks
func (s *Store) Overlay() OverlayGeometry {
	return OverlayGeometry{
		Rows:    s.cfg.FieldRows,
		Cols:    s.cfg.FieldCols,
		ChunkX:  float64(s.layout.ChunkTilesW) * s.cfg.Overlay.XCoordsPerTile,
		ChunkZ:  float64(s.layout.ChunkTilesH) * s.cfg.Overlay.ZCoordsPerTile,
		Epsilon: s.cfg.Overlay.Epsilon,
	}
}

// RenderPathableChunk draws a chunk's cost cells, then its portal spans on top
func (s *Store) RenderPathableChunk(model geom.Mat4, chunkR, chunkC int, r Renderer) error {
	ch, err := s.renderChunk(chunkR, chunkC)
	if err != nil {
		return err
	}
	g := s.Overlay()

	s.quads = g.AppendCostQuads(s.quads[:0], ch.Field)
	r.DrawMapOverlayQuads(s.quads, model)

	s.quads = g.AppendPortalQuads(s.quads[:0], ch.Portals)
	r.DrawMapOverlayQuads(s.quads, model)
	return nil
}

// RenderChunkPath draws a path of cells through one chunk
func (s *Store) RenderChunkPath(model geom.Mat4, chunkR, chunkC int, path []Coord, r Renderer) error {
	if _, err := s.renderChunk(chunkR, chunkC); err != nil {
		return err
	}
	s.quads = s.Overlay().AppendPathQuads(s.quads[:0], path)
	r.DrawMapOverlayQuads(s.quads, model)
	return nil
}

func (s *Store) renderChunk(chunkR, chunkC int) (*Chunk, error) {
	if s.released {
		return nil, ErrReleased
	}
	ch := s.Chunk(chunkR, chunkC)
	if ch == nil {
		return nil, fmt.Errorf("%w: chunk (%d,%d)", ErrOutOfBounds, chunkR, chunkC)
	}
	return ch, nil
}
