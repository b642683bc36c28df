package nav

import "fmt"

// PortalRef addresses a portal by chunk index (row-major) and position in
// that chunk's portal list
type PortalRef struct {
	Chunk, Index int
}

// Edge is a weighted link to another portal of the same chunk
type Edge struct {
	To PortalRef
	// Cost of moving from the center of one portal to the center of the next.
	Cost float64
}

// Portal is a maximal crossable run of cells on one chunk edge
type Portal struct {
	Chunk     Coord
	Endpoints [2]Coord
	Connected PortalRef
	Edges     []Edge
}

// Midpoint is the cell halfway along the portal span
func (p *Portal) Midpoint() Coord {
	return Coord{
		R: (p.Endpoints[0].R + p.Endpoints[1].R) / 2,
		C: (p.Endpoints[0].C + p.Endpoints[1].C) / 2,
	}
}

// Len is the number of cells in the span
func (p *Portal) Len() int {
	return abs(p.Endpoints[1].R-p.Endpoints[0].R) + abs(p.Endpoints[1].C-p.Endpoints[0].C) + 1
}

// Cells lists the span's cells from the first endpoint to the second
func (p *Portal) Cells() []Coord {
	a, b := p.Endpoints[0], p.Endpoints[1]
	cells := make([]Coord, 0, p.Len())
	for r := min(a.R, b.R); r <= max(a.R, b.R); r++ {
		for c := min(a.C, b.C); c <= max(a.C, b.C); c++ {
			cells = append(cells, Coord{R: r, C: c})
		}
	}
	return cells
}

// EdgeTo returns the edge to ref, if the linker found one
func (p *Portal) EdgeTo(ref PortalRef) (Edge, bool) {
	for _, e := range p.Edges {
		if e.To == ref {
			return e, true
		}
	}
	return Edge{}, false
}

type edgeType uint8

const (
	edgeBottom edgeType = 1 << iota
	edgeLeft
	edgeRight
	edgeTop
)

func (e edgeType) String() string {
	switch e {
	case edgeBottom:
		return "bottom"
	case edgeLeft:
		return "left"
	case edgeRight:
		return "right"
	case edgeTop:
		return "top"
	}
	return fmt.Sprintf("edge(%d)", uint8(e))
}

func (e edgeType) horizontal() bool { return e&(edgeBottom|edgeTop) != 0 }

// fixedIndex is the boundary row (top/bottom) or column (left/right)
func (e edgeType) fixedIndex(rows, cols int) int {
	switch e {
	case edgeBottom:
		return rows - 1
	case edgeRight:
		return cols - 1
	}
	return 0
}

func (e edgeType) coord(fixed, i int) Coord {
	if e.horizontal() {
		return Coord{R: fixed, C: i}
	}
	return Coord{R: i, C: fixed}
}

func validEdgePair(a, b edgeType) bool {
	return a != b && (a|b == edgeBottom|edgeTop || a|b == edgeLeft|edgeRight)
}

// linkChunks walks the shared edge of two adjacent chunks and opens one
// cross-referenced portal pair per maximal run of crossable cells.
func (s *Store) linkChunks(aCoord Coord, aType edgeType, bCoord Coord, bType edgeType) error {
	if !validEdgePair(aType, bType) {
		return fmt.Errorf("%w: cannot link %s edge to %s edge", ErrInvalidNavData, aType, bType)
	}
	aIdx, bIdx := s.chunkIndex(aCoord.R, aCoord.C), s.chunkIndex(bCoord.R, bCoord.C)
	a, b := &s.chunks[aIdx], &s.chunks[bIdx]

	rows, cols := s.cfg.FieldRows, s.cfg.FieldCols
	lineLen := rows
	if aType.horizontal() {
		lineLen = cols
	}
	aFixed := aType.fixedIndex(rows, cols)
	bFixed := bType.fixedIndex(rows, cols)

	inPortal := false
	for i := 0; i < lineLen; i++ {
		ac, bc := aType.coord(aFixed, i), bType.coord(bFixed, i)
		canCross := a.Field.At(ac) != CostImpassable && b.Field.At(bc) != CostImpassable

		// First cell of portal
		if canCross && !inPortal {
			if err := s.checkCapacity(aCoord, a); err != nil {
				return err
			}
			if err := s.checkCapacity(bCoord, b); err != nil {
				return err
			}
			inPortal = true
			a.Portals = append(a.Portals, Portal{
				Chunk:     aCoord,
				Endpoints: [2]Coord{ac, ac},
				Connected: PortalRef{Chunk: bIdx, Index: len(b.Portals)},
			})
			b.Portals = append(b.Portals, Portal{
				Chunk:     bCoord,
				Endpoints: [2]Coord{bc, bc},
				Connected: PortalRef{Chunk: aIdx, Index: len(a.Portals) - 1},
			})
		}

		// Last cell of portal
		if inPortal && (!canCross || i == lineLen-1) {
			end := i
			if !canCross {
				end = i - 1
			}
			inPortal = false
			a.Portals[len(a.Portals)-1].Endpoints[1] = aType.coord(aFixed, end)
			b.Portals[len(b.Portals)-1].Endpoints[1] = bType.coord(bFixed, end)
		}
	}
	return nil
}

func (s *Store) checkCapacity(at Coord, c *Chunk) error {
	if limit := s.cfg.MaxPortalsPerChunk; limit > 0 && len(c.Portals) >= limit {
		return fmt.Errorf("%w: chunk (%d,%d) already holds %d portals", ErrCapacityExceeded, at.R, at.C, limit)
	}
	return nil
}

// createPortals links every chunk with its bottom and right neighbour, so each
// internal adjacency is visited exactly once.
func (s *Store) createPortals() error {
	// Fresh slices; relink may restore the old ones
	for i := range s.chunks {
		s.chunks[i].Portals = nil
	}

	links := 0
	for r := 0; r < s.layout.Height; r++ {
		for c := 0; c < s.layout.Width; c++ {
			cur := Coord{R: r, C: c}
			if r < s.layout.Height-1 {
				if err := s.linkChunks(cur, edgeBottom, Coord{R: r + 1, C: c}, edgeTop); err != nil {
					return err
				}
				links++
			}
			if c < s.layout.Width-1 {
				if err := s.linkChunks(cur, edgeRight, Coord{R: r, C: c + 1}, edgeLeft); err != nil {
					return err
				}
				links++
			}
		}
	}

	w, h := s.layout.Width, s.layout.Height
	if want := (w-1)*h + w*(h-1); links != want {
		return fmt.Errorf("%w: linked %d chunk edges, want %d", ErrInvalidNavData, links, want)
	}
	s.links = links
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
