package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoChunksFullyPassable(t *testing.T) {
	s := buildFlat(t, 2, 1)

	left, right := s.Chunk(0, 0), s.Chunk(0, 1)
	require.Len(t, left.Portals, 1)
	require.Len(t, right.Portals, 1)

	assert.Equal(t, Portal{
		Chunk:     Coord{R: 0, C: 0},
		Endpoints: [2]Coord{{R: 0, C: 7}, {R: 7, C: 7}},
		Connected: PortalRef{Chunk: 1, Index: 0},
	}, left.Portals[0])
	assert.Equal(t, Portal{
		Chunk:     Coord{R: 0, C: 1},
		Endpoints: [2]Coord{{R: 0, C: 0}, {R: 7, C: 0}},
		Connected: PortalRef{Chunk: 0, Index: 0},
	}, right.Portals[0])
	assert.Equal(t, 1, s.LinkCount())
}

func TestVerticalNeighbours(t *testing.T) {
	s := buildFlat(t, 1, 2)

	top, bottom := s.Chunk(0, 0), s.Chunk(1, 0)
	require.Len(t, top.Portals, 1)
	require.Len(t, bottom.Portals, 1)
	assert.Equal(t, [2]Coord{{R: 7, C: 0}, {R: 7, C: 7}}, top.Portals[0].Endpoints)
	assert.Equal(t, [2]Coord{{R: 0, C: 0}, {R: 0, C: 7}}, bottom.Portals[0].Endpoints)
}

func TestPortalRunsSplitOnBlockedCells(t *testing.T) {
	cfg := smallConfig()
	a := NewCostField(8, 8)
	a.Set(Coord{R: 2, C: 7}, CostImpassable)
	a.Set(Coord{R: 5, C: 7}, CostImpassable)
	b := NewCostField(8, 8)
	b.Set(Coord{R: 6, C: 0}, CostImpassable)

	s := fieldStore(2, 1, cfg, a, b)
	require.NoError(t, s.createPortals())

	got := s.chunks[0].Portals
	require.Len(t, got, 3)
	assert.Equal(t, [2]Coord{{R: 0, C: 7}, {R: 1, C: 7}}, got[0].Endpoints)
	assert.Equal(t, [2]Coord{{R: 3, C: 7}, {R: 4, C: 7}}, got[1].Endpoints)
	// a single crossable cell at the end of the edge is still a portal
	assert.Equal(t, [2]Coord{{R: 7, C: 7}, {R: 7, C: 7}}, got[2].Endpoints)

	other := s.chunks[1].Portals
	require.Len(t, other, 3)
	for i := range got {
		assert.Equal(t, PortalRef{Chunk: 1, Index: i}, got[i].Connected)
		assert.Equal(t, PortalRef{Chunk: 0, Index: i}, other[i].Connected)
		assert.Equal(t, got[i].Endpoints[0].R, other[i].Endpoints[0].R)
		assert.Equal(t, got[i].Endpoints[1].R, other[i].Endpoints[1].R)
		assert.Equal(t, 0, other[i].Endpoints[0].C)
	}
}

func TestBlockedEdgeHasNoPortals(t *testing.T) {
	a := NewCostField(8, 8)
	for r := 0; r < 8; r++ {
		a.Set(Coord{R: r, C: 7}, CostImpassable)
	}
	s := fieldStore(2, 1, smallConfig(), a)
	require.NoError(t, s.createPortals())

	assert.Empty(t, s.chunks[0].Portals)
	assert.Empty(t, s.chunks[1].Portals)
	assert.Equal(t, 1, s.LinkCount())
}

func TestPortalCounterpartsAndLinkCount(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {2, 1}, {3, 2}, {4, 4}} {
		w, h := dims[0], dims[1]
		s := buildFlat(t, w, h)

		wantLinks := (w-1)*h + w*(h-1)
		assert.Equal(t, wantLinks, s.LinkCount(), "%dx%d", w, h)
		assert.Equal(t, wantLinks, s.Stats().PortalPairs, "%dx%d", w, h)

		for ci := range s.chunks {
			for pi := range s.chunks[ci].Portals {
				p := &s.chunks[ci].Portals[pi]
				self := PortalRef{Chunk: ci, Index: pi}

				other, ok := s.Portal(p.Connected)
				require.True(t, ok)
				assert.Equal(t, self, other.Connected, "counterpart of %v points back", self)
				assert.NotEqual(t, p.Chunk, other.Chunk)
				assert.Equal(t, p.Len(), other.Len())

				// endpoints share a boundary row or column and are ordered
				a, b := p.Endpoints[0], p.Endpoints[1]
				assert.True(t, a.R == b.R || a.C == b.C)
				assert.LessOrEqual(t, a.R, b.R)
				assert.LessOrEqual(t, a.C, b.C)
				onEdge := a.R == 0 && b.R == 0 || a.R == 7 && b.R == 7 || a.C == 0 && b.C == 0 || a.C == 7 && b.C == 7
				assert.True(t, onEdge, "portal %v off the chunk edge", p.Endpoints)
			}
		}
	}
}

func TestPortalCapacity(t *testing.T) {
	cfg := smallConfig()
	cfg.MaxPortalsPerChunk = 1
	a := NewCostField(8, 8)
	a.Set(Coord{R: 4, C: 7}, CostImpassable)

	s := fieldStore(2, 1, cfg, a)
	err := s.createPortals()
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.ErrorIs(t, err, ErrInvalidNavData)

	cfg.MaxPortalsPerChunk = 2
	s = fieldStore(2, 1, cfg, a)
	assert.NoError(t, s.createPortals())
}

func TestInvalidEdgePair(t *testing.T) {
	s := fieldStore(2, 1, smallConfig())
	err := s.linkChunks(Coord{R: 0, C: 0}, edgeRight, Coord{R: 0, C: 1}, edgeTop)
	assert.ErrorIs(t, err, ErrInvalidNavData)

	err = s.linkChunks(Coord{R: 0, C: 0}, edgeLeft, Coord{R: 0, C: 1}, edgeLeft)
	assert.ErrorIs(t, err, ErrInvalidNavData)
}

func TestPortalHelpers(t *testing.T) {
	p := Portal{Endpoints: [2]Coord{{R: 0, C: 2}, {R: 0, C: 5}}}
	assert.Equal(t, 4, p.Len())
	assert.Equal(t, Coord{R: 0, C: 3}, p.Midpoint())
	assert.Equal(t, []Coord{{R: 0, C: 2}, {R: 0, C: 3}, {R: 0, C: 4}, {R: 0, C: 5}}, p.Cells())

	p.Edges = []Edge{{To: PortalRef{Chunk: 0, Index: 1}, Cost: 3}}
	e, ok := p.EdgeTo(PortalRef{Chunk: 0, Index: 1})
	assert.True(t, ok)
	assert.Equal(t, 3.0, e.Cost)
	_, ok = p.EdgeTo(PortalRef{Chunk: 0, Index: 2})
	assert.False(t, ok)
}
