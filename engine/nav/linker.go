package nav

import (
	"github.com/1siamBot/rts-navigation/engine/pathfind"
)

// Pathfinder is the grid search primitive the linker and route queries use.
// Build and Relink call it from up to Config.Workers goroutines at once, each
// on a different field, so implementations must be safe for concurrent use.
type Pathfinder interface {
	FindPath(start, goal Coord, field *CostField) (path []Coord, cost float64, ok bool)
}

// AStar is the default Pathfinder, backed by pathfind.FindPath
type AStar struct{}

func (AStar) FindPath(start, goal Coord, field *CostField) ([]Coord, float64, bool) {
	pts, cost, ok := pathfind.FindPath(field,
		pathfind.Point{X: start.C, Y: start.R},
		pathfind.Point{X: goal.C, Y: goal.R})
	if !ok {
		return nil, 0, false
	}
	path := make([]Coord, len(pts))
	for i, p := range pts {
		path[i] = Coord{R: p.Y, C: p.X}
	}
	return path, cost, true
}

// linkChunkPortals builds the intra-chunk portal graph. Every pair of distinct
// portals gets an edge in each direction they can reach each other; each pair
// is an independent search.
func (s *Store) linkChunkPortals(idx int) {
	chunk := &s.chunks[idx]
	for i := range chunk.Portals {
		chunk.Portals[i].Edges = chunk.Portals[i].Edges[:0]
	}

	for i := range chunk.Portals {
		port := &chunk.Portals[i]
		a := port.Midpoint()

		j := 0
		if s.cfg.SymmetricLinks {
			j = i + 1
		}
		for ; j < len(chunk.Portals); j++ {
			if i == j {
				continue
			}
			candidate := &chunk.Portals[j]

			_, cost, ok := s.pf.FindPath(a, candidate.Midpoint(), chunk.Field)
			if !ok {
				continue
			}
			port.Edges = append(port.Edges, Edge{To: PortalRef{Chunk: idx, Index: j}, Cost: cost})
			if s.cfg.SymmetricLinks {
				candidate.Edges = append(candidate.Edges, Edge{To: PortalRef{Chunk: idx, Index: i}, Cost: cost})
			}
		}
	}
}
