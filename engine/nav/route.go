package nav

import (
	"container/heap"
	"context"
	"fmt"
	"slices"
)

// CrossCost is the cost of stepping from a portal to its counterpart in the
// neighbouring chunk
const CrossCost = 1.0

// MapCell addresses a cost field cell anywhere on the map
type MapCell struct {
	ChunkR, ChunkC int
	Cell           Coord
}

// Route is an abstract route: the portals to pass through, in order, and the
// total cost. A route inside one chunk that needs no portal has no Portals.
type Route struct {
	Portals []PortalRef
	Cost    float64
}

// Traversable reports whether a cell of a chunk can be walked on
func (s *Store) Traversable(chunkR, chunkC int, cell Coord) bool {
	ch := s.Chunk(chunkR, chunkC)
	if ch == nil {
		return false
	}
	return ch.Field.InBounds(cell) && ch.Field.At(cell) != CostImpassable
}

// Route finds the cheapest abstract route between two map cells over the
// portal graph. It returns ErrNoRoute when either cell is blocked or the goal
// cannot be reached.
func (s *Store) Route(ctx context.Context, from, to MapCell) (Route, error) {
	if s.released {
		return Route{}, ErrReleased
	}
	for _, mc := range []MapCell{from, to} {
		ch := s.Chunk(mc.ChunkR, mc.ChunkC)
		if ch == nil || !ch.Field.InBounds(mc.Cell) {
			return Route{}, fmt.Errorf("%w: cell %+v", ErrOutOfBounds, mc)
		}
	}
	if !s.Traversable(from.ChunkR, from.ChunkC, from.Cell) || !s.Traversable(to.ChunkR, to.ChunkC, to.Cell) {
		return Route{}, ErrNoRoute
	}

	key := routeKey(from, to)
	if s.cache != nil {
		if r, ok := s.cache.Get(key); ok {
			return Route{Portals: slices.Clone(r.Portals), Cost: r.Cost}, nil
		}
	}

	r, err := s.searchRoute(ctx, from, to)
	if err != nil {
		return Route{}, err
	}
	if s.cache != nil {
		s.cache.Set(key, r, 1)
		s.cache.Wait()
	}
	return Route{Portals: slices.Clone(r.Portals), Cost: r.Cost}, nil
}

func routeKey(from, to MapCell) string {
	return fmt.Sprintf("%d:%d:%d:%d>%d:%d:%d:%d",
		from.ChunkR, from.ChunkC, from.Cell.R, from.Cell.C,
		to.ChunkR, to.ChunkC, to.Cell.R, to.Cell.C)
}

// searchRoute runs Dijkstra over portals. Node ids are portal positions in
// chunk order, followed by the start and goal nodes.
func (s *Store) searchRoute(ctx context.Context, from, to MapCell) (Route, error) {
	fromIdx := s.chunkIndex(from.ChunkR, from.ChunkC)
	toIdx := s.chunkIndex(to.ChunkR, to.ChunkC)

	offsets := make([]int, len(s.chunks)+1)
	for i := range s.chunks {
		offsets[i+1] = offsets[i] + len(s.chunks[i].Portals)
	}
	n := offsets[len(s.chunks)]
	startID, goalID := n, n+1
	id := func(r PortalRef) int { return offsets[r.Chunk] + r.Index }
	refOf := func(nodeID int) PortalRef {
		c, _ := slices.BinarySearch(offsets, nodeID+1)
		c--
		return PortalRef{Chunk: c, Index: nodeID - offsets[c]}
	}

	// Costs of reaching the goal cell from each portal of the goal chunk
	toGoal := make(map[int]float64)
	goalChunk := &s.chunks[toIdx]
	for i := range goalChunk.Portals {
		if _, cost, ok := s.pf.FindPath(goalChunk.Portals[i].Midpoint(), to.Cell, goalChunk.Field); ok {
			toGoal[offsets[toIdx]+i] = cost
		}
	}

	dist := make([]float64, n+2)
	prev := make([]int, n+2)
	for i := range dist {
		dist[i] = -1
		prev[i] = -1
	}
	open := &routeHeap{}
	dist[startID] = 0
	heap.Push(open, routeItem{node: startID})

	relax := func(a, b int, cost float64) {
		d := dist[a] + cost
		if dist[b] < 0 || d < dist[b] {
			dist[b] = d
			prev[b] = a
			heap.Push(open, routeItem{node: b, dist: d})
		}
	}

	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return Route{}, err
		}
		cur := heap.Pop(open).(routeItem)
		if cur.dist > dist[cur.node] {
			continue
		}
		if cur.node == goalID {
			break
		}

		if cur.node == startID {
			startChunk := &s.chunks[fromIdx]
			// A direct path competes with detours through other chunks
			if fromIdx == toIdx {
				if _, cost, ok := s.pf.FindPath(from.Cell, to.Cell, startChunk.Field); ok {
					relax(startID, goalID, cost)
				}
			}
			for i := range startChunk.Portals {
				if _, cost, ok := s.pf.FindPath(from.Cell, startChunk.Portals[i].Midpoint(), startChunk.Field); ok {
					relax(startID, offsets[fromIdx]+i, cost)
				}
			}
			continue
		}

		r := refOf(cur.node)
		p := &s.chunks[r.Chunk].Portals[r.Index]
		relax(cur.node, id(p.Connected), CrossCost)
		for _, e := range p.Edges {
			relax(cur.node, id(e.To), e.Cost)
		}
		if cost, ok := toGoal[cur.node]; ok {
			relax(cur.node, goalID, cost)
		}
	}

	if dist[goalID] < 0 {
		return Route{}, ErrNoRoute
	}

	var portals []PortalRef
	for at := prev[goalID]; at != startID && at >= 0; at = prev[at] {
		portals = append(portals, refOf(at))
	}
	slices.Reverse(portals)
	return Route{Portals: portals, Cost: dist[goalID]}, nil
}

type routeItem struct {
	node int
	dist float64
}

type routeHeap []routeItem

func (h routeHeap) Len() int { return len(h) }
func (h routeHeap) Less(i, j int) bool {
	if h[i].dist == h[j].dist {
		return h[i].node < h[j].node
	}
	return h[i].dist < h[j].dist
}
func (h routeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *routeHeap) Push(x any)   { *h = append(*h, x.(routeItem)) }
func (h *routeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
