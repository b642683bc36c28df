// Package pathfind implements the grid shortest-path primitive used by the
// navigation layer.
package pathfind

import (
	"container/heap"
)

// Point represents a 2D integer coordinate (X = column, Y = row)
type Point struct{ X, Y int }

// Grid is a dense cost grid. Cost is the price of entering a cell and must be
// at least 1 for every passable cell so the Manhattan heuristic stays admissible.
type Grid interface {
	Size() (w, h int)
	Passable(x, y int) bool
	Cost(x, y int) float64
}

var dirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// FindPath finds the lowest cost 4-connected path from start to goal using A*.
// The returned path includes both endpoints. ok is false when no path exists.
func FindPath(g Grid, start, goal Point) (path []Point, cost float64, ok bool) {
	w, h := g.Size()
	if !inBounds(start, w, h) || !inBounds(goal, w, h) {
		return nil, 0, false
	}
	if !g.Passable(start.X, start.Y) || !g.Passable(goal.X, goal.Y) {
		return nil, 0, false
	}
	if start == goal {
		return []Point{start}, 0, true
	}

	n := w * h
	gScore := make([]float64, n)
	came := make([]int32, n)
	closed := make([]bool, n)
	for i := range came {
		came[i] = -1
		gScore[i] = -1
	}

	idx := func(p Point) int { return p.Y*w + p.X }

	open := &nodeHeap{}
	heap.Init(open)
	gScore[idx(start)] = 0
	heap.Push(open, &node{p: start, g: 0, f: heuristic(start, goal)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		ci := idx(cur.p)
		if closed[ci] {
			continue
		}
		closed[ci] = true

		if cur.p == goal {
			return reconstructPath(came, w, goal), cur.g, true
		}

		for _, d := range dirs {
			np := Point{cur.p.X + d[0], cur.p.Y + d[1]}
			if !inBounds(np, w, h) || !g.Passable(np.X, np.Y) {
				continue
			}
			ni := idx(np)
			if closed[ni] {
				continue
			}
			tentG := cur.g + g.Cost(np.X, np.Y)
			if old := gScore[ni]; old >= 0 && tentG >= old {
				continue
			}
			gScore[ni] = tentG
			came[ni] = int32(ci)
			heap.Push(open, &node{p: np, g: tentG, f: tentG + heuristic(np, goal)})
		}
	}
	return nil, 0, false // no path
}

func inBounds(p Point, w, h int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func heuristic(a, b Point) float64 {
	return float64(abs(a.X-b.X) + abs(a.Y-b.Y))
}

func reconstructPath(came []int32, w int, goal Point) []Point {
	path := []Point{goal}
	cur := goal.Y*w + goal.X
	for came[cur] >= 0 {
		cur = int(came[cur])
		path = append(path, Point{cur % w, cur / w})
	}
	// Reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// --- Priority queue ---

type node struct {
	p    Point
	g, f float64
}

type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f == h[j].f {
		return h[i].g > h[j].g
	}
	return h[i].f < h[j].f
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)   { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
