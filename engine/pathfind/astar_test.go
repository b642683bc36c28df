package pathfind

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGrid is a byte grid where '#' is a wall and digits are entry costs
type testGrid struct {
	w, h  int
	cells []byte
}

func newTestGrid(rows ...string) *testGrid {
	g := &testGrid{w: len(rows[0]), h: len(rows)}
	for _, r := range rows {
		g.cells = append(g.cells, r...)
	}
	return g
}

func (g *testGrid) Size() (int, int)         { return g.w, g.h }
func (g *testGrid) Passable(x, y int) bool { return g.cells[y*g.w+x] != '#' }
func (g *testGrid) Cost(x, y int) float64 {
	c := g.cells[y*g.w+x]
	if c >= '1' && c <= '9' {
		return float64(c - '0')
	}
	return 1
}

func assertContiguous(t *testing.T, g Grid, path []Point) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		d := abs(path[i].X-path[i-1].X) + abs(path[i].Y-path[i-1].Y)
		assert.Equal(t, 1, d, "step %d not 4-adjacent: %v -> %v", i, path[i-1], path[i])
		assert.True(t, g.Passable(path[i].X, path[i].Y))
	}
}

func TestFindPathSameCell(t *testing.T) {
	g := newTestGrid("...", "...")
	path, cost, ok := FindPath(g, Point{1, 1}, Point{1, 1})
	require.True(t, ok)
	assert.Equal(t, []Point{{1, 1}}, path)
	assert.Equal(t, 0.0, cost)
}

func TestFindPathOpenGrid(t *testing.T) {
	g := newTestGrid(
		".....",
		".....",
		".....",
		".....",
	)
	path, cost, ok := FindPath(g, Point{0, 0}, Point{4, 3})
	require.True(t, ok)
	assert.Equal(t, 7.0, cost)
	assert.Len(t, path, 8)
	assert.Equal(t, Point{0, 0}, path[0])
	assert.Equal(t, Point{4, 3}, path[len(path)-1])
	assertContiguous(t, g, path)
}

func TestFindPathThroughGap(t *testing.T) {
	g := newTestGrid(
		".....",
		".....",
		"###.#",
		".....",
		".....",
	)
	path, cost, ok := FindPath(g, Point{0, 0}, Point{0, 4})
	require.True(t, ok)
	// 3 right to the gap column, 4 down, 3 back left
	assert.Equal(t, 10.0, cost)
	assertContiguous(t, g, path)
	assert.Contains(t, path, Point{3, 2})
}

func TestFindPathBlocked(t *testing.T) {
	g := newTestGrid(
		"...",
		"###",
		"...",
	)
	_, _, ok := FindPath(g, Point{0, 0}, Point{2, 2})
	assert.False(t, ok)

	_, _, ok = FindPath(g, Point{0, 0}, Point{0, 1})
	assert.False(t, ok, "goal on wall")

	_, _, ok = FindPath(g, Point{0, 0}, Point{5, 5})
	assert.False(t, ok, "goal out of bounds")
}

func TestFindPathPrefersCheapCells(t *testing.T) {
	g := newTestGrid(
		".9.",
		"...",
	)
	path, cost, ok := FindPath(g, Point{0, 0}, Point{2, 0})
	require.True(t, ok)
	assert.Equal(t, 4.0, cost)
	assert.NotContains(t, path, Point{1, 0})
}

func TestFindPathSymmetricCost(t *testing.T) {
	g := newTestGrid(
		"..#...",
		"..#.#.",
		"....#.",
		"###.#.",
		"......",
	)
	a, b := Point{0, 0}, Point{5, 0}
	_, ab, ok := FindPath(g, a, b)
	require.True(t, ok)
	_, ba, ok := FindPath(g, b, a)
	require.True(t, ok)
	assert.Equal(t, ab, ba)
}

func TestNodeHeap(t *testing.T) {
	h := &nodeHeap{}
	heap.Init(h)
	heap.Push(h, &node{p: Point{1, 0}, f: 10})
	heap.Push(h, &node{p: Point{2, 0}, f: 5})
	heap.Push(h, &node{p: Point{3, 0}, f: 15})

	assert.Equal(t, 2, heap.Pop(h).(*node).p.X)
	assert.Equal(t, 1, heap.Pop(h).(*node).p.X)
	assert.Equal(t, 3, heap.Pop(h).(*node).p.X)
}
