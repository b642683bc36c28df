package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"

	"github.com/1siamBot/rts-navigation/engine/geom"
	"github.com/1siamBot/rts-navigation/engine/nav"
)

func TestAppendQuadTriangles(t *testing.T) {
	cam := NewCamera(100, 100)
	quads := []nav.Quad{
		{Corners: [4]geom.Vec2{{X: 0, Z: 0}, {X: 0, Z: 1}, {X: -1, Z: 1}, {X: -1, Z: 0}}, Color: colornames.Red},
		{Corners: [4]geom.Vec2{{X: -1, Z: 0}, {X: -1, Z: 1}, {X: -2, Z: 1}, {X: -2, Z: 0}}, Color: colornames.Blue},
	}

	vs, is := appendQuadTriangles(nil, nil, quads, geom.Mat4Translate(-10, 0, 5), cam, 0.5)
	require.Len(t, vs, 8)
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}, is)

	// (0,0) + (-10,5) lands 10 px right and 5 px below the center
	assert.Equal(t, float32(60), vs[0].DstX)
	assert.Equal(t, float32(55), vs[0].DstY)
	assert.Equal(t, float32(61), vs[2].DstX)
	assert.Equal(t, float32(56), vs[2].DstY)

	assert.Equal(t, float32(1), vs[0].ColorR)
	assert.Equal(t, float32(0), vs[0].ColorB)
	assert.Equal(t, float32(0.5), vs[0].ColorA)
	assert.Equal(t, float32(1), vs[4].ColorB)
}
