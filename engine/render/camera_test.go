package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorldScreenRoundTrip(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.CenterOn(-100, 50)
	cam.SetZoom(2)

	sx, sy := cam.WorldToScreen(-100, 50)
	assert.Equal(t, float32(400), sx)
	assert.Equal(t, float32(300), sy)

	// -X is screen right, +Z is screen down
	sx, sy = cam.WorldToScreen(-110, 60)
	assert.Equal(t, float32(420), sx)
	assert.Equal(t, float32(320), sy)

	wx, wz := cam.ScreenToWorld(420, 320)
	assert.InDelta(t, -110, wx, 1e-9)
	assert.InDelta(t, 60, wz, 1e-9)
}

func TestPanMovesInScreenDirection(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.SetZoom(2)
	cam.Pan(20, 10)
	assert.InDelta(t, -10, cam.X, 1e-9)
	assert.InDelta(t, 5, cam.Z, 1e-9)
}

func TestZoomClampsAndKeepsCursorPoint(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.SetZoom(100)
	assert.Equal(t, cam.MaxZoom, cam.Zoom)
	cam.SetZoom(0)
	assert.Equal(t, cam.MinZoom, cam.Zoom)

	cam.SetZoom(1)
	before, _ := cam.ScreenToWorld(100, 100)
	cam.ZoomAt(2, 100, 100)
	after, _ := cam.ScreenToWorld(100, 100)
	assert.Equal(t, 2.0, cam.Zoom)
	assert.InDelta(t, before, after, 1e-9)
}

func TestFit(t *testing.T) {
	cam := NewCamera(800, 400)
	cam.Fit(0, 0, -200, 100)
	assert.InDelta(t, -100, cam.X, 1e-9)
	assert.InDelta(t, 50, cam.Z, 1e-9)
	assert.InDelta(t, 3.8, cam.Zoom, 1e-9)
}
