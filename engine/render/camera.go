package render

import "math"

// Camera is a top-down view onto the world XZ plane. The view looks down +Y
// with screen right along -X and screen down along +Z, so chunk (0,0) sits at
// the top left.
type Camera struct {
	X, Z    float64 // camera center position (world coords)
	Zoom    float64 // pixels per world unit
	MinZoom float64
	MaxZoom float64
	ScreenW int // viewport width in pixels
	ScreenH int // viewport height in pixels
	Speed   float64 // pan speed (pixels per second)
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:    1.0,
		MinZoom: 0.05,
		MaxZoom: 8.0,
		ScreenW: screenW,
		ScreenH: screenH,
		Speed:   500,
	}
}

// Pan moves the camera by pixel delta
func (c *Camera) Pan(dx, dy float64) {
	c.X -= dx / c.Zoom
	c.Z += dy / c.Zoom
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomAt zooms toward a screen point
func (c *Camera) ZoomAt(factor float64, screenX, screenY int) {
	wx, wz := c.ScreenToWorld(screenX, screenY)
	c.SetZoom(c.Zoom * factor)
	wx2, wz2 := c.ScreenToWorld(screenX, screenY)
	// Keep the point under the cursor stationary
	c.X += wx - wx2
	c.Z += wz - wz2
}

// CenterOn centers the camera on a world position
func (c *Camera) CenterOn(wx, wz float64) {
	c.X, c.Z = wx, wz
}

// Fit centers a world rectangle spanning [x0,x1] x [z0,z1] and zooms so it
// fills the viewport
func (c *Camera) Fit(x0, z0, x1, z1 float64) {
	w, h := math.Abs(x1-x0), math.Abs(z1-z0)
	c.CenterOn((x0+x1)/2, (z0+z1)/2)
	if w == 0 || h == 0 {
		return
	}
	c.SetZoom(math.Min(float64(c.ScreenW)/w, float64(c.ScreenH)/h) * 0.95)
}

// WorldToScreen converts a world XZ position to screen pixels
func (c *Camera) WorldToScreen(wx, wz float64) (float32, float32) {
	sx := (c.X-wx)*c.Zoom + float64(c.ScreenW)/2
	sy := (wz-c.Z)*c.Zoom + float64(c.ScreenH)/2
	return float32(sx), float32(sy)
}

// ScreenToWorld converts a screen pixel to a world XZ position
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	wx := c.X - (float64(sx)-float64(c.ScreenW)/2)/c.Zoom
	wz := c.Z + (float64(sy)-float64(c.ScreenH)/2)/c.Zoom
	return wx, wz
}

// Resize updates the viewport after a window layout change
func (c *Camera) Resize(screenW, screenH int) {
	c.ScreenW, c.ScreenH = screenW, screenH
}
