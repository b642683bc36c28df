package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1siamBot/rts-navigation/engine/geom"
	"github.com/1siamBot/rts-navigation/engine/nav"
)

// Vertices per DrawTriangles batch; indices are uint16
const maxBatchQuads = (1 << 16) / 4

// OverlayRenderer draws navigation overlay quads onto a target image through
// a top-down camera. It implements nav.Renderer.
type OverlayRenderer struct {
	Camera *Camera
	Target *ebiten.Image
	Alpha  float32 // applied to every quad color

	white *ebiten.Image
	vs    []ebiten.Vertex
	is    []uint16
}

var _ nav.Renderer = (*OverlayRenderer)(nil)

// NewOverlayRenderer creates a renderer. Target is set per frame.
func NewOverlayRenderer(cam *Camera) *OverlayRenderer {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &OverlayRenderer{
		Camera: cam,
		Alpha:  0.6,
		white:  white,
	}
}

// DrawMapOverlayQuads transforms the quads by model into world space and
// draws them filled
func (r *OverlayRenderer) DrawMapOverlayQuads(quads []nav.Quad, model geom.Mat4) {
	if r.Target == nil {
		return
	}
	for len(quads) > 0 {
		n := min(len(quads), maxBatchQuads)
		r.vs, r.is = appendQuadTriangles(r.vs[:0], r.is[:0], quads[:n], model, r.Camera, r.Alpha)
		r.Target.DrawTriangles(r.vs, r.is, r.white, nil)
		quads = quads[n:]
	}
}

// appendQuadTriangles emits four vertices and two triangles per quad
func appendQuadTriangles(vs []ebiten.Vertex, is []uint16, quads []nav.Quad, model geom.Mat4, cam *Camera, alpha float32) ([]ebiten.Vertex, []uint16) {
	for _, q := range quads {
		base := uint16(len(vs))
		cr := float32(q.Color.R) / 255
		cg := float32(q.Color.G) / 255
		cb := float32(q.Color.B) / 255
		ca := float32(q.Color.A) / 255 * alpha
		for _, p := range q.Corners {
			w := model.TransformXZ(p, 0)
			sx, sy := cam.WorldToScreen(w.X, w.Z)
			vs = append(vs, ebiten.Vertex{
				DstX: sx, DstY: sy,
				SrcX: 1, SrcY: 1,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			})
		}
		is = append(is, base, base+1, base+2, base, base+2, base+3)
	}
	return vs, is
}
