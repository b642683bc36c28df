package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"

	"github.com/1siamBot/rts-navigation/editor"
	"github.com/1siamBot/rts-navigation/engine/config"
	"github.com/1siamBot/rts-navigation/engine/core"
	"github.com/1siamBot/rts-navigation/engine/geom"
	"github.com/1siamBot/rts-navigation/engine/input"
	"github.com/1siamBot/rts-navigation/engine/maplib"
	"github.com/1siamBot/rts-navigation/engine/nav"
	"github.com/1siamBot/rts-navigation/engine/render"
)

// viewer is the ebiten game that shows the navigation overlay of one map
type viewer struct {
	cfg    config.Config
	log    logrus.FieldLogger
	bus    *core.EventBus
	editor *editor.Editor
	store  *nav.Store

	cam      *render.Camera
	overlay  *render.OverlayRenderer
	input    *input.InputState
	pathfind nav.AStar

	showCost    bool
	showPortals bool
	routeMode   bool
	routeFrom   *nav.MapCell
	route       []routeLeg
	status      string
}

// routeLeg is the cell path of one route segment inside a single chunk
type routeLeg struct {
	chunkR, chunkC int
	cells          []nav.Coord
}

func newViewer(cfg config.Config, tm *maplib.TileMap, mats []maplib.Material, log logrus.FieldLogger) (*viewer, error) {
	v := &viewer{
		cfg:         cfg,
		log:         log,
		bus:         core.NewEventBus(),
		cam:         render.NewCamera(cfg.Window.Width, cfg.Window.Height),
		input:       input.NewInputState(),
		showCost:    true,
		showPortals: true,
	}
	v.overlay = render.NewOverlayRenderer(v.cam)
	v.editor = editor.NewEditor(tm, v.bus)
	v.editor.FilePath = cfg.Map.Path
	v.editor.Materials = mats

	v.bus.On(core.EvtTileChanged, v.onTileChanged)
	v.bus.On(core.EvtMapLoaded, v.onMapLoaded)
	v.bus.On(core.EvtMapUnloaded, func(core.Event) { v.freeStore() })

	if err := v.build(tm); err != nil {
		return nil, err
	}
	g := v.store.Overlay()
	v.cam.Fit(0, 0, -float64(tm.Width)*g.ChunkX, float64(tm.Height)*g.ChunkZ)
	return v, nil
}

func (v *viewer) build(tm *maplib.TileMap) error {
	s, err := nav.BuildFromMap(context.Background(), tm, v.cfg.Nav, nav.WithLogger(v.log))
	if err != nil {
		return err
	}
	v.freeStore()
	v.store = s
	v.clearRoute()
	return nil
}

func (v *viewer) freeStore() {
	if v.store != nil {
		v.store.Free()
		v.store = nil
	}
}

func (v *viewer) close() {
	v.bus.Emit(core.Event{Type: core.EvtMapUnloaded})
	v.bus.Dispatch()
}

func (v *viewer) onTileChanged(e core.Event) {
	tc := e.Payload.(core.TileChange)
	if v.store == nil {
		return
	}
	d := tc.Desc
	if err := v.store.UpdateTile(d.ChunkR, d.ChunkC, d.TileR, d.TileC, tc.Tile); err != nil {
		v.log.WithError(err).Warn("tile update rejected")
		return
	}
	v.clearRoute()
}

func (v *viewer) onMapLoaded(e core.Event) {
	ml := e.Payload.(core.MapLoaded)
	if err := v.build(ml.Map); err != nil {
		v.log.WithError(err).Error("rebuilding navigation")
		v.status = err.Error()
	}
}

func (v *viewer) Update() error {
	v.input.Update()
	v.updateCamera()

	if v.input.Pressed(input.ActionToggleCost) {
		v.showCost = !v.showCost
	}
	if v.input.Pressed(input.ActionTogglePortals) {
		v.showPortals = !v.showPortals
	}
	if v.input.Pressed(input.ActionCycleTool) {
		v.editor.Tool = v.editor.Tool.Next()
	}
	if v.input.Pressed(input.ActionRouteMode) {
		v.routeMode = !v.routeMode
		v.routeFrom = nil
	}
	if v.input.Pressed(input.ActionClearRoute) {
		v.clearRoute()
	}
	if v.input.Pressed(input.ActionRelink) && v.store != nil {
		if err := v.store.Relink(context.Background()); err != nil {
			v.log.WithError(err).Error("relink failed")
		}
		v.clearRoute()
	}
	if v.input.Pressed(input.ActionSaveMap) {
		if err := v.editor.SaveMap(""); err != nil {
			v.log.WithError(err).Error("save failed")
		} else {
			v.log.WithField("path", v.editor.FilePath).Info("map saved")
		}
	}

	if v.input.LeftJustPressed {
		v.click()
	}

	v.bus.Dispatch()
	return nil
}

func (v *viewer) updateCamera() {
	speed := v.cam.Speed / float64(ebiten.TPS())
	if v.input.Held(input.ActionPanUp) {
		v.cam.Pan(0, -speed)
	}
	if v.input.Held(input.ActionPanDown) {
		v.cam.Pan(0, speed)
	}
	if v.input.Held(input.ActionPanLeft) {
		v.cam.Pan(-speed, 0)
	}
	if v.input.Held(input.ActionPanRight) {
		v.cam.Pan(speed, 0)
	}
	if v.input.ScrollY != 0 {
		v.cam.ZoomAt(math.Pow(1.1, v.input.ScrollY), v.input.MouseX, v.input.MouseY)
	}
	if v.input.Dragging {
		v.cam.Pan(float64(-v.input.MouseDX), float64(-v.input.MouseDY))
	}
}

func (v *viewer) click() {
	if v.store == nil {
		return
	}
	wx, wz := v.cam.ScreenToWorld(v.input.MouseX, v.input.MouseY)

	if !v.routeMode {
		oc := v.cfg.Nav.Overlay
		x := int(math.Floor(-wx / oc.XCoordsPerTile))
		y := int(math.Floor(wz / oc.ZCoordsPerTile))
		v.editor.Paint(x, y)
		return
	}

	r, c, cell := v.store.Overlay().Locate(wx, wz)
	mc := nav.MapCell{ChunkR: r, ChunkC: c, Cell: cell}
	if v.store.Chunk(r, c) == nil {
		return
	}
	if v.routeFrom == nil {
		v.route = nil
		v.routeFrom = &mc
		v.status = fmt.Sprintf("route from chunk (%d,%d) cell %v", r, c, cell)
		return
	}
	v.findRoute(*v.routeFrom, mc)
	v.routeFrom = nil
}

func (v *viewer) findRoute(from, to nav.MapCell) {
	rt, err := v.store.Route(context.Background(), from, to)
	switch {
	case errors.Is(err, nav.ErrNoRoute):
		v.status = "no route"
		v.route = nil
		return
	case err != nil:
		v.log.WithError(err).Error("route query")
		v.status = err.Error()
		return
	}

	// Waypoints are the endpoints and every portal midpoint. Consecutive
	// waypoints in one chunk are joined by a cell path.
	points := []nav.MapCell{from}
	for _, ref := range rt.Portals {
		p, ok := v.store.Portal(ref)
		if !ok {
			continue
		}
		points = append(points, nav.MapCell{ChunkR: p.Chunk.R, ChunkC: p.Chunk.C, Cell: p.Midpoint()})
	}
	points = append(points, to)

	v.route = v.route[:0]
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if a.ChunkR != b.ChunkR || a.ChunkC != b.ChunkC {
			continue
		}
		cells, _, ok := v.pathfind.FindPath(a.Cell, b.Cell, v.store.Chunk(a.ChunkR, a.ChunkC).Field)
		if ok {
			v.route = append(v.route, routeLeg{chunkR: a.ChunkR, chunkC: a.ChunkC, cells: cells})
		}
	}
	v.status = fmt.Sprintf("route: %d portals, cost %.0f", len(rt.Portals), rt.Cost)
}

func (v *viewer) clearRoute() {
	v.route = nil
	v.routeFrom = nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 30, 40, 255})
	if v.store == nil {
		ebitenutil.DebugPrint(screen, "no navigation data")
		return
	}

	v.overlay.Target = screen
	g := v.store.Overlay()
	lay := v.store.Layout()
	for r := 0; r < lay.Height; r++ {
		for c := 0; c < lay.Width; c++ {
			model := g.ChunkModel(r, c)
			if v.showCost || v.showPortals {
				v.drawChunk(model, r, c)
			}
		}
	}
	for _, leg := range v.route {
		if err := v.store.RenderChunkPath(g.ChunkModel(leg.chunkR, leg.chunkC), leg.chunkR, leg.chunkC, leg.cells, v.overlay); err != nil {
			v.log.WithError(err).Debug("route leg skipped")
		}
	}
	v.drawChunkBorders(screen, g, lay)
	v.drawHUD(screen)
}

func (v *viewer) drawChunk(model geom.Mat4, r, c int) {
	ch := v.store.Chunk(r, c)
	g := v.store.Overlay()
	switch {
	case v.showCost && v.showPortals:
		if err := v.store.RenderPathableChunk(model, r, c, v.overlay); err != nil {
			v.log.WithError(err).Debug("chunk overlay skipped")
		}
	case v.showCost:
		v.overlay.DrawMapOverlayQuads(g.AppendCostQuads(nil, ch.Field), model)
	case v.showPortals:
		v.overlay.DrawMapOverlayQuads(g.AppendPortalQuads(nil, ch.Portals), model)
	}
}

func (v *viewer) drawChunkBorders(screen *ebiten.Image, g nav.OverlayGeometry, lay nav.Layout) {
	border := color.RGBA{255, 255, 255, 90}
	x0, z0 := v.cam.WorldToScreen(0, 0)
	x1, z1 := v.cam.WorldToScreen(-float64(lay.Width)*g.ChunkX, float64(lay.Height)*g.ChunkZ)
	for c := 0; c <= lay.Width; c++ {
		x, _ := v.cam.WorldToScreen(-float64(c)*g.ChunkX, 0)
		vector.StrokeLine(screen, x, z0, x, z1, 1, border, false)
	}
	for r := 0; r <= lay.Height; r++ {
		_, z := v.cam.WorldToScreen(0, float64(r)*g.ChunkZ)
		vector.StrokeLine(screen, x0, z, x1, z, 1, border, false)
	}
}

func (v *viewer) drawHUD(screen *ebiten.Image) {
	st := v.store.Stats()
	mode := "paint:" + v.editor.Tool.String()
	if v.routeMode {
		mode = "route"
	}
	stale := ""
	if v.store.Stale() {
		stale = " [STALE: press R to relink]"
	}
	info := fmt.Sprintf("Chunks:%d Links:%d Portals:%d Edges:%d | Mode:%s%s\n%s\n"+
		"[LMB]Paint/Route [Tab]Mode [T]Tool [R]Relink [C]Cost [P]Portals [Esc]Clear [F5]Save [WASD/RMB]Pan [Scroll]Zoom",
		st.Chunks, st.Links, st.PortalPairs, st.Edges, mode, stale, v.status)
	ebitenutil.DebugPrintAt(screen, info, 5, 5)
}

func (v *viewer) Layout(outsideW, outsideH int) (int, int) {
	v.cam.Resize(outsideW, outsideH)
	return outsideW, outsideH
}
