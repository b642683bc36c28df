// Package nav builds and queries the two-level navigation structure of a
// loaded map: one dense cost field per chunk, plus a graph of portals on the
// chunk boundaries.
//
// A Store is built once per map during load and owned by the map driver. It is
// not safe for concurrent use; tile updates, relinking, route queries and
// overlay rendering must be serialized by the caller.
package nav

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/1siamBot/rts-navigation/engine/maplib"
)

// Layout describes the chunk grid of a map
type Layout struct {
	Width, Height            int // chunks
	ChunkTilesW, ChunkTilesH int // tiles per chunk
}

// Chunk owns one cost field and the portals on its edges
type Chunk struct {
	Field   *CostField
	Portals []Portal
}

// Stats summarizes a built store
type Stats struct {
	Chunks      int
	Links       int // chunk adjacencies linked
	PortalPairs int
	Edges       int // intra-chunk directed edges
}

// Store is the navigation data of one loaded map
type Store struct {
	layout Layout
	cfg    Config
	chunks []Chunk
	links  int
	stale  bool

	pf    Pathfinder
	log   logrus.FieldLogger
	cache *ristretto.Cache[string, Route]

	quads    []Quad
	released bool
}

// Option customizes a Store at build time
type Option func(*Store)

// WithLogger sets the logger used for build and update diagnostics
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) { s.log = l }
}

// WithPathfinder replaces the default A* search
func WithPathfinder(pf Pathfinder) Option {
	return func(s *Store) { s.pf = pf }
}

// BuildFromMap builds a store from a chunked tile map
func BuildFromMap(ctx context.Context, tm *maplib.TileMap, cfg Config, opts ...Option) (*Store, error) {
	layout := Layout{
		Width:       tm.Width,
		Height:      tm.Height,
		ChunkTilesW: tm.ChunkTilesW,
		ChunkTilesH: tm.ChunkTilesH,
	}
	return Build(ctx, layout, tm.Chunks, cfg, opts...)
}

// Build rasterizes every chunk's tiles into its cost field, discovers the
// portals between all adjacent chunks and links the portals of each chunk.
// tiles holds one row-major tile slice per chunk, chunks row-major.
//
// Malformed input yields an error wrapping ErrInvalidNavData. Construction is
// deterministic: identical input produces identical chunks and portals.
func Build(ctx context.Context, layout Layout, tiles [][]maplib.Tile, cfg Config, opts ...Option) (*Store, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateLayout(layout, tiles); err != nil {
		return nil, err
	}
	if err := checkResolution(cfg.FieldRows, cfg.FieldCols, layout.ChunkTilesW, layout.ChunkTilesH); err != nil {
		return nil, err
	}

	s := &Store{
		layout: layout,
		cfg:    cfg,
		chunks: make([]Chunk, layout.Width*layout.Height),
		pf:     AStar{},
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// First build the base cost field based on terrain
	err := s.forEachChunk(ctx, func(idx int) error {
		field := NewCostField(cfg.FieldRows, cfg.FieldCols)
		for tr := 0; tr < layout.ChunkTilesH; tr++ {
			for tc := 0; tc < layout.ChunkTilesW; tc++ {
				field.SetTile(layout.ChunkTilesW, layout.ChunkTilesH, tr, tc, tiles[idx][tr*layout.ChunkTilesW+tc])
			}
		}
		s.chunks[idx].Field = field
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("building cost fields: %w", err)
	}
	s.log.WithField("elapsed", time.Since(start)).Debug("nav cost fields built")

	if err := s.relink(ctx); err != nil {
		return nil, err
	}

	if cfg.RouteCacheSize > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config[string, Route]{
			NumCounters: cfg.RouteCacheSize * 10,
			MaxCost:     cfg.RouteCacheSize,
			BufferItems: 64,

			IgnoreInternalCost: true,
		})
		if err != nil {
			return nil, fmt.Errorf("creating route cache: %w", err)
		}
		s.cache = cache
	}

	st := s.Stats()
	s.log.WithFields(logrus.Fields{
		"chunks":  st.Chunks,
		"links":   st.Links,
		"portals": st.PortalPairs,
		"edges":   st.Edges,
		"elapsed": time.Since(start),
	}).Info("navigation built")

	return s, nil
}

func validateLayout(layout Layout, tiles [][]maplib.Tile) error {
	if layout.Width <= 0 || layout.Height <= 0 {
		return fmt.Errorf("%w: chunk grid %dx%d", ErrInvalidNavData, layout.Width, layout.Height)
	}
	if len(tiles) != layout.Width*layout.Height {
		return fmt.Errorf("%w: got tiles for %d chunks, want %d", ErrInvalidNavData, len(tiles), layout.Width*layout.Height)
	}
	want := layout.ChunkTilesW * layout.ChunkTilesH
	for i, t := range tiles {
		if len(t) != want {
			return fmt.Errorf("%w: chunk %d has %d tiles, want %d", ErrInvalidNavData, i, len(t), want)
		}
	}
	return nil
}

// relink rebuilds all portals, then the intra-chunk graph. Discovery touches
// pairs of neighbouring chunks and runs serially; linking only reads and
// writes one chunk, so chunks are linked in parallel once discovery is done.
// On failure the previous portals and graph are restored.
func (s *Store) relink(ctx context.Context) error {
	prev := make([][]Portal, len(s.chunks))
	for i := range s.chunks {
		prev[i] = s.chunks[i].Portals
	}
	prevLinks := s.links
	restore := func() {
		for i := range s.chunks {
			s.chunks[i].Portals = prev[i]
		}
		s.links = prevLinks
	}

	start := time.Now()
	if err := s.createPortals(); err != nil {
		restore()
		return fmt.Errorf("discovering portals: %w", err)
	}
	s.log.WithField("elapsed", time.Since(start)).Debug("nav portals discovered")

	start = time.Now()
	err := s.forEachChunk(ctx, func(idx int) error {
		s.linkChunkPortals(idx)
		return nil
	})
	if err != nil {
		restore()
		return fmt.Errorf("linking portals: %w", err)
	}
	s.log.WithField("elapsed", time.Since(start)).Debug("nav portals linked")

	s.stale = false
	return nil
}

func (s *Store) forEachChunk(ctx context.Context, fn func(idx int) error) error {
	if s.cfg.Workers <= 1 {
		for i := range s.chunks {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i := range s.chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	return g.Wait()
}

// Free releases the navigation data. The store cannot be used afterwards.
func (s *Store) Free() {
	if s.released {
		return
	}
	if s.cache != nil {
		s.cache.Close()
		s.cache = nil
	}
	s.chunks = nil
	s.quads = nil
	s.released = true
}

// UpdateTile re-rasterizes one tile's block of cost cells. Portals and the
// portal graph are left as they were; the store reports Stale until Relink
// is called.
func (s *Store) UpdateTile(chunkR, chunkC, tileR, tileC int, t maplib.Tile) error {
	if s.released {
		return ErrReleased
	}
	if !s.inChunkGrid(chunkR, chunkC) ||
		tileR < 0 || tileR >= s.layout.ChunkTilesH || tileC < 0 || tileC >= s.layout.ChunkTilesW {
		return fmt.Errorf("%w: tile (%d,%d) of chunk (%d,%d)", ErrOutOfBounds, tileR, tileC, chunkR, chunkC)
	}

	field := s.chunks[s.chunkIndex(chunkR, chunkC)].Field
	field.SetTile(s.layout.ChunkTilesW, s.layout.ChunkTilesH, tileR, tileC, t)
	s.stale = true
	s.clearRoutes()

	s.log.WithFields(logrus.Fields{
		"chunk":    Coord{R: chunkR, C: chunkC},
		"tile":     Coord{R: tileR, C: tileC},
		"pathable": TilePathable(t),
	}).Debug("nav tile updated")
	return nil
}

// Relink rediscovers all portals and rebuilds the portal graph from the
// current cost fields. If it fails, for example because ctx is cancelled, the
// previous graph is kept and Stale is unchanged.
func (s *Store) Relink(ctx context.Context) error {
	if s.released {
		return ErrReleased
	}
	s.clearRoutes()
	return s.relink(ctx)
}

// Stale reports whether tiles changed since the portal graph was built
func (s *Store) Stale() bool { return s.stale }

// Layout returns the chunk grid the store was built for
func (s *Store) Layout() Layout { return s.layout }

// Resolution returns the cost field rows and columns per chunk
func (s *Store) Resolution() (rows, cols int) { return s.cfg.FieldRows, s.cfg.FieldCols }

// Chunk returns the chunk at (r, c), or nil when out of range or released
func (s *Store) Chunk(r, c int) *Chunk {
	if s.released || !s.inChunkGrid(r, c) {
		return nil
	}
	return &s.chunks[s.chunkIndex(r, c)]
}

// Portal resolves a portal reference
func (s *Store) Portal(ref PortalRef) (*Portal, bool) {
	if s.released || ref.Chunk < 0 || ref.Chunk >= len(s.chunks) {
		return nil, false
	}
	ch := &s.chunks[ref.Chunk]
	if ref.Index < 0 || ref.Index >= len(ch.Portals) {
		return nil, false
	}
	return &ch.Portals[ref.Index], true
}

// LinkCount is the number of chunk adjacencies that were scanned for portals
func (s *Store) LinkCount() int { return s.links }

// Stats counts chunks, links, portal pairs and graph edges
func (s *Store) Stats() Stats {
	st := Stats{Chunks: len(s.chunks), Links: s.links}
	portals := 0
	for i := range s.chunks {
		portals += len(s.chunks[i].Portals)
		for j := range s.chunks[i].Portals {
			st.Edges += len(s.chunks[i].Portals[j].Edges)
		}
	}
	st.PortalPairs = portals / 2
	return st
}

func (s *Store) chunkIndex(r, c int) int { return r*s.layout.Width + c }

func (s *Store) inChunkGrid(r, c int) bool {
	return r >= 0 && c >= 0 && r < s.layout.Height && c < s.layout.Width
}

func (s *Store) clearRoutes() {
	if s.cache != nil {
		s.cache.Clear()
	}
}
