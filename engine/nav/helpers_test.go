package nav

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/rts-navigation/engine/geom"
	"github.com/1siamBot/rts-navigation/engine/maplib"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// smallConfig uses 8x8 fields so tests stay fast
func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.FieldRows = 8
	cfg.FieldCols = 8
	cfg.Workers = 1
	return cfg
}

func flatTiles(w, h, tilesW, tilesH int) [][]maplib.Tile {
	tm := maplib.NewTileMap("test", w, h, tilesW, tilesH)
	return tm.Chunks
}

func buildFlat(t *testing.T, w, h int) *Store {
	t.Helper()
	s, err := Build(context.Background(), Layout{Width: w, Height: h, ChunkTilesW: 4, ChunkTilesH: 4},
		flatTiles(w, h, 4, 4), smallConfig(), WithLogger(quietLogger()))
	require.NoError(t, err)
	t.Cleanup(s.Free)
	return s
}

// fieldStore assembles a store around hand-made cost fields without running
// any build phase
func fieldStore(w, h int, cfg Config, fields ...*CostField) *Store {
	s := &Store{
		layout: Layout{Width: w, Height: h, ChunkTilesW: 4, ChunkTilesH: 4},
		cfg:    cfg,
		chunks: make([]Chunk, w*h),
		pf:     AStar{},
		log:    quietLogger(),
	}
	for i := range s.chunks {
		if i < len(fields) && fields[i] != nil {
			s.chunks[i].Field = fields[i]
		} else {
			s.chunks[i].Field = NewCostField(cfg.FieldRows, cfg.FieldCols)
		}
	}
	return s
}

// fieldFrom parses rows where '#' is impassable
func fieldFrom(rows ...string) *CostField {
	f := NewCostField(len(rows), len(rows[0]))
	for r, row := range rows {
		for c := range row {
			if row[c] == '#' {
				f.Set(Coord{R: r, C: c}, CostImpassable)
			}
		}
	}
	return f
}

// linkedStore runs discovery and linking over hand-made fields
func linkedStore(t *testing.T, w, h int, cfg Config, fields ...*CostField) *Store {
	t.Helper()
	s := fieldStore(w, h, cfg, fields...)
	require.NoError(t, s.relink(context.Background()))
	return s
}

type recordedDraw struct {
	quads []Quad
	model geom.Mat4
}

type recordingRenderer struct {
	draws []recordedDraw
}

func (r *recordingRenderer) DrawMapOverlayQuads(quads []Quad, model geom.Mat4) {
	r.draws = append(r.draws, recordedDraw{quads: append([]Quad(nil), quads...), model: model})
}
