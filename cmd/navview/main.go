package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/1siamBot/rts-navigation/engine/config"
	"github.com/1siamBot/rts-navigation/engine/maplib"
	"github.com/1siamBot/rts-navigation/engine/nav"
)

func main() {
	cfgPath := flag.String("config", "navview.yaml", "path to YAML config")
	mapPath := flag.String("map", "", "map JSON to load (overrides config)")
	stats := flag.Bool("stats", false, "build navigation, print stats and exit")
	seed := flag.Int64("seed", 1, "demo map seed")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *mapPath != "" {
		cfg.Map.Path = *mapPath
	}

	log, err := cfg.Log.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	tm, mats, err := loadMap(cfg.Map, *seed)
	if err != nil {
		log.WithError(err).Fatal("loading map")
	}

	if *stats {
		if err := printStats(tm, cfg.Nav, log); err != nil {
			log.WithError(err).Fatal("building navigation")
		}
		return
	}

	v, err := newViewer(cfg, tm, mats, log)
	if err != nil {
		log.WithError(err).Fatal("building navigation")
	}
	defer v.close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(v); err != nil {
		log.WithError(err).Fatal("viewer stopped")
	}
}

// loadMap reads a JSON or .pfmap file, or generates the demo map when no path
// is configured. Text maps take their chunk size from the config.
func loadMap(mc config.MapConfig, seed int64) (*maplib.TileMap, []maplib.Material, error) {
	switch {
	case mc.Path == "":
		return maplib.Generate("demo", mc.DemoWidth, mc.DemoHeight, mc.ChunkTilesW, mc.ChunkTilesH, seed), nil, nil
	case maplib.IsPFMap(mc.Path):
		return maplib.LoadPFMap(mc.Path, mc.ChunkTilesW, mc.ChunkTilesH)
	}
	tm, err := maplib.LoadJSON(mc.Path)
	return tm, nil, err
}

func printStats(tm *maplib.TileMap, cfg nav.Config, log logrus.FieldLogger) error {
	s, err := nav.BuildFromMap(context.Background(), tm, cfg, nav.WithLogger(log))
	if err != nil {
		return err
	}
	defer s.Free()

	st := s.Stats()
	fmt.Printf("map:          %s (%dx%d chunks, %dx%d tiles per chunk)\n",
		tm.Name, tm.Width, tm.Height, tm.ChunkTilesW, tm.ChunkTilesH)
	fmt.Printf("resolution:   %dx%d\n", cfg.FieldRows, cfg.FieldCols)
	fmt.Printf("links:        %d\n", st.Links)
	fmt.Printf("portal pairs: %d\n", st.PortalPairs)
	fmt.Printf("edges:        %d\n", st.Edges)

	blocked := 0
	for r := 0; r < tm.Height; r++ {
		for c := 0; c < tm.Width; c++ {
			blocked += s.Chunk(r, c).Field.Impassable()
		}
	}
	fmt.Printf("blocked cells: %d\n", blocked)
	return nil
}
