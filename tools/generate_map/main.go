package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/1siamBot/rts-navigation/engine/maplib"
	"github.com/1siamBot/rts-navigation/engine/nav"
)

func main() {
	out := flag.String("out", filepath.Join("maps", "demo.json"), "map to write; a .pfmap extension selects the text format")
	preview := flag.String("preview", "", "optional PNG of tile passability")
	w := flag.Int("w", 4, "map width in chunks")
	h := flag.Int("h", 3, "map height in chunks")
	ctw := flag.Int("chunk-w", maplib.DefaultChunkTilesW, "tiles per chunk, horizontal")
	cth := flag.Int("chunk-h", maplib.DefaultChunkTilesH, "tiles per chunk, vertical")
	seed := flag.Int64("seed", 1, "generator seed")
	flag.Parse()

	name := strings.TrimSuffix(filepath.Base(*out), filepath.Ext(*out))
	tm := maplib.Generate(name, *w, *h, *ctw, *cth, *seed)
	tm.Author = "generate_map"

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		logrus.WithError(err).Fatal("creating output dir")
	}
	if err := saveMap(tm, *out); err != nil {
		logrus.WithError(err).Fatal("writing map")
	}
	logrus.WithFields(logrus.Fields{
		"path":   *out,
		"chunks": *w * *h,
		"tiles":  tm.TilesWide() * tm.TilesHigh(),
	}).Info("map written")

	if *preview == "" {
		return
	}
	if err := writePreview(*preview, tm); err != nil {
		logrus.WithError(err).Fatal("writing preview")
	}
	logrus.WithField("path", *preview).Info("preview written")
}

// defaultMaterials are the textures a generated text map references
var defaultMaterials = []maplib.Material{
	{Name: "grass", Texture: "grass.png"},
	{Name: "cliffs", Texture: "cliffs.png"},
}

func saveMap(tm *maplib.TileMap, path string) error {
	if maplib.IsPFMap(path) {
		return tm.SavePFMap(path, defaultMaterials)
	}
	return tm.SaveJSON(path)
}

// writePreview draws one pixel per tile in the overlay palette, with chunk
// seams darkened
func writePreview(path string, tm *maplib.TileMap) error {
	img := image.NewRGBA(image.Rect(0, 0, tm.TilesWide(), tm.TilesHigh()))
	for y := 0; y < tm.TilesHigh(); y++ {
		for x := 0; x < tm.TilesWide(); x++ {
			clr := nav.ColorImpassable
			if nav.TilePathable(*tm.At(tm.Desc(x, y))) {
				clr = nav.ColorPassable
			}
			if x%tm.ChunkTilesW == 0 || y%tm.ChunkTilesH == 0 {
				clr = shade(clr)
			}
			img.Set(x, y, clr)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func shade(c color.RGBA) color.RGBA {
	return color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A}
}
