package maplib

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PFMapVersion is the text map format version written by WritePFMap
const PFMapVersion = "1.0"

// Material names a terrain texture referenced by tile material indices
type Material struct {
	Name    string
	Texture string
}

// LoadPFMap reads a text map file. The file does not record the chunk size,
// so the caller supplies it.
func LoadPFMap(path string, chunkTilesW, chunkTilesH int) (*TileMap, []Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	tm, mats, err := ReadPFMap(f, chunkTilesW, chunkTilesH)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing map %s: %w", path, err)
	}
	tm.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return tm, mats, nil
}

// ReadPFMap parses a text map: a header of "version", "num_materials",
// "num_rows" and "num_cols" lines, one "material <name> <texture>" line per
// material, then each chunk's tiles in row order as whitespace-separated
// tile tokens. A line may hold any number of tokens but must not run past
// the end of a chunk.
func ReadPFMap(r io.Reader, chunkTilesW, chunkTilesH int) (*TileMap, []Material, error) {
	sc := bufio.NewScanner(r)
	line := 0
	next := func() ([]string, bool) {
		for sc.Scan() {
			line++
			if fields := strings.Fields(sc.Text()); len(fields) > 0 {
				return fields, true
			}
		}
		return nil, false
	}

	var version string
	hdr := map[string]int{}
	for _, key := range []string{"version", "num_materials", "num_rows", "num_cols"} {
		fields, ok := next()
		if !ok {
			return nil, nil, fmt.Errorf("missing %s header", key)
		}
		if len(fields) != 2 || fields[0] != key {
			return nil, nil, fmt.Errorf("line %d: want %q header, got %q", line, key, sc.Text())
		}
		if key == "version" {
			version = fields[1]
			continue
		}
		v, err := strconv.Atoi(fields[1])
		if err != nil || v < 0 {
			return nil, nil, fmt.Errorf("line %d: bad %s %q", line, key, fields[1])
		}
		hdr[key] = v
	}
	if version != PFMapVersion {
		return nil, nil, fmt.Errorf("unsupported map version %q", version)
	}

	mats := make([]Material, 0, hdr["num_materials"])
	for i := 0; i < hdr["num_materials"]; i++ {
		fields, ok := next()
		if !ok || len(fields) != 3 || fields[0] != "material" {
			return nil, nil, fmt.Errorf("line %d: want material %d", line, i)
		}
		mats = append(mats, Material{Name: fields[1], Texture: fields[2]})
	}

	tm := NewTileMap("", hdr["num_cols"], hdr["num_rows"], chunkTilesW, chunkTilesH)
	if err := tm.Validate(); err != nil {
		return nil, nil, err
	}
	perChunk := chunkTilesW * chunkTilesH
	for ci := range tm.Chunks {
		read := 0
		for read < perChunk {
			fields, ok := next()
			if !ok {
				return nil, nil, fmt.Errorf("chunk %d: got %d of %d tiles", ci, read, perChunk)
			}
			if read+len(fields) > perChunk {
				return nil, nil, fmt.Errorf("line %d: row runs past the end of chunk %d", line, ci)
			}
			for _, tok := range fields {
				t, err := ParseTile(tok)
				if err != nil {
					return nil, nil, fmt.Errorf("line %d: %w", line, err)
				}
				tm.Chunks[ci][read] = t
				read++
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return tm, mats, nil
}

// WritePFMap writes tm in the text map format, one tile row per line
func WritePFMap(w io.Writer, tm *TileMap, mats []Material) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "version %s\n", PFMapVersion)
	fmt.Fprintf(bw, "num_materials %d\n", len(mats))
	fmt.Fprintf(bw, "num_rows %d\n", tm.Height)
	fmt.Fprintf(bw, "num_cols %d\n", tm.Width)
	for _, m := range mats {
		fmt.Fprintf(bw, "material %s %s\n", m.Name, m.Texture)
	}
	for _, tiles := range tm.Chunks {
		for r := 0; r < tm.ChunkTilesH; r++ {
			row := tiles[r*tm.ChunkTilesW : (r+1)*tm.ChunkTilesW]
			for c, t := range row {
				if c > 0 {
					bw.WriteByte(' ')
				}
				bw.WriteString(t.Token())
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// SavePFMap writes tm to a text map file
func (tm *TileMap) SavePFMap(path string, mats []Material) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePFMap(f, tm, mats); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// IsPFMap reports whether path names a text map file
func IsPFMap(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pfmap")
}
