package maplib

import (
	"fmt"
	"strconv"
)

// TileType defines the shape of a tile's top surface
type TileType uint8

const (
	TileFlat TileType = iota
	TileRampSN
	TileRampNS
	TileRampEW
	TileRampWE
	TileCornerConcaveSW
	TileCornerConvexSW
	TileCornerConcaveSE
	TileCornerConvexSE
	TileCornerConcaveNW
	TileCornerConvexNW
	TileCornerConcaveNE
	TileCornerConvexNE

	numTileTypes
)

var tileTypeNames = [...]string{
	TileFlat:            "flat",
	TileRampSN:          "ramp-sn",
	TileRampNS:          "ramp-ns",
	TileRampEW:          "ramp-ew",
	TileRampWE:          "ramp-we",
	TileCornerConcaveSW: "corner-concave-sw",
	TileCornerConvexSW:  "corner-convex-sw",
	TileCornerConcaveSE: "corner-concave-se",
	TileCornerConvexSE:  "corner-convex-se",
	TileCornerConcaveNW: "corner-concave-nw",
	TileCornerConvexNW:  "corner-convex-nw",
	TileCornerConcaveNE: "corner-concave-ne",
	TileCornerConvexNE:  "corner-convex-ne",
}

func (t TileType) String() string {
	if t < numTileTypes {
		return tileTypeNames[t]
	}
	return fmt.Sprintf("tiletype(%d)", uint8(t))
}

// Valid reports whether t is a known tile shape
func (t TileType) Valid() bool { return t < numTileTypes }

// IsRamp is true for the four straight ramp shapes
func (t TileType) IsRamp() bool { return t >= TileRampSN && t <= TileRampWE }

// IsCorner is true for the concave and convex corner shapes
func (t TileType) IsCorner() bool { return t >= TileCornerConcaveSW && t < numTileTypes }

// Tile is a single logical terrain cell
type Tile struct {
	Type         TileType `json:"type"`
	BaseHeight   int      `json:"base_height"`
	RampHeight   int      `json:"ramp_height"` // height delta across a ramp/corner
	TopMat       int      `json:"top_mat"`
	SidesMat     int      `json:"sides_mat"`
	Pathable     bool     `json:"pathable"`
	BlendMode    int      `json:"blend_mode"`
	BlendNormals bool     `json:"blend_normals"`
}

// FlatTile returns a pathable flat tile at height 0
func FlatTile() Tile {
	return Tile{Type: TileFlat, Pathable: true}
}

// TileTokenLen is the length of one tile token in a map file row
const TileTokenLen = 24

// ParseTile decodes a map file tile token.
//
// Layout: [0] type (hex), [1] base height sign, [2:4] base height,
// [4:6] ramp height, [6:9] top material, [9:12] sides material,
// [12] pathable, [13] blend mode, [14] blend normals. The rest is reserved.
func ParseTile(token string) (Tile, error) {
	if len(token) != TileTokenLen {
		return Tile{}, fmt.Errorf("tile token %q: want %d chars, got %d", token, TileTokenLen, len(token))
	}

	typ, err := strconv.ParseUint(token[0:1], 16, 8)
	if err != nil {
		return Tile{}, fmt.Errorf("tile token %q: type: %w", token, err)
	}
	if !TileType(typ).Valid() {
		return Tile{}, fmt.Errorf("tile token %q: unknown tile type %d", token, typ)
	}

	var t Tile
	t.Type = TileType(typ)

	fields := []struct {
		name string
		s    string
		dst  *int
	}{
		{"base height", token[2:4], &t.BaseHeight},
		{"ramp height", token[4:6], &t.RampHeight},
		{"top material", token[6:9], &t.TopMat},
		{"sides material", token[9:12], &t.SidesMat},
		{"blend mode", token[13:14], &t.BlendMode},
	}
	for _, f := range fields {
		v, err := parseDigits(f.s)
		if err != nil {
			return Tile{}, fmt.Errorf("tile token %q: %s: %w", token, f.name, err)
		}
		*f.dst = v
	}
	if token[1] == '-' {
		t.BaseHeight = -t.BaseHeight
	}

	pathable, err := parseDigits(token[12:13])
	if err != nil {
		return Tile{}, fmt.Errorf("tile token %q: pathable: %w", token, err)
	}
	t.Pathable = pathable != 0

	blendNormals, err := parseDigits(token[14:15])
	if err != nil {
		return Tile{}, fmt.Errorf("tile token %q: blend normals: %w", token, err)
	}
	t.BlendNormals = blendNormals != 0

	return t, nil
}

// Token encodes t in the map file tile format. It is the inverse of ParseTile
// for heights and materials in range.
func (t Tile) Token() string {
	sign := byte('+')
	base := t.BaseHeight
	if base < 0 {
		sign = '-'
		base = -base
	}
	return fmt.Sprintf("%X%c%02d%02d%03d%03d%d%d%d000000000",
		uint8(t.Type), sign, base, t.RampHeight, t.TopMat, t.SidesMat,
		boolDigit(t.Pathable), t.BlendMode, boolDigit(t.BlendNormals))
}

func parseDigits(s string) (int, error) {
	v := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("non-digit %q", s[i])
		}
		v = v*10 + int(s[i]-'0')
	}
	return v, nil
}

func boolDigit(b bool) int {
	if b {
		return 1
	}
	return 0
}
