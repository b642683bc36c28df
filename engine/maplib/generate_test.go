package maplib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate("a", 3, 2, 8, 8, 7)
	b := Generate("a", 3, 2, 8, 8, 7)
	require.NoError(t, a.Validate())
	assert.Equal(t, a.Chunks, b.Chunks)
	assert.NotEqual(t, a.Chunks, Generate("a", 3, 2, 8, 8, 8).Chunks)
}

func TestGenerateLeavesSeamGaps(t *testing.T) {
	tm := Generate("g", 2, 1, 8, 8, 3)

	// The wall column left of the seam is blocked except for its gap tile
	// and any tile a scattered obstacle landed on
	open := 0
	for y := 0; y < 8; y++ {
		if tm.At(tm.Desc(7, y)).Pathable {
			open++
		}
	}
	assert.LessOrEqual(t, open, 1)
}

func TestGenerateSingleChunkHasNoWalls(t *testing.T) {
	tm := Generate("one", 1, 1, 16, 16, 1)
	blocked := 0
	for _, tile := range tm.Chunks[0] {
		if !tile.Pathable {
			blocked++
		}
	}
	// only scattered obstacles, one per 20 tiles at most
	assert.LessOrEqual(t, blocked, 16*16/20)
}
