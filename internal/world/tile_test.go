package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionReverse(t *testing.T) {
	assert.Equal(t, DirSouth, DirNorth.Reverse())
	assert.Equal(t, DirWest, DirEast.Reverse())
	assert.Equal(t, DirNorth, DirSouth.Reverse())
	assert.Equal(t, DirEast, DirWest.Reverse())
}

func TestDirectionAxis(t *testing.T) {
	assert.Equal(t, AxisY, DirNorth.Axis())
	assert.Equal(t, AxisX, DirEast.Axis())
	assert.Equal(t, AxisY, DirSouth.Axis())
	assert.Equal(t, AxisX, DirWest.Axis())
}

func TestCoordAdd(t *testing.T) {
	c := TileCoord{X: 5, Y: 5}
	assert.Equal(t, TileCoord{X: 5, Y: 4}, c.Add(DirNorth))
	assert.Equal(t, TileCoord{X: 6, Y: 5}, c.Add(DirEast))
	assert.Equal(t, TileCoord{X: 5, Y: 6}, c.Add(DirSouth))
	assert.Equal(t, TileCoord{X: 4, Y: 5}, c.Add(DirWest))
}

func TestManhattan(t *testing.T) {
	cases := []struct {
		a, b TileCoord
		want int
	}{
		{TileCoord{0, 0}, TileCoord{0, 0}, 0},
		{TileCoord{0, 0}, TileCoord{3, 4}, 7},
		{TileCoord{3, 4}, TileCoord{0, 0}, 7},
		{TileCoord{-2, 1}, TileCoord{2, -1}, 6},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.a.Manhattan(tc.b), "%v→%v", tc.a, tc.b)
	}
}

func TestDirBetween(t *testing.T) {
	c := TileCoord{X: 3, Y: 3}
	for _, d := range Directions {
		assert.Equal(t, d, DirBetween(c, c.Add(d)))
	}
}

func TestDirBetweenPanicsOnNonAdjacent(t *testing.T) {
	require.Panics(t, func() {
		DirBetween(TileCoord{0, 0}, TileCoord{2, 0})
	})
	require.Panics(t, func() {
		DirBetween(TileCoord{0, 0}, TileCoord{1, 1})
	})
	require.Panics(t, func() {
		DirBetween(TileCoord{0, 0}, TileCoord{0, 0})
	})
}

func TestRoadBits(t *testing.T) {
	bits := DirNorth.RoadBit() | DirEast.RoadBit()
	assert.True(t, bits.Has(DirNorth))
	assert.True(t, bits.Has(DirEast))
	assert.False(t, bits.Has(DirSouth))
	assert.False(t, bits.Has(DirWest))

	all := RoadNone
	for _, d := range Directions {
		all |= d.RoadBit()
	}
	assert.Equal(t, RoadAll, all)
}

func TestTileHashDeterministic(t *testing.T) {
	a := TileCoord{X: 17, Y: 42}
	assert.Equal(t, TileHash(a), TileHash(a))
	// Neighbors should not collide into identical hashes in the common case.
	assert.NotEqual(t, TileHash(a), TileHash(a.Add(DirEast)))
}

func TestSlopeIsInclined(t *testing.T) {
	assert.False(t, SlopeFlat.IsInclined())
	assert.True(t, SlopeNorth.IsInclined())
	assert.True(t, SlopeWest.IsInclined())
	assert.False(t, SlopeSteep.IsInclined())
}
