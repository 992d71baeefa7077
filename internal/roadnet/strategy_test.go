package roadnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/waymaker/internal/world"
)

func setSlope(m *world.Map, c world.TileCoord, s world.Slope, h uint8) {
	t := m.At(c)
	t.Slope = s
	t.Height = h
}

func TestCanBuildRoadBetween(t *testing.T) {
	cases := []struct {
		name       string
		slopeBegin world.Slope
		hBegin     uint8
		slopeEnd   world.Slope
		hEnd       uint8
		want       bool
	}{
		{"FlatToFlat", world.SlopeFlat, 0, world.SlopeFlat, 0, true},
		{"FlatToIncline", world.SlopeFlat, 0, world.SlopeEast, 0, true},
		{"InclineToFlat", world.SlopeEast, 0, world.SlopeFlat, 1, true},
		{"InclineContinues", world.SlopeEast, 0, world.SlopeEast, 1, true},
		{"SameInclineSameHeight", world.SlopeEast, 1, world.SlopeEast, 1, false},
		{"OpposingInclines", world.SlopeEast, 0, world.SlopeWest, 0, false},
		{"IntoSteep", world.SlopeFlat, 0, world.SlopeSteep, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := world.NewMap(4, 4)
			a := world.TileCoord{X: 1, Y: 1}
			b := a.Add(world.DirEast)
			setSlope(m, a, tc.slopeBegin, tc.hBegin)
			setSlope(m, b, tc.slopeEnd, tc.hEnd)

			assert.Equal(t, tc.want, canBuildRoadBetween(m, a, b))
		})
	}
}

func TestCanBuildRoadBetweenPanicsOnNonAdjacent(t *testing.T) {
	m := world.NewMap(4, 4)
	require.Panics(t, func() {
		canBuildRoadBetween(m, world.TileCoord{X: 0, Y: 0}, world.TileCoord{X: 2, Y: 0})
	})
}

func TestNeighborsSkipWaterAndSteep(t *testing.T) {
	m := world.NewMap(5, 5)
	c := world.TileCoord{X: 2, Y: 2}
	m.At(c.Add(world.DirNorth)).Kind = world.KindWater
	setSlope(m, c.Add(world.DirEast), world.SlopeSteep, 0)

	s := &roadStrategy{m: m, target: world.TileCoord{X: 4, Y: 4}}
	got := s.neighbors(startNodeAt(c))

	var dirs []world.Direction
	for _, nb := range got {
		dirs = append(dirs, nb.Dir)
	}
	assert.ElementsMatch(t, []world.Direction{world.DirSouth, world.DirWest}, dirs)
}

func TestNeighborsCrossRailOnlyAtCrossingSites(t *testing.T) {
	m := world.NewMap(5, 5)
	c := world.TileCoord{X: 2, Y: 2}

	rail := c.Add(world.DirNorth)
	tile := m.At(rail)
	tile.Kind = world.KindRail
	tile.PlainRail = true
	tile.RailAxis = world.AxisX

	s := &roadStrategy{m: m, target: world.TileCoord{X: 2, Y: 0}}
	got := s.neighbors(startNodeAt(c))

	found := false
	for _, nb := range got {
		if nb.Tile == rail {
			found = true
		}
	}
	assert.True(t, found, "perpendicular flat track should be crossable")

	// Parallel track blocks entry.
	tile.RailAxis = world.AxisY
	got = s.neighbors(startNodeAt(c))
	for _, nb := range got {
		assert.NotEqual(t, rail, nb.Tile)
	}
}
