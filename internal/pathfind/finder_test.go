package pathfind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/waymaker/internal/pathfind"
	"github.com/talgya/waymaker/internal/world"
)

// gridSearch wires a finder over a rectangular grid with a blocked-tile set,
// unit step costs, and a Manhattan heuristic toward the target.
type gridSearch struct {
	width, height int
	blocked       map[world.TileCoord]bool
	target        world.TileCoord

	goal *pathfind.Node
}

func (g *gridSearch) bind(f *pathfind.Finder) {
	f.CalcG = func(pathfind.Neighbor, *pathfind.Node) int { return 1 }
	f.CalcH = func(nb pathfind.Neighbor) int { return nb.Tile.Manhattan(g.target) }
	f.Neighbors = func(cur *pathfind.Node) []pathfind.Neighbor {
		var out []pathfind.Neighbor
		for _, d := range world.Directions {
			next := cur.Tile.Add(d)
			if next.X < 0 || next.X >= g.width || next.Y < 0 || next.Y >= g.height {
				continue
			}
			if g.blocked[next] {
				continue
			}
			out = append(out, pathfind.Neighbor{Tile: next, Dir: d})
		}
		return out
	}
	f.IsGoal = func(cur *pathfind.Node) bool { return cur.Tile == g.target }
	f.FoundGoal = func(goal *pathfind.Node) { g.goal = goal }
}

func runGrid(t *testing.T, g *gridSearch, start world.TileCoord) pathfind.Result {
	t.Helper()
	f := &pathfind.Finder{}
	g.bind(f)
	f.Init(world.TileHash, 0)
	f.AddStart(start, 0)
	res, err := f.Run()
	require.NoError(t, err)
	return res
}

// pathTiles walks the parent chain goal→start and returns it reversed.
func pathTiles(goal *pathfind.Node) []world.TileCoord {
	var rev []world.TileCoord
	for n := goal; n != nil; n = n.Parent {
		rev = append(rev, n.Tile)
	}
	out := make([]world.TileCoord, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		out = append(out, rev[i])
	}
	return out
}

func TestFinderOpenGridOptimalCost(t *testing.T) {
	g := &gridSearch{width: 20, height: 20, target: world.TileCoord{X: 12, Y: 9}}
	start := world.TileCoord{X: 2, Y: 3}

	res := runGrid(t, g, start)

	require.Equal(t, pathfind.FoundGoal, res)
	require.NotNil(t, g.goal)
	// With unit costs and an admissible heuristic the found cost equals the
	// Manhattan distance on an unobstructed grid.
	assert.Equal(t, start.Manhattan(g.target), g.goal.G)

	tiles := pathTiles(g.goal)
	assert.Equal(t, start, tiles[0])
	assert.Equal(t, g.target, tiles[len(tiles)-1])
	assert.Len(t, tiles, g.goal.G+1)
	for i := 1; i < len(tiles); i++ {
		assert.Equal(t, 1, tiles[i-1].Manhattan(tiles[i]), "path steps must be adjacent")
	}
}

func TestFinderDetoursAroundWall(t *testing.T) {
	// Vertical wall at x=5 with a gap at y=0.
	g := &gridSearch{width: 10, height: 10, blocked: map[world.TileCoord]bool{}, target: world.TileCoord{X: 8, Y: 5}}
	for y := 1; y < 10; y++ {
		g.blocked[world.TileCoord{X: 5, Y: y}] = true
	}
	start := world.TileCoord{X: 2, Y: 5}

	res := runGrid(t, g, start)

	require.Equal(t, pathfind.FoundGoal, res)
	// Detour through (5,0): up 5, across, down 5 on top of the direct 6.
	assert.Equal(t, 16, g.goal.G)
	for _, tile := range pathTiles(g.goal) {
		assert.False(t, g.blocked[tile], "path crosses blocked tile %v", tile)
	}
}

func TestFinderNoPathExists(t *testing.T) {
	// Target walled in completely.
	g := &gridSearch{width: 8, height: 8, blocked: map[world.TileCoord]bool{}, target: world.TileCoord{X: 6, Y: 6}}
	for _, c := range []world.TileCoord{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 7, Y: 5}, {X: 5, Y: 6}, {X: 7, Y: 6}, {X: 5, Y: 7}, {X: 6, Y: 7}, {X: 7, Y: 7}} {
		g.blocked[c] = true
	}

	res := runGrid(t, g, world.TileCoord{X: 1, Y: 1})

	assert.Equal(t, pathfind.NoPathExists, res)
	assert.Nil(t, g.goal, "success callback must not fire without a goal")
}

func TestFinderStartIsGoal(t *testing.T) {
	c := world.TileCoord{X: 3, Y: 3}
	g := &gridSearch{width: 8, height: 8, target: c}

	res := runGrid(t, g, c)

	require.Equal(t, pathfind.FoundGoal, res)
	assert.Equal(t, 0, g.goal.G)
	assert.Nil(t, g.goal.Parent)
	assert.Equal(t, world.DirNone, g.goal.Dir)
}

func TestFinderMissingCallbacks(t *testing.T) {
	f := &pathfind.Finder{}
	f.Init(world.TileHash, 0)
	f.AddStart(world.TileCoord{X: 0, Y: 0}, 0)

	_, err := f.Run()
	assert.ErrorIs(t, err, pathfind.ErrMissingCallback)
}

func TestFinderNoStartNode(t *testing.T) {
	g := &gridSearch{width: 4, height: 4, target: world.TileCoord{X: 3, Y: 3}}
	f := &pathfind.Finder{}
	g.bind(f)
	f.Init(world.TileHash, 0)

	_, err := f.Run()
	assert.ErrorIs(t, err, pathfind.ErrNoStartNode)
}

func TestFinderDeterministicPath(t *testing.T) {
	start := world.TileCoord{X: 1, Y: 1}
	target := world.TileCoord{X: 7, Y: 6}

	run := func() []world.TileCoord {
		g := &gridSearch{width: 12, height: 12, target: target}
		res := runGrid(t, g, start)
		require.Equal(t, pathfind.FoundGoal, res)
		return pathTiles(g.goal)
	}

	first := run()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, run(), "tie-breaking must be stable across runs")
	}
}

func TestFinderTinyBucketCountStillExact(t *testing.T) {
	// A single bucket forces every node into one collision chain; lookups
	// must stay exact-match.
	g := &gridSearch{width: 10, height: 10, target: world.TileCoord{X: 9, Y: 9}}
	f := &pathfind.Finder{}
	g.bind(f)
	f.Init(world.TileHash, 1)
	f.AddStart(world.TileCoord{X: 0, Y: 0}, 0)

	res, err := f.Run()
	require.NoError(t, err)
	require.Equal(t, pathfind.FoundGoal, res)
	assert.Equal(t, 18, g.goal.G)
}
