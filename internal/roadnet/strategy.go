// Road-specific search callbacks: unit step cost, Manhattan heuristic, and
// neighbor expansion limited to terrain a road can actually be built over.
package roadnet

import (
	"fmt"
	"log/slog"

	"github.com/talgya/waymaker/internal/pathfind"
	"github.com/talgya/waymaker/internal/settlement"
	"github.com/talgya/waymaker/internal/world"
)

// roadStrategy binds one search between two tiles to the shared map.
type roadStrategy struct {
	m      *world.Map
	reg    *settlement.Registry
	target world.TileCoord
	log    *slog.Logger
}

// bind installs the strategy's callbacks on a finder.
func (s *roadStrategy) bind(f *pathfind.Finder) {
	f.CalcG = s.stepCost
	f.CalcH = s.estimate
	f.Neighbors = s.neighbors
	f.IsGoal = s.isGoal
	f.FoundGoal = s.materialize
}

// stepCost is a uniform cost of one per tile step.
func (s *roadStrategy) stepCost(pathfind.Neighbor, *pathfind.Node) int {
	return 1
}

// estimate is the Manhattan distance to the target. With unit step costs on
// a 4-connected grid it never overestimates, so found paths are optimal.
func (s *roadStrategy) estimate(nb pathfind.Neighbor) int {
	return nb.Tile.Manhattan(s.target)
}

// neighbors expands the four cardinal steps, keeping only valid tiles whose
// edge is geometrically buildable and whose kind a road can occupy. A level
// crossing admits no turns: once on rail, the path continues straight.
func (s *roadStrategy) neighbors(current *pathfind.Node) []pathfind.Neighbor {
	out := make([]pathfind.Neighbor, 0, 4)

	onCrossing := s.m.Kind(current.Tile) == world.KindRail

	for _, d := range world.Directions {
		if onCrossing && current.Dir != world.DirNone && d != current.Dir {
			continue
		}

		next := current.Tile.Add(d)
		if !s.m.IsValid(next) || !canBuildRoadBetween(s.m, current.Tile, next) {
			continue
		}

		switch s.m.Kind(next) {
		case world.KindOpen, world.KindTrees, world.KindRoad:
			out = append(out, pathfind.Neighbor{Tile: next, Dir: d})
		case world.KindRail:
			// Crossing the track is allowed where the validator would
			// accept a bit toward it.
			if s.m.IsLevelCrossingSite(next, d.Axis()) {
				out = append(out, pathfind.Neighbor{Tile: next, Dir: d})
			}
		}
	}

	return out
}

func (s *roadStrategy) isGoal(current *pathfind.Node) bool {
	return current.Tile == s.target
}

// canBuildRoadBetween reports whether a road edge can span two adjacent
// tiles: the far tile must be flat or a single uniform incline, and either
// the incline continues monotonically across both tiles or at least one end
// is flat. Opposing slopes meeting tile-to-tile are rejected.
func canBuildRoadBetween(m *world.Map, begin, end world.TileCoord) bool {
	if begin.Manhattan(end) != 1 {
		panic(fmt.Sprintf("roadnet: tiles %v and %v are not adjacent", begin, end))
	}

	slopeBegin, heightBegin := m.SlopeHeight(begin)
	slopeEnd, heightEnd := m.SlopeHeight(end)

	return (slopeEnd == world.SlopeFlat || slopeEnd.IsInclined()) &&
		((slopeEnd == slopeBegin && heightEnd != heightBegin) ||
			slopeEnd == world.SlopeFlat || slopeBegin == world.SlopeFlat)
}
