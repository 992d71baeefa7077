// Path materialization: turning a found parent chain into committed road
// tiles on the shared map.
package roadnet

import (
	"github.com/talgya/waymaker/internal/pathfind"
	"github.com/talgya/waymaker/internal/world"
)

// materialize writes the found path onto the map. The chain is walked once
// to measure it, then again goal-to-start tracking (child, current, parent)
// so each tile receives a bit toward each of its on-path neighbors.
// Existing road tiles have the new bits ORed in — never replaced — so
// overlapping paths share tiles and a re-run is a no-op. New tiles become
// plain road owned by the settlement nearest to them. The edges were
// already vetted during expansion, so nothing is re-validated here.
func (s *roadStrategy) materialize(goal *pathfind.Node) {
	length := 0
	for n := goal; n != nil; n = n.Parent {
		length++
	}

	var child *pathfind.Node
	for n := goal; n != nil; n = n.Parent {
		bits := world.RoadNone
		if child != nil {
			bits |= world.DirBetween(n.Tile, child.Tile).RoadBit()
		}
		if n.Parent != nil {
			bits |= world.DirBetween(n.Tile, n.Parent.Tile).RoadBit()
		}

		if bits != world.RoadNone {
			if s.m.Kind(n.Tile) == world.KindRoad {
				s.m.SetRoadBits(n.Tile, s.m.RoadBitsAt(n.Tile, world.RoadNormal)|bits, world.RoadNormal)
			} else {
				owner := uint64(0)
				if nearest := s.reg.NearestTo(n.Tile); nearest != nil {
					owner = uint64(nearest.ID)
				}
				s.m.MakeRoad(n.Tile, bits, owner)
			}
		}

		child = n
	}

	if s.log != nil {
		s.log.Debug("path materialized", "target", s.target, "length", length)
	}
}
