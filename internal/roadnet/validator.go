// Connectivity validation: a planned road-bit set is stripped of any
// direction whose neighbor cannot legally host the connecting edge, so a
// committed tile never carries a stub aimed at incompatible infrastructure.
package roadnet

import "github.com/talgya/waymaker/internal/world"

// CleanConnections removes every direction from bits whose neighbor is not
// connective:
//
//   - open ground and trees always connect;
//   - tunnel/bridge, station and road neighbors connect unconditionally when
//     they are plain road tiles, otherwise only if their own road bits
//     (across all road kinds) already point back at this tile — note that
//     the plain-road case deliberately skips the bit-alignment check;
//   - rail neighbors connect only at a legal level-crossing site;
//   - water neighbors connect only on shore, never open water;
//   - everything else, including out-of-bounds neighbors, does not connect.
func CleanConnections(m *world.Map, tile world.TileCoord, bits world.RoadBits) world.RoadBits {
	if !m.IsValid(tile) {
		return world.RoadNone
	}

	for _, dir := range world.Directions {
		bit := dir.RoadBit()
		if bits&bit == 0 {
			continue
		}

		neighbor := tile.Add(dir)
		mirrored := dir.Reverse().RoadBit()
		connective := false

		if m.IsValid(neighbor) {
			switch m.Kind(neighbor) {
			case world.KindOpen, world.KindTrees:
				connective = true

			case world.KindTunnelBridge, world.KindStation, world.KindRoad:
				if m.IsNormalRoad(neighbor) {
					connective = true
				} else {
					connective = m.AnyRoadBits(neighbor)&mirrored != world.RoadNone
				}

			case world.KindRail:
				connective = m.IsLevelCrossingSite(neighbor, dir.Axis())

			case world.KindWater:
				connective = m.IsShore(neighbor)
			}
		}

		if !connective {
			bits &^= bit
		}
	}

	return bits
}
