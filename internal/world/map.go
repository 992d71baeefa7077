package world

import "fmt"

// TileKind classifies what occupies a tile.
type TileKind uint8

const (
	KindVoid         TileKind = iota // outside the map or unusable
	KindOpen                         // open ground — always road-buildable
	KindTrees                        // vegetation — always road-buildable
	KindRoad                         // existing road
	KindRail                         // railway track (or a level crossing)
	KindWater                        // water; only shore tiles can anchor a road end
	KindTunnelBridge                 // tunnel mouth or bridge head
	KindStation                      // station tile (may carry road for drive-through stops)
)

// Tile is a single cell of the world map.
type Tile struct {
	Kind   TileKind
	Height uint8
	Slope  Slope

	// Road bits per road kind. Meaningful for road, crossing, tunnel/bridge
	// and station tiles.
	Road [roadKindCount]RoadBits

	// NormalRoad marks a plain road piece (as opposed to a depot or a
	// drive-through station carrying road bits).
	NormalRoad bool

	// RoadOwner is the settlement that built the road on this tile.
	// Zero means unowned.
	RoadOwner uint64

	// Rail fields, meaningful for KindRail.
	RailAxis  Axis // axis the track runs along
	PlainRail bool // straight single track, no junctions
	Crossing  bool // road crosses the track on this tile

	// Shore marks a water tile adjacent to land.
	Shore bool
}

// Map holds the complete tile grid world state.
type Map struct {
	Width  int
	Height int
	tiles  []Tile
}

// NewMap creates a map of the given dimensions filled with open ground at
// height zero.
func NewMap(width, height int) *Map {
	m := &Map{
		Width:  width,
		Height: height,
		tiles:  make([]Tile, width*height),
	}
	for i := range m.tiles {
		m.tiles[i].Kind = KindOpen
	}
	return m
}

// IsValid reports whether the coordinate lies on the map.
func (m *Map) IsValid(c TileCoord) bool {
	return c.X >= 0 && c.X < m.Width && c.Y >= 0 && c.Y < m.Height
}

// At returns the tile at the given coordinate, or nil if out of bounds.
func (m *Map) At(c TileCoord) *Tile {
	if !m.IsValid(c) {
		return nil
	}
	return &m.tiles[c.Y*m.Width+c.X]
}

// Kind returns the tile kind, or KindVoid for out-of-bounds coordinates.
func (m *Map) Kind(c TileCoord) TileKind {
	t := m.At(c)
	if t == nil {
		return KindVoid
	}
	return t.Kind
}

// SlopeHeight returns the tile's slope and base height.
func (m *Map) SlopeHeight(c TileCoord) (Slope, uint8) {
	t := m.At(c)
	if t == nil {
		return SlopeSteep, 0
	}
	return t.Slope, t.Height
}

// RoadBitsAt returns the road bits of the given kind on the tile.
func (m *Map) RoadBitsAt(c TileCoord, kind RoadKind) RoadBits {
	t := m.At(c)
	if t == nil {
		return RoadNone
	}
	return t.Road[kind]
}

// AnyRoadBits returns the union of road bits across all road kinds present
// on the tile.
func (m *Map) AnyRoadBits(c TileCoord) RoadBits {
	t := m.At(c)
	if t == nil {
		return RoadNone
	}
	return t.Road[RoadNormal] | t.Road[RoadTram]
}

// IsNormalRoad reports whether the tile is a plain road piece.
func (m *Map) IsNormalRoad(c TileCoord) bool {
	t := m.At(c)
	return t != nil && t.Kind == KindRoad && t.NormalRoad
}

// IsLevelCrossingSite reports whether a road travelling along crossAxis may
// cross the rail on this tile: the tile must hold plain straight track
// perpendicular to the road axis, on flat ground.
func (m *Map) IsLevelCrossingSite(c TileCoord, crossAxis Axis) bool {
	t := m.At(c)
	return t != nil && t.Kind == KindRail && t.PlainRail &&
		t.RailAxis != crossAxis && t.Slope == SlopeFlat
}

// IsShore reports whether the tile is shore (water adjacent to land) rather
// than open water.
func (m *Map) IsShore(c TileCoord) bool {
	t := m.At(c)
	return t != nil && t.Kind == KindWater && t.Shore
}

// SetRoadBits replaces the road bits of the given kind on an existing road
// tile.
func (m *Map) SetRoadBits(c TileCoord, bits RoadBits, kind RoadKind) {
	t := m.At(c)
	if t == nil {
		return
	}
	t.Road[kind] = bits
}

// MakeRoad turns the tile into a plain road piece with the given bits,
// owned by the given settlement. On a rail tile it forms a level crossing
// instead: the track is preserved and the road bits are merged in, so
// repeated calls over the same path are idempotent.
func (m *Map) MakeRoad(c TileCoord, bits RoadBits, owner uint64) {
	t := m.At(c)
	if t == nil {
		return
	}
	switch t.Kind {
	case KindRail:
		t.Crossing = true
		t.Road[RoadNormal] |= bits
		if t.RoadOwner == 0 {
			t.RoadOwner = owner
		}
	case KindRoad:
		t.Road[RoadNormal] |= bits
	default:
		t.Kind = KindRoad
		t.NormalRoad = true
		t.Road[RoadNormal] = bits
		t.RoadOwner = owner
	}
}

// RoadTile describes one committed road tile for iteration and persistence.
type RoadTile struct {
	Coord    TileCoord
	Bits     RoadBits
	Owner    uint64
	Crossing bool
}

// ForEachRoad invokes fn for every tile carrying normal road bits, in
// row-major order.
func (m *Map) ForEachRoad(fn func(RoadTile)) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			t := &m.tiles[y*m.Width+x]
			if t.Road[RoadNormal] == RoadNone {
				continue
			}
			fn(RoadTile{
				Coord:    TileCoord{X: x, Y: y},
				Bits:     t.Road[RoadNormal],
				Owner:    t.RoadOwner,
				Crossing: t.Crossing,
			})
		}
	}
}

// RoadTileCount returns the number of tiles carrying normal road bits.
func (m *Map) RoadTileCount() int {
	n := 0
	m.ForEachRoad(func(RoadTile) { n++ })
	return n
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d, roads=%d)", m.Width, m.Height, m.RoadTileCount())
}
