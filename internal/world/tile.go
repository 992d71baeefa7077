// Package world provides the square tile grid, terrain, and road-bit data
// structures. Tiles are addressed by (x, y) coordinates; roads connect tiles
// along the four cardinal directions.
package world

import "fmt"

// TileCoord represents a position on the tile grid.
type TileCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is one of the four cardinal directions used for neighbor
// stepping and road-bit membership.
type Direction uint8

const (
	DirNorth Direction = iota
	DirEast
	DirSouth
	DirWest

	// DirNone marks an unset direction, e.g. on a search start node.
	DirNone Direction = 0xFF
)

// Directions lists the four cardinal directions in fixed expansion order.
var Directions = [4]Direction{DirNorth, DirEast, DirSouth, DirWest}

// dirOffsets maps each direction to its (dx, dy) step. North is -y.
var dirOffsets = [4]TileCoord{
	{X: 0, Y: -1}, // north
	{X: 1, Y: 0},  // east
	{X: 0, Y: 1},  // south
	{X: -1, Y: 0}, // west
}

// Axis identifies one of the two grid axes.
type Axis uint8

const (
	AxisX Axis = iota // east-west
	AxisY             // north-south
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return (d + 2) % 4
}

// Axis returns the axis a step in this direction travels along.
func (d Direction) Axis() Axis {
	if d == DirEast || d == DirWest {
		return AxisX
	}
	return AxisY
}

// RoadBit returns the road-bit corresponding to this direction.
func (d Direction) RoadBit() RoadBits {
	return 1 << d
}

// String returns a compass name for the direction.
func (d Direction) String() string {
	switch d {
	case DirNorth:
		return "N"
	case DirEast:
		return "E"
	case DirSouth:
		return "S"
	case DirWest:
		return "W"
	default:
		return "?"
	}
}

// Add returns the coordinate one step away in the given direction.
func (c TileCoord) Add(d Direction) TileCoord {
	off := dirOffsets[d]
	return TileCoord{X: c.X + off.X, Y: c.Y + off.Y}
}

// Manhattan returns the Manhattan distance between two coordinates.
func (c TileCoord) Manhattan(o TileCoord) int {
	dx := c.X - o.X
	dy := c.Y - o.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// String returns the coordinate as "(x,y)".
func (c TileCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// DirBetween returns the direction of the single step from a to b.
// The coordinates must be exactly one tile apart; callers only probe
// adjacent tiles, so anything else is a programming error.
func DirBetween(a, b TileCoord) Direction {
	switch {
	case b.X == a.X && b.Y == a.Y-1:
		return DirNorth
	case b.X == a.X+1 && b.Y == a.Y:
		return DirEast
	case b.X == a.X && b.Y == a.Y+1:
		return DirSouth
	case b.X == a.X-1 && b.Y == a.Y:
		return DirWest
	}
	panic(fmt.Sprintf("world: tiles %v and %v are not adjacent", a, b))
}

// TileHash is a spatial hash over tile coordinates, suitable for bucketing
// search nodes. Callers reduce it modulo their bucket count.
func TileHash(c TileCoord) uint {
	h := uint(uint32(c.X)*0x9E3779B1) ^ uint(uint32(c.Y)*0x85EBCA6B)
	return h ^ (h >> 13)
}

// RoadBits is a per-tile bitmask of the cardinal directions currently
// connected by road on that tile.
type RoadBits uint8

const (
	RoadNone RoadBits = 0
	RoadAll  RoadBits = 0x0F
)

// Has reports whether the bit toward the given direction is set.
func (b RoadBits) Has(d Direction) bool {
	return b&d.RoadBit() != 0
}

// RoadKind distinguishes the road sub-types a tile can carry.
type RoadKind uint8

const (
	RoadNormal RoadKind = iota // plain road
	RoadTram                   // tram track sharing the tile
	roadKindCount
)

// Slope describes a tile's foundation: flat, a single uniform incline
// rising toward one direction, or too irregular to build on.
type Slope uint8

const (
	SlopeFlat Slope = iota
	SlopeNorth
	SlopeEast
	SlopeSouth
	SlopeWest
	SlopeSteep
)

// IsInclined reports whether the slope is a single uniform incline.
func (s Slope) IsInclined() bool {
	return s >= SlopeNorth && s <= SlopeWest
}
