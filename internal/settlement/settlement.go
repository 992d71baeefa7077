// Package settlement provides the settlement registry: populated places that
// act as endpoints for the road network generator.
package settlement

import (
	"github.com/talgya/waymaker/internal/world"
)

// ID identifies a settlement. Zero is never a valid ID.
type ID uint64

// Settlement is a populated place on the map. The road generator reads
// population and location; it never mutates settlement state.
type Settlement struct {
	ID         ID
	Name       string
	Location   world.TileCoord
	Population uint32
}

// Registry holds all settlements of a world.
type Registry struct {
	list []*Settlement
}

// NewRegistry builds a registry from the given settlements.
func NewRegistry(settlements []*Settlement) *Registry {
	return &Registry{list: settlements}
}

// All returns every settlement. Callers must not modify the slice.
func (r *Registry) All() []*Settlement {
	return r.list
}

// Len returns the number of settlements.
func (r *Registry) Len() int {
	return len(r.list)
}

// ByID returns the settlement with the given ID, or nil.
func (r *Registry) ByID(id ID) *Settlement {
	for _, s := range r.list {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// NearestTo returns the settlement closest to the coordinate by Manhattan
// distance, or nil for an empty registry. Ties go to the lower ID.
func (r *Registry) NearestTo(c world.TileCoord) *Settlement {
	var best *Settlement
	bestDist := 0
	for _, s := range r.list {
		d := s.Location.Manhattan(c)
		if best == nil || d < bestDist || (d == bestDist && s.ID < best.ID) {
			best = s
			bestDist = d
		}
	}
	return best
}
