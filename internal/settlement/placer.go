// Settlement placement — scores tiles and seeds settlements across the map.
package settlement

import (
	"math/rand"
	"sort"

	"github.com/talgya/waymaker/internal/world"
)

// Size categorizes settlement scale.
type Size uint8

const (
	SizeVillage Size = iota
	SizeTown
	SizeCity
)

// PlacementConfig holds settlement placement parameters.
type PlacementConfig struct {
	Cities   int `yaml:"cities"`
	Towns    int `yaml:"towns"`
	Villages int `yaml:"villages"`

	MinCityDist    int `yaml:"min_city_dist"`
	MinTownDist    int `yaml:"min_town_dist"`
	MinVillageDist int `yaml:"min_village_dist"`
}

// DefaultPlacementConfig returns a reasonable starting configuration.
func DefaultPlacementConfig() PlacementConfig {
	return PlacementConfig{
		Cities:         3,
		Towns:          8,
		Villages:       16,
		MinCityDist:    48,
		MinTownDist:    24,
		MinVillageDist: 12,
	}
}

// Place finds suitable locations on the map and returns a populated
// registry. Deterministic for a fixed seed.
func Place(m *world.Map, seed int64, cfg PlacementConfig) *Registry {
	rng := rand.New(rand.NewSource(seed + 200))

	type scored struct {
		coord world.TileCoord
		score float64
	}
	var candidates []scored

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := world.TileCoord{X: x, Y: y}
			s := siteScore(m, c)
			if s > 0 {
				candidates = append(candidates, scored{c, s})
			}
		}
	}

	// Sort by score descending; row-major scan order breaks ties, keeping
	// placement deterministic.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	var settlements []*Settlement
	nextID := ID(1)

	place := func(size Size, count, minDist int) {
		placed := 0
		for _, c := range candidates {
			if placed >= count {
				break
			}
			if tooClose(c.coord, settlements, minDist) {
				continue
			}
			settlements = append(settlements, &Settlement{
				ID:         nextID,
				Location:   c.coord,
				Population: populationFor(size, rng),
			})
			nextID++
			placed++
		}
	}

	place(SizeCity, cfg.Cities, cfg.MinCityDist)
	place(SizeTown, cfg.Towns, cfg.MinTownDist)
	place(SizeVillage, cfg.Villages, cfg.MinVillageDist)

	names := generateNames(rng, len(settlements))
	for i, s := range settlements {
		s.Name = names[i]
	}

	return NewRegistry(settlements)
}

// siteScore evaluates how desirable a tile is for a settlement. Flat open
// ground scores best; water access adds a bonus; anything unbuildable
// scores zero.
func siteScore(m *world.Map, c world.TileCoord) float64 {
	slope, _ := m.SlopeHeight(c)
	if slope != world.SlopeFlat {
		return 0
	}

	score := 0.0
	switch m.Kind(c) {
	case world.KindOpen:
		score = 3.0
	case world.KindTrees:
		score = 1.5
	default:
		return 0
	}

	// Buildable flat surroundings make growth easier.
	for _, d := range world.Directions {
		nb := c.Add(d)
		nbSlope, _ := m.SlopeHeight(nb)
		switch {
		case m.Kind(nb) == world.KindWater && m.IsShore(nb):
			score += 0.5 // harbor potential
		case nbSlope == world.SlopeFlat &&
			(m.Kind(nb) == world.KindOpen || m.Kind(nb) == world.KindTrees):
			score += 0.3
		}
	}

	return score
}

func tooClose(c world.TileCoord, existing []*Settlement, minDist int) bool {
	for _, s := range existing {
		if c.Manhattan(s.Location) < minDist {
			return true
		}
	}
	return false
}

// populationFor returns an initial population for a settlement size.
func populationFor(size Size, rng *rand.Rand) uint32 {
	switch size {
	case SizeCity:
		return 2000 + uint32(rng.Intn(3000))
	case SizeTown:
		return 200 + uint32(rng.Intn(800))
	default:
		return 20 + uint32(rng.Intn(80))
	}
}

// generateNames produces procedural settlement names by combining syllables.
func generateNames(rng *rand.Rand, count int) []string {
	prefixes := []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
		"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
		"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
	}
	suffixes := []string{
		"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
		"stead", "wood", "field", "dale", "crest", "vale", "port",
		"town", "bury", "marsh", "well", "brook", "cliff", "moor",
	}

	used := make(map[string]bool)
	names := make([]string, 0, count)

	for len(names) < count {
		name := prefixes[rng.Intn(len(prefixes))] + suffixes[rng.Intn(len(suffixes))]
		if !used[name] {
			used[name] = true
			names = append(names, name)
		}
	}

	return names
}
