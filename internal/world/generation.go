// Terrain generation using layered simplex noise.
// Produces a heightmap with per-tile slopes, water with shore marking,
// vegetation, and an optional rail line for crossings to form against.
package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"` // 0 = random

	SeaLevel     float64 `yaml:"sea_level"`     // elevation threshold for water (0.0–1.0)
	HeightLevels int     `yaml:"height_levels"` // quantized land height steps above sea
	TreeDensity  float64 `yaml:"tree_density"`  // moisture threshold share for trees (0.0–1.0)
	RailLine     bool    `yaml:"rail_line"`     // lay a straight east-west rail line
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:        256,
		Height:       256,
		Seed:         0,
		SeaLevel:     0.30,
		HeightLevels: 8,
		TreeDensity:  0.35,
		RailLine:     true,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:        48,
		Height:       48,
		Seed:         42,
		SeaLevel:     0.28,
		HeightLevels: 4,
		TreeDensity:  0.3,
		RailLine:     false,
	}
}

// Generate creates a complete world map with terrain, water, and vegetation.
// Deterministic for a fixed non-zero seed.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	elevNoise := opensimplex.NewNormalized(seed)
	moistNoise := opensimplex.NewNormalized(seed + 1)

	m := NewMap(cfg.Width, cfg.Height)

	// Heights live on tile corners; a tile's slope falls out of the four
	// corner levels around it. Corner grid is (Width+1)×(Height+1).
	corners := make([]uint8, (cfg.Width+1)*(cfg.Height+1))
	cornerAt := func(x, y int) uint8 { return corners[y*(cfg.Width+1)+x] }

	for y := 0; y <= cfg.Height; y++ {
		for x := 0; x <= cfg.Width; x++ {
			elev := octaveNoise(elevNoise, float64(x), float64(y), 4, 0.02, 0.5)

			// Continental shaping: push elevation down near the map edge so
			// the border is ocean.
			nx := float64(x)/float64(cfg.Width)*2 - 1
			ny := float64(y)/float64(cfg.Height)*2 - 1
			dist := math.Sqrt(nx*nx + ny*ny)
			falloff := 1.0 - math.Pow(dist, 3.0)
			if falloff < 0 {
				falloff = 0
			}
			elev *= falloff

			corners[y*(cfg.Width+1)+x] = quantizeLevel(elev, cfg.SeaLevel, cfg.HeightLevels)
		}
	}

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			c := TileCoord{X: x, Y: y}
			t := m.At(c)

			nw := cornerAt(x, y)
			ne := cornerAt(x+1, y)
			sw := cornerAt(x, y+1)
			se := cornerAt(x+1, y+1)

			t.Height, t.Slope = classifySlope(nw, ne, sw, se)

			if nw == 0 && ne == 0 && sw == 0 && se == 0 {
				t.Kind = KindWater
				t.Slope = SlopeFlat
				continue
			}

			moist := octaveNoise(moistNoise, float64(x), float64(y), 3, 0.03, 0.5)
			if t.Slope != SlopeSteep && moist > 1.0-cfg.TreeDensity {
				t.Kind = KindTrees
			} else {
				t.Kind = KindOpen
			}
		}
	}

	markShoreTiles(m)

	if cfg.RailLine {
		layRailLine(m, cfg.Height/2)
	}

	return m
}

// quantizeLevel maps a normalized elevation to a corner height level.
// Everything at or below sea level is level zero.
func quantizeLevel(elev, seaLevel float64, levels int) uint8 {
	if elev <= seaLevel {
		return 0
	}
	lvl := int((elev-seaLevel)/(1.0-seaLevel)*float64(levels)) + 1
	if lvl > levels {
		lvl = levels
	}
	return uint8(lvl)
}

// classifySlope derives a tile's base height and slope from its four corner
// levels. A tile is flat when all corners match, inclined when exactly one
// edge sits one level above the opposite edge, and steep otherwise.
func classifySlope(nw, ne, sw, se uint8) (uint8, Slope) {
	minLvl := nw
	for _, v := range [3]uint8{ne, sw, se} {
		if v < minLvl {
			minLvl = v
		}
	}

	switch {
	case nw == ne && sw == se && nw == sw:
		return minLvl, SlopeFlat
	case nw == ne && sw == se && nw == sw+1:
		return minLvl, SlopeNorth
	case nw == ne && sw == se && sw == nw+1:
		return minLvl, SlopeSouth
	case nw == sw && ne == se && ne == nw+1:
		return minLvl, SlopeEast
	case nw == sw && ne == se && nw == ne+1:
		return minLvl, SlopeWest
	default:
		return minLvl, SlopeSteep
	}
}

// markShoreTiles flags water tiles that touch land, making them legal road
// anchor points.
func markShoreTiles(m *Map) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := TileCoord{X: x, Y: y}
			t := m.At(c)
			if t.Kind != KindWater {
				continue
			}
			for _, d := range Directions {
				nb := m.At(c.Add(d))
				if nb != nil && nb.Kind != KindWater {
					t.Shore = true
					break
				}
			}
		}
	}
}

// layRailLine stamps a straight east-west track across the map at the given
// row. Only flat land tiles take track; water and slopes leave gaps.
func layRailLine(m *Map, row int) {
	if row < 0 || row >= m.Height {
		return
	}
	for x := 0; x < m.Width; x++ {
		t := m.At(TileCoord{X: x, Y: row})
		if t.Kind != KindOpen && t.Kind != KindTrees {
			continue
		}
		if t.Slope != SlopeFlat {
			continue
		}
		t.Kind = KindRail
		t.PlainRail = true
		t.RailAxis = AxisX
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// KindCounts returns a summary of tile kind distribution.
func KindCounts(m *Map) map[TileKind]int {
	counts := make(map[TileKind]int)
	for i := range m.tiles {
		counts[m.tiles[i].Kind]++
	}
	return counts
}

// KindName returns a human-readable name for a tile kind.
func KindName(k TileKind) string {
	switch k {
	case KindOpen:
		return "Open"
	case KindTrees:
		return "Trees"
	case KindRoad:
		return "Road"
	case KindRail:
		return "Rail"
	case KindWater:
		return "Water"
	case KindTunnelBridge:
		return "TunnelBridge"
	case KindStation:
		return "Station"
	default:
		return "Void"
	}
}
