// Package roadnet builds the public road network connecting settlements.
// It drives the generic search engine with road-specific callbacks and
// retries unreached settlements over successive rounds.
package roadnet

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/talgya/waymaker/internal/pathfind"
	"github.com/talgya/waymaker/internal/settlement"
	"github.com/talgya/waymaker/internal/world"
)

// Generator connects all settlements on a map with roads. The map is
// mutated in place; settlements are never modified.
type Generator struct {
	Map         *world.Map
	Settlements *settlement.Registry

	// Buckets sizes the search node table. Zero selects the engine default.
	Buckets int

	// MaxRounds caps the retry loop. Zero means one round per settlement,
	// which is the natural upper bound of the round structure.
	MaxRounds int

	Log *slog.Logger
}

// Connect builds the network. Each round picks the smallest unconnected
// settlement as the hub and searches toward the remaining ones in order of
// ascending distance; targets no search can reach are requeued for the next
// round. Settlements that end up with no connection at all are reported via
// ErrUnreachable; the roads already built remain valid.
func (g *Generator) Connect() error {
	log := g.Log
	if log == nil {
		log = slog.Default()
	}

	all := g.Settlements.All()
	if len(all) < 2 {
		return nil
	}

	maxRounds := g.MaxRounds
	if maxRounds <= 0 {
		maxRounds = len(all)
	}

	unconnected := make([]*settlement.Settlement, len(all))
	copy(unconnected, all)

	connections := make(map[settlement.ID]int, len(all))
	round := 0

	for len(unconnected) > 0 && round < maxRounds {
		round++

		towns := unconnected
		unconnected = nil

		// Smallest settlement first; ID breaks population ties so repeated
		// runs produce the same network.
		sort.SliceStable(towns, func(i, j int) bool {
			if towns[i].Population != towns[j].Population {
				return towns[i].Population < towns[j].Population
			}
			return towns[i].ID < towns[j].ID
		})

		begin := towns[0]
		towns = towns[1:]

		sort.SliceStable(towns, func(i, j int) bool {
			di := begin.Location.Manhattan(towns[i].Location)
			dj := begin.Location.Manhattan(towns[j].Location)
			if di != dj {
				return di < dj
			}
			return towns[i].ID < towns[j].ID
		})

		reached := 0
		for _, end := range towns {
			found, err := g.connectPair(begin, end, log)
			if err != nil {
				return fmt.Errorf("connecting %s to %s: %w", begin.Name, end.Name, err)
			}
			if found {
				connections[begin.ID]++
				connections[end.ID]++
				reached++
			} else {
				unconnected = append(unconnected, end)
			}
		}

		log.Info("road round complete",
			"round", round,
			"hub", begin.Name,
			"reached", reached,
			"requeued", len(unconnected),
		)
	}

	var unreachable []string
	for _, s := range all {
		if connections[s.ID] == 0 {
			unreachable = append(unreachable, s.Name)
		}
	}
	if len(unreachable) > 0 {
		return fmt.Errorf("%w: %s", ErrUnreachable, strings.Join(unreachable, ", "))
	}
	return nil
}

// connectPair runs one search from begin to end. On success the path has
// already been materialized onto the map by the strategy's callback.
func (g *Generator) connectPair(begin, end *settlement.Settlement, log *slog.Logger) (bool, error) {
	strat := &roadStrategy{
		m:      g.Map,
		reg:    g.Settlements,
		target: end.Location,
		log:    log,
	}

	finder := &pathfind.Finder{}
	strat.bind(finder)
	finder.Init(world.TileHash, g.Buckets)
	finder.AddStart(begin.Location, 0)

	result, err := finder.Run()
	if err != nil {
		return false, err
	}
	return result == pathfind.FoundGoal, nil
}
