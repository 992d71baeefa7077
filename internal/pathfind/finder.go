// Package pathfind implements a generic best-first search over the tile
// grid. All domain semantics — edge costs, the heuristic, which neighbors
// are reachable, what counts as the goal, and what to do with a found path —
// are injected as callbacks, so the engine itself knows nothing about roads.
//
// The open and closed sets share one node table bucketed by a caller-provided
// spatial hash; the frontier is a min-heap on F = G + H using the lazy
// decrease-key pattern (improved nodes are re-pushed, stale heap entries are
// skipped on pop).
package pathfind

import (
	"container/heap"

	"github.com/talgya/waymaker/internal/world"
)

// DefaultBuckets is the node table bucket count used when Init is given
// zero.
const DefaultBuckets = 256

// Result reports how a search run ended.
type Result uint8

const (
	// FoundGoal means the goal test succeeded and the success callback ran.
	FoundGoal Result = iota
	// NoPathExists means the open set was exhausted without reaching a goal.
	NoPathExists
)

// Node is a single explored tile. Nodes form a tree through Parent links;
// a found path is recovered by walking Parent from the goal back to the
// start. Closed nodes are never re-expanded, so the links cannot cycle.
type Node struct {
	Tile world.TileCoord
	Dir  world.Direction // incoming direction; DirNone on a start node
	G    int             // cumulative cost from start
	H    int             // heuristic estimate to goal

	Parent *Node

	closed bool
}

// F returns the node's total estimated path cost.
func (n *Node) F() int {
	return n.G + n.H
}

// Neighbor is one candidate expansion produced by the Neighbors callback.
type Neighbor struct {
	Tile world.TileCoord
	Dir  world.Direction // direction of the step that reaches the tile
}

// Finder runs best-first searches. Configure the five callbacks, call Init
// and AddStart, then Run. A Finder is single-use per search; Init resets it.
type Finder struct {
	// CalcG returns the cost of the edge from parent to the candidate.
	CalcG func(nb Neighbor, parent *Node) int
	// CalcH returns an admissible lower bound on the remaining cost from
	// the candidate to the goal.
	CalcH func(nb Neighbor) int
	// Neighbors returns the expandable neighbors of the current node.
	Neighbors func(current *Node) []Neighbor
	// IsGoal reports whether the current node is the target.
	IsGoal func(current *Node) bool
	// FoundGoal is invoked exactly once with the goal node (and its full
	// parent chain) when the search succeeds.
	FoundGoal func(goal *Node)

	hash    func(world.TileCoord) uint
	buckets [][]*Node
	open    openHeap
	order   int
}

// Init prepares the finder for a fresh search. The hash function spreads
// tiles across the node table; buckets of zero selects DefaultBuckets.
func (f *Finder) Init(hash func(world.TileCoord) uint, buckets int) {
	if buckets <= 0 {
		buckets = DefaultBuckets
	}
	f.hash = hash
	f.buckets = make([][]*Node, buckets)
	f.open = f.open[:0]
	f.order = 0
}

// AddStart seeds the open set with a start tile at the given initial cost.
// Init must have been called first.
func (f *Finder) AddStart(tile world.TileCoord, cost int) {
	n := &Node{
		Tile: tile,
		Dir:  world.DirNone,
		G:    cost,
	}
	if f.CalcH != nil {
		n.H = f.CalcH(Neighbor{Tile: tile, Dir: world.DirNone})
	}
	f.store(n)
	f.push(n)
}

// Run executes the search to completion. It returns FoundGoal after the
// success callback has run, or NoPathExists once the open set is exhausted.
func (f *Finder) Run() (Result, error) {
	if f.CalcG == nil || f.CalcH == nil || f.Neighbors == nil ||
		f.IsGoal == nil || f.FoundGoal == nil {
		return NoPathExists, ErrMissingCallback
	}
	if len(f.open) == 0 {
		return NoPathExists, ErrNoStartNode
	}

	for len(f.open) > 0 {
		item := heap.Pop(&f.open).(openItem)
		n := item.node
		// Skip finalized nodes and entries whose priority was superseded
		// by a later improvement.
		if n.closed || item.f != n.F() {
			continue
		}

		if f.IsGoal(n) {
			f.FoundGoal(n)
			return FoundGoal, nil
		}

		n.closed = true
		f.expand(n)
	}

	return NoPathExists, nil
}

// expand relaxes all neighbors of a freshly closed node.
func (f *Finder) expand(n *Node) {
	for _, nb := range f.Neighbors(n) {
		existing := f.lookup(nb.Tile)
		if existing != nil && existing.closed {
			continue
		}

		g := n.G + f.CalcG(nb, n)

		if existing == nil {
			node := &Node{
				Tile:   nb.Tile,
				Dir:    nb.Dir,
				G:      g,
				H:      f.CalcH(nb),
				Parent: n,
			}
			f.store(node)
			f.push(node)
			continue
		}

		if g < existing.G {
			existing.G = g
			existing.Dir = nb.Dir
			existing.Parent = n
			f.push(existing)
		}
	}
}

// lookup returns the node already created for a tile, or nil.
func (f *Finder) lookup(tile world.TileCoord) *Node {
	idx := f.hash(tile) % uint(len(f.buckets))
	for _, n := range f.buckets[idx] {
		if n.Tile == tile {
			return n
		}
	}
	return nil
}

// store inserts a node into its hash bucket.
func (f *Finder) store(n *Node) {
	idx := f.hash(n.Tile) % uint(len(f.buckets))
	f.buckets[idx] = append(f.buckets[idx], n)
}

// push enqueues the node's current priority onto the frontier.
func (f *Finder) push(n *Node) {
	f.order++
	heap.Push(&f.open, openItem{node: n, f: n.F(), order: f.order})
}

// openItem is a frontier entry. The priority is captured at push time;
// superseded entries are detected on pop by comparing against the node's
// current F.
type openItem struct {
	node  *Node
	f     int
	order int // insertion sequence, breaks F ties
}

// openHeap is a min-heap of frontier entries ordered by F, then insertion
// order.
type openHeap []openItem

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].order < h[j].order
}
func (h openHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *openHeap) Push(x interface{}) { *h = append(*h, x.(openItem)) }
func (h *openHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
