package mosaic

import (
	"context"
	"sync/atomic"

	"github.com/TheBitDrifter/mask"
	"golang.org/x/sync/errgroup"
)

// SystemIndex identifies one system within a scheduler's insertion
// order.
type SystemIndex int

// node wraps one system with its declared accessors, a quick-reject
// mask built from those accessors, and the edge list of every other
// node it was found not to conflict with at insertion time (spec.md
// §4.5 — edges denote "safe to co-run", the complement of the conflict
// graph).
type node struct {
	system  System
	access  []Accessor
	bloom   mask.Mask256
	edges   []SystemIndex
	hasRan  atomic.Bool
}

func newNode(s System) *node {
	n := &node{system: s, access: s.Accessors()}
	for _, a := range n.access {
		if a.Kind == AccessNone {
			continue
		}
		n.bloom.Mark(uint32(a.ID % 256))
	}
	return n
}

// maybeConflicts is a cheap pre-check: if the two nodes' accessor-id
// blooms share no bit, they are provably disjoint and the precise
// O(n*m) accessor scan can be skipped. A shared bit proves nothing —
// it may be a hash collision between unrelated ids — so it always
// falls through to the exact check.
func (n *node) maybeConflicts(other *node) bool {
	return n.bloom.ContainsAny(other.bloom)
}

func (n *node) conflictsWith(other *node) bool {
	if !n.maybeConflicts(other) {
		return false
	}
	return accessorsConflict(n.access, other.access)
}

// Scheduler holds one stage's systems as a compatibility graph derived
// from their declared accessors, and executes them batched by
// conflict-free groups (spec.md §4.5).
type Scheduler struct {
	nodes []*node
}

// NewScheduler returns an empty scheduler for one stage.
func NewScheduler() *Scheduler { return &Scheduler{} }

// Insert adds a system, recording as an edge every already-inserted
// system it does not conflict with (and symmetrically adding itself to
// each of those systems' edges).
func (s *Scheduler) Insert(system System) {
	n := newNode(system)
	index := SystemIndex(len(s.nodes))
	n.edges = append(n.edges, index)

	for i, existing := range s.nodes {
		if !n.conflictsWith(existing) {
			n.edges = append(n.edges, SystemIndex(i))
			existing.edges = append(existing.edges, index)
		}
	}
	s.nodes = append(s.nodes, n)
}

// Execute runs every system in this stage exactly once. For each
// not-yet-run system in insertion order, it opens a fork-join region
// (an errgroup) over the still-unrun nodes of its edge list, skipping
// any node that conflicts with one already in the batch so the batch
// stays pairwise non-conflicting, dispatches them concurrently, and
// waits for the region before continuing the outer loop (spec.md §4.5,
// §5). A skipped node runs in a later batch.
func (s *Scheduler) Execute(ctx context.Context, e *Engine) {
	for i := range s.nodes {
		if s.nodes[i].hasRan.Load() {
			continue
		}

		group, gctx := errgroup.WithContext(ctx)
		if Config.MaxConcurrentSystems > 0 {
			group.SetLimit(Config.MaxConcurrentSystems)
		}

		var batch []*node
	edges:
		for _, edge := range s.nodes[i].edges {
			n := s.nodes[edge]
			if n.hasRan.Load() {
				continue
			}
			for _, other := range batch {
				if n.conflictsWith(other) {
					continue edges
				}
			}
			n.hasRan.Store(true)
			batch = append(batch, n)
			group.Go(func() error {
				n.system.Run(gctx, e)
				return nil
			})
		}
		// Execute does not propagate system errors: systems return no
		// error by contract (spec.md §5 — a system that panics aborts
		// the stage's fork-join region, and recovery is a non-goal).
		_ = group.Wait()
	}

	for _, n := range s.nodes {
		n.hasRan.Store(false)
	}
}

// CollectQueries appends every query-shaped parameter's component-id
// list across every system in this scheduler.
func (s *Scheduler) CollectQueries(out *[][]ComponentID) {
	for _, n := range s.nodes {
		n.system.Queries(out)
	}
}
