package mosaic

import (
	"context"
	"sync/atomic"
	"testing"
)

type fakeSystem struct {
	access []Accessor
	ran    *atomic.Int32
}

func (f fakeSystem) Run(ctx context.Context, e *Engine) { f.ran.Add(1) }
func (f fakeSystem) Accessors() []Accessor              { return f.access }
func (f fakeSystem) Queries(out *[][]ComponentID)       {}

func TestSchedulerInsertBuildsCompatibilityEdges(t *testing.T) {
	s := NewScheduler()
	var ran atomic.Int32

	s.Insert(fakeSystem{access: []Accessor{AccessorMut(1)}, ran: &ran})
	s.Insert(fakeSystem{access: []Accessor{AccessorRef(2)}, ran: &ran})
	s.Insert(fakeSystem{access: []Accessor{AccessorMut(1)}, ran: &ran})

	// node 0 (mut 1) and node 1 (ref 2) don't conflict: edge both ways.
	if len(s.nodes[0].edges) != 2 {
		t.Errorf("node 0 has %d edges, want 2 (itself + node 1)", len(s.nodes[0].edges))
	}
	// node 0 and node 2 both mut component 1: no edge between them.
	for _, e := range s.nodes[0].edges {
		if e == 2 {
			t.Errorf("node 0 should not have an edge to node 2 (both mutate component 1)")
		}
	}
}

func TestSchedulerExecuteRunsEverySystemExactlyOnce(t *testing.T) {
	s := NewScheduler()
	var ran atomic.Int32

	for i := 0; i < 5; i++ {
		s.Insert(fakeSystem{access: []Accessor{AccessorMut(ComponentID(i))}, ran: &ran})
	}

	e := newEngine()
	s.Execute(context.Background(), e)

	if got := ran.Load(); got != 5 {
		t.Errorf("ran = %d, want 5", got)
	}

	// A second Execute call should run every system again: hasRan flags
	// reset at the end of the previous call.
	s.Execute(context.Background(), e)
	if got := ran.Load(); got != 10 {
		t.Errorf("ran after second Execute = %d, want 10", got)
	}
}

func TestSchedulerConflictingSystemsStillAllRun(t *testing.T) {
	s := NewScheduler()
	var ran atomic.Int32

	s.Insert(fakeSystem{access: []Accessor{AccessorMut(1)}, ran: &ran})
	s.Insert(fakeSystem{access: []Accessor{AccessorMut(1)}, ran: &ran})
	s.Insert(fakeSystem{access: []Accessor{AccessorMut(1)}, ran: &ran})

	e := newEngine()
	s.Execute(context.Background(), e)

	if got := ran.Load(); got != 3 {
		t.Errorf("ran = %d, want 3 (conflicting systems still all run, just not concurrently)", got)
	}
}
