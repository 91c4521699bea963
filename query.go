package mosaic

import (
	"fmt"
	"iter"
	"sort"
)

// queryParam is implemented (via pointer receiver) by Ref[T] and
// Mut[T]. Resolving a zero Q value's component id and binding it to
// live table data both happen through a runtime assertion against
// this interface — the stand-in for the Rust prototype's
// QueryParam::wrap, since Go generics have no way to carry a per-type
// static factory without an instance to call it on.
type queryParam interface {
	componentID() ComponentID
	accessor() Accessor
	bind(tbl *Table, col int)
}

// Ref is a read-only query slot over component type T.
type Ref[T any] struct {
	ptr *T
}

func (r *Ref[T]) componentID() ComponentID { return ComponentOf[T]().ID() }
func (r *Ref[T]) accessor() Accessor       { return AccessorRef(r.componentID()) }
func (r *Ref[T]) bind(tbl *Table, col int) {
	r.ptr = tbl.Column(r.componentID()).(*anonVec[T]).At(col)
}

// Get returns the component value.
func (r Ref[T]) Get() *T { return r.ptr }

// Mut is a mutable query slot over component type T.
type Mut[T any] struct {
	ptr *T
}

func (m *Mut[T]) componentID() ComponentID { return ComponentOf[T]().ID() }
func (m *Mut[T]) accessor() Accessor       { return AccessorMut(m.componentID()) }
func (m *Mut[T]) bind(tbl *Table, col int) {
	m.ptr = tbl.Column(m.componentID()).(*anonVec[T]).At(col)
}

// Get returns the component value for mutation.
func (m Mut[T]) Get() *T { return m.ptr }

func queryParamOf[Q any]() queryParam {
	var q Q
	qp, ok := any(&q).(queryParam)
	if !ok {
		fatalf("mosaic: %T is not a valid query slot (expected Ref[C] or Mut[C])", q)
	}
	return qp
}

func queryParamID[Q any]() ComponentID    { return queryParamOf[Q]().componentID() }
func queryParamAccessor[Q any]() Accessor { return queryParamOf[Q]().accessor() }

func bindQuerySlot[Q any](tbl *Table, col int) Q {
	var q Q
	any(&q).(queryParam).bind(tbl, col)
	return q
}

// idsKey renders a sorted component-id list into a stable map key, so
// two systems declaring the same query with fields in a different
// order still resolve to one registry cache entry.
func idsKey(ids []ComponentID) string {
	sorted := append([]ComponentID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return fmt.Sprint(sorted)
}

// Query1 iterates every entity of every table whose row set contains
// Q1's component (spec.md §4.4).
type Query1[Q1 any] struct {
	engine *Engine
	qid    QueryID
}

func (q *Query1[Q1]) fetchParam(e *Engine) {
	q.engine = e
	q.qid = e.queryIDFor([]ComponentID{queryParamID[Q1]()})
}
func (q *Query1[Q1]) fetchAccess() []Accessor { return []Accessor{queryParamAccessor[Q1]()} }
func (q *Query1[Q1]) fetchQueries(out *[][]ComponentID) {
	*out = append(*out, []ComponentID{queryParamID[Q1]()})
}

// All iterates tables in cache-insertion order and, within a table,
// columns 0..num_entities-1 (spec.md §4.4).
func (q *Query1[Q1]) All() iter.Seq2[Q1, EntityIndex] {
	return func(yield func(Q1, EntityIndex) bool) {
		for _, idx := range q.engine.registry.QueryTables(q.qid) {
			tbl := q.engine.registry.Table(idx)
			n := tbl.Len()
			for col := 0; col < n; col++ {
				if !yield(bindQuerySlot[Q1](tbl, col), EntityIndex{Table: idx, Column: col}) {
					return
				}
			}
		}
	}
}

// Query2 iterates entities having both Q1's and Q2's components.
type Query2[Q1, Q2 any] struct {
	engine *Engine
	qid    QueryID
}

func (q *Query2[Q1, Q2]) fetchParam(e *Engine) {
	q.engine = e
	q.qid = e.queryIDFor([]ComponentID{queryParamID[Q1](), queryParamID[Q2]()})
}
func (q *Query2[Q1, Q2]) fetchAccess() []Accessor {
	return []Accessor{queryParamAccessor[Q1](), queryParamAccessor[Q2]()}
}
func (q *Query2[Q1, Q2]) fetchQueries(out *[][]ComponentID) {
	*out = append(*out, []ComponentID{queryParamID[Q1](), queryParamID[Q2]()})
}

// Query2Row carries one matched row's two slots for Query2.All, since
// the two slots plus the EntityIndex are more values than iter.Seq2
// can yield.
type Query2Row[Q1, Q2 any] struct {
	V1 Q1
	V2 Q2
}

func (q *Query2[Q1, Q2]) All() iter.Seq2[Query2Row[Q1, Q2], EntityIndex] {
	return func(yield func(Query2Row[Q1, Q2], EntityIndex) bool) {
		for _, idx := range q.engine.registry.QueryTables(q.qid) {
			tbl := q.engine.registry.Table(idx)
			n := tbl.Len()
			for col := 0; col < n; col++ {
				row := Query2Row[Q1, Q2]{
					V1: bindQuerySlot[Q1](tbl, col),
					V2: bindQuerySlot[Q2](tbl, col),
				}
				if !yield(row, EntityIndex{Table: idx, Column: col}) {
					return
				}
			}
		}
	}
}

// Query3Row carries one matched row's three slots for Query3.All,
// since Go's iterator types only go up to Seq2 in the standard
// library (spec.md's tuple yield needs a third value here).
type Query3Row[Q1, Q2, Q3 any] struct {
	V1 Q1
	V2 Q2
	V3 Q3
}

// Query3 iterates entities having Q1's, Q2's, and Q3's components.
type Query3[Q1, Q2, Q3 any] struct {
	engine *Engine
	qid    QueryID
}

func (q *Query3[Q1, Q2, Q3]) fetchParam(e *Engine) {
	q.engine = e
	q.qid = e.queryIDFor([]ComponentID{queryParamID[Q1](), queryParamID[Q2](), queryParamID[Q3]()})
}
func (q *Query3[Q1, Q2, Q3]) fetchAccess() []Accessor {
	return []Accessor{queryParamAccessor[Q1](), queryParamAccessor[Q2](), queryParamAccessor[Q3]()}
}
func (q *Query3[Q1, Q2, Q3]) fetchQueries(out *[][]ComponentID) {
	*out = append(*out, []ComponentID{queryParamID[Q1](), queryParamID[Q2](), queryParamID[Q3]()})
}

func (q *Query3[Q1, Q2, Q3]) All() iter.Seq2[Query3Row[Q1, Q2, Q3], EntityIndex] {
	return func(yield func(Query3Row[Q1, Q2, Q3], EntityIndex) bool) {
		for _, idx := range q.engine.registry.QueryTables(q.qid) {
			tbl := q.engine.registry.Table(idx)
			n := tbl.Len()
			for col := 0; col < n; col++ {
				row := Query3Row[Q1, Q2, Q3]{
					V1: bindQuerySlot[Q1](tbl, col),
					V2: bindQuerySlot[Q2](tbl, col),
					V3: bindQuerySlot[Q3](tbl, col),
				}
				if !yield(row, EntityIndex{Table: idx, Column: col}) {
					return
				}
			}
		}
	}
}

// Query4Row carries one matched row's four slots for Query4.All.
type Query4Row[Q1, Q2, Q3, Q4 any] struct {
	V1 Q1
	V2 Q2
	V3 Q3
	V4 Q4
}

// Query4 iterates entities having all four slots' components. Beyond
// arity 4, split into two queries sharing an EntityIndex rather than
// growing this family further — the Rust prototype macro-generates up
// to 10 copies; this module caps at 4 and documents the cap instead
// (spec.md §9, Design Notes).
type Query4[Q1, Q2, Q3, Q4 any] struct {
	engine *Engine
	qid    QueryID
}

func (q *Query4[Q1, Q2, Q3, Q4]) fetchParam(e *Engine) {
	q.engine = e
	q.qid = e.queryIDFor([]ComponentID{
		queryParamID[Q1](), queryParamID[Q2](), queryParamID[Q3](), queryParamID[Q4](),
	})
}
func (q *Query4[Q1, Q2, Q3, Q4]) fetchAccess() []Accessor {
	return []Accessor{
		queryParamAccessor[Q1](), queryParamAccessor[Q2](),
		queryParamAccessor[Q3](), queryParamAccessor[Q4](),
	}
}
func (q *Query4[Q1, Q2, Q3, Q4]) fetchQueries(out *[][]ComponentID) {
	*out = append(*out, []ComponentID{
		queryParamID[Q1](), queryParamID[Q2](), queryParamID[Q3](), queryParamID[Q4](),
	})
}

func (q *Query4[Q1, Q2, Q3, Q4]) All() iter.Seq2[Query4Row[Q1, Q2, Q3, Q4], EntityIndex] {
	return func(yield func(Query4Row[Q1, Q2, Q3, Q4], EntityIndex) bool) {
		for _, idx := range q.engine.registry.QueryTables(q.qid) {
			tbl := q.engine.registry.Table(idx)
			n := tbl.Len()
			for col := 0; col < n; col++ {
				row := Query4Row[Q1, Q2, Q3, Q4]{
					V1: bindQuerySlot[Q1](tbl, col),
					V2: bindQuerySlot[Q2](tbl, col),
					V3: bindQuerySlot[Q3](tbl, col),
					V4: bindQuerySlot[Q4](tbl, col),
				}
				if !yield(row, EntityIndex{Table: idx, Column: col}) {
					return
				}
			}
		}
	}
}
