package mosaic

import "context"

// System is one scheduled unit of work: a function taking some number
// of SystemParam-shaped arguments, wrapped so the scheduler can run it
// without knowing its concrete parameter types (spec.md §4.5, §5).
type System interface {
	// Run fetches this system's parameters from the engine and invokes
	// the wrapped function.
	Run(ctx context.Context, e *Engine)
	// Accessors returns this system's static Ref/Mut/Res/ResMut/None
	// declarations, used to build the scheduler's conflict graph.
	Accessors() []Accessor
	// Queries appends every query-shaped parameter's component-id list.
	Queries(out *[][]ComponentID)
}

// systemParam is implemented (via pointer receiver) by every valid
// system parameter type: QueryN, Res[R], ResMut[R], and Commands. Like
// queryParam, this stands in for a per-type static factory that Go
// generics cannot express directly.
type systemParam interface {
	fetchParam(e *Engine)
	fetchAccess() []Accessor
	fetchQueries(out *[][]ComponentID)
}

func buildParam[P any](e *Engine) P {
	var p P
	sp, ok := any(&p).(systemParam)
	if !ok {
		fatalf("mosaic: %T is not a valid system parameter", p)
	}
	sp.fetchParam(e)
	return p
}

func paramAccess[P any]() []Accessor {
	var p P
	sp, ok := any(&p).(systemParam)
	if !ok {
		fatalf("mosaic: %T is not a valid system parameter", p)
	}
	return sp.fetchAccess()
}

func paramQueries[P any](out *[][]ComponentID) {
	var p P
	sp, ok := any(&p).(systemParam)
	if !ok {
		fatalf("mosaic: %T is not a valid system parameter", p)
	}
	sp.fetchQueries(out)
}

// doneable is implemented by Commands: its buffered mutations must be
// submitted after the wrapped function returns. Go has no destructors
// to do this implicitly, so FunctionSystemN does it explicitly right
// after calling fn, standing in for the Rust prototype's Drop impl.
type doneable interface{ Done() }

func finishParam(p any) {
	if d, ok := p.(doneable); ok {
		d.Done()
	}
}

// FunctionSystem1 adapts a single-parameter function into a System.
type FunctionSystem1[P1 any] struct {
	fn func(P1)
}

func (s FunctionSystem1[P1]) Run(ctx context.Context, e *Engine) {
	p1 := buildParam[P1](e)
	s.fn(p1)
	finishParam(p1)
}
func (s FunctionSystem1[P1]) Accessors() []Accessor { return paramAccess[P1]() }
func (s FunctionSystem1[P1]) Queries(out *[][]ComponentID) { paramQueries[P1](out) }

// FunctionSystem2 adapts a two-parameter function into a System.
type FunctionSystem2[P1, P2 any] struct {
	fn func(P1, P2)
}

func (s FunctionSystem2[P1, P2]) Run(ctx context.Context, e *Engine) {
	p1 := buildParam[P1](e)
	p2 := buildParam[P2](e)
	s.fn(p1, p2)
	finishParam(p1)
	finishParam(p2)
}
func (s FunctionSystem2[P1, P2]) Accessors() []Accessor {
	return append(paramAccess[P1](), paramAccess[P2]()...)
}
func (s FunctionSystem2[P1, P2]) Queries(out *[][]ComponentID) {
	paramQueries[P1](out)
	paramQueries[P2](out)
}

// FunctionSystem3 adapts a three-parameter function into a System.
type FunctionSystem3[P1, P2, P3 any] struct {
	fn func(P1, P2, P3)
}

func (s FunctionSystem3[P1, P2, P3]) Run(ctx context.Context, e *Engine) {
	p1 := buildParam[P1](e)
	p2 := buildParam[P2](e)
	p3 := buildParam[P3](e)
	s.fn(p1, p2, p3)
	finishParam(p1)
	finishParam(p2)
	finishParam(p3)
}
func (s FunctionSystem3[P1, P2, P3]) Accessors() []Accessor {
	acc := paramAccess[P1]()
	acc = append(acc, paramAccess[P2]()...)
	return append(acc, paramAccess[P3]()...)
}
func (s FunctionSystem3[P1, P2, P3]) Queries(out *[][]ComponentID) {
	paramQueries[P1](out)
	paramQueries[P2](out)
	paramQueries[P3](out)
}

// FunctionSystem4 adapts a four-parameter function into a System. This
// module caps system arity at 4, matching Query's cap — a system
// needing a fifth parameter should split its work across two systems
// sharing a stage instead.
type FunctionSystem4[P1, P2, P3, P4 any] struct {
	fn func(P1, P2, P3, P4)
}

func (s FunctionSystem4[P1, P2, P3, P4]) Run(ctx context.Context, e *Engine) {
	p1 := buildParam[P1](e)
	p2 := buildParam[P2](e)
	p3 := buildParam[P3](e)
	p4 := buildParam[P4](e)
	s.fn(p1, p2, p3, p4)
	finishParam(p1)
	finishParam(p2)
	finishParam(p3)
	finishParam(p4)
}
func (s FunctionSystem4[P1, P2, P3, P4]) Accessors() []Accessor {
	acc := paramAccess[P1]()
	acc = append(acc, paramAccess[P2]()...)
	acc = append(acc, paramAccess[P3]()...)
	return append(acc, paramAccess[P4]()...)
}
func (s FunctionSystem4[P1, P2, P3, P4]) Queries(out *[][]ComponentID) {
	paramQueries[P1](out)
	paramQueries[P2](out)
	paramQueries[P3](out)
	paramQueries[P4](out)
}
