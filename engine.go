package mosaic

import "context"

// Engine owns the archetype registry, the resource store, and one
// Scheduler per stage for both startup and per-tick systems. It is the
// handle every System.Run receives (spec.md §4, §6).
type Engine struct {
	registry   *Registry
	resources  *resourceStore
	startup    [stageCount]*Scheduler
	systems    [stageCount]*Scheduler
	queryIndex map[string]QueryID
}

func newEngine() *Engine {
	e := &Engine{
		registry:   NewRegistry(),
		resources:  newResourceStore(),
		queryIndex: make(map[string]QueryID),
	}
	for i := range e.startup {
		e.startup[i] = NewScheduler()
		e.systems[i] = NewScheduler()
	}
	return e
}

// Registry exposes the archetype registry directly, for callers that
// need raw Submit/Flush/Table access outside of a system (e.g. test
// setup).
func (e *Engine) Registry() *Registry { return e.registry }

// queryIDFor resolves a previously-registered query's id. Every query
// declared by any system is registered once at Build time; resolving
// one after that is a pure lookup, never a registration, since
// registering past the first tick is a programmer error (spec.md
// §4.3).
func (e *Engine) queryIDFor(ids []ComponentID) QueryID {
	qid, ok := e.queryIndex[idsKey(ids)]
	if !ok {
		fatalf("mosaic: query for %v was not registered before the first tick", ids)
	}
	return qid
}

func (e *Engine) registerQueries(lists [][]ComponentID) {
	for _, ids := range lists {
		key := idsKey(ids)
		if _, ok := e.queryIndex[key]; ok {
			continue
		}
		e.queryIndex[key] = e.registry.RegisterQuery(ids)
	}
}

// ExecuteStartup runs every startup system exactly once, stage by
// stage, flushing the registry between stages so a spawn queued in an
// earlier stage is visible to the next.
func (e *Engine) ExecuteStartup(ctx context.Context) {
	for i := range e.startup {
		e.startup[i].Execute(ctx, e)
		e.registry.Flush()
	}
}

// ExecuteSystems runs one tick: every stage's systems in order, with a
// flush between each stage (spec.md §4.5).
func (e *Engine) ExecuteSystems(ctx context.Context) {
	for i := range e.systems {
		e.systems[i].Execute(ctx, e)
		e.registry.Flush()
	}
}
