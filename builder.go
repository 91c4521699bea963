package mosaic

// Builder accumulates resources and systems before producing an
// Engine. Registration happens in Go's natural zero-value style: a
// Builder is ready to use as soon as declared, mirroring the teacher's
// Factory-value idiom of config-by-method-chain without needing a
// constructor (spec.md §6).
type Builder struct {
	resources []func(*Engine)
	startup   [stageCount][]System
	systems   [stageCount][]System
}

// LoadResource registers a singleton resource value, inserted into the
// engine's resource store at Build time.
func LoadResource[R any](b *Builder, value R) {
	v := value
	b.resources = append(b.resources, func(e *Engine) {
		e.resources.insert(ResourceOf[R]().ID(), &v)
	})
}

// LoadSystem1 registers fn to run once per tick in the given stage.
func LoadSystem1[P1 any](b *Builder, stage Stage, fn func(P1)) {
	b.systems[stage] = append(b.systems[stage], FunctionSystem1[P1]{fn: fn})
}

// LoadSystem2 registers a two-parameter per-tick system.
func LoadSystem2[P1, P2 any](b *Builder, stage Stage, fn func(P1, P2)) {
	b.systems[stage] = append(b.systems[stage], FunctionSystem2[P1, P2]{fn: fn})
}

// LoadSystem3 registers a three-parameter per-tick system.
func LoadSystem3[P1, P2, P3 any](b *Builder, stage Stage, fn func(P1, P2, P3)) {
	b.systems[stage] = append(b.systems[stage], FunctionSystem3[P1, P2, P3]{fn: fn})
}

// LoadSystem4 registers a four-parameter per-tick system.
func LoadSystem4[P1, P2, P3, P4 any](b *Builder, stage Stage, fn func(P1, P2, P3, P4)) {
	b.systems[stage] = append(b.systems[stage], FunctionSystem4[P1, P2, P3, P4]{fn: fn})
}

// LoadStartup1 registers fn to run once during ExecuteStartup.
func LoadStartup1[P1 any](b *Builder, stage Stage, fn func(P1)) {
	b.startup[stage] = append(b.startup[stage], FunctionSystem1[P1]{fn: fn})
}

// LoadStartup2 registers a two-parameter startup system.
func LoadStartup2[P1, P2 any](b *Builder, stage Stage, fn func(P1, P2)) {
	b.startup[stage] = append(b.startup[stage], FunctionSystem2[P1, P2]{fn: fn})
}

// LoadStartup3 registers a three-parameter startup system.
func LoadStartup3[P1, P2, P3 any](b *Builder, stage Stage, fn func(P1, P2, P3)) {
	b.startup[stage] = append(b.startup[stage], FunctionSystem3[P1, P2, P3]{fn: fn})
}

// LoadStartup4 registers a four-parameter startup system.
func LoadStartup4[P1, P2, P3, P4 any](b *Builder, stage Stage, fn func(P1, P2, P3, P4)) {
	b.startup[stage] = append(b.startup[stage], FunctionSystem4[P1, P2, P3, P4]{fn: fn})
}

// Build finalizes registration: resources are inserted, every system
// is fed into its stage's Scheduler (deriving the conflict graph), and
// every declared query is registered against the registry exactly
// once before the engine's first tick (spec.md §4.3, §6).
func (b *Builder) Build() *Engine {
	e := newEngine()
	for _, load := range b.resources {
		load(e)
	}

	var queries [][]ComponentID
	for stage := Stage(0); stage < stageCount; stage++ {
		for _, sys := range b.startup[stage] {
			e.startup[stage].Insert(sys)
			sys.Queries(&queries)
		}
		for _, sys := range b.systems[stage] {
			e.systems[stage].Insert(sys)
			sys.Queries(&queries)
		}
	}
	e.registerQueries(queries)
	return e
}
