package mosaic

// Queue is the per-system scratch buffer for deferred mutations,
// submitted to the Registry when a Commands value goes out of scope at
// the end of a system's execution (spec.md §3/§4.4).
type Queue struct {
	spawn   map[Fingerprint][]*EntityAssembler
	destroy map[int][]destroyEntry
	modify  map[EntityIndex]*modifyRecord
}

func newQueue() *Queue {
	return &Queue{
		spawn:   make(map[Fingerprint][]*EntityAssembler),
		destroy: make(map[int][]destroyEntry),
		modify:  make(map[EntityIndex]*modifyRecord),
	}
}

func (q *Queue) spawnEntity(e *EntityAssembler) {
	fp := e.Fingerprint()
	q.spawn[fp] = append(q.spawn[fp], e)
}

func (q *Queue) destroyAt(idx EntityIndex) {
	q.destroy[idx.Table] = append(q.destroy[idx.Table], destroyEntry{col: idx.Column, kind: destroyDrop})
}

// insert and remove on the same EntityIndex within one Queue collapse
// into a single modify record (spec.md §4.4).
func (q *Queue) insertAt(idx EntityIndex, id ComponentID, value any) {
	rec, ok := q.modify[idx]
	if !ok {
		rec = &modifyRecord{}
		q.modify[idx] = rec
	}
	rec.insert = append(rec.insert, assembledComponent{id: id, value: value})
}

func (q *Queue) removeAt(idx EntityIndex, id ComponentID) {
	rec, ok := q.modify[idx]
	if !ok {
		rec = &modifyRecord{}
		q.modify[idx] = rec
	}
	rec.remove = append(rec.remove, id)
}

func (q *Queue) empty() bool {
	return len(q.spawn) == 0 && len(q.destroy) == 0 && len(q.modify) == 0
}

// Commands is a per-system deferred-mutation buffer. A system that
// takes Commands as a parameter accumulates spawns, destroys, and
// component inserts/removes on it; Done submits the accumulated Queue
// to the registry once the system has finished running.
type Commands struct {
	registry *Registry
	queue    *Queue
}

func newCommands(r *Registry) Commands {
	return Commands{registry: r, queue: newQueue()}
}

// Spawn builds a new entity via predicate and enqueues it for the
// archetype matching whatever components predicate inserts.
func (c Commands) Spawn(predicate func(*EntityAssembler)) {
	a := NewEntityAssembler()
	predicate(a)
	c.queue.spawnEntity(a)
}

// Destroy enqueues the entity at index for destruction.
func (c Commands) Destroy(index EntityIndex) {
	c.queue.destroyAt(index)
}

// Insert enqueues a component insert for the entity at index.
func Insert[T any](c Commands, index EntityIndex, ct ComponentType[T], value T) {
	c.queue.insertAt(index, ct.ID(), value)
}

// Remove enqueues a component removal for the entity at index.
func Remove[T any](c Commands, index EntityIndex, ct ComponentType[T]) {
	c.queue.removeAt(index, ct.ID())
}

// Done submits this Commands buffer's queue to the registry. The
// engine calls this once per system, standing in for the Rust
// prototype's Drop impl — Go has no destructors, so FunctionSystemN.Run
// calls Done (through finishParam) right after the system function
// returns.
func (c Commands) Done() {
	if c.queue.empty() {
		return
	}
	c.registry.Submit(c.queue)
}

// fetchParam implements systemParam for Commands: it binds fresh,
// backed by the engine's registry, once per system invocation.
func (c *Commands) fetchParam(e *Engine) { *c = newCommands(e.registry) }

// fetchAccess implements systemParam for Commands: it declares no
// statically knowable access, since its effects are deferred past the
// point the scheduler could reason about them.
func (c *Commands) fetchAccess() []Accessor { return []Accessor{AccessorNone()} }

func (c *Commands) fetchQueries(*[][]ComponentID) {}
