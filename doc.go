/*
Package mosaic provides an archetype-based Entity-Component-System (ECS)
runtime: a data-oriented in-memory store that groups entities by the
exact set of component types they carry, plus a scheduler that runs
user-supplied systems in parallel while respecting the read/write
conflicts each system declares on its components and resources.

Core Concepts:

  - Component: a data attribute attached to an entity, identified by a
    stable id assigned once per Go type.
  - Resource: a singleton value shared across systems, identified in a
    separate id space from components.
  - Archetype: the unordered set of component types an entity has; all
    entities of one archetype live in the same Table.
  - Query: a declared list of components; cached as the set of tables
    whose row set is a superset of that list.
  - Commands: a per-system scratch buffer for deferred spawns,
    destroys, and component inserts/removes, submitted when the system
    finishes running.
  - Flush: the single structural synchronization point, applied once
    per stage, where all queued work lands and the query cache is
    refreshed.

Basic Usage:

	_ = mosaic.ComponentOf[Position]()
	_ = mosaic.ComponentOf[Velocity]()

	var builder mosaic.Builder
	mosaic.LoadSystem2(&builder, mosaic.StageMain,
		func(q mosaic.Query2[mosaic.Mut[Position], mosaic.Ref[Velocity]], c mosaic.Commands) {
			for row, _ := range q.All() {
				row.V1.Get().X += row.V2.Get().X
				row.V1.Get().Y += row.V2.Get().Y
			}
		})

	engine := builder.Build()
	ctx := context.Background()
	engine.ExecuteStartup(ctx)
	engine.ExecuteSystems(ctx)

Mosaic keeps entities by (table, column) location rather than by a
versioned handle: a location is stable only between flushes. Systems
that need to reference an entity across a flush boundary must not hold
onto an EntityIndex collected during iteration past the stage's flush.
*/
package mosaic
