package mosaic

import "testing"

func TestQuery1IteratesMatchingTables(t *testing.T) {
	position := ComponentOf[testPosition]()
	velocity := ComponentOf[testVelocity]()

	var builder Builder
	LoadStartup1(&builder, StageCore, func(c Commands) {
		c.Spawn(func(a *EntityAssembler) { InsertComponent(a, position, testPosition{X: 1}) })
		c.Spawn(func(a *EntityAssembler) {
			InsertComponent(a, position, testPosition{X: 2})
			InsertComponent(a, velocity, testVelocity{X: 20})
		})
	})

	var seen []float64
	LoadSystem1(&builder, StageMain, func(q Query1[Ref[testPosition]]) {
		for pos, _ := range q.All() {
			seen = append(seen, pos.Get().X)
		}
	})

	engine := builder.Build()
	ctx := testContext()
	engine.ExecuteStartup(ctx)
	engine.ExecuteSystems(ctx)

	if len(seen) != 2 {
		t.Fatalf("Query1[Ref[testPosition]] saw %d entities, want 2 (both have Position)", len(seen))
	}
}

func TestQuery2MutatesThroughBinding(t *testing.T) {
	position := ComponentOf[testPosition]()
	velocity := ComponentOf[testVelocity]()

	var builder Builder
	LoadStartup1(&builder, StageCore, func(c Commands) {
		c.Spawn(func(a *EntityAssembler) {
			InsertComponent(a, position, testPosition{X: 0, Y: 0})
			InsertComponent(a, velocity, testVelocity{X: 1, Y: 2})
		})
	})

	LoadSystem1(&builder, StageMain, func(q Query2[Mut[testPosition], Ref[testVelocity]]) {
		for row, _ := range q.All() {
			row.V1.Get().X += row.V2.Get().X
			row.V1.Get().Y += row.V2.Get().Y
		}
	})

	var finalX float64
	LoadSystem1(&builder, StageLate, func(q Query1[Ref[testPosition]]) {
		for pos, _ := range q.All() {
			finalX = pos.Get().X
		}
	})

	engine := builder.Build()
	ctx := testContext()
	engine.ExecuteStartup(ctx)
	engine.ExecuteSystems(ctx)

	if finalX != 1 {
		t.Errorf("finalX = %v, want 1 (0 + velocity.X)", finalX)
	}
}

func TestQueryingUnregisteredIDsFatals(t *testing.T) {
	e := newEngine()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic resolving an unregistered query")
		}
	}()
	e.queryIDFor([]ComponentID{999})
}
