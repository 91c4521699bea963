package mosaic

import (
	"context"
	"testing"
)

// testContext is the context every test passes to Execute{Startup,Systems};
// pulled into its own helper so tests read as close to real call sites
// (which thread a request- or frame-scoped context.Context) without each
// one spelling out context.Background().
func testContext() context.Context { return context.Background() }

func TestEngineExecuteStartupFlushesBetweenStages(t *testing.T) {
	position := ComponentOf[testPosition]()

	var builder Builder
	LoadStartup1(&builder, StageCore, func(c Commands) {
		c.Spawn(func(a *EntityAssembler) { InsertComponent(a, position, testPosition{X: 1}) })
	})

	var sawInEarly int
	LoadStartup1(&builder, StageEarly, func(q Query1[Ref[testPosition]]) {
		for range q.All() {
			sawInEarly++
		}
	})

	engine := builder.Build()
	engine.ExecuteStartup(testContext())

	if sawInEarly != 1 {
		t.Errorf("StageEarly saw %d entities spawned in StageCore, want 1 (flush happens between stages)", sawInEarly)
	}
}

func TestEngineResourceRoundtrip(t *testing.T) {
	var builder Builder
	LoadResource(&builder, testClock{Tick: 1})

	var observed int
	LoadSystem1(&builder, StageMain, func(r Res[testClock]) {
		observed = r.Get().Tick
	})

	engine := builder.Build()
	engine.ExecuteSystems(testContext())

	if observed != 1 {
		t.Errorf("observed Tick = %d, want 1", observed)
	}
}

func TestEngineResMutIsVisibleAcrossStages(t *testing.T) {
	var builder Builder
	LoadResource(&builder, testClock{Tick: 0})

	LoadSystem1(&builder, StageCore, func(r ResMut[testClock]) {
		r.Get().Tick++
	})

	var observed int
	LoadSystem1(&builder, StageMain, func(r Res[testClock]) {
		observed = r.Get().Tick
	})

	engine := builder.Build()
	engine.ExecuteSystems(testContext())

	if observed != 1 {
		t.Errorf("observed Tick = %d, want 1 (ResMut write in Core visible to Res read in Main)", observed)
	}
}
