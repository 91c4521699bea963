package mosaic

import "testing"

type testTag struct{}

func TestComponentOfIsIdempotent(t *testing.T) {
	a := ComponentOf[testTag]()
	b := ComponentOf[testTag]()
	if a.ID() != b.ID() {
		t.Errorf("ComponentOf[testTag]() returned different ids across calls: %v vs %v", a.ID(), b.ID())
	}
}

func TestComponentOfDistinctTypesGetDistinctIDs(t *testing.T) {
	pos := ComponentOf[testPosition]()
	vel := ComponentOf[testVelocity]()
	if pos.ID() == vel.ID() {
		t.Errorf("distinct component types share id %v", pos.ID())
	}
}

func TestNewColumnMatchesComponentType(t *testing.T) {
	health := ComponentOf[testHealth]()
	col := components.newColumn(health.ID())
	if col.ID() != health.ID() {
		t.Errorf("newColumn produced a column for id %v, want %v", col.ID(), health.ID())
	}
	col.PushAny(testHealth{Current: 3, Max: 10})
	if col.Len() != 1 {
		t.Errorf("Len() = %d, want 1", col.Len())
	}
}
