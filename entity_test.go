package mosaic

import "testing"

type testPosition struct{ X, Y float64 }
type testVelocity struct{ X, Y float64 }
type testHealth struct{ Current, Max int }

func TestEntityAssemblerInsertOverwrites(t *testing.T) {
	position := ComponentOf[testPosition]()

	a := NewEntityAssembler()
	InsertComponent(a, position, testPosition{X: 1, Y: 1})
	InsertComponent(a, position, testPosition{X: 2, Y: 2})

	if a.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (last insert should overwrite)", a.Len())
	}
	v, ok := a.valueFor(position.ID())
	if !ok {
		t.Fatalf("expected position to be present")
	}
	if got := v.(testPosition); got.X != 2 {
		t.Errorf("value = %+v, want X=2 (last write wins)", got)
	}
}

func TestEntityAssemblerRemoveIsSilentNoOp(t *testing.T) {
	position := ComponentOf[testPosition]()
	velocity := ComponentOf[testVelocity]()

	a := NewEntityAssembler()
	InsertComponent(a, position, testPosition{})
	a.Remove(velocity.ID())

	if a.Len() != 1 {
		t.Errorf("removing an absent component changed Len() to %d, want 1", a.Len())
	}
}

func TestEntityAssemblerFingerprintIgnoresInsertOrder(t *testing.T) {
	position := ComponentOf[testPosition]()
	velocity := ComponentOf[testVelocity]()
	health := ComponentOf[testHealth]()

	a := NewEntityAssembler()
	InsertComponent(a, position, testPosition{})
	InsertComponent(a, velocity, testVelocity{})
	InsertComponent(a, health, testHealth{})

	b := NewEntityAssembler()
	InsertComponent(b, health, testHealth{})
	InsertComponent(b, position, testPosition{})
	InsertComponent(b, velocity, testVelocity{})

	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("fingerprints differ by insertion order: %v vs %v", a.Fingerprint(), b.Fingerprint())
	}
}

func TestEntityAssemblerIDsSorted(t *testing.T) {
	position := ComponentOf[testPosition]()
	velocity := ComponentOf[testVelocity]()

	a := NewEntityAssembler()
	if position.ID() < velocity.ID() {
		InsertComponent(a, velocity, testVelocity{})
		InsertComponent(a, position, testPosition{})
	} else {
		InsertComponent(a, position, testPosition{})
		InsertComponent(a, velocity, testVelocity{})
	}

	ids := a.IDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("IDs() not sorted: %v", ids)
		}
	}
}
