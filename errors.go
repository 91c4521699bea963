package mosaic

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
)

// ComponentMissingError is raised when a query collects a component
// from a table whose row set does not actually contain it. Seeing this
// means the scheduler or registry handed a query the wrong table index.
type ComponentMissingError struct {
	ComponentID ComponentID
}

func (e ComponentMissingError) Error() string {
	return fmt.Sprintf("mosaic: component %d does not exist on this table", e.ComponentID)
}

// EmptySpawnGroupError is raised when Table.SpawnGroup is called with
// an empty batch of entities.
type EmptySpawnGroupError struct{}

func (e EmptySpawnGroupError) Error() string {
	return "mosaic: queued an empty entity group for spawn"
}

// ArchetypeCollisionError is raised when the registry attempts to
// create a table for a fingerprint that already maps to one.
type ArchetypeCollisionError struct {
	Fingerprint Fingerprint
}

func (e ArchetypeCollisionError) Error() string {
	return fmt.Sprintf("mosaic: archetype %d already has a table", e.Fingerprint)
}

// LateQueryRegistrationError is raised when RegisterQuery is called
// after the engine's first tick.
type LateQueryRegistrationError struct{}

func (e LateQueryRegistrationError) Error() string {
	return "mosaic: queries must be registered before the first tick"
}

// fatalf panics with a traced error. Every call site represents a
// scheduler or registry invariant violation, never a user input error.
func fatalf(format string, args ...any) {
	panic(bark.AddTrace(fmt.Errorf(format, args...)))
}

func fatal(err error) {
	panic(bark.AddTrace(err))
}
