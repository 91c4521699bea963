package mosaic

import "sort"

// assembledComponent is one (type-id, value) pair held by an
// EntityAssembler before it has a table.
type assembledComponent struct {
	id    ComponentID
	value any
}

// EntityAssembler is a temporary, unordered bundle of component values
// used both for spawning new entities and for staging a modify's
// insert/remove set before it is applied (spec.md §3). Its only
// derived property is its archetype Fingerprint.
type EntityAssembler struct {
	comps []assembledComponent
}

// NewEntityAssembler returns an empty assembler.
func NewEntityAssembler() *EntityAssembler {
	return &EntityAssembler{}
}

// Insert adds or overwrites the component identified by id — an insert
// of an id already present in the assembler overwrites the old value
// (spec.md §7, last-write-wins).
func (a *EntityAssembler) Insert(id ComponentID, value any) {
	for i := range a.comps {
		if a.comps[i].id == id {
			a.comps[i].value = value
			return
		}
	}
	a.comps = append(a.comps, assembledComponent{id: id, value: value})
}

// Remove drops the component identified by id if present; removing an
// id that isn't present is a silent no-op (spec.md §7).
func (a *EntityAssembler) Remove(id ComponentID) {
	for i, c := range a.comps {
		if c.id == id {
			a.comps = append(a.comps[:i], a.comps[i+1:]...)
			return
		}
	}
}

// Len reports how many components are currently assembled.
func (a *EntityAssembler) Len() int { return len(a.comps) }

// IDs returns a sorted copy of the assembled component ids. Sorting
// only affects the return value; it is never used to compute the
// fingerprint, which is order-independent by construction.
func (a *EntityAssembler) IDs() []ComponentID {
	ids := make([]ComponentID, len(a.comps))
	for i, c := range a.comps {
		ids[i] = c.id
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Fingerprint computes the commutative hash of the assembled id set.
func (a *EntityAssembler) Fingerprint() Fingerprint {
	var fp Fingerprint
	for _, c := range a.comps {
		fp.Add(c.id)
	}
	return fp
}

func (a *EntityAssembler) valueFor(id ComponentID) (any, bool) {
	for _, c := range a.comps {
		if c.id == id {
			return c.value, true
		}
	}
	return nil, false
}

// InsertComponent is the typed convenience wrapper over Insert, used
// by Commands.Spawn builder callbacks.
func InsertComponent[T any](a *EntityAssembler, ct ComponentType[T], value T) {
	a.Insert(ct.ID(), value)
}

// EntityIndex is an entity's current location — not its identity.
// Stable only between flushes: any destroy or modify applied in the
// same flush may relocate entities via swap-erase, so an EntityIndex
// collected during one tick's iteration must not be retained past that
// tick's flush (spec.md §9, Open Question).
type EntityIndex struct {
	Table  int
	Column int
}
