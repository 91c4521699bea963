package mosaic

// AccessorKind enumerates what a system parameter statically declares
// about its access to a component or resource (spec.md §4.5).
type AccessorKind int

const (
	AccessNone AccessorKind = iota
	AccessRef
	AccessMut
	AccessRes
	AccessResMut
)

// Accessor is one static declaration of what a system reads or
// writes. The scheduler's conflict relation is defined entirely over
// Accessor pairs.
type Accessor struct {
	Kind AccessorKind
	ID   uint64
}

// AccessorNone is the accessor for a parameter with no statically
// knowable access (Commands).
func AccessorNone() Accessor { return Accessor{Kind: AccessNone} }

// AccessorRef declares a read of the given component.
func AccessorRef(id ComponentID) Accessor { return Accessor{Kind: AccessRef, ID: uint64(id)} }

// AccessorMut declares a write of the given component.
func AccessorMut(id ComponentID) Accessor { return Accessor{Kind: AccessMut, ID: uint64(id)} }

// AccessorResRead declares a read of the given resource.
func AccessorResRead(id ResourceID) Accessor { return Accessor{Kind: AccessRes, ID: uint64(id)} }

// AccessorResWrite declares a write of the given resource.
func AccessorResWrite(id ResourceID) Accessor { return Accessor{Kind: AccessResMut, ID: uint64(id)} }

// conflicts implements the symmetric conflict relation from spec.md
// §4.5: Ref⊥Mut, Mut⊥Mut, Mut⊥Ref on the same id (and the same triple
// for Res/ResMut); None never conflicts with anything.
func (a Accessor) conflicts(b Accessor) bool {
	if a.Kind == AccessNone || b.Kind == AccessNone {
		return false
	}
	if a.ID != b.ID {
		return false
	}
	switch a.Kind {
	case AccessRef:
		return b.Kind == AccessMut
	case AccessMut:
		return b.Kind == AccessMut || b.Kind == AccessRef
	case AccessRes:
		return b.Kind == AccessResMut
	case AccessResMut:
		return b.Kind == AccessResMut || b.Kind == AccessRes
	}
	return false
}

// accessorsConflict reports whether any pair across the two accessor
// lists conflicts — two systems conflict if any pair of their
// declared accessors conflicts.
func accessorsConflict(a, b []Accessor) bool {
	for _, x := range a {
		for _, y := range b {
			if x.conflicts(y) {
				return true
			}
		}
	}
	return false
}
