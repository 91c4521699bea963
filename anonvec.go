package mosaic

// Column is a type-erased, contiguous, append-only buffer of values of
// one component type (spec.md §4.1, AnonVec). The generic surface is
// confined to anonVec[T]; every table operates on Column so archetypes
// of arbitrary arity can share one implementation instead of a vtable
// of function pointers.
type Column interface {
	ID() ComponentID
	Len() int

	// PushAny appends v, which must hold the column's underlying T.
	PushAny(v any)

	// SwapDrop removes index i by swapping it with the last element
	// and truncating; the removed value's references are cleared so it
	// can be garbage collected (the Go equivalent of running T's
	// destructor).
	SwapDrop(i int)

	// SwapNoDrop performs the same swap-erase but does not zero the
	// vacated trailing slot. Tables use it for the source slot of an
	// entity whose values were copied out by CopyOut into a re-homed
	// entity during a modify.
	SwapNoDrop(i int)

	// CopyOut returns a detached copy of the value at i without
	// mutating the column.
	CopyOut(i int) any
}

type anonVec[T any] struct {
	id   ComponentID
	data []T
}

func newAnonVec[T any](id ComponentID) *anonVec[T] {
	return &anonVec[T]{id: id, data: make([]T, 0, Config.InitialColumnCapacity)}
}

func (c *anonVec[T]) ID() ComponentID { return c.id }
func (c *anonVec[T]) Len() int        { return len(c.data) }

func (c *anonVec[T]) Push(v T) {
	c.data = append(c.data, v)
}

func (c *anonVec[T]) PushAny(v any) {
	c.data = append(c.data, v.(T))
}

func (c *anonVec[T]) SwapDrop(i int) {
	last := len(c.data) - 1
	if i != last {
		c.data[i] = c.data[last]
	}
	var zero T
	c.data[last] = zero
	c.data = c.data[:last]
}

func (c *anonVec[T]) SwapNoDrop(i int) {
	last := len(c.data) - 1
	if i != last {
		c.data[i] = c.data[last]
	}
	c.data = c.data[:last]
}

func (c *anonVec[T]) CopyOut(i int) any {
	return c.data[i]
}

// At returns a stable pointer to the value at i, valid only until the
// next structural mutation of this column.
func (c *anonVec[T]) At(i int) *T {
	return &c.data[i]
}
