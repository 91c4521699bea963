package mosaic

import (
	"sort"
	"sync"

	"github.com/TheBitDrifter/mask"
)

const (
	dirtyStructureBit uint32 = 0
	dirtyModifyBit    uint32 = 1
)

// destroyKind distinguishes a destroy that must run the component's
// cleanup from one whose value has already been moved elsewhere by a
// modify (spec.md §4.1, swap_drop vs swap_nodrop).
type destroyKind int

const (
	destroyDrop destroyKind = iota
	destroyNoDrop
)

type destroyEntry struct {
	col  int
	kind destroyKind
}

type modifyRecord struct {
	insert []assembledComponent
	remove []ComponentID
}

// tableQueue holds one table's deferred mutations between flushes
// (spec.md §3, Command buffer). It is guarded by Table.mu.
type tableQueue struct {
	spawns      []*EntityAssembler
	destroys    []destroyEntry
	modifyOrder []int
	modify      map[int]*modifyRecord
}

func newTableQueue() tableQueue {
	return tableQueue{modify: make(map[int]*modifyRecord)}
}

// Table stores every entity of one archetype: one Column per component
// type, plus the deferred queues that accumulate structural changes
// between flushes (spec.md §3/§4.2).
type Table struct {
	mu          sync.Mutex
	rows        map[ComponentID]Column
	rowIDs      []ComponentID
	numEntities int
	dirty       mask.Mask
	queue       tableQueue
}

// newTable creates a table whose row set is exactly the seed's
// component ids, placing the seed at column 0.
func newTable(seed *EntityAssembler) *Table {
	ids := seed.IDs()
	t := &Table{
		rows:   make(map[ComponentID]Column, len(ids)),
		rowIDs: ids,
	}
	for _, id := range ids {
		v, _ := seed.valueFor(id)
		col := components.newColumn(id)
		col.PushAny(v)
		t.rows[id] = col
	}
	t.numEntities = 1
	t.queue = newTableQueue()
	return t
}

// Contains reports whether this table's row set is a superset of ids.
func (t *Table) Contains(ids []ComponentID) bool {
	for _, id := range ids {
		if _, ok := t.rows[id]; !ok {
			return false
		}
	}
	return true
}

// RowSet returns the table's component-id set, sorted.
func (t *Table) RowSet() []ComponentID {
	out := make([]ComponentID, len(t.rowIDs))
	copy(out, t.rowIDs)
	return out
}

// Len returns the number of entities currently stored.
func (t *Table) Len() int { return t.numEntities }

// Column returns the column for id, panicking (a scheduler bug, per
// spec.md §7) if this archetype does not carry that component.
func (t *Table) Column(id ComponentID) Column {
	col, ok := t.rows[id]
	if !ok {
		fatal(ComponentMissingError{ComponentID: id})
	}
	return col
}

func (t *Table) dirtyStructure() bool { return t.dirty.ContainsAll(structureMask) }
func (t *Table) dirtyModify() bool    { return t.dirty.ContainsAll(modifyMask) }

var (
	structureMask = func() mask.Mask { var m mask.Mask; m.Mark(dirtyStructureBit); return m }()
	modifyMask    = func() mask.Mask { var m mask.Mask; m.Mark(dirtyModifyBit); return m }()
)

// Spawn enqueues a single entity for this table.
func (t *Table) Spawn(e *EntityAssembler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queue.spawns = append(t.queue.spawns, e)
	t.dirty.Mark(dirtyStructureBit)
}

// SpawnGroup enqueues a batch of entities destined for this table.
func (t *Table) SpawnGroup(entities []*EntityAssembler) {
	if len(entities) == 0 {
		fatal(EmptySpawnGroupError{})
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queue.spawns = append(t.queue.spawns, entities...)
	t.dirty.Mark(dirtyStructureBit)
}

// DestroyGroup enqueues destroys for the given columns.
func (t *Table) DestroyGroup(entries []destroyEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queue.destroys = append(t.queue.destroys, entries...)
	t.dirty.Mark(dirtyStructureBit)
}

// ModifyGroup enqueues an insert/remove set for the entity at col.
// Multiple calls for the same column in one flush collapse into one
// record (spec.md §4.4).
func (t *Table) ModifyGroup(col int, insert []assembledComponent, remove []ComponentID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.queue.modify[col]
	if !ok {
		rec = &modifyRecord{}
		t.queue.modify[col] = rec
		t.queue.modifyOrder = append(t.queue.modifyOrder, col)
	}
	rec.insert = append(rec.insert, insert...)
	rec.remove = append(rec.remove, remove...)
	t.dirty.Mark(dirtyModifyBit)
}

// entityAt materializes the entity currently stored at column col by
// copying every column's value out.
func (t *Table) entityAt(col int) *EntityAssembler {
	a := NewEntityAssembler()
	for _, id := range t.rowIDs {
		a.Insert(id, t.rows[id].CopyOut(col))
	}
	return a
}

// ProcessModify extracts every queued modify whose column is not also
// destroyed in this flush, applies its remove list then its insert
// list, appends a NoDrop destroy for the vacated slot, and appends the
// rehashed entity to out (spec.md §4.2, ordering rule). Entities that
// were also destroyed this flush are dropped — destroy wins over
// modify (spec.md §7). Queuing that NoDrop destroy marks
// dirtyStructureBit so the same flush's ProcessQueues pass drains it —
// a modify with no accompanying spawn/destroy would otherwise leave the
// vacated slot queued but never applied, since ProcessQueues only runs
// for tables with dirtyStructure set (spec.md §4.3, Invariant A2).
func (t *Table) ProcessModify(out *[]*EntityAssembler) {
	t.mu.Lock()
	defer t.mu.Unlock()

	destroyedCols := make(map[int]bool, len(t.queue.destroys))
	for _, d := range t.queue.destroys {
		destroyedCols[d.col] = true
	}

	for _, col := range t.queue.modifyOrder {
		rec := t.queue.modify[col]
		if destroyedCols[col] {
			continue
		}

		entity := t.entityAt(col)
		for _, id := range rec.remove {
			entity.Remove(id)
		}
		for _, c := range rec.insert {
			entity.Insert(c.id, c.value)
		}

		t.queue.destroys = append(t.queue.destroys, destroyEntry{col: col, kind: destroyNoDrop})
		t.dirty.Mark(dirtyStructureBit)
		*out = append(*out, entity)
	}

	t.queue.modify = make(map[int]*modifyRecord)
	t.queue.modifyOrder = nil
	t.dirty.Unmark(dirtyModifyBit)
}

// ProcessQueues applies queued spawns then destroys. Destroys are
// deduplicated (spec.md §7, destroy idempotence) and applied in
// descending column order so a swap-erase at a later column cannot
// invalidate an earlier pending index (spec.md §4.2).
func (t *Table) ProcessQueues() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range t.queue.spawns {
		for _, id := range t.rowIDs {
			v, ok := e.valueFor(id)
			if !ok {
				fatal(ComponentMissingError{ComponentID: id})
			}
			t.rows[id].PushAny(v)
		}
		t.numEntities++
	}
	t.queue.spawns = nil

	destroys := dedupeDestroys(t.queue.destroys)
	sort.Slice(destroys, func(i, j int) bool { return destroys[i].col > destroys[j].col })

	for _, d := range destroys {
		for _, id := range t.rowIDs {
			col := t.rows[id]
			switch d.kind {
			case destroyDrop:
				col.SwapDrop(d.col)
			case destroyNoDrop:
				col.SwapNoDrop(d.col)
			}
		}
		t.numEntities--
	}
	t.queue.destroys = nil

	t.dirty.Unmark(dirtyStructureBit)
}

// dedupeDestroys collapses repeated destroys of the same column into
// one, keeping Drop over NoDrop if both were queued for the same
// column (a drop must still run once; a redundant no-drop adds
// nothing once the drop already accounts for that slot).
func dedupeDestroys(entries []destroyEntry) []destroyEntry {
	seen := make(map[int]destroyKind, len(entries))
	for _, e := range entries {
		if existing, ok := seen[e.col]; !ok || (existing == destroyNoDrop && e.kind == destroyDrop) {
			seen[e.col] = e.kind
		}
	}
	out := make([]destroyEntry, 0, len(seen))
	for col, kind := range seen {
		out = append(out, destroyEntry{col: col, kind: kind})
	}
	return out
}
