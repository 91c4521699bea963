package mosaic

import "log"

// QueryID identifies one registered query (a distinct component-id
// list) inside the registry's cache.
type QueryID int

type queryCacheEntry struct {
	ids     []ComponentID
	tables  []int
	inCache map[int]bool
}

func newQueryCacheEntry(ids []ComponentID) *queryCacheEntry {
	return &queryCacheEntry{ids: ids, inCache: make(map[int]bool)}
}

func (q *queryCacheEntry) add(tableIdx int) {
	if q.inCache[tableIdx] {
		return
	}
	q.inCache[tableIdx] = true
	q.tables = append(q.tables, tableIdx)
}

// Registry is the archetype registry: the map from fingerprint to
// table index, the cross-table spawn staging area, and the per-query
// table-index cache (spec.md §4.3). It is the single structural
// synchronization point; every mutation it applies happens inside
// Flush, which the engine calls after each stage.
type Registry struct {
	tables        []*Table
	byFingerprint map[Fingerprint]int
	spawnStaging  map[Fingerprint][]*EntityAssembler
	migration     []*EntityAssembler
	queries       map[QueryID]*queryCacheEntry
	nextQueryID   QueryID
	firstTickDone bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byFingerprint: make(map[Fingerprint]int),
		spawnStaging:  make(map[Fingerprint][]*EntityAssembler),
		queries:       make(map[QueryID]*queryCacheEntry),
	}
}

// RegisterQuery inserts a cache entry seeded with every table that
// currently contains ids. Must be called before the first tick; calls
// made afterward are a programmer error (spec.md §4.3).
func (r *Registry) RegisterQuery(ids []ComponentID) QueryID {
	if r.firstTickDone {
		fatal(LateQueryRegistrationError{})
	}
	entry := newQueryCacheEntry(ids)
	for i, t := range r.tables {
		if t.Contains(ids) {
			entry.add(i)
		}
	}
	r.nextQueryID++
	id := r.nextQueryID
	r.queries[id] = entry
	return id
}

// QueryTables returns the cached, insertion-ordered table indices for
// a registered query.
func (r *Registry) QueryTables(id QueryID) []int {
	entry, ok := r.queries[id]
	if !ok {
		fatalf("mosaic: attempted to get tables for a query that does not exist")
	}
	return entry.tables
}

// Table returns the table at idx.
func (r *Registry) Table(idx int) *Table { return r.tables[idx] }

// lookupOrCreate resolves the table index for a fingerprint, creating
// a new table seeded by `first` if none exists yet, and updates every
// registered query whose ids are a subset of the new table's row set.
func (r *Registry) lookupOrCreate(fp Fingerprint, first *EntityAssembler) int {
	if idx, ok := r.byFingerprint[fp]; ok {
		return idx
	}
	t := newTable(first)
	if _, ok := r.byFingerprint[fp]; ok {
		// Flush is single-threaded, so nothing can populate fp between
		// the check above and here — this can only fire if a future
		// change parallelizes table creation per spec.md §9's open
		// question without serializing it, which is exactly the
		// programmer error spec.md §7 names (fourth fault class).
		fatal(ArchetypeCollisionError{Fingerprint: fp})
	}
	idx := len(r.tables)
	r.tables = append(r.tables, t)
	r.byFingerprint[fp] = idx

	rowSet := t.RowSet()
	for _, entry := range r.queries {
		if containsAll(rowSet, entry.ids) {
			entry.add(idx)
		}
	}
	if Config.Verbose {
		log.Printf("mosaic: created table %d for archetype %v", idx, rowSet)
	}
	return idx
}

func containsAll(haystack, needles []ComponentID) bool {
	set := make(map[ComponentID]bool, len(haystack))
	for _, id := range haystack {
		set[id] = true
	}
	for _, id := range needles {
		if !set[id] {
			return false
		}
	}
	return true
}

// Submit drains one per-system Queue into the registry: spawns go to
// an existing table when the fingerprint is known, otherwise into
// spawnStaging; destroys and modifies forward directly to their table
// (spec.md §4.3).
func (r *Registry) Submit(q *Queue) {
	for fp, entities := range q.spawn {
		if idx, ok := r.byFingerprint[fp]; ok {
			r.tables[idx].SpawnGroup(entities)
			continue
		}
		r.spawnStaging[fp] = append(r.spawnStaging[fp], entities...)
	}
	for tableIdx, entries := range q.destroy {
		r.tables[tableIdx].DestroyGroup(entries)
	}
	for idx, rec := range q.modify {
		r.tables[idx.Table].ModifyGroup(idx.Column, rec.insert, rec.remove)
	}
}

// Flush is the single structural synchronization point (spec.md
// §4.3). It runs, in order: drain spawn staging, process modifies,
// drain the migration buffer, process destroy/spawn queues.
func (r *Registry) Flush() {
	r.drainSpawnStaging()

	for _, t := range r.tables {
		if t.dirtyModify() {
			t.ProcessModify(&r.migration)
		}
	}

	r.drainMigrationBuffer()

	for _, t := range r.tables {
		if t.dirtyStructure() {
			t.ProcessQueues()
		}
	}

	r.firstTickDone = true
}

func (r *Registry) drainSpawnStaging() {
	for fp, entities := range r.spawnStaging {
		if len(entities) == 0 {
			continue
		}
		if idx, ok := r.byFingerprint[fp]; ok {
			r.tables[idx].SpawnGroup(entities)
		} else {
			first, rest := entities[0], entities[1:]
			idx := r.lookupOrCreate(fp, first)
			if len(rest) > 0 {
				r.tables[idx].SpawnGroup(rest)
			}
		}
		delete(r.spawnStaging, fp)
	}
}

func (r *Registry) drainMigrationBuffer() {
	migrated := r.migration
	r.migration = nil
	migratedCount := len(migrated)
	for _, entity := range migrated {
		fp := entity.Fingerprint()
		if idx, ok := r.byFingerprint[fp]; ok {
			r.tables[idx].Spawn(entity)
		} else {
			r.lookupOrCreate(fp, entity)
		}
	}
	if Config.Verbose && migratedCount > 0 {
		log.Printf("mosaic: migrated %d entities", migratedCount)
	}
}
