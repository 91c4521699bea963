package mosaic

import "testing"

func TestCommandsDoneIsNoOpWhenEmpty(t *testing.T) {
	reg := NewRegistry()
	cmd := newCommands(reg)
	// Done with an empty queue must not touch the registry at all; if it
	// did, Flush would have nothing to disprove, so this just documents
	// the guard in Queue.empty / Commands.Done exists and doesn't panic.
	cmd.Done()
	reg.Flush()
}

func TestCommandsDestroyThenSpawnInSameFlush(t *testing.T) {
	position := ComponentOf[testPosition]()
	reg := NewRegistry()

	seedCmd := newCommands(reg)
	seedCmd.Spawn(func(a *EntityAssembler) { InsertComponent(a, position, testPosition{X: 1}) })
	seedCmd.Done()
	reg.Flush()

	qid := reg.RegisterQuery([]ComponentID{position.ID()})
	tables := reg.QueryTables(qid)
	idx := EntityIndex{Table: tables[0], Column: 0}

	cmd := newCommands(reg)
	cmd.Destroy(idx)
	cmd.Spawn(func(a *EntityAssembler) { InsertComponent(a, position, testPosition{X: 2}) })
	cmd.Done()
	reg.Flush()

	tbl := reg.Table(tables[0])
	if tbl.Len() != 1 {
		t.Fatalf("table has %d entities, want 1 (one destroyed, one spawned)", tbl.Len())
	}
	if tbl.Column(position.ID()).CopyOut(0).(testPosition).X != 2 {
		t.Errorf("surviving entity should be the newly spawned one with X=2")
	}
}

func TestCommandsInsertAndRemoveCollapseIntoOneModify(t *testing.T) {
	position := ComponentOf[testPosition]()
	velocity := ComponentOf[testVelocity]()
	reg := NewRegistry()

	seedCmd := newCommands(reg)
	seedCmd.Spawn(func(a *EntityAssembler) {
		InsertComponent(a, position, testPosition{})
		InsertComponent(a, velocity, testVelocity{})
	})
	seedCmd.Done()
	reg.Flush()

	withPosOnly := reg.RegisterQuery([]ComponentID{position.ID()})
	tables := reg.QueryTables(withPosOnly)
	idx := EntityIndex{Table: tables[0], Column: 0}

	cmd := newCommands(reg)
	Insert(cmd, idx, position, testPosition{X: 5})
	Remove(cmd, idx, velocity)
	cmd.Done()
	reg.Flush()

	if reg.Table(tables[0]).Len() != 0 {
		t.Errorf("original position+velocity table should be empty after the entity migrated away")
	}

	total := 0
	for _, i := range reg.QueryTables(withPosOnly) {
		total += reg.Table(i).Len()
	}
	if total != 1 {
		t.Errorf("withPosOnly query sees %d total entities across its tables, want 1", total)
	}
}
