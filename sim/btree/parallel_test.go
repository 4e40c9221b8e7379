package btree

import "testing"

func TestParallel_TicksAllChildrenEveryTick(t *testing.T) {
	// GIVEN a parallel over two long-running children
	a := running("A")
	b := running("B")
	par := NewParallel("par", SuccessOnOne, a, b)

	// WHEN ticked three times
	for i := 0; i < 3; i++ {
		if st := par.Tick(); st != Running {
			t.Fatalf("tick %d: got %v, want RUNNING", i+1, st)
		}
	}

	// THEN every child was ticked on every tick
	if a.ticks != 3 || b.ticks != 3 {
		t.Errorf("tick counts: A=%d B=%d, want 3 3", a.ticks, b.ticks)
	}
}

func TestParallel_SuccessOnOne_FirstChildSuccessEndsComposite(t *testing.T) {
	// GIVEN a child that runs forever beside one that succeeds on tick 3
	a := running("A")
	b := &scriptNode{name: "B", script: []Status{Running, Running, Success}}
	par := NewParallel("par", SuccessOnOne, a, b)

	// WHEN ticked four times
	statuses := make([]Status, 0, 4)
	for i := 0; i < 4; i++ {
		statuses = append(statuses, par.Tick())
	}

	// THEN the composite succeeds at tick 3 and A is never ticked afterward
	want := []Status{Running, Running, Success, Success}
	for i, st := range statuses {
		if st != want[i] {
			t.Errorf("tick %d: got %v, want %v", i+1, st, want[i])
		}
	}
	if a.ticks != 3 {
		t.Errorf("A ticked %d times, want 3 (none after the composite succeeded)", a.ticks)
	}
}

func TestParallel_SuccessOnOne_FailsOnlyWhenAllChildrenFail(t *testing.T) {
	// GIVEN one failing child and one still running
	a := &scriptNode{name: "A", script: []Status{Failure}}
	b := &scriptNode{name: "B", script: []Status{Running, Failure}}
	par := NewParallel("par", SuccessOnOne, a, b)

	// WHEN ticked while only A has failed
	st1 := par.Tick()
	// AND ticked again once B fails too
	st2 := par.Tick()

	// THEN the composite keeps running until every child has failed
	if st1 != Running {
		t.Errorf("tick 1: got %v, want RUNNING", st1)
	}
	if st2 != Failure {
		t.Errorf("tick 2: got %v, want FAILURE", st2)
	}
}

func TestParallel_SuccessOnAll_AnyFailureFailsComposite(t *testing.T) {
	// GIVEN a succeeding child beside a failing one
	a := success("A")
	b := &scriptNode{name: "B", script: []Status{Failure}}
	par := NewParallel("par", SuccessOnAll, a, b)

	if st := par.Tick(); st != Failure {
		t.Errorf("got %v, want FAILURE", st)
	}
}

func TestParallel_SuccessOnAll_WaitsForEveryChild(t *testing.T) {
	// GIVEN children succeeding on different ticks
	a := success("A")
	b := &scriptNode{name: "B", script: []Status{Running, Success}}
	par := NewParallel("par", SuccessOnAll, a, b)

	st1 := par.Tick()
	st2 := par.Tick()

	if st1 != Running {
		t.Errorf("tick 1: got %v, want RUNNING", st1)
	}
	if st2 != Success {
		t.Errorf("tick 2: got %v, want SUCCESS", st2)
	}
}

func TestParallel_TerminalStatusLatches(t *testing.T) {
	// GIVEN a composite that has already failed
	a := &scriptNode{name: "A", script: []Status{Failure}}
	b := &scriptNode{name: "B", script: []Status{Failure}}
	par := NewParallel("par", SuccessOnOne, a, b)
	if st := par.Tick(); st != Failure {
		t.Fatalf("setup: got %v, want FAILURE", st)
	}

	// WHEN ticked again
	st := par.Tick()

	// THEN no child is re-ticked
	if st != Failure {
		t.Errorf("got %v, want FAILURE", st)
	}
	if a.ticks != 1 || b.ticks != 1 {
		t.Errorf("tick counts after terminal: A=%d B=%d, want 1 1", a.ticks, b.ticks)
	}
}
