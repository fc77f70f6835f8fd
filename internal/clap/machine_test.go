package clap

import "testing"

func TestMachine_ResetAfterClaps(t *testing.T) {
	initial := State{Count: 0, CountTotal: 56, IsClicked: false}
	m := NewMachine(initial)

	for i := 0; i < 3; i++ {
		if !m.Clap() {
			t.Fatalf("clap %d should change state", i)
		}
	}
	if got := m.State(); got != (State{Count: 3, CountTotal: 59, IsClicked: true}) {
		t.Fatalf("State() = %+v, want count=3 total=59 clicked", got)
	}

	if !m.Reset() {
		t.Fatal("Reset() after claps should be accepted")
	}
	if m.State() != initial {
		t.Errorf("State() after reset = %+v, want %+v", m.State(), initial)
	}
	if m.ResetGeneration() != 1 {
		t.Errorf("ResetGeneration() = %d, want 1", m.ResetGeneration())
	}
}

func TestMachine_ResetWithoutChangeIsSkipped(t *testing.T) {
	m := NewMachine(DefaultInitialState)

	if m.Reset() {
		t.Error("Reset() on a fresh machine should be skipped")
	}
	if m.ResetGeneration() != 0 {
		t.Errorf("ResetGeneration() = %d, want 0", m.ResetGeneration())
	}
}

func TestMachine_DoubleResetBumpsOnce(t *testing.T) {
	m := NewMachine(DefaultInitialState)
	m.Clap()

	first := m.Reset()
	second := m.Reset()

	if !first || second {
		t.Errorf("Reset() results = %v, %v; want true, false", first, second)
	}
	if m.ResetGeneration() != 1 {
		t.Errorf("ResetGeneration() = %d, want 1", m.ResetGeneration())
	}

	m.Clap()
	if !m.Reset() {
		t.Error("Reset() after a new clap should be accepted again")
	}
	if m.ResetGeneration() != 2 {
		t.Errorf("ResetGeneration() = %d, want 2", m.ResetGeneration())
	}
}

func TestMachine_ResetComparesCountOnly(t *testing.T) {
	// Count starts at the cap, so claps only flip IsClicked.
	initial := State{Count: MaxUserClap, CountTotal: 80}
	m := NewMachine(initial)
	m.Clap()

	if !m.State().IsClicked {
		t.Fatal("clap at cap should still mark clicked")
	}
	if m.Reset() {
		t.Error("Reset() should be skipped while count is unchanged")
	}
	if m.State() == initial {
		t.Error("state should keep IsClicked because the reset was skipped")
	}
}

func TestMachine_WithReducer(t *testing.T) {
	calls := 0
	custom := func(s State, a Action) State {
		calls++
		return Reduce(s, a)
	}
	m := NewMachine(DefaultInitialState, WithReducer(custom), WithReducer(nil))

	m.Clap()
	if calls != 1 {
		t.Errorf("custom reducer calls = %d, want 1", calls)
	}
}

func TestMachine_DispatchReportsChange(t *testing.T) {
	m := NewMachine(State{Count: MaxUserClap, CountTotal: 1, IsClicked: true})

	if m.Clap() {
		t.Error("clap at cap with IsClicked set should not report a change")
	}
	if m.Dispatch(Action{Type: "UNKNOWN"}) {
		t.Error("unknown action should not report a change")
	}
}
