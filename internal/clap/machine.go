package clap

// Machine owns one widget's counter state. It is not safe for concurrent
// use; the hosting event loop serializes every call.
type Machine struct {
	reducer Reducer
	state   State
	initial State

	// observed is the count seen by the previous reset check.
	observed   int
	generation uint64
}

// Option configures a Machine.
type Option func(*Machine)

// WithReducer substitutes the reducer. A nil reducer keeps Reduce.
func WithReducer(r Reducer) Option {
	return func(m *Machine) {
		if r != nil {
			m.reducer = r
		}
	}
}

// NewMachine builds a Machine whose reset snapshot is initial.
func NewMachine(initial State, opts ...Option) *Machine {
	m := &Machine{
		reducer:  Reduce,
		state:    initial,
		initial:  initial,
		observed: initial.Count,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Initial returns the snapshot restored by Reset.
func (m *Machine) Initial() State {
	return m.initial
}

// ResetGeneration counts accepted resets.
func (m *Machine) ResetGeneration() uint64 {
	return m.generation
}

// Dispatch runs action through the reducer and reports whether the state
// changed.
func (m *Machine) Dispatch(action Action) bool {
	next := m.reducer(m.state, action)
	changed := next != m.state
	m.state = next
	return changed
}

// Clap dispatches a clap action.
func (m *Machine) Clap() bool {
	return m.Dispatch(ClapAction())
}

// Reset restores the initial snapshot when the count moved since the
// previous check, bumping ResetGeneration. Only Count is compared.
func (m *Machine) Reset() bool {
	if m.state.Count == m.observed {
		return false
	}
	m.Dispatch(ResetAction(m.initial))
	m.generation++
	m.observed = m.state.Count
	return true
}
