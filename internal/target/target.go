// Package target collects the opaque visual handles a widget's sub-elements
// expose once they are mounted.
//
// A Map is immutable. Registry swaps its Map for a new one only when a role
// is filled for the first time, so observers can detect change with a
// pointer comparison.
package target

import (
	"github.com/Iron-Ham/clap/internal/errors"
)

// Role names a slot a visual element fills.
type Role string

const (
	RoleButton  Role = "button"
	RoleCounter Role = "counter"
	RoleTotal   Role = "total"
)

// Roles lists every role in render order.
func Roles() []Role {
	return []Role{RoleButton, RoleCounter, RoleTotal}
}

// Valid reports whether r is one of the fixed roles.
func (r Role) Valid() bool {
	switch r {
	case RoleButton, RoleCounter, RoleTotal:
		return true
	}
	return false
}

// Handle is an opaque visual target. The registry never inspects it.
type Handle any

// Map is an append-only role to handle mapping.
type Map struct {
	handles map[Role]Handle
}

// emptyMap is shared by every new Registry; it is never written to.
var emptyMap = &Map{handles: map[Role]Handle{}}

// Get returns the handle for role.
func (m *Map) Get(role Role) (Handle, bool) {
	if m == nil {
		return nil, false
	}
	h, ok := m.handles[role]
	return h, ok
}

// Len returns how many roles are filled.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.handles)
}

// Complete reports whether every role has a handle.
func (m *Map) Complete() bool {
	for _, r := range Roles() {
		if _, ok := m.Get(r); !ok {
			return false
		}
	}
	return true
}

// Missing lists the roles that still lack a handle.
func (m *Map) Missing() []Role {
	var missing []Role
	for _, r := range Roles() {
		if _, ok := m.Get(r); !ok {
			missing = append(missing, r)
		}
	}
	return missing
}

// With returns m extended with role. It returns m itself when role is
// already filled, so a role keeps its first handle.
func (m *Map) With(role Role, h Handle) *Map {
	if _, ok := m.Get(role); ok {
		return m
	}
	next := make(map[Role]Handle, m.Len()+1)
	if m != nil {
		for r, existing := range m.handles {
			next[r] = existing
		}
	}
	next[role] = h
	return &Map{handles: next}
}

// Registry accumulates handles for one widget instance.
type Registry struct {
	current *Map
}

// NewRegistry returns a Registry with no roles filled.
func NewRegistry() *Registry {
	return &Registry{current: emptyMap}
}

// Map returns the current snapshot.
func (r *Registry) Map() *Map {
	return r.current
}

// Register records h under role and reports whether the map changed.
// Registering an already filled role is a no-op.
func (r *Registry) Register(role Role, h Handle) (bool, error) {
	if !role.Valid() {
		return false, errors.NewTargetError("register target", errors.ErrUnknownRole).
			WithRole(string(role))
	}
	if h == nil {
		return false, errors.NewTargetError("register target", errors.ErrNilHandle).
			WithRole(string(role))
	}

	next := r.current.With(role, h)
	if next == r.current {
		return false, nil
	}
	r.current = next
	return true, nil
}
