// Package animation defines the contract between the widget and an
// animation engine, and the Coordinator that owns a widget's Timeline.
//
// The engine is a black box: given the three target handles it builds a
// Timeline that can be replayed any number of times. The Coordinator builds
// that Timeline once, the first time every target role is present, and
// forwards replays to it. Until then it holds an unbuilt placeholder whose
// Replay does nothing.
package animation

import (
	"time"

	"github.com/Iron-Ham/clap/internal/target"
)

// DefaultDuration is the base duration of one clap animation.
const DefaultDuration = 300 * time.Millisecond

// Timeline is an engine-owned animation sequence.
type Timeline interface {
	Replay()
}

// Targets carries the handles a Timeline animates.
type Targets struct {
	Button  target.Handle
	Counter target.Handle
	Total   target.Handle
}

// TargetsFrom extracts Targets from a complete map.
func TargetsFrom(m *target.Map) (Targets, bool) {
	if !m.Complete() {
		return Targets{}, false
	}
	button, _ := m.Get(target.RoleButton)
	counter, _ := m.Get(target.RoleCounter)
	total, _ := m.Get(target.RoleTotal)
	return Targets{Button: button, Counter: counter, Total: total}, true
}

// Engine builds timelines.
type Engine interface {
	BuildTimeline(targets Targets, duration time.Duration) Timeline
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(targets Targets, duration time.Duration) Timeline

// BuildTimeline implements Engine.
func (f EngineFunc) BuildTimeline(targets Targets, duration time.Duration) Timeline {
	return f(targets, duration)
}

// Scaler is implemented by handles whose scale can be set directly.
type Scaler interface {
	SetScale(scale float64)
}

type unbuiltTimeline struct{}

func (unbuiltTimeline) Replay() {}

// Unbuilt returns the placeholder held before every target is present.
// It carries no state.
func Unbuilt() Timeline {
	return unbuiltTimeline{}
}

// IsUnbuilt reports whether tl is the placeholder.
func IsUnbuilt(tl Timeline) bool {
	_, ok := tl.(unbuiltTimeline)
	return ok
}
