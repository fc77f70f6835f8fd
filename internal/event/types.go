package event

import (
	"time"

	"github.com/Iron-Ham/clap/internal/clap"
	"github.com/Iron-Ham/clap/internal/target"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a "category.action" identifier.
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event types published by the widget.
const (
	TypeClapAccepted     = "clap.accepted"
	TypeClapRejected     = "clap.rejected"
	TypeResetApplied     = "reset.applied"
	TypeTargetMounted    = "target.mounted"
	TypeTimelineBuilt    = "timeline.built"
	TypeTimelineReplayed = "timeline.replayed"
	TypeUploadStarted    = "upload.started"
	TypeUploadCompleted  = "upload.completed"
)

// baseEvent provides common fields for all events.
type baseEvent struct {
	eventType string
	timestamp time.Time
	widgetID  string
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// WidgetID identifies the widget instance that published the event.
func (e baseEvent) WidgetID() string { return e.widgetID }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

func newWidgetEvent(eventType, widgetID string) baseEvent {
	b := newBaseEvent(eventType)
	b.widgetID = widgetID
	return b
}

// -----------------------------------------------------------------------------
// Clap Events
// -----------------------------------------------------------------------------

// ClapAcceptedEvent is emitted when a press changed the widget state.
type ClapAcceptedEvent struct {
	baseEvent
	State clap.State // State after the clap
}

// NewClapAcceptedEvent creates a ClapAcceptedEvent.
func NewClapAcceptedEvent(widgetID string, state clap.State) ClapAcceptedEvent {
	return ClapAcceptedEvent{
		baseEvent: newWidgetEvent(TypeClapAccepted, widgetID),
		State:     state,
	}
}

// ClapRejectedEvent is emitted when a press left the state untouched,
// either at the cap or because the rate limit was exceeded.
type ClapRejectedEvent struct {
	baseEvent
	State  clap.State
	Reason string // "cap" or "rate_limit"
}

// Rejection reasons.
const (
	RejectedAtCap     = "cap"
	RejectedRateLimit = "rate_limit"
)

// NewClapRejectedEvent creates a ClapRejectedEvent.
func NewClapRejectedEvent(widgetID string, state clap.State, reason string) ClapRejectedEvent {
	return ClapRejectedEvent{
		baseEvent: newWidgetEvent(TypeClapRejected, widgetID),
		State:     state,
		Reason:    reason,
	}
}

// ResetAppliedEvent is emitted when a reset replaced the state.
type ResetAppliedEvent struct {
	baseEvent
	Generation uint64
	State      clap.State // State after the reset
}

// NewResetAppliedEvent creates a ResetAppliedEvent.
func NewResetAppliedEvent(widgetID string, generation uint64, state clap.State) ResetAppliedEvent {
	return ResetAppliedEvent{
		baseEvent:  newWidgetEvent(TypeResetApplied, widgetID),
		Generation: generation,
		State:      state,
	}
}

// -----------------------------------------------------------------------------
// Target and Timeline Events
// -----------------------------------------------------------------------------

// TargetMountedEvent is emitted when a role is filled for the first time.
type TargetMountedEvent struct {
	baseEvent
	Role target.Role
}

// NewTargetMountedEvent creates a TargetMountedEvent.
func NewTargetMountedEvent(widgetID string, role target.Role) TargetMountedEvent {
	return TargetMountedEvent{
		baseEvent: newWidgetEvent(TypeTargetMounted, widgetID),
		Role:      role,
	}
}

// TimelineBuiltEvent is emitted once per widget when its animation is built.
type TimelineBuiltEvent struct {
	baseEvent
	Duration time.Duration
}

// NewTimelineBuiltEvent creates a TimelineBuiltEvent.
func NewTimelineBuiltEvent(widgetID string, duration time.Duration) TimelineBuiltEvent {
	return TimelineBuiltEvent{
		baseEvent: newWidgetEvent(TypeTimelineBuilt, widgetID),
		Duration:  duration,
	}
}

// TimelineReplayedEvent is emitted every time the animation is replayed.
type TimelineReplayedEvent struct {
	baseEvent
	Count int // Count that triggered the replay
}

// NewTimelineReplayedEvent creates a TimelineReplayedEvent.
func NewTimelineReplayedEvent(widgetID string, count int) TimelineReplayedEvent {
	return TimelineReplayedEvent{
		baseEvent: newWidgetEvent(TypeTimelineReplayed, widgetID),
		Count:     count,
	}
}

// -----------------------------------------------------------------------------
// Upload Events
// -----------------------------------------------------------------------------

// UploadStartedEvent is emitted when a reset schedules its upload.
type UploadStartedEvent struct {
	baseEvent
	Generation uint64
	Delay      time.Duration
}

// NewUploadStartedEvent creates an UploadStartedEvent.
func NewUploadStartedEvent(widgetID string, generation uint64, delay time.Duration) UploadStartedEvent {
	return UploadStartedEvent{
		baseEvent:  newWidgetEvent(TypeUploadStarted, widgetID),
		Generation: generation,
		Delay:      delay,
	}
}

// UploadCompletedEvent is emitted when the upload delay elapses and the
// state has been handed to the reset sink.
type UploadCompletedEvent struct {
	baseEvent
	Generation uint64
	State      clap.State
}

// NewUploadCompletedEvent creates an UploadCompletedEvent.
func NewUploadCompletedEvent(widgetID string, generation uint64, state clap.State) UploadCompletedEvent {
	return UploadCompletedEvent{
		baseEvent:  newWidgetEvent(TypeUploadCompleted, widgetID),
		Generation: generation,
		State:      state,
	}
}
