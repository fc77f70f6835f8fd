package msg

import (
	"time"

	"github.com/Iron-Ham/clap/internal/target"
)

// TargetMountedMsg reports that a role-tagged sub-element has mounted and its
// visual handle is available.
type TargetMountedMsg struct {
	WidgetID string
	Role     target.Role
	Handle   target.Handle
}

// FrameMsg drives one animation frame. Seq identifies the frame loop that
// requested it; frames from a superseded loop are dropped.
type FrameMsg struct {
	WidgetID string
	Seq      uint64
	Time     time.Time
}

// UploadDueMsg is posted by the reset-upload timer when it fires.
type UploadDueMsg struct {
	WidgetID   string
	Generation uint64
}

// ErrMsg wraps an error to be displayed in the UI.
type ErrMsg struct {
	Err error
}
