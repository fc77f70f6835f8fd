// Package msg provides command factory functions that create tea.Cmd values.
//
// These functions are pure factories that create commands returning message
// types defined in this package.

package msg

import (
	"time"

	"github.com/Iron-Ham/clap/internal/target"
	tea "github.com/charmbracelet/bubbletea"
)

// Ticker schedules fn after d. tea.Tick satisfies it; the headless simulator
// substitutes a virtual clock.
type Ticker func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// DefaultTicker is tea.Tick.
var DefaultTicker Ticker = tea.Tick

// MountTarget returns a command that reports handle as mounted under role.
func MountTarget(widgetID string, role target.Role, handle target.Handle) tea.Cmd {
	return func() tea.Msg {
		return TargetMountedMsg{WidgetID: widgetID, Role: role, Handle: handle}
	}
}

// Frame returns a command that delivers a FrameMsg for loop seq after
// interval. A nil ticker uses DefaultTicker.
func Frame(ticker Ticker, interval time.Duration, widgetID string, seq uint64) tea.Cmd {
	if ticker == nil {
		ticker = DefaultTicker
	}
	return ticker(interval, func(t time.Time) tea.Msg {
		return FrameMsg{WidgetID: widgetID, Seq: seq, Time: t}
	})
}

// Err returns a command that reports err.
func Err(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrMsg{Err: err}
	}
}
