// Package msg defines the message types used by the widget's Bubbletea event
// loop.
//
// Every message is tagged with the widget ID it belongs to so several widgets
// can share one program. Each message handled by a widget's Update is one
// render pass: the message is applied, then the widget commits its layout
// and effects.
//
// Message types are exported so they can be produced by the App runner, the
// headless simulator and tests alike.
package msg
