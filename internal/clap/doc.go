// Package clap implements the bounded clap counter: its state, the pure
// reducer over that state, the Machine that owns one widget's state and reset
// policy, and the props getters through which callers extend the widget's
// event handling.
//
// The reducer is a plain function of (State, Action) so callers can wrap it.
// RateLimit is one such wrapper:
//
//	limited := clap.RateLimit(clap.Reduce, func() bool { return pressed >= 8 })
//	m := clap.NewMachine(initial, clap.WithReducer(limited))
//
// Resets always restore the snapshot captured when the Machine was built, and
// each accepted reset bumps the Machine's ResetGeneration exactly once.
package clap
