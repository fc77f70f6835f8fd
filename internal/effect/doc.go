// Package effect provides the scheduling primitives the widget's commit
// phase is built from.
//
// AfterMount runs an effect whenever its dependency value changes, except
// for the first observation. Scheduler abstracts delayed callbacks so
// pending work can be cancelled for real, and so tests and the headless
// simulator can drive time by hand.
package effect
