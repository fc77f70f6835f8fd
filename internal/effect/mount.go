package effect

// Func is an effect body. The returned cleanup, if non-nil, runs before the
// next execution and on Teardown.
type Func func() (cleanup func())

// AfterMount is an effect that skips its mount-time run.
//
// The first Run only records deps. Each later Run whose deps differ from the
// previous call executes the effect. Not safe for concurrent use.
type AfterMount[D comparable] struct {
	fn      Func
	mounted bool
	deps    D
	cleanup func()
}

// NewAfterMount returns an AfterMount around fn.
func NewAfterMount[D comparable](fn Func) *AfterMount[D] {
	return &AfterMount[D]{fn: fn}
}

// Run observes deps and reports whether the effect executed.
func (e *AfterMount[D]) Run(deps D) bool {
	if !e.mounted {
		e.mounted = true
		e.deps = deps
		return false
	}
	if deps == e.deps {
		return false
	}
	e.deps = deps
	e.runCleanup()
	if e.fn != nil {
		e.cleanup = e.fn()
	}
	return true
}

// Mounted reports whether Run has been called at least once.
func (e *AfterMount[D]) Mounted() bool {
	return e.mounted
}

// Teardown runs the pending cleanup, if any.
func (e *AfterMount[D]) Teardown() {
	e.runCleanup()
}

func (e *AfterMount[D]) runCleanup() {
	if e.cleanup != nil {
		c := e.cleanup
		e.cleanup = nil
		c()
	}
}
