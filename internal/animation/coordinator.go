package animation

import (
	"time"

	"github.com/Iron-Ham/clap/internal/logging"
	"github.com/Iron-Ham/clap/internal/target"
)

// Coordinator owns one widget's Timeline. Not safe for concurrent use.
type Coordinator struct {
	engine   Engine
	duration time.Duration
	logger   *logging.Logger
	onBuild  func(Timeline)

	timeline Timeline
	built    bool
	seen     *target.Map
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l.WithComponent("animation")
		}
	}
}

// WithBuildHook registers fn to run right after the Timeline is built.
func WithBuildHook(fn func(Timeline)) CoordinatorOption {
	return func(c *Coordinator) {
		c.onBuild = fn
	}
}

// NewCoordinator returns a Coordinator that builds with engine. A
// non-positive duration falls back to DefaultDuration.
func NewCoordinator(engine Engine, duration time.Duration, opts ...CoordinatorOption) *Coordinator {
	if duration <= 0 {
		duration = DefaultDuration
	}
	c := &Coordinator{
		engine:   engine,
		duration: duration,
		logger:   logging.NopLogger(),
		timeline: Unbuilt(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Observe inspects the current target map and builds the Timeline the first
// time it is complete. It reports whether a build happened.
func (c *Coordinator) Observe(m *target.Map) bool {
	if c.built || m == c.seen {
		return false
	}
	c.seen = m

	targets, ok := TargetsFrom(m)
	if !ok {
		c.logger.Debug("targets incomplete", "missing", m.Missing())
		return false
	}
	if c.engine == nil {
		return false
	}

	tl := c.engine.BuildTimeline(targets, c.duration)
	if tl == nil {
		tl = Unbuilt()
	}

	// The engine starts the button above its resting scale; pin the resting
	// value so the first frame does not jump.
	if s, ok := targets.Button.(Scaler); ok {
		s.SetScale(1)
	}

	c.timeline = tl
	c.built = true
	c.logger.Info("timeline built", "duration_ms", c.duration.Milliseconds())
	if c.onBuild != nil {
		c.onBuild(tl)
	}
	return true
}

// Replay replays the Timeline and reports whether a built Timeline ran.
func (c *Coordinator) Replay() bool {
	c.timeline.Replay()
	if c.built {
		c.logger.Debug("timeline replayed")
	}
	return c.built
}

// Timeline returns the current Timeline, possibly the placeholder.
func (c *Coordinator) Timeline() Timeline {
	return c.timeline
}

// Built reports whether the Timeline has been built.
func (c *Coordinator) Built() bool {
	return c.built
}

// Duration returns the configured base duration.
func (c *Coordinator) Duration() time.Duration {
	return c.duration
}
