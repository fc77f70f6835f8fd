package termfx

import (
	"sort"
	"time"

	"github.com/Iron-Ham/clap/internal/animation"
)

// Burst colors.
const (
	TriangleColor = "#D33600"
	CircleColor   = "#95A5A6"
)

// Engine builds clap timelines over *Element targets.
type Engine struct {
	clock   func() time.Time
	fps     int
	damping float64
	// buttonEase replaces the spring on the button scale when set.
	buttonEase Easing

	triangle, circle string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock timelines read on Replay.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithFPS sets the frame rate the spring curve is sampled at.
func WithFPS(fps int) Option {
	return func(e *Engine) {
		if fps > 0 {
			e.fps = fps
		}
	}
}

// WithBurstColors overrides the particle colors. Empty values keep the
// defaults.
func WithBurstColors(triangle, circle string) Option {
	return func(e *Engine) {
		if triangle != "" {
			e.triangle = triangle
		}
		if circle != "" {
			e.circle = circle
		}
	}
}

// WithButtonEasing sets the curve of the button scale tween. Nil keeps the
// spring.
func WithButtonEasing(ease Easing) Option {
	return func(e *Engine) { e.buttonEase = ease }
}

// NewEngine returns an Engine using the wall clock at 60 fps.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock:    time.Now,
		fps:      60,
		damping:  0.45,
		triangle: TriangleColor,
		circle:   CircleColor,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BuildTimeline implements animation.Engine. Targets that are not *Element
// are left out of the timeline.
func (e *Engine) BuildTimeline(targets animation.Targets, d time.Duration) animation.Timeline {
	return e.Build(targets, d)
}

// Build is BuildTimeline returning the concrete type.
func (e *Engine) Build(targets animation.Targets, d time.Duration) *Timeline {
	var tweens []tween
	var bursts []Burst

	if button, ok := targets.Button.(*Element); ok {
		ease := e.buttonEase
		if ease == nil {
			ease = SpringEasing(e.fps, d, e.damping)
		}
		tweens = append(tweens, tween{
			el: button, prop: PropScale, from: 1.3, to: 1,
			duration: d, ease: ease,
		})

		particleDelay := 30 * time.Millisecond
		bursts = append(bursts,
			Burst{
				Count: 5, Angle: 30, RadiusFrom: 50, RadiusTo: 95, SizeFrom: 6,
				Delay: particleDelay, Duration: d, Ease: Snap,
				Glyph: '▲', Color: e.triangle,
			},
			Burst{
				Count: 5, Angle: 25, RadiusFrom: 50, RadiusTo: 75, SizeFrom: 3,
				Delay: particleDelay, Duration: d, Ease: Snap,
				Glyph: '●', Color: e.circle,
			},
		)
	}

	if counter, ok := targets.Counter.(*Element); ok {
		rest := d + d/2
		tweens = append(tweens,
			tween{el: counter, prop: PropOpacity, from: 0, to: 1, duration: d, ease: Linear},
			tween{el: counter, prop: PropOffsetY, from: 0, to: -30, duration: d, ease: Linear},
			tween{el: counter, prop: PropOpacity, from: 1, to: 0, delay: rest, duration: d, ease: Linear},
			tween{el: counter, prop: PropOffsetY, from: -30, to: -80, delay: rest, duration: d, ease: Linear},
		)
	}

	if total, ok := targets.Total.(*Element); ok {
		delay := d + d/2
		tweens = append(tweens,
			tween{el: total, prop: PropOpacity, from: 0, to: 1, delay: delay, duration: d, ease: Linear},
			tween{el: total, prop: PropOffsetY, from: 0, to: -3, delay: delay, duration: d, ease: Linear},
		)
	}

	sort.SliceStable(tweens, func(i, j int) bool { return tweens[i].delay < tweens[j].delay })
	return newTimeline(e.clock, tweens, bursts)
}
