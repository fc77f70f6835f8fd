package termfx

import (
	"math"
	"time"
)

type tween struct {
	el       *Element
	prop     Property
	from, to float64
	delay    time.Duration
	duration time.Duration
	ease     Easing
}

func (tw tween) end() time.Duration { return tw.delay + tw.duration }

func (tw tween) valueAt(elapsed time.Duration) (float64, bool) {
	if elapsed < tw.delay {
		return 0, false
	}
	p := 1.0
	if tw.duration > 0 {
		p = math.Min(1, float64(elapsed-tw.delay)/float64(tw.duration))
	}
	return tw.from + (tw.to-tw.from)*tw.ease(p), true
}

// Burst emits Count particles from the center of a parent element, spread
// evenly around the circle starting at Angle degrees (0 is up).
type Burst struct {
	Count      int
	Angle      float64
	RadiusFrom float64
	RadiusTo   float64
	SizeFrom   float64
	Delay      time.Duration
	Duration   time.Duration
	Ease       Easing
	Glyph      rune
	Color      string
}

func (b Burst) end() time.Duration { return b.Delay + b.Duration }

// Particle is one burst fragment relative to its parent's center.
type Particle struct {
	X, Y  float64
	Size  float64
	Glyph rune
	Color string
}

func (b Burst) particlesAt(elapsed time.Duration) []Particle {
	if b.Count <= 0 || elapsed < b.Delay || elapsed >= b.end() {
		return nil
	}
	p := 1.0
	if b.Duration > 0 {
		p = float64(elapsed-b.Delay) / float64(b.Duration)
	}
	e := b.Ease(p)
	radius := b.RadiusFrom + (b.RadiusTo-b.RadiusFrom)*e
	size := b.SizeFrom * (1 - e)

	out := make([]Particle, 0, b.Count)
	for i := range b.Count {
		deg := b.Angle + float64(i)*360/float64(b.Count)
		rad := deg * math.Pi / 180
		out = append(out, Particle{
			X:     radius * math.Sin(rad),
			Y:     -radius * math.Cos(rad),
			Size:  size,
			Glyph: b.Glyph,
			Color: b.Color,
		})
	}
	return out
}

// Timeline is a replayable set of tweens and bursts. It is driven by the
// host's frame loop and is not safe for concurrent use.
type Timeline struct {
	clock  func() time.Time
	tweens []tween
	bursts []Burst
	total  time.Duration

	start   time.Time
	elapsed time.Duration
	running bool
	replays int
}

func newTimeline(clock func() time.Time, tweens []tween, bursts []Burst) *Timeline {
	tl := &Timeline{clock: clock, tweens: tweens, bursts: bursts}
	for _, tw := range tweens {
		tl.total = max(tl.total, tw.end())
	}
	for _, b := range bursts {
		tl.total = max(tl.total, b.end())
	}
	return tl
}

// Replay rewinds to the first frame and starts playing. Replaying a running
// timeline restarts it.
func (tl *Timeline) Replay() {
	tl.start = tl.clock()
	tl.elapsed = 0
	tl.running = true
	tl.replays++
	tl.rewind()
}

// rewind puts every animated property at the start value of its earliest
// tween.
func (tl *Timeline) rewind() {
	type key struct {
		el   *Element
		prop Property
	}
	first := make(map[key]tween)
	for _, tw := range tl.tweens {
		k := key{tw.el, tw.prop}
		if cur, ok := first[k]; !ok || tw.delay < cur.delay {
			first[k] = tw
		}
	}
	for k, tw := range first {
		k.el.set(k.prop, tw.from)
	}
}

// Step advances the timeline to now and reports whether it is still running.
func (tl *Timeline) Step(now time.Time) bool {
	if !tl.running {
		return false
	}
	tl.elapsed = now.Sub(tl.start)
	if tl.elapsed >= tl.total {
		tl.elapsed = tl.total
		tl.running = false
	}
	// Tweens are stored in start order so a later segment wins once active.
	for _, tw := range tl.tweens {
		if v, ok := tw.valueAt(tl.elapsed); ok {
			tw.el.set(tw.prop, v)
		}
	}
	return tl.running
}

// Running reports whether the timeline is mid-play.
func (tl *Timeline) Running() bool { return tl.running }

// Replays returns how many times Replay has been called.
func (tl *Timeline) Replays() int { return tl.replays }

// Duration returns the time from the first frame to the last.
func (tl *Timeline) Duration() time.Duration { return tl.total }

// Elapsed returns the play position of the last Step.
func (tl *Timeline) Elapsed() time.Duration { return tl.elapsed }

// Particles returns the burst fragments visible at the current position.
func (tl *Timeline) Particles() []Particle {
	if !tl.running {
		return nil
	}
	var out []Particle
	for _, b := range tl.bursts {
		out = append(out, b.particlesAt(tl.elapsed)...)
	}
	return out
}
