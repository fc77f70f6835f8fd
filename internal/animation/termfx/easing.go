package termfx

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing on [0, 1]; progress outside is clamped.
func Linear(t float64) float64 { return math.Max(0, math.Min(1, t)) }

// CubicBezier returns the CSS-style cubic-bezier easing with control points
// (x1, y1) and (x2, y2).
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	bez := func(a, b, s float64) float64 {
		// Endpoints fixed at 0 and 1.
		return 3*a*s*(1-s)*(1-s) + 3*b*s*s*(1-s) + s*s*s
	}
	dbez := func(a, b, s float64) float64 {
		return 3*a*(1-s)*(1-s) + 6*(b-a)*s*(1-s) + 3*(1-b)*s*s
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		s := t
		for range 8 {
			d := dbez(x1, x2, s)
			if math.Abs(d) < 1e-6 {
				break
			}
			next := s - (bez(x1, x2, s)-t)/d
			if next < 0 || next > 1 {
				break
			}
			s = next
		}

		// Newton may stall on flat segments; finish with bisection.
		if math.Abs(bez(x1, x2, s)-t) > 1e-5 {
			lo, hi := 0.0, 1.0
			for range 40 {
				s = (lo + hi) / 2
				if bez(x1, x2, s) < t {
					lo = s
				} else {
					hi = s
				}
			}
		}
		return bez(y1, y2, s)
	}
}

// EaseOut matches the CSS ease-out curve.
var EaseOut = CubicBezier(0, 0, 0.58, 1)

// Snap is the fast-out curve used by particle bursts.
var Snap = CubicBezier(0.1, 1, 0.3, 1)

// Easing names accepted by Named.
const (
	EasingSpring  = "spring"
	EasingEaseOut = "ease_out"
	EasingLinear  = "linear"
)

// EasingNames lists the names Named understands.
func EasingNames() []string {
	return []string{EasingSpring, EasingEaseOut, EasingLinear}
}

// Named returns the easing called name. The spring has no fixed curve, it
// depends on the timeline duration, so it maps to nil: engines then fall
// back to their spring.
func Named(name string) (Easing, bool) {
	switch name {
	case EasingSpring, "":
		return nil, true
	case EasingEaseOut:
		return EaseOut, true
	case EasingLinear:
		return Linear, true
	}
	return nil, false
}

// SpringEasing samples a harmonica spring settling from 0 to 1 over d at the
// given frame rate and interpolates between the samples. The spring is tuned
// so it has mostly settled within d; the final sample is pinned to 1.
func SpringEasing(fps int, d time.Duration, damping float64) Easing {
	if fps <= 0 {
		fps = 60
	}
	secs := d.Seconds()
	if secs <= 0 {
		return Linear
	}

	n := int(math.Ceil(secs*float64(fps))) + 1
	if n < 2 {
		n = 2
	}
	spring := harmonica.NewSpring(harmonica.FPS(fps), 6.0/secs, damping)

	samples := make([]float64, n)
	var pos, vel float64
	for i := 1; i < n; i++ {
		pos, vel = spring.Update(pos, vel, 1)
		samples[i] = pos
	}
	samples[n-1] = 1

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		x := t * float64(n-1)
		i := int(x)
		frac := x - float64(i)
		return samples[i] + (samples[i+1]-samples[i])*frac
	}
}
