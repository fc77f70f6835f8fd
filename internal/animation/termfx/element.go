package termfx

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Property identifies an animatable property of an Element.
type Property int

const (
	PropScale Property = iota
	PropOffsetY
	PropOpacity
	numProps
)

func (p Property) String() string {
	switch p {
	case PropScale:
		return "scale"
	case PropOffsetY:
		return "y"
	case PropOpacity:
		return "opacity"
	default:
		return "unknown"
	}
}

// Element is a render node whose properties a Timeline drives.
type Element struct {
	name   string
	values [numProps]float64
}

// NewElement returns an Element at rest: scale 1, offset 0, fully opaque.
func NewElement(name string) *Element {
	e := &Element{name: name}
	e.values[PropScale] = 1
	e.values[PropOpacity] = 1
	return e
}

// Name returns the element's name.
func (e *Element) Name() string { return e.name }

// SetScale sets the scale directly.
func (e *Element) SetScale(scale float64) { e.values[PropScale] = scale }

// SetOpacity sets the opacity, clamped to [0, 1].
func (e *Element) SetOpacity(opacity float64) { e.set(PropOpacity, opacity) }

// Scale returns the current scale.
func (e *Element) Scale() float64 { return e.values[PropScale] }

// OffsetY returns the current vertical offset. Negative is up.
func (e *Element) OffsetY() float64 { return e.values[PropOffsetY] }

// Opacity returns the current opacity in [0, 1].
func (e *Element) Opacity() float64 { return e.values[PropOpacity] }

func (e *Element) set(p Property, v float64) {
	if p == PropOpacity {
		v = math.Max(0, math.Min(1, v))
	}
	e.values[p] = v
}

// Visual returns a snapshot of the element's properties.
func (e *Element) Visual() Visual {
	return Visual{
		Scale:   e.values[PropScale],
		OffsetY: e.values[PropOffsetY],
		Opacity: e.values[PropOpacity],
	}
}

// Visual is a point-in-time view of an Element.
type Visual struct {
	Scale   float64
	OffsetY float64
	Opacity float64
}

// Visible reports whether the element would draw anything.
func (v Visual) Visible() bool {
	return v.Opacity > 0.05
}

// Lift converts the vertical offset into whole terminal rows, scaling the
// pixel-like offsets the timeline uses down by rowHeight.
func (v Visual) Lift(rowHeight float64) int {
	if rowHeight <= 0 {
		return 0
	}
	return int(math.Round(-v.OffsetY / rowHeight))
}

// Color fades fg toward bg as opacity drops, blending in Lab space.
// Unparseable colors are returned unchanged.
func (v Visual) Color(fg, bg string) string {
	f, err := colorful.Hex(fg)
	if err != nil {
		return fg
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return fg
	}
	return b.BlendLab(f, v.Opacity).Clamped().Hex()
}
