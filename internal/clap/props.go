package clap

import "time"

// Prop keys understood by the widget renderer.
const (
	PropOnPress  = "onPress"
	PropPressed  = "aria-pressed"
	PropCount    = "count"
	PropBounds   = "bounds"
	PropValueMin = "aria-valuemin"
	PropValueMax = "aria-valuemax"
	PropValueNow = "aria-valuenow"
)

// PressEvent describes one activation of the toggler.
type PressEvent struct {
	Key string
	At  time.Time
}

// Handler reacts to a toggler press.
type Handler func(PressEvent)

// Sequence returns a Handler that calls every non-nil handler in order with
// the same event.
func Sequence(handlers ...Handler) Handler {
	list := make([]Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			list = append(list, h)
		}
	}
	return func(ev PressEvent) {
		for _, h := range list {
			h(ev)
		}
	}
}

// Props is a props collection handed to a role's renderer.
type Props map[string]any

// Merge returns a new Props holding p overlaid with over. Keys in over win.
func (p Props) Merge(over Props) Props {
	out := make(Props, len(p)+len(over))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Handler returns the handler stored under key, or nil.
func (p Props) Handler(key string) Handler {
	switch h := p[key].(type) {
	case Handler:
		return h
	case func(PressEvent):
		return h
	default:
		return nil
	}
}

// Int returns the int stored under key.
func (p Props) Int(key string) (int, bool) {
	v, ok := p[key].(int)
	return v, ok
}

// Bool returns the bool stored under key, false when absent.
func (p Props) Bool(key string) bool {
	v, _ := p[key].(bool)
	return v
}

// TogglerProps returns the toggler's props. The caller's onPress, if any,
// runs after the built-in clap; other caller keys override the defaults.
func (m *Machine) TogglerProps(extra Props) Props {
	props := Props{PropPressed: m.state.IsClicked}.Merge(extra)
	props[PropOnPress] = Sequence(func(PressEvent) { m.Clap() }, extra.Handler(PropOnPress))
	return props
}

// CounterProps returns the counter's props. Caller keys override the
// defaults.
func (m *Machine) CounterProps(extra Props) Props {
	count := m.state.Count
	return Props{
		PropCount:    count,
		PropBounds:   [2]int{0, MaxUserClap},
		PropValueMin: 0,
		PropValueMax: MaxUserClap,
		PropValueNow: count,
	}.Merge(extra)
}
