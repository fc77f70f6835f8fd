// Package termfx is a small keyframe animation engine for terminal render
// nodes. It implements animation.Engine.
//
// An Element carries the animatable properties the widget renders: scale,
// vertical offset and opacity. A Timeline is a fixed set of tweens and
// particle bursts over those elements. Replay rewinds it to its first frame;
// the host advances it by calling Step on every frame tick.
package termfx
