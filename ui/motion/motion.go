// Package motion holds the time-based state of the overlay: the title
// entrance, the toggle glow and the toggle labels. Nothing here touches the
// window, so it can be driven from tests with explicit time steps.
package motion

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/pthm-cable/arix/transition"
)

// Title animates the heading: it fades in while dropping into place, then
// glows with a slow pulse.
type Title struct {
	fade *gween.Tween
	drop *gween.Tween

	Alpha   float32 // 0..1
	OffsetY float32 // pixels above the resting position, 0 when settled
	Glow    float32 // 0..1
	Done    bool

	elapsed float32
}

// NewTitle creates a title that enters over duration seconds from drop pixels
// above its resting place.
func NewTitle(duration, drop float32) *Title {
	if duration <= 0 {
		duration = 0.001
	}
	return &Title{
		fade:    gween.New(0, 1, duration, ease.OutCubic),
		drop:    gween.New(drop, 0, duration, ease.OutCubic),
		OffsetY: drop,
	}
}

// Update advances the animation by dt seconds.
func (t *Title) Update(dt float32) {
	if dt < 0 {
		dt = 0
	}
	t.elapsed += dt

	if !t.Done {
		a, fadeDone := t.fade.Update(dt)
		y, dropDone := t.drop.Update(dt)
		t.Alpha, t.OffsetY = a, y
		t.Done = fadeDone && dropDone
	}

	t.Glow = 0.5 + 0.5*float32(math.Sin(float64(t.elapsed)*2))
}

// Glow is a looping ping-pong pulse used to highlight the toggle button.
type Glow struct {
	tween   *gween.Tween
	period  float32
	forward bool

	Value float32 // 0..1
}

// NewGlow creates a pulse with the given half period in seconds.
func NewGlow(period float32) *Glow {
	if period <= 0 {
		period = 1
	}
	return &Glow{
		tween:   gween.New(0, 1, period, ease.InOutSine),
		period:  period,
		forward: true,
	}
}

// Update advances the pulse, reversing direction at each end.
func (g *Glow) Update(dt float32) {
	v, done := g.tween.Update(dt)
	g.Value = v
	if done {
		g.forward = !g.forward
		if g.forward {
			g.tween = gween.New(0, 1, g.period, ease.InOutSine)
		} else {
			g.tween = gween.New(1, 0, g.period, ease.InOutSine)
		}
	}
}

// ToggleLabel names the action the toggle performs from state s.
func ToggleLabel(s transition.State) string {
	if s == transition.TreeShape {
		return "Scatter"
	}
	return "Assemble"
}

// ToggleHighlighted reports whether the toggle should be drawn in gold,
// which invites the user to assemble a scattered tree.
func ToggleHighlighted(s transition.State) bool {
	return s == transition.Scattered
}

// SnapCount rounds a slider value to a multiple of step within [min, max].
func SnapCount(v float32, min, max, step int) int {
	if step < 1 {
		step = 1
	}
	n := int(math.Round(float64(v)/float64(step))) * step
	if n < min {
		n = min
	}
	if n > max {
		n = max
	}
	return n
}
