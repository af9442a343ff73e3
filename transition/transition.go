// Package transition smooths the blend between the scattered and the
// assembled layouts.
package transition

import (
	"fmt"
	"strings"
)

// State is the requested end state of the tree.
type State uint8

const (
	Scattered State = iota
	TreeShape
)

// DefaultSmoothing is the rate of the exponential approach, per second.
const DefaultSmoothing = 2.0

// Target returns the progress value the state converges to.
func (s State) Target() float32 {
	if s == TreeShape {
		return 1
	}
	return 0
}

// Toggle returns the opposite state.
func (s State) Toggle() State {
	if s == TreeShape {
		return Scattered
	}
	return TreeShape
}

func (s State) String() string {
	switch s {
	case Scattered:
		return "scattered"
	case TreeShape:
		return "tree"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// ParseState accepts "tree"/"tree_shape" and "scattered"/"scatter".
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tree", "tree_shape", "assembled":
		return TreeShape, nil
	case "scattered", "scatter":
		return Scattered, nil
	}
	return Scattered, fmt.Errorf("unknown tree state %q", s)
}

// Controller holds the current progress and eases it toward the target of
// the requested state every tick. Progress 0 is fully scattered, 1 fully
// assembled. Retargeting mid-transition is continuous because only the
// target jumps.
type Controller struct {
	current   float32
	state     State
	smoothing float32
}

// NewController starts fully scattered and heading toward initial.
func NewController(initial State, smoothing float32) *Controller {
	if smoothing <= 0 {
		smoothing = DefaultSmoothing
	}
	return &Controller{
		state:     initial,
		smoothing: smoothing,
	}
}

// SetState retargets the controller. Setting the current state again is a no-op.
func (c *Controller) SetState(s State) {
	c.state = s
}

// Toggle flips the target and returns the new state.
func (c *Controller) Toggle() State {
	c.state = c.state.Toggle()
	return c.state
}

// Update advances the progress by dt seconds and returns it.
// The step factor is clamped to 1 so a long frame lands on the target
// instead of overshooting it.
func (c *Controller) Update(dt float32) float32 {
	if dt <= 0 {
		return c.current
	}
	alpha := c.smoothing * dt
	if alpha > 1 {
		alpha = 1
	}
	target := c.state.Target()
	c.current += (target - c.current) * alpha

	if c.current < 0 {
		c.current = 0
	} else if c.current > 1 {
		c.current = 1
	}
	return c.current
}

// Progress returns the current blend in [0,1].
func (c *Controller) Progress() float32 {
	return c.current
}

// Target returns the progress the controller is heading to.
func (c *Controller) Target() float32 {
	return c.state.Target()
}

// State returns the requested state.
func (c *Controller) State() State {
	return c.state
}

// Settled reports whether progress is within eps of the target.
func (c *Controller) Settled(eps float32) bool {
	d := c.state.Target() - c.current
	return d <= eps && d >= -eps
}
