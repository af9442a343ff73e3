// Package components defines ECS components for the tree scene.
package components

import (
	"github.com/pthm-cable/arix/animate"
	"github.com/pthm-cable/arix/layout"
)

// Particle tags an instanced particle with its group and instance slot.
// Desc is written once at spawn and never modified afterwards.
type Particle struct {
	Group layout.Group
	Index int // slot within the group, also the pulse phase index
	Desc  layout.Descriptor
}

// Placement is the particle's transform for the current frame.
// The instance updater is its only writer.
type Placement struct {
	animate.Transform
}
