// Package animate computes per-frame particle transforms from the static
// layout descriptors. Every function takes the transition progress and the
// elapsed time explicitly so results are reproducible for a given time
// sequence.
package animate

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/arix/layout"
)

// Secondary motion constants.
const (
	BobCutoff    = 0.9  // no bobbing at or above this progress
	BobAmplitude = 0.05 // vertical bob at progress 0

	PulseBase      = 0.8
	PulseAmplitude = 0.3
	PulseFrequency = 3.0
	PulsePhaseStep = 0.2 // phase offset between neighbouring lights
)

// Frame is the shared per-tick input of the updater.
type Frame struct {
	Progress float32 // transition progress in [0,1]
	Elapsed  float32 // seconds since start
}

// Transform is a particle's placement for one frame.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32
}

// Identity is the untransformed placement.
func Identity() Transform {
	return Transform{Rotation: mgl32.QuatIdent(), Scale: 1}
}

// Matrix composes translation, rotation and uniform scale (T*R*S).
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale, t.Scale, t.Scale))
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Position blends the two end positions and adds a gentle vertical bob while
// the particle is still far from the tree.
func Position(d *layout.Descriptor, progress, elapsed float32) mgl32.Vec3 {
	p := lerpVec(d.ScatterPosition, d.TreePosition, progress)
	if progress < BobCutoff {
		p[1] += float32(math.Sin(float64(elapsed)+float64(d.ID))) * BobAmplitude * (1 - progress)
	}
	return p
}

// Rotation spherically interpolates between the two end orientations.
func Rotation(d *layout.Descriptor, progress float32) mgl32.Quat {
	return Slerp(d.ScatterRotation.Quat(), d.TreeRotation.Quat(), progress)
}

// Slerp interpolates along the shortest arc between a and b.
func Slerp(a, b mgl32.Quat, t float32) mgl32.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl32.QuatSlerp(a, b, t)
}

// PulseScale modulates a light's scale over time, phase shifted by index.
func PulseScale(scale float32, index int, elapsed float32) float32 {
	phase := float64(elapsed)*PulseFrequency + float64(index)*PulsePhaseStep
	return scale * (PulseBase + float32(math.Sin(phase))*PulseAmplitude)
}

// Instance returns the transform of descriptor d at instance slot index.
// pulse enables the scale pulsing used by the spiral lights.
func Instance(d *layout.Descriptor, index int, f Frame, pulse bool) Transform {
	scale := d.Scale
	if pulse {
		scale = PulseScale(scale, index, f.Elapsed)
	}
	return Transform{
		Position: Position(d, f.Progress, f.Elapsed),
		Rotation: Rotation(d, f.Progress),
		Scale:    scale,
	}
}

func lerpVec(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
