// Package camera provides an orbit camera around the tree.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Orbit keeps the eye on a sphere around Target.
// Polar angle is measured from +Y, azimuth from +Z toward +X.
type Orbit struct {
	Target mgl32.Vec3

	Distance float32
	Polar    float32 // radians from +Y
	Azimuth  float32 // radians

	Fovy float32 // vertical field of view in degrees

	// A speed of 1 completes one turn every 60 seconds.
	AutoRotate      bool
	AutoRotateSpeed float32

	// Constraints
	MinPolar, MaxPolar       float32
	MinDistance, MaxDistance float32

	// Drag sensitivity in radians per pixel
	RotateSpeed float32
	// Fraction of distance per wheel notch
	ZoomSpeed float32

	home struct {
		distance, polar, azimuth float32
	}
}

// Params configures a new orbit.
type Params struct {
	Position        mgl32.Vec3 // initial eye position
	Target          mgl32.Vec3
	Fovy            float32
	AutoRotate      bool
	AutoRotateSpeed float32
	MinPolar        float32
	MaxPolar        float32
	MinDistance     float32
	MaxDistance     float32
}

// DefaultParams returns the stock camera: eye at (0,0,22) looking at the
// origin, slow auto rotation, polar angle kept between π/3 and π/1.6.
func DefaultParams() Params {
	return Params{
		Position:        mgl32.Vec3{0, 0, 22},
		Fovy:            45,
		AutoRotate:      true,
		AutoRotateSpeed: 0.8,
		MinPolar:        math.Pi / 3,
		MaxPolar:        math.Pi / 1.6,
		MinDistance:     10,
		MaxDistance:     30,
	}
}

// New creates an orbit from the eye position in p. The initial position is
// clamped into the constraints and remembered for Reset.
func New(p Params) *Orbit {
	o := &Orbit{
		Target:          p.Target,
		Fovy:            p.Fovy,
		AutoRotate:      p.AutoRotate,
		AutoRotateSpeed: p.AutoRotateSpeed,
		MinPolar:        p.MinPolar,
		MaxPolar:        p.MaxPolar,
		MinDistance:     p.MinDistance,
		MaxDistance:     p.MaxDistance,
		RotateSpeed:     0.005,
		ZoomSpeed:       0.05,
	}

	offset := p.Position.Sub(p.Target)
	o.Distance = offset.Len()
	if o.Distance > 0 {
		o.Polar = float32(math.Acos(float64(clamp(offset.Y()/o.Distance, -1, 1))))
		o.Azimuth = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	}
	o.constrain()

	o.home.distance = o.Distance
	o.home.polar = o.Polar
	o.home.azimuth = o.Azimuth
	return o
}

// Position returns the eye position in world space.
func (o *Orbit) Position() mgl32.Vec3 {
	sp, cp := math.Sincos(float64(o.Polar))
	sa, ca := math.Sincos(float64(o.Azimuth))
	r := float64(o.Distance)
	return o.Target.Add(mgl32.Vec3{
		float32(r * sp * sa),
		float32(r * cp),
		float32(r * sp * ca),
	})
}

// Update advances auto rotation by dt seconds.
func (o *Orbit) Update(dt float32) {
	if !o.AutoRotate || dt <= 0 {
		return
	}
	o.Azimuth -= 2 * math.Pi / 60 * o.AutoRotateSpeed * dt
	o.Azimuth = wrapAngle(o.Azimuth)
}

// Rotate applies a mouse drag of (dx, dy) pixels. Dragging right turns the
// scene right; dragging down raises the eye.
func (o *Orbit) Rotate(dx, dy float32) {
	o.Azimuth = wrapAngle(o.Azimuth - dx*o.RotateSpeed)
	o.Polar -= dy * o.RotateSpeed
	o.constrain()
}

// Zoom moves the eye by wheel notches; positive values move closer.
func (o *Orbit) Zoom(notches float32) {
	if notches == 0 {
		return
	}
	o.Distance *= float32(math.Pow(float64(1-o.ZoomSpeed), float64(notches)))
	o.constrain()
}

// SetDistance sets the distance, clamped to the limits.
func (o *Orbit) SetDistance(d float32) {
	o.Distance = d
	o.constrain()
}

// Reset returns the camera to its initial placement.
func (o *Orbit) Reset() {
	o.Distance = o.home.distance
	o.Polar = o.home.polar
	o.Azimuth = o.home.azimuth
}

func (o *Orbit) constrain() {
	o.Polar = clamp(o.Polar, o.MinPolar, o.MaxPolar)
	o.Distance = clamp(o.Distance, o.MinDistance, o.MaxDistance)
}

// wrapAngle keeps an angle in [-π, π).
func wrapAngle(a float32) float32 {
	r := float32(math.Mod(float64(a)+math.Pi, 2*math.Pi))
	if r < 0 {
		r += 2 * math.Pi
	}
	return r - math.Pi
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
