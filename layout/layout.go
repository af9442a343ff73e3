// Package layout generates the static per-particle descriptors for every
// particle group of the tree: where each particle sits when scattered,
// where it sits when the tree is assembled, and how it is oriented, sized
// and colored in each state.
package layout

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Group identifies one instanced particle category.
type Group uint8

const (
	GroupBody Group = iota
	GroupOrnament
	GroupSpiral
	GroupFrame

	NumGroups = 4
)

// IDStride separates the id ranges of different groups. A group may hold
// at most IDStride particles.
const IDStride = 10000

// Groups lists all instanced groups in draw order.
var Groups = [NumGroups]Group{GroupBody, GroupOrnament, GroupFrame, GroupSpiral}

// IDOffset returns the first particle id of the group.
func (g Group) IDOffset() int {
	return int(g) * IDStride
}

func (g Group) String() string {
	switch g {
	case GroupBody:
		return "body"
	case GroupOrnament:
		return "ornament"
	case GroupSpiral:
		return "spiral"
	case GroupFrame:
		return "frame"
	}
	return "unknown"
}

// ParseGroup converts a group name as printed by String.
func ParseGroup(s string) (Group, error) {
	for _, g := range Groups {
		if g.String() == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown group %q", s)
}

// Euler is an XYZ-ordered rotation in radians.
type Euler struct {
	X, Y, Z float32
}

// Quat converts the rotation to a quaternion (X applied first, then Y, then Z
// in intrinsic order).
func (e Euler) Quat() mgl32.Quat {
	return mgl32.AnglesToQuat(e.X, e.Y, e.Z, mgl32.XYZ)
}

// Descriptor is the immutable record of a single particle's two end states.
type Descriptor struct {
	ID int

	ScatterPosition mgl32.Vec3
	TreePosition    mgl32.Vec3

	ScatterRotation Euler
	TreeRotation    Euler

	Scale float32

	Color        Color
	PaletteIndex int // index into the group palette, used to batch draws
}

// taperExponent bends the cone outward slightly for a fuller base.
const taperExponent = 0.9

// Cone is the tree silhouette: a tapered cone standing on its base, centered
// vertically around the origin.
type Cone struct {
	Height     float32
	BaseRadius float32
}

// RadiusAt returns the cross-sectional radius at height y above the base.
// y is clamped to [0, Height].
func (c Cone) RadiusAt(y float32) float32 {
	if c.Height <= 0 {
		return 0
	}
	rel := y / c.Height
	if rel < 0 {
		rel = 0
	} else if rel > 1 {
		rel = 1
	}
	return c.BaseRadius * float32(math.Pow(float64(1-rel), taperExponent))
}

// Point places a particle at height y above the base, distance r from the
// axis and the given azimuth. The result is shifted down by half the height
// so the tree is centered on the origin.
func (c Cone) Point(y, r, angle float32) mgl32.Vec3 {
	s, co := math.Sincos(float64(angle))
	return mgl32.Vec3{
		r * float32(co),
		y - c.Height/2,
		r * float32(s),
	}
}

// RandomPointInSphere samples a point uniformly within the volume of a sphere.
// The cube-root radius keeps density uniform instead of clustering at the center.
func RandomPointInSphere(rng *rand.Rand, radius float32) mgl32.Vec3 {
	u := rng.Float64()
	v := rng.Float64()
	theta := 2 * math.Pi * u
	phi := math.Acos(2*v - 1)
	r := math.Cbrt(rng.Float64()) * float64(radius)

	sinPhi := math.Sin(phi)
	return mgl32.Vec3{
		float32(r * sinPhi * math.Cos(theta)),
		float32(r * sinPhi * math.Sin(theta)),
		float32(r * math.Cos(phi)),
	}
}
