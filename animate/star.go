package animate

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// StarPath drives the single tree-top star: it drops from above the scene
// onto the apex, spins about the vertical axis and grows as the tree forms.
type StarPath struct {
	Scatter  mgl32.Vec3
	Tree     mgl32.Vec3
	MinScale float32
	MaxScale float32
	Spin     float32 // radians per second
}

// DefaultStarPath returns the stock star motion.
func DefaultStarPath() StarPath {
	return StarPath{
		Scatter:  mgl32.Vec3{0, 25, 0},
		Tree:     mgl32.Vec3{0, 8.5, 0},
		MinScale: 0.1,
		MaxScale: 1.2,
		Spin:     0.5,
	}
}

// At returns the star transform for the frame.
func (s StarPath) At(f Frame) Transform {
	return Transform{
		Position: lerpVec(s.Scatter, s.Tree, f.Progress),
		Rotation: mgl32.QuatRotate(f.Elapsed*s.Spin, mgl32.Vec3{0, 1, 0}),
		Scale:    Lerp(s.MinScale, s.MaxScale, f.Progress),
	}
}

// Float is a slow hovering motion applied to the whole tree group.
type Float struct {
	Speed             float32
	RotationIntensity float32
	FloatIntensity    float32
	Offset            float32 // seconds added to elapsed, picks the starting phase
}

// At returns the group offset and rotation after elapsed seconds.
func (fl Float) At(elapsed float32) Transform {
	t := (float64(fl.Offset) + float64(elapsed)) / 4 * float64(fl.Speed)
	s, c := math.Sincos(t)

	ri := float64(fl.RotationIntensity)
	rot := mgl32.AnglesToQuat(
		float32(c/8*ri),
		float32(s/8*ri),
		float32(s/20*ri),
		mgl32.XYZ,
	)
	return Transform{
		Position: mgl32.Vec3{0, float32(s/10) * fl.FloatIntensity, 0},
		Rotation: rot,
		Scale:    1,
	}
}
