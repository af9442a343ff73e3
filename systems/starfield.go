package systems

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/arix/layout"
)

// Star is one background point.
type Star struct {
	Position mgl32.Vec3
	Color    layout.Color
	Size     float32
}

// StarfieldParams configures the background star shell.
type StarfieldParams struct {
	Radius     float32
	Depth      float32
	Count      int
	Factor     float32
	Saturation float64
	Speed      float32
}

// Starfield is a static shell of stars that twinkle over time.
type Starfield struct {
	Stars  []Star
	Params StarfieldParams
}

// NewStarfield places Count stars on shells between Radius+Depth and Radius,
// walking inward a random fraction of Depth/Count per star. Hue runs once
// around the wheel over the set.
func NewStarfield(rng *rand.Rand, p StarfieldParams) *Starfield {
	sf := &Starfield{Params: p}
	if p.Count <= 0 {
		return sf
	}
	sf.Stars = make([]Star, p.Count)

	r := float64(p.Radius + p.Depth)
	increment := float64(p.Depth) / float64(p.Count)
	for i := range sf.Stars {
		r -= increment * rng.Float64()

		phi := math.Acos(1 - 2*rng.Float64())
		theta := 2 * math.Pi * rng.Float64()
		sinPhi, cosPhi := math.Sincos(phi)
		sinTheta, cosTheta := math.Sincos(theta)

		c := colorful.Hsl(360*float64(i)/float64(p.Count), p.Saturation, 0.9)
		cr, cg, cb := c.Clamped().RGB255()

		sf.Stars[i] = Star{
			Position: mgl32.Vec3{
				float32(r * sinPhi * sinTheta),
				float32(r * cosPhi),
				float32(r * sinPhi * cosTheta),
			},
			Color: layout.Color{R: cr, G: cg, B: cb},
			Size:  (0.5 + 0.5*rng.Float32()) * p.Factor,
		}
	}
	return sf
}

// Twinkle returns the size of star i at the elapsed time. The modulation
// stays within [0.5, 1] of the base size.
func (sf *Starfield) Twinkle(i int, elapsed float32) float32 {
	s := sf.Stars[i].Size
	phase := float64(elapsed*sf.Params.Speed) + 100*float64(s)
	return s * float32(3+math.Sin(phase)) / 4
}
