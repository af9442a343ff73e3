package systems

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Snowfall animates flakes falling through a cube centred on the origin.
// A flake that drops below the cube floor reappears at the top with the
// same x and z.
type Snowfall struct {
	Flakes []mgl32.Vec3
	Extent float32 // cube edge length
	Speed  float32 // units per second
}

// NewSnowfall scatters count flakes uniformly inside the cube.
func NewSnowfall(rng *rand.Rand, count int, extent, speed float32) *Snowfall {
	if count < 0 {
		count = 0
	}
	s := &Snowfall{
		Flakes: make([]mgl32.Vec3, count),
		Extent: extent,
		Speed:  speed,
	}
	for i := range s.Flakes {
		s.Flakes[i] = mgl32.Vec3{
			(rng.Float32() - 0.5) * extent,
			(rng.Float32() - 0.5) * extent,
			(rng.Float32() - 0.5) * extent,
		}
	}
	return s
}

// Update moves every flake down by Speed*dt.
func (s *Snowfall) Update(dt float32) {
	if dt <= 0 {
		return
	}
	half := s.Extent / 2
	step := s.Speed * dt
	for i := range s.Flakes {
		f := &s.Flakes[i]
		f[1] -= step
		if f[1] < -half {
			f[1] = half
		}
	}
}
