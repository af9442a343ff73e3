package systems

import (
	"math"
	"math/rand"
	"testing"
)

// ---------- Snowfall ----------

func TestSnowfallStartsInsideCube(t *testing.T) {
	s := NewSnowfall(rand.New(rand.NewSource(1)), 1000, 50, 3)
	if len(s.Flakes) != 1000 {
		t.Fatalf("expected 1000 flakes, got %d", len(s.Flakes))
	}
	for i, f := range s.Flakes {
		for axis := 0; axis < 3; axis++ {
			if f[axis] < -25 || f[axis] > 25 {
				t.Fatalf("flake %d axis %d at %f outside cube", i, axis, f[axis])
			}
		}
	}
}

func TestSnowfallFalls(t *testing.T) {
	s := NewSnowfall(rand.New(rand.NewSource(2)), 1, 50, 3)
	s.Flakes[0][1] = 10
	x, z := s.Flakes[0][0], s.Flakes[0][2]

	s.Update(1.0 / 60.0)
	if got := s.Flakes[0][1]; math.Abs(float64(got-9.95)) > 1e-5 {
		t.Errorf("expected y 9.95 after one frame, got %f", got)
	}
	if s.Flakes[0][0] != x || s.Flakes[0][2] != z {
		t.Error("falling should not move flakes sideways")
	}
}

func TestSnowfallWraps(t *testing.T) {
	s := NewSnowfall(rand.New(rand.NewSource(3)), 1, 50, 3)
	s.Flakes[0][1] = -24.99

	s.Update(1.0 / 60.0)
	if got := s.Flakes[0][1]; got != 25 {
		t.Errorf("expected flake to wrap to 25, got %f", got)
	}
}

func TestSnowfallStaysBounded(t *testing.T) {
	s := NewSnowfall(rand.New(rand.NewSource(4)), 200, 50, 3)
	for tick := 0; tick < 2000; tick++ {
		s.Update(1.0 / 60.0)
	}
	for i, f := range s.Flakes {
		if f[1] < -25 || f[1] > 25 {
			t.Fatalf("flake %d escaped to y=%f", i, f[1])
		}
	}
}

func TestSnowfallZeroDelta(t *testing.T) {
	s := NewSnowfall(rand.New(rand.NewSource(5)), 10, 50, 3)
	before := append(s.Flakes[:0:0], s.Flakes...)
	s.Update(0)
	for i := range before {
		if before[i] != s.Flakes[i] {
			t.Fatalf("flake %d moved on zero dt", i)
		}
	}
}

// ---------- Starfield ----------

func defaultStarParams() StarfieldParams {
	return StarfieldParams{Radius: 100, Depth: 50, Count: 5000, Factor: 4, Saturation: 0, Speed: 0.5}
}

func TestStarfieldShell(t *testing.T) {
	sf := NewStarfield(rand.New(rand.NewSource(9)), defaultStarParams())
	if len(sf.Stars) != 5000 {
		t.Fatalf("expected 5000 stars, got %d", len(sf.Stars))
	}

	prev := float32(math.MaxFloat32)
	for i, s := range sf.Stars {
		r := s.Position.Len()
		if r < 100-1e-2 || r > 150+1e-2 {
			t.Fatalf("star %d at radius %f outside [100,150]", i, r)
		}
		// Shells only move inward.
		if r > prev+1e-2 {
			t.Fatalf("star %d radius %f exceeds previous %f", i, r, prev)
		}
		prev = r
		if s.Size < 2 || s.Size > 4 {
			t.Fatalf("star %d size %f outside [2,4]", i, s.Size)
		}
	}
}

func TestStarfieldDesaturated(t *testing.T) {
	sf := NewStarfield(rand.New(rand.NewSource(9)), StarfieldParams{Radius: 100, Depth: 50, Count: 50, Factor: 4})
	for i, s := range sf.Stars {
		if s.Color.R != s.Color.G || s.Color.G != s.Color.B {
			t.Fatalf("star %d should be grey with zero saturation, got %+v", i, s.Color)
		}
		if s.Color.R < 225 || s.Color.R > 235 {
			t.Fatalf("star %d lightness off: %+v", i, s.Color)
		}
	}
}

func TestStarfieldTwinkleRange(t *testing.T) {
	sf := NewStarfield(rand.New(rand.NewSource(10)), StarfieldParams{Radius: 100, Depth: 50, Count: 100, Factor: 4, Speed: 0.5})
	for i := range sf.Stars {
		for e := float32(0); e < 20; e += 0.7 {
			v := sf.Twinkle(i, e)
			base := sf.Stars[i].Size
			if v < base*0.5-1e-5 || v > base+1e-5 {
				t.Fatalf("twinkle %f outside [%f, %f]", v, base*0.5, base)
			}
		}
	}
}

func TestStarfieldEmpty(t *testing.T) {
	sf := NewStarfield(rand.New(rand.NewSource(1)), StarfieldParams{Radius: 100, Depth: 50})
	if len(sf.Stars) != 0 {
		t.Errorf("expected no stars, got %d", len(sf.Stars))
	}
}
