package layout

import (
	"math"
	"math/rand"
	"testing"
)

func newTestGenerator(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)), DefaultSpecs())
}

func TestBodyScenario(t *testing.T) {
	gen := newTestGenerator(1)

	for run := 0; run < 2; run++ {
		data := gen.Body(100)
		if len(data) != 100 {
			t.Fatalf("run %d: expected 100 descriptors, got %d", run, len(data))
		}

		seen := make(map[int]bool)
		for _, d := range data {
			if d.ID < 0 || d.ID >= 100 {
				t.Errorf("run %d: id %d outside [0,100)", run, d.ID)
			}
			if seen[d.ID] {
				t.Errorf("run %d: duplicate id %d", run, d.ID)
			}
			seen[d.ID] = true
		}
	}
}

func TestScaleAndPalette(t *testing.T) {
	gen := newTestGenerator(2)
	specs := DefaultSpecs()

	for _, group := range Groups {
		data := gen.Generate(group, 500)
		spec := specs[group]
		for _, d := range data {
			if d.Scale <= 0 {
				t.Errorf("%s: scale %f must be positive", group, d.Scale)
			}
			if d.Scale < spec.ScaleMin || d.Scale > spec.ScaleMax {
				t.Errorf("%s: scale %f outside [%f, %f]", group, d.Scale, spec.ScaleMin, spec.ScaleMax)
			}
			if !spec.Palette.Contains(d.Color) {
				t.Errorf("%s: color %s not in palette", group, d.Color.Hex())
			}
			if spec.Palette[d.PaletteIndex] != d.Color {
				t.Errorf("%s: palette index %d does not match color %s", group, d.PaletteIndex, d.Color.Hex())
			}
		}
	}
}

func TestFixedColors(t *testing.T) {
	gen := newTestGenerator(3)

	for _, d := range gen.Frames(25) {
		if d.Color.Hex() != "#ffffff" || d.Scale != 0.8 {
			t.Errorf("frame: expected white at scale 0.8, got %s at %f", d.Color.Hex(), d.Scale)
		}
	}
	for _, d := range gen.Spiral(50) {
		if d.Color.Hex() != "#fffee0" || d.Scale != 0.2 {
			t.Errorf("spiral: expected #fffee0 at scale 0.2, got %s at %f", d.Color.Hex(), d.Scale)
		}
	}
}

func TestTreeHeightBounds(t *testing.T) {
	gen := newTestGenerator(4)
	specs := DefaultSpecs()

	for _, group := range []Group{GroupBody, GroupOrnament, GroupFrame} {
		half := specs[group].Height / 2
		for _, d := range gen.Generate(group, 1000) {
			y := d.TreePosition.Y()
			if y < -half || y > half {
				t.Errorf("%s: tree y %f outside [%f, %f]", group, y, -half, half)
			}
		}
	}
}

func TestTreeRadiusWithinCone(t *testing.T) {
	gen := newTestGenerator(5)
	specs := DefaultSpecs()

	for _, group := range []Group{GroupBody, GroupOrnament, GroupFrame} {
		spec := specs[group]
		cone := spec.Cone()
		for _, d := range gen.Generate(group, 500) {
			p := d.TreePosition
			radial := float32(math.Hypot(float64(p.X()), float64(p.Z())))
			limit := cone.RadiusAt(p.Y() + spec.Height/2)
			if radial > limit+1e-4 {
				t.Errorf("%s: radial distance %f exceeds cone radius %f", group, radial, limit)
			}
			if spec.SurfaceFactor > 0 {
				want := limit * spec.SurfaceFactor
				if math.Abs(float64(radial-want)) > 1e-3 {
					t.Errorf("%s: expected surface radius %f, got %f", group, want, radial)
				}
			}
		}
	}
}

func TestTaperMonotonic(t *testing.T) {
	cone := Cone{Height: 16, BaseRadius: 7}

	prev := cone.RadiusAt(0)
	if math.Abs(float64(prev-7)) > 1e-6 {
		t.Errorf("expected base radius 7, got %f", prev)
	}
	for y := float32(0.1); y <= 16; y += 0.1 {
		r := cone.RadiusAt(y)
		if r > prev {
			t.Fatalf("radius increased from %f to %f at y=%f", prev, r, y)
		}
		prev = r
	}
	if cone.RadiusAt(16) != 0 {
		t.Errorf("expected zero radius at apex, got %f", cone.RadiusAt(16))
	}
	if cone.RadiusAt(20) != 0 || cone.RadiusAt(-1) != 7 {
		t.Error("heights outside the cone should clamp")
	}
}

func TestSpiralHelix(t *testing.T) {
	gen := newTestGenerator(6)
	spec := DefaultSpecs()[GroupSpiral]
	const count = 200

	data := gen.Spiral(count)
	if len(data) != count {
		t.Fatalf("expected %d lights, got %d", count, len(data))
	}

	var prevAngle float32 = -1
	for i := range data {
		_, angle := SpiralPoint(spec, i, count)
		if angle <= prevAngle {
			t.Fatalf("azimuth not increasing at %d: %f <= %f", i, angle, prevAngle)
		}
		prevAngle = angle

		// Tree position must match the unwrapped azimuth after wrapping.
		p := data[i].TreePosition
		if i > 0 && i < count-1 {
			got := math.Atan2(float64(p.Z()), float64(p.X()))
			want := math.Atan2(math.Sin(float64(angle)), math.Cos(float64(angle)))
			if math.Abs(got-want) > 1e-3 {
				t.Errorf("light %d: azimuth %f, want %f", i, got, want)
			}
		}
		if data[i].ScatterRotation != (Euler{}) || data[i].TreeRotation != (Euler{}) {
			t.Errorf("light %d: spiral lights should not be rotated", i)
		}
	}

	// angle(i) = i/count * 2π * loops, so extrapolating to i=count gives exactly 8 turns.
	step := 2 * math.Pi * float64(spec.Loops) / count
	turns := (float64(prevAngle) + step) / (2 * math.Pi)
	if math.Abs(turns-8) > 1e-3 {
		t.Errorf("expected 8 revolutions, got %f", turns)
	}
}

func TestEmptyGroups(t *testing.T) {
	gen := newTestGenerator(7)

	for _, group := range Groups {
		for _, n := range []int{0, -5} {
			data := gen.Generate(group, n)
			if data == nil || len(data) != 0 {
				t.Errorf("%s(%d): expected empty non-nil slice, got %v", group, n, data)
			}
		}
	}

	y, angle := SpiralPoint(DefaultSpecs()[GroupSpiral], 0, 0)
	if y != 0 || angle != 0 {
		t.Errorf("SpiralPoint with zero count should be (0,0), got (%f,%f)", y, angle)
	}
}

func TestIDsDoNotCollideAcrossGroups(t *testing.T) {
	gen := newTestGenerator(8)

	seen := make(map[int]Group)
	for _, group := range Groups {
		for _, d := range gen.Generate(group, 300) {
			if other, ok := seen[d.ID]; ok {
				t.Fatalf("id %d used by %s and %s", d.ID, other, group)
			}
			seen[d.ID] = group
		}
	}
}

func TestRandomPointInSphere(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	const n = 20000
	const radius = 20

	inner := 0
	for i := 0; i < n; i++ {
		p := RandomPointInSphere(rng, radius)
		l := p.Len()
		if l > radius+1e-3 {
			t.Fatalf("point %v outside sphere (len %f)", p, l)
		}
		if l < radius/2 {
			inner++
		}
	}

	// Uniform volume: the inner half-radius ball holds 1/8 of the points.
	frac := float64(inner) / n
	if math.Abs(frac-0.125) > 0.02 {
		t.Errorf("inner fraction = %f, want ~0.125", frac)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#dc2626", Color{0xdc, 0x26, 0x26}, false},
		{"#fff", Color{255, 255, 255}, false},
		{"dc2626", Color{}, true},
		{"#zzzzzz", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtrudeStar(t *testing.T) {
	tris := ExtrudeStar(0.4)
	if len(tris) != 40 {
		t.Fatalf("expected 40 triangles, got %d", len(tris))
	}

	for i, tri := range tris {
		n := tri.Normal()
		if n.Len() < 1e-6 {
			t.Errorf("triangle %d is degenerate", i)
		}
		for _, v := range tri {
			if v.Z() < -0.2-1e-6 || v.Z() > 0.2+1e-6 {
				t.Errorf("triangle %d vertex z %f outside extrusion", i, v.Z())
			}
		}
		// Caps face away from the center plane.
		if tri[0].Z() == 0.2 && tri[1].Z() == 0.2 && tri[2].Z() == 0.2 && n.Z() <= 0 {
			t.Errorf("front cap triangle %d faces backward", i)
		}
		if tri[0].Z() == -0.2 && tri[1].Z() == -0.2 && tri[2].Z() == -0.2 && n.Z() >= 0 {
			t.Errorf("back cap triangle %d faces forward", i)
		}
	}
}

func TestParseGroup(t *testing.T) {
	for _, g := range Groups {
		t.Run(g.String(), func(t *testing.T) {
			got, err := ParseGroup(g.String())
			if err != nil {
				t.Fatalf("ParseGroup(%q): %v", g.String(), err)
			}
			if got != g {
				t.Errorf("expected %v, got %v", g, got)
			}
		})
	}
	if _, err := ParseGroup("garland"); err == nil {
		t.Error("expected error for unknown group")
	}
}
