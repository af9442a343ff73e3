package layout

import (
	"math"
	"math/rand"
)

// Spec holds the shape parameters of one group.
type Spec struct {
	Height        float32 // tree height for this group
	BaseRadius    float32 // cone radius at the base
	ScatterRadius float32 // radius of the scatter sphere
	ScaleMin      float32
	ScaleMax      float32 // equal to ScaleMin for fixed-size groups
	SurfaceFactor float32 // fraction of the cross-section radius (ornaments, frames)
	Loops         float32 // helix revolutions (spiral)
	Palette       Palette
}

// Cone returns the silhouette described by the spec.
func (s Spec) Cone() Cone {
	return Cone{Height: s.Height, BaseRadius: s.BaseRadius}
}

// Specs holds one Spec per group, indexed by Group.
type Specs [NumGroups]Spec

// DefaultSpecs returns the stock tree proportions.
func DefaultSpecs() Specs {
	var s Specs
	s[GroupBody] = Spec{
		Height: 16, BaseRadius: 7, ScatterRadius: 20,
		ScaleMin: 0.4, ScaleMax: 0.9,
		Palette: BodyPalette,
	}
	s[GroupOrnament] = Spec{
		Height: 15, BaseRadius: 7, ScatterRadius: 22,
		ScaleMin: 0.5, ScaleMax: 0.9,
		SurfaceFactor: 0.95,
		Palette:       OrnamentPalette,
	}
	s[GroupFrame] = Spec{
		Height: 15, BaseRadius: 7, ScatterRadius: 22,
		ScaleMin: 0.8, ScaleMax: 0.8,
		SurfaceFactor: 1.0,
		Palette:       FramePalette,
	}
	s[GroupSpiral] = Spec{
		Height: 16, BaseRadius: 7.5, ScatterRadius: 25,
		ScaleMin: 0.2, ScaleMax: 0.2,
		Loops:   8,
		Palette: SpiralPalette,
	}
	return s
}

// Generator produces descriptor arrays. It is not safe for concurrent use
// because it shares a single random source.
type Generator struct {
	rng   *rand.Rand
	specs Specs
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(rng *rand.Rand, specs Specs) *Generator {
	return &Generator{rng: rng, specs: specs}
}

// Spec returns the parameters used for a group.
func (g *Generator) Spec(group Group) Spec {
	return g.specs[group]
}

// Generate dispatches to the generator of the given group.
func (g *Generator) Generate(group Group, count int) []Descriptor {
	switch group {
	case GroupBody:
		return g.Body(count)
	case GroupOrnament:
		return g.Ornaments(count)
	case GroupFrame:
		return g.Frames(count)
	case GroupSpiral:
		return g.Spiral(count)
	}
	return []Descriptor{}
}

// Body fills the cone volume, biased toward the surface.
func (g *Generator) Body(count int) []Descriptor {
	if count <= 0 {
		return []Descriptor{}
	}
	spec := g.specs[GroupBody]
	cone := spec.Cone()
	data := make([]Descriptor, 0, count)

	for i := 0; i < count; i++ {
		scatter := RandomPointInSphere(g.rng, spec.ScatterRadius)

		y := g.uniform(0, spec.Height)
		angle := g.uniform(0, 2*math.Pi)
		// pow(u, 0.3) pushes most samples toward the outer shell
		r := cone.RadiusAt(y) * float32(math.Pow(g.rng.Float64(), 0.3))

		idx := g.rng.Intn(len(spec.Palette))
		data = append(data, Descriptor{
			ID:              GroupBody.IDOffset() + i,
			ScatterPosition: scatter,
			TreePosition:    cone.Point(y, r, angle),
			ScatterRotation: Euler{g.uniform(0, math.Pi), g.uniform(0, math.Pi), g.uniform(0, math.Pi)},
			TreeRotation:    Euler{g.uniform(0, 0.5), g.uniform(0, 2*math.Pi), 0},
			Scale:           g.scale(spec),
			Color:           spec.Palette[idx],
			PaletteIndex:    idx,
		})
	}
	return data
}

// Ornaments sit just inside the cone surface and face along the azimuth.
func (g *Generator) Ornaments(count int) []Descriptor {
	return g.surface(GroupOrnament, count, 1)
}

// Frames sit on the cone surface with the azimuth negated.
func (g *Generator) Frames(count int) []Descriptor {
	return g.surface(GroupFrame, count, -1)
}

func (g *Generator) surface(group Group, count int, facing float32) []Descriptor {
	if count <= 0 {
		return []Descriptor{}
	}
	spec := g.specs[group]
	cone := spec.Cone()
	data := make([]Descriptor, 0, count)

	for i := 0; i < count; i++ {
		scatter := RandomPointInSphere(g.rng, spec.ScatterRadius)

		y := g.uniform(0, spec.Height)
		angle := g.uniform(0, 2*math.Pi)
		r := cone.RadiusAt(y) * spec.SurfaceFactor

		idx := 0
		if len(spec.Palette) > 1 {
			idx = g.rng.Intn(len(spec.Palette))
		}
		data = append(data, Descriptor{
			ID:              group.IDOffset() + i,
			ScatterPosition: scatter,
			TreePosition:    cone.Point(y, r, angle),
			ScatterRotation: Euler{g.uniform(0, math.Pi), g.uniform(0, math.Pi), 0},
			TreeRotation:    Euler{0, facing * angle, 0},
			Scale:           g.scale(spec),
			Color:           spec.Palette[idx],
			PaletteIndex:    idx,
		})
	}
	return data
}

// Spiral lays lights along a helix wound around the cone. Tree positions are
// fully deterministic; only the scatter positions are random.
func (g *Generator) Spiral(count int) []Descriptor {
	if count <= 0 {
		return []Descriptor{}
	}
	spec := g.specs[GroupSpiral]
	cone := spec.Cone()
	data := make([]Descriptor, 0, count)

	for i := 0; i < count; i++ {
		y, angle := SpiralPoint(spec, i, count)
		data = append(data, Descriptor{
			ID:              GroupSpiral.IDOffset() + i,
			ScatterPosition: RandomPointInSphere(g.rng, spec.ScatterRadius),
			TreePosition:    cone.Point(y, cone.RadiusAt(y), angle),
			Scale:           g.scale(spec),
			Color:           spec.Palette[0],
		})
	}
	return data
}

// SpiralPoint returns the height above the base and the unwrapped azimuth of
// helix light i out of count.
func SpiralPoint(spec Spec, i, count int) (y, angle float32) {
	if count <= 0 {
		return 0, 0
	}
	p := float32(i) / float32(count)
	return p * spec.Height, p * 2 * math.Pi * spec.Loops
}

func (g *Generator) uniform(lo, hi float32) float32 {
	return lo + g.rng.Float32()*(hi-lo)
}

func (g *Generator) scale(spec Spec) float32 {
	if spec.ScaleMax <= spec.ScaleMin {
		return spec.ScaleMin
	}
	return g.uniform(spec.ScaleMin, spec.ScaleMax)
}
