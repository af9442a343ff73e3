// Package lighting packs scene lights into the flat uniform arrays the
// lighting shader expects. It has no GPU dependency so the math can be
// checked without a window.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/arix/config"
	"github.com/pthm-cable/arix/layout"
)

// MaxLights must match MAX_LIGHTS in shaders/lighting.fs.
const MaxLights = 4

// Kind selects the falloff model in the shader.
type Kind int

const (
	Point Kind = iota
	Spot
)

// Light is one dynamic light.
type Light struct {
	Kind      Kind
	Position  mgl32.Vec3
	Target    mgl32.Vec3 // spot lights aim here
	Color     layout.Color
	Intensity float32
	Angle     float32 // spot half-angle in radians
	Range     float32 // 0 = unlimited
}

// Ambient is the flat fill term.
type Ambient struct {
	Color     layout.Color
	Intensity float32
}

// Term returns the premultiplied ambient color.
func (a Ambient) Term() [3]float32 {
	c := a.Color.Floats()
	return [3]float32{c[0] * a.Intensity, c[1] * a.Intensity, c[2] * a.Intensity}
}

// Block is the uniform layout of up to MaxLights lights. Slices have
// MaxLights entries (times the component count) regardless of Count.
type Block struct {
	Count     float32
	Kind      []float32
	Position  []float32 // vec3
	Direction []float32 // vec3, normalized
	Color     []float32 // vec3
	Intensity []float32
	CosCutoff []float32 // -1 for point lights
	Range     []float32
}

// Pack flattens lights into a Block. Lights beyond MaxLights are dropped.
func Pack(lights []Light) Block {
	b := Block{
		Kind:      make([]float32, MaxLights),
		Position:  make([]float32, 3*MaxLights),
		Direction: make([]float32, 3*MaxLights),
		Color:     make([]float32, 3*MaxLights),
		Intensity: make([]float32, MaxLights),
		CosCutoff: make([]float32, MaxLights),
		Range:     make([]float32, MaxLights),
	}

	n := len(lights)
	if n > MaxLights {
		n = MaxLights
	}
	b.Count = float32(n)

	for i := 0; i < n; i++ {
		l := lights[i]
		b.Kind[i] = float32(l.Kind)
		copy(b.Position[3*i:], l.Position[:])

		dir := mgl32.Vec3{0, -1, 0}
		if d := l.Target.Sub(l.Position); d.Len() > 0 {
			dir = d.Normalize()
		}
		copy(b.Direction[3*i:], dir[:])

		c := l.Color.Floats()
		copy(b.Color[3*i:], c[:])

		b.Intensity[i] = l.Intensity
		b.Range[i] = l.Range
		b.CosCutoff[i] = -1
		if l.Kind == Spot {
			b.CosCutoff[i] = float32(math.Cos(float64(l.Angle)))
		}
	}
	return b
}

// Attenuation returns the inverse-square falloff at distance d, windowed to
// zero at Range when Range is set. Mirrors the shader.
func Attenuation(l Light, d float32) float32 {
	att := l.Intensity / (1 + d*d)
	if l.Range > 0 {
		r := d / l.Range
		w := 1 - r*r*r*r
		if w < 0 {
			w = 0
		}
		att *= w * w
	}
	return att
}

// SpotFactor returns how much of a spot light reaches point p: 1 inside the
// cone, fading to 0 over a small penumbra at the edge.
func SpotFactor(l Light, p mgl32.Vec3) float32 {
	if l.Kind != Spot {
		return 1
	}
	axis := l.Target.Sub(l.Position)
	toP := p.Sub(l.Position)
	if axis.Len() == 0 || toP.Len() == 0 {
		return 1
	}
	cosTheta := axis.Normalize().Dot(toP.Normalize())
	outer := float32(math.Cos(float64(l.Angle)))
	inner := float32(math.Cos(float64(l.Angle) * 0.9))
	return smoothstep(outer, inner, cosTheta)
}

// FromConfig builds the static scene lights. The star light is added by the
// caller each frame because it follows the star.
func FromConfig(c config.LightsConfig) (Ambient, []Light) {
	amb := Ambient{Color: parse(c.Ambient.Color), Intensity: float32(c.Ambient.Intensity)}
	lights := []Light{
		{Kind: Spot, Position: vec(c.Key.Position), Color: parse(c.Key.Color), Intensity: float32(c.Key.Intensity), Angle: float32(c.Key.Angle)},
		{Kind: Point, Position: vec(c.Fill.Position), Color: parse(c.Fill.Color), Intensity: float32(c.Fill.Intensity)},
		{Kind: Spot, Position: vec(c.Rim.Position), Color: parse(c.Rim.Color), Intensity: float32(c.Rim.Intensity), Angle: float32(c.Rim.Angle)},
	}
	return amb, lights
}

// StarLight returns the point light carried by the tree-top star.
func StarLight(pos mgl32.Vec3, c config.StarConfig) Light {
	return Light{
		Kind:      Point,
		Position:  pos,
		Color:     parse(c.Color),
		Intensity: float32(c.LightIntensity),
		Range:     float32(c.LightDistance),
	}
}

// BloomWeights returns a normalized gaussian kernel of taps samples per side
// (center included). radius in [0,1] widens the kernel.
func BloomWeights(radius float32, taps int) []float32 {
	if taps < 1 {
		taps = 1
	}
	sigma := float64(radius) * float64(taps)
	if sigma < 0.5 {
		sigma = 0.5
	}

	w := make([]float32, taps)
	var sum float64
	for i := range w {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		w[i] = float32(v)
		if i == 0 {
			sum += v
		} else {
			sum += 2 * v // mirrored tap
		}
	}
	for i := range w {
		w[i] = float32(float64(w[i]) / sum)
	}
	return w
}

func vec(a [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(a[0]), float32(a[1]), float32(a[2])}
}

// parse falls back to white; colors are validated when the config loads.
func parse(hex string) layout.Color {
	c, err := layout.ParseHex(hex)
	if err != nil {
		return layout.Color{R: 255, G: 255, B: 255}
	}
	return c
}

func smoothstep(e0, e1, x float32) float32 {
	if e1 == e0 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := (x - e0) / (e1 - e0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
