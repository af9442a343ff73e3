package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/arix/config"
	"github.com/pthm-cable/arix/layout"
)

// StarRenderer draws the extruded tree-top star. The solid is small (40
// triangles), so it goes through the immediate-mode batch instead of a mesh.
type StarRenderer struct {
	tris     []layout.Triangle
	base     [3]float32
	emissive float32
	lightDir mgl32.Vec3
}

// NewStarRenderer builds the star geometry from config.
func NewStarRenderer(cfg config.StarConfig) *StarRenderer {
	return &StarRenderer{
		tris:     layout.ExtrudeStar(float32(cfg.Depth)),
		base:     hexOr(cfg.Color, layout.Color{R: 251, G: 191, B: 36}).Floats(),
		emissive: max(float32(cfg.EmissiveIntensity), 1),
		lightDir: mgl32.Vec3{0.3, 0.8, 0.5}.Normalize(),
	}
}

// Draw renders the star with model matrix m. Must be called inside BeginMode3D.
func (s *StarRenderer) Draw(m mgl32.Mat4) {
	for _, tri := range s.tris {
		var v [3]rl.Vector3
		for i, p := range tri {
			v[i] = toVector3(m.Mul4x1(p.Vec4(1)).Vec3())
		}

		n := m.Mul4x1(tri.Normal().Vec4(0)).Vec3()
		lambert := float32(0)
		if n.Len() > 0 {
			lambert = n.Normalize().Dot(s.lightDir)
		}
		if lambert < 0 {
			lambert = 0
		}
		rl.DrawTriangle3D(v[0], v[1], v[2], s.shade(0.55+0.45*lambert))
	}
}

// shade scales the base color by the emissive intensity and a face term,
// clamped to displayable range.
func (s *StarRenderer) shade(face float32) color.RGBA {
	var out [3]uint8
	for i, c := range s.base {
		v := c * s.emissive * face
		if v > 1 {
			v = 1
		}
		out[i] = uint8(v * 255)
	}
	return color.RGBA{R: out[0], G: out[1], B: out[2], A: 255}
}
