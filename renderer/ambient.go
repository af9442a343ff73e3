package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/arix/config"
	"github.com/pthm-cable/arix/layout"
	"github.com/pthm-cable/arix/systems"
)

// starSize converts a starfield size unit into world units.
const starSize = 0.12

// AmbientRenderer draws the background starfield and the falling snow with an
// unlit instancing shader.
type AmbientRenderer struct {
	shader rl.Shader

	starMesh rl.Mesh
	snowMesh rl.Mesh
	snowMat  rl.Material

	// Stars are bucketed by quantized color, one material per bucket.
	starMats    []rl.Material
	starBuckets [][]int // star indices per bucket

	snowSize float32
	matrices []rl.Matrix

	initialized bool
}

// NewAmbientRenderer creates an ambient renderer.
func NewAmbientRenderer() *AmbientRenderer {
	return &AmbientRenderer{}
}

// Init loads the shader and meshes and buckets the stars by color.
func (a *AmbientRenderer) Init(cfg *config.Config, stars *systems.Starfield) {
	if a.initialized {
		return
	}

	a.shader = rl.LoadShader("shaders/unlit_instancing.vs", "shaders/unlit.fs")
	a.shader.UpdateLocation(rl.ShaderLocMatrixModel, rl.GetShaderLocationAttrib(a.shader, "instanceTransform"))

	a.starMesh = rl.GenMeshCube(1, 1, 1)
	a.snowMesh = rl.GenMeshSphere(0.5, 4, 6)
	a.snowSize = float32(cfg.Snow.Size)

	a.snowMat = rl.LoadMaterialDefault()
	a.snowMat.Shader = a.shader
	alpha := uint8(clamp01(float32(cfg.Snow.Opacity)) * 255)
	a.snowMat.GetMap(rl.MapDiffuse).Color = toRGBA(hexOr(cfg.Snow.Color, layout.Color{R: 255, G: 255, B: 255}), alpha)

	index := map[color.RGBA]int{}
	for i, s := range stars.Stars {
		key := quantize(s.Color)
		b, ok := index[key]
		if !ok {
			b = len(a.starMats)
			index[key] = b
			mat := rl.LoadMaterialDefault()
			mat.Shader = a.shader
			mat.GetMap(rl.MapDiffuse).Color = key
			a.starMats = append(a.starMats, mat)
			a.starBuckets = append(a.starBuckets, nil)
		}
		a.starBuckets[b] = append(a.starBuckets[b], i)
	}

	a.initialized = true
}

// quantize snaps a color to 16 levels per channel to bound the bucket count.
func quantize(c layout.Color) color.RGBA {
	q := func(v uint8) uint8 { return v&0xf0 | 0x08 }
	return color.RGBA{R: q(c.R), G: q(c.G), B: q(c.B), A: 255}
}

// DrawStarfield renders the twinkling stars. Must be called inside BeginMode3D.
func (a *AmbientRenderer) DrawStarfield(stars *systems.Starfield, elapsed float32) {
	if !a.initialized {
		return
	}
	for b, idx := range a.starBuckets {
		a.matrices = a.matrices[:0]
		for _, i := range idx {
			s := stars.Stars[i]
			size := stars.Twinkle(i, elapsed) * starSize
			m := mgl32.Translate3D(s.Position[0], s.Position[1], s.Position[2]).
				Mul4(mgl32.Scale3D(size, size, size))
			a.matrices = append(a.matrices, toMatrix(m))
		}
		if len(a.matrices) > 0 {
			rl.DrawMeshInstanced(a.starMesh, a.starMats[b], a.matrices, len(a.matrices))
		}
	}
}

// DrawSnow renders the snowflakes. Must be called inside BeginMode3D after
// opaque geometry.
func (a *AmbientRenderer) DrawSnow(snow *systems.Snowfall) {
	if !a.initialized || len(snow.Flakes) == 0 {
		return
	}
	a.matrices = a.matrices[:0]
	for _, p := range snow.Flakes {
		m := mgl32.Translate3D(p[0], p[1], p[2]).
			Mul4(mgl32.Scale3D(a.snowSize, a.snowSize, a.snowSize))
		a.matrices = append(a.matrices, toMatrix(m))
	}
	rl.DrawMeshInstanced(a.snowMesh, a.snowMat, a.matrices, len(a.matrices))
}

// Unload frees resources.
func (a *AmbientRenderer) Unload() {
	if !a.initialized {
		return
	}
	rl.UnloadMesh(&a.starMesh)
	rl.UnloadMesh(&a.snowMesh)
	rl.UnloadShader(a.shader)
	a.initialized = false
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
