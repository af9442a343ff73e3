package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/arix/config"
	"github.com/pthm-cable/arix/layout"
	"github.com/pthm-cable/arix/renderer/lighting"
	"github.com/pthm-cable/arix/systems"
)

// surface is the per-group material response.
type surface struct {
	roughness float32
	metalness float32
	emissive  [3]float32 // premultiplied by intensity
}

// TreeRenderer draws the instanced particle groups with the lighting shader.
// Each group has one mesh and one material per palette entry, so a frame
// costs one DrawMeshInstanced call per non-empty palette bucket.
type TreeRenderer struct {
	shader   rl.Shader
	lights   lightUniforms
	emisLoc  int32
	roughLoc int32
	metalLoc int32

	meshes    [layout.NumGroups]rl.Mesh
	materials [layout.NumGroups][]rl.Material
	surfaces  [layout.NumGroups]surface

	matrices    []rl.Matrix
	initialized bool
}

// NewTreeRenderer creates a tree renderer. Call Init after the window exists.
func NewTreeRenderer() *TreeRenderer {
	return &TreeRenderer{}
}

// Init loads the shader, meshes and materials.
func (t *TreeRenderer) Init(cfg *config.Config) {
	if t.initialized {
		return
	}

	t.shader = rl.LoadShader("shaders/lighting_instancing.vs", "shaders/lighting.fs")
	t.shader.UpdateLocation(rl.ShaderLocMatrixModel, rl.GetShaderLocationAttrib(t.shader, "instanceTransform"))
	t.shader.UpdateLocation(rl.ShaderLocVectorView, rl.GetShaderLocation(t.shader, "viewPos"))
	t.lights = newLightUniforms(t.shader)
	t.emisLoc = rl.GetShaderLocation(t.shader, "emissive")
	t.roughLoc = rl.GetShaderLocation(t.shader, "roughness")
	t.metalLoc = rl.GetShaderLocation(t.shader, "metalness")

	for _, g := range layout.Groups {
		t.meshes[g] = groupMesh(g)

		gc := cfg.Tree.Group(g)
		em := hexOr(gc.Emissive, layout.Color{}).Floats()
		ei := float32(gc.EmissiveIntensity)
		t.surfaces[g] = surface{
			roughness: float32(gc.Roughness),
			metalness: float32(gc.Metalness),
			emissive:  [3]float32{em[0] * ei, em[1] * ei, em[2] * ei},
		}

		palette := cfg.Derived.Specs[g].Palette
		t.materials[g] = make([]rl.Material, len(palette))
		for i, c := range palette {
			mat := rl.LoadMaterialDefault()
			mat.Shader = t.shader
			mat.GetMap(rl.MapDiffuse).Color = toRGBA(c, 255)
			t.materials[g][i] = mat
		}
	}

	t.initialized = true
}

// groupMesh returns the particle geometry of a group.
func groupMesh(g layout.Group) rl.Mesh {
	switch g {
	case layout.GroupOrnament:
		return rl.GenMeshSphere(0.35, 16, 16)
	case layout.GroupFrame:
		return rl.GenMeshCube(0.5, 0.6, 0.05)
	case layout.GroupSpiral:
		return rl.GenMeshSphere(0.15, 8, 8)
	}
	// Three-sided cone with the proportions of a regular tetrahedron of
	// circumradius 0.25.
	return rl.GenMeshCone(0.236, 0.333, 3)
}

// SetLights uploads the light block. Call once per frame before Draw.
func (t *TreeRenderer) SetLights(b lighting.Block, amb lighting.Ambient, eye mgl32.Vec3) {
	if !t.initialized {
		return
	}
	t.lights.apply(t.shader, b, amb, eye)
}

// Draw renders the batches. Must be called inside BeginMode3D.
func (t *TreeRenderer) Draw(batches []systems.Batch) {
	if !t.initialized {
		return
	}

	for _, b := range batches {
		s := t.surfaces[b.Group]
		rl.SetShaderValue(t.shader, t.emisLoc, s.emissive[:], rl.ShaderUniformVec3)
		rl.SetShaderValue(t.shader, t.roughLoc, []float32{s.roughness}, rl.ShaderUniformFloat)
		rl.SetShaderValue(t.shader, t.metalLoc, []float32{s.metalness}, rl.ShaderUniformFloat)

		mats := t.materials[b.Group]
		for pi, bucket := range b.Buckets {
			if len(bucket) == 0 || pi >= len(mats) {
				continue
			}
			t.matrices = t.matrices[:0]
			for _, m := range bucket {
				t.matrices = append(t.matrices, toMatrix(m))
			}
			rl.DrawMeshInstanced(t.meshes[b.Group], mats[pi], t.matrices, len(t.matrices))
		}
	}
}

// Unload frees resources. Materials share the lighting shader, which is
// unloaded once here instead of through UnloadMaterial.
func (t *TreeRenderer) Unload() {
	if !t.initialized {
		return
	}
	for g := range t.meshes {
		rl.UnloadMesh(&t.meshes[g])
	}
	rl.UnloadShader(t.shader)
	t.initialized = false
}

// hexOr parses a color, falling back when the string is empty or invalid.
func hexOr(hex string, fallback layout.Color) layout.Color {
	if hex == "" {
		return fallback
	}
	c, err := layout.ParseHex(hex)
	if err != nil {
		return fallback
	}
	return c
}
