package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/arix/renderer/lighting"
)

// lightUniforms holds the shader locations of the light block.
type lightUniforms struct {
	count     int32
	kind      int32
	position  int32
	direction int32
	color     int32
	intensity int32
	cutoff    int32
	rng       int32
	ambient   int32
	viewPos   int32
}

func newLightUniforms(shader rl.Shader) lightUniforms {
	return lightUniforms{
		count:     rl.GetShaderLocation(shader, "lightCount"),
		kind:      rl.GetShaderLocation(shader, "lightKind"),
		position:  rl.GetShaderLocation(shader, "lightPos"),
		direction: rl.GetShaderLocation(shader, "lightDir"),
		color:     rl.GetShaderLocation(shader, "lightColor"),
		intensity: rl.GetShaderLocation(shader, "lightIntensity"),
		cutoff:    rl.GetShaderLocation(shader, "lightCutoff"),
		rng:       rl.GetShaderLocation(shader, "lightRange"),
		ambient:   rl.GetShaderLocation(shader, "ambient"),
		viewPos:   rl.GetShaderLocation(shader, "viewPos"),
	}
}

// apply uploads the packed lights, the ambient term and the eye position.
func (u lightUniforms) apply(shader rl.Shader, b lighting.Block, amb lighting.Ambient, eye mgl32.Vec3) {
	n := int32(lighting.MaxLights)
	rl.SetShaderValue(shader, u.count, []float32{b.Count}, rl.ShaderUniformFloat)
	rl.SetShaderValueV(shader, u.kind, b.Kind, rl.ShaderUniformFloat, n)
	rl.SetShaderValueV(shader, u.position, b.Position, rl.ShaderUniformVec3, n)
	rl.SetShaderValueV(shader, u.direction, b.Direction, rl.ShaderUniformVec3, n)
	rl.SetShaderValueV(shader, u.color, b.Color, rl.ShaderUniformVec3, n)
	rl.SetShaderValueV(shader, u.intensity, b.Intensity, rl.ShaderUniformFloat, n)
	rl.SetShaderValueV(shader, u.cutoff, b.CosCutoff, rl.ShaderUniformFloat, n)
	rl.SetShaderValueV(shader, u.rng, b.Range, rl.ShaderUniformFloat, n)

	term := amb.Term()
	rl.SetShaderValue(shader, u.ambient, term[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(shader, u.viewPos, eye[:], rl.ShaderUniformVec3)
}
