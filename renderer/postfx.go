package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arix/config"
	"github.com/pthm-cable/arix/renderer/lighting"
)

// bloomTaps must match BLOOM_TAPS in shaders/postfx.fs.
const bloomTaps = 5

// PostFX renders the scene into an offscreen target and composites it to the
// screen with bloom, film noise and a vignette.
type PostFX struct {
	target rl.RenderTexture2D
	shader rl.Shader

	resolutionLoc int32
	timeLoc       int32

	params config.PostFXConfig

	screenW, screenH int32
	initialized      bool
}

// NewPostFX creates a postprocessing pass.
func NewPostFX(screenW, screenH int32, params config.PostFXConfig) *PostFX {
	return &PostFX{screenW: screenW, screenH: screenH, params: params}
}

// Init allocates the render target and loads the shader. The effect
// parameters are static and uploaded once.
func (p *PostFX) Init() {
	if p.initialized {
		return
	}

	p.target = rl.LoadRenderTexture(p.screenW, p.screenH)
	p.shader = rl.LoadShader("", "shaders/postfx.fs")
	p.resolutionLoc = rl.GetShaderLocation(p.shader, "resolution")
	p.timeLoc = rl.GetShaderLocation(p.shader, "time")

	set := func(name string, v float32) {
		rl.SetShaderValue(p.shader, rl.GetShaderLocation(p.shader, name), []float32{v}, rl.ShaderUniformFloat)
	}
	set("bloomThreshold", float32(p.params.BloomThreshold))
	set("bloomIntensity", float32(p.params.BloomIntensity))
	set("bloomSpread", 1+float32(p.params.BloomRadius)*8)
	set("noiseOpacity", float32(p.params.NoiseOpacity))
	set("vignetteOffset", float32(p.params.VignetteOffset))
	set("vignetteDarkness", float32(p.params.VignetteDarkness))

	weights := lighting.BloomWeights(float32(p.params.BloomRadius), bloomTaps)
	rl.SetShaderValueV(p.shader, rl.GetShaderLocation(p.shader, "bloomWeights"), weights, rl.ShaderUniformFloat, bloomTaps)

	p.uploadResolution()
	p.initialized = true
}

func (p *PostFX) uploadResolution() {
	resolution := []float32{float32(p.screenW), float32(p.screenH)}
	rl.SetShaderValue(p.shader, p.resolutionLoc, resolution, rl.ShaderUniformVec2)
}

// Begin redirects drawing into the offscreen target.
func (p *PostFX) Begin() {
	rl.BeginTextureMode(p.target)
}

// End stops drawing into the offscreen target.
func (p *PostFX) End() {
	rl.EndTextureMode()
}

// Draw composites the offscreen target to the current framebuffer.
func (p *PostFX) Draw(time float32) {
	if !p.initialized {
		return
	}
	rl.SetShaderValue(p.shader, p.timeLoc, []float32{time}, rl.ShaderUniformFloat)

	rl.BeginShaderMode(p.shader)
	// Render textures are stored upside down.
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(p.target.Texture.Width), Height: -float32(p.target.Texture.Height)}
	rl.DrawTextureRec(p.target.Texture, src, rl.Vector2{}, rl.White)
	rl.EndShaderMode()
}

// Resize reallocates the render target for a new window size.
func (p *PostFX) Resize(w, h int32) {
	p.screenW, p.screenH = w, h
	if !p.initialized {
		return
	}
	rl.UnloadRenderTexture(p.target)
	p.target = rl.LoadRenderTexture(w, h)
	p.uploadResolution()
}

// Unload frees resources.
func (p *PostFX) Unload() {
	if !p.initialized {
		return
	}
	rl.UnloadRenderTexture(p.target)
	rl.UnloadShader(p.shader)
	p.initialized = false
}
