package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/arix/camera"
	"github.com/pthm-cable/arix/config"
	"github.com/pthm-cable/arix/renderer/lighting"
	"github.com/pthm-cable/arix/systems"
)

// Scene is everything the composer needs for one frame.
type Scene struct {
	Camera    *camera.Orbit
	Batches   []systems.Batch
	Star      mgl32.Mat4 // star model matrix, group float included
	Snow      *systems.Snowfall
	Starfield *systems.Starfield
	Elapsed   float32
}

// Composer wraps the tree with lights, background, snow and postprocessing.
type Composer struct {
	cfg        *config.Config
	background color.RGBA

	tree    *TreeRenderer
	star    *StarRenderer
	ambient *AmbientRenderer
	postfx  *PostFX

	ambientLight lighting.Ambient
	lights       []lighting.Light // static lights; the star light is appended per frame
	frameLights  []lighting.Light

	initialized bool
}

// NewComposer creates a composer for the given window size.
func NewComposer(cfg *config.Config, screenW, screenH int32) *Composer {
	amb, lights := lighting.FromConfig(cfg.Lights)
	return &Composer{
		cfg:          cfg,
		background:   toRGBA(cfg.Derived.Background, 255),
		tree:         NewTreeRenderer(),
		star:         NewStarRenderer(cfg.Star),
		ambient:      NewAmbientRenderer(),
		postfx:       NewPostFX(screenW, screenH, cfg.PostFX),
		ambientLight: amb,
		lights:       lights,
	}
}

// Init loads GPU resources (must be called after the raylib window is created).
func (c *Composer) Init(stars *systems.Starfield) {
	if c.initialized {
		return
	}
	c.tree.Init(c.cfg)
	c.ambient.Init(c.cfg, stars)
	if c.cfg.PostFX.Enabled {
		c.postfx.Init()
	}
	c.initialized = true
}

// Draw renders the frame. UI is drawn by the caller afterwards, outside the
// postprocessing pass.
func (c *Composer) Draw(s Scene) {
	if !c.initialized {
		return
	}

	starPos := s.Star.Col(3).Vec3()
	c.frameLights = append(c.frameLights[:0], c.lights...)
	c.frameLights = append(c.frameLights, lighting.StarLight(starPos, c.cfg.Star))
	c.tree.SetLights(lighting.Pack(c.frameLights), c.ambientLight, s.Camera.Position())

	post := c.cfg.PostFX.Enabled
	if post {
		c.postfx.Begin()
	}

	rl.ClearBackground(c.background)
	rl.BeginMode3D(Camera3D(s.Camera))
	c.ambient.DrawStarfield(s.Starfield, s.Elapsed)
	c.tree.Draw(s.Batches)
	c.star.Draw(s.Star)
	c.ambient.DrawSnow(s.Snow)
	rl.EndMode3D()

	if post {
		c.postfx.End()
		rl.ClearBackground(c.background)
		c.postfx.Draw(s.Elapsed)
	}
}

// Resize adapts size-dependent resources to a new window size.
func (c *Composer) Resize(w, h int32) {
	c.postfx.Resize(w, h)
}

// Unload frees GPU resources.
func (c *Composer) Unload() {
	if !c.initialized {
		return
	}
	c.tree.Unload()
	c.ambient.Unload()
	c.postfx.Unload()
	c.initialized = false
}
