// Package scene owns the per-tick state of the tree: the particle store, the
// transition controller, the star, the hover motion, the snow, the starfield
// and the orbit camera. It has no window dependency; the game package drives
// it and hands its output to the renderer.
package scene

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/arix/animate"
	"github.com/pthm-cable/arix/camera"
	"github.com/pthm-cable/arix/config"
	"github.com/pthm-cable/arix/layout"
	"github.com/pthm-cable/arix/systems"
	"github.com/pthm-cable/arix/transition"
)

// Tree is the complete animated scene.
type Tree struct {
	cfg *config.Config

	world      *ecs.World
	generator  *layout.Generator
	instances  *systems.Instances
	controller *transition.Controller

	starPath animate.StarPath
	Snow     *systems.Snowfall
	Stars    *systems.Starfield
	Camera   *camera.Orbit

	elapsed float32
	frame   animate.Frame
	float   animate.Transform
	star    animate.Transform

	floatOffset float32
}

// floatPhaseRange bounds the random hover time offset, in seconds.
const floatPhaseRange = 10000

// New builds the scene from config. All randomness comes from rng.
func New(cfg *config.Config, rng *rand.Rand) *Tree {
	world := ecs.NewWorld()
	t := &Tree{
		cfg:        cfg,
		world:      world,
		generator:  layout.NewGenerator(rng, cfg.Derived.Specs),
		instances:  systems.NewInstances(world),
		controller: transition.NewController(cfg.Derived.InitialState, float32(cfg.Transition.Smoothing)),
		starPath:   starPath(cfg.Star),
		Snow:       systems.NewSnowfall(rng, cfg.Snow.Count, float32(cfg.Snow.Extent), float32(cfg.Snow.Speed)),
		Stars: systems.NewStarfield(rng, systems.StarfieldParams{
			Radius:     float32(cfg.Starfield.Radius),
			Depth:      float32(cfg.Starfield.Depth),
			Count:      cfg.Starfield.Count,
			Factor:     float32(cfg.Starfield.Factor),
			Saturation: cfg.Starfield.Saturation,
			Speed:      float32(cfg.Starfield.Speed),
		}),
		Camera: camera.New(cameraParams(cfg.Camera)),
		float:  animate.Identity(),
	}

	for _, g := range layout.Groups {
		t.instances.Spawn(g, t.generator.Generate(g, cfg.Derived.Counts[g]))
	}
	t.star = t.starPath.At(t.frame)
	// Drawn last so the layouts do not depend on it.
	t.floatOffset = float32(rng.Float64() * floatPhaseRange)
	return t
}

func starPath(c config.StarConfig) animate.StarPath {
	return animate.StarPath{
		Scatter:  vec3(c.Scatter),
		Tree:     vec3(c.Tree),
		MinScale: float32(c.MinScale),
		MaxScale: float32(c.MaxScale),
		Spin:     float32(c.Spin),
	}
}

func cameraParams(c config.CameraConfig) camera.Params {
	return camera.Params{
		Position:        vec3(c.Position),
		Target:          vec3(c.Target),
		Fovy:            float32(c.Fovy),
		AutoRotate:      c.AutoRotate,
		AutoRotateSpeed: float32(c.AutoRotateSpeed),
		MinPolar:        float32(c.MinPolar),
		MaxPolar:        float32(c.MaxPolar),
		MinDistance:     float32(c.MinDistance),
		MaxDistance:     float32(c.MaxDistance),
	}
}

func vec3(a [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(a[0]), float32(a[1]), float32(a[2])}
}

// Step runs one full tick.
func (t *Tree) Step(dt float32) {
	t.StepTransition(dt)
	t.StepInstances()
	t.StepAmbient(dt)
}

// StepTransition advances time and the transition progress. It must run
// before StepInstances in the same tick.
func (t *Tree) StepTransition(dt float32) {
	if dt < 0 {
		dt = 0
	}
	t.elapsed += dt
	t.frame = animate.Frame{
		Progress: t.controller.Update(dt),
		Elapsed:  t.elapsed,
	}
}

// StepInstances recomputes every particle placement for the current frame.
func (t *Tree) StepInstances() {
	t.instances.Update(t.frame)
}

// StepAmbient moves the star, the hover motion, the snow and the camera.
func (t *Tree) StepAmbient(dt float32) {
	t.star = t.starPath.At(t.frame)

	fp := t.cfg.FloatFor(t.controller.State())
	t.float = animate.Float{
		Speed:             float32(fp.Speed),
		RotationIntensity: float32(fp.RotationIntensity),
		FloatIntensity:    float32(fp.FloatIntensity),
		Offset:            t.floatOffset,
	}.At(t.elapsed)

	t.Snow.Update(dt)
	t.Camera.Update(dt)
}

// Toggle flips the requested state and returns it.
func (t *Tree) Toggle() transition.State {
	return t.controller.Toggle()
}

// SetState requests a state directly.
func (t *Tree) SetState(s transition.State) {
	t.controller.SetState(s)
}

// SetGroupCount regenerates a group with n particles. The other groups keep
// their descriptors.
func (t *Tree) SetGroupCount(g layout.Group, n int) error {
	if n < 0 || n > layout.IDStride {
		return fmt.Errorf("%s count %d outside [0, %d]", g, n, layout.IDStride)
	}
	t.instances.Spawn(g, t.generator.Generate(g, n))
	t.instances.Update(t.frame)
	return nil
}

// Progress returns the current transition progress.
func (t *Tree) Progress() float32 { return t.controller.Progress() }

// State returns the requested state.
func (t *Tree) State() transition.State { return t.controller.State() }

// Elapsed returns the scene time in seconds.
func (t *Tree) Elapsed() float32 { return t.elapsed }

// Count returns the particle count of a group.
func (t *Tree) Count(g layout.Group) int { return t.instances.Count(g) }

// Total returns the number of instanced particles.
func (t *Tree) Total() int { return t.instances.Total() }

// Descriptors returns a group's descriptors in slot order.
func (t *Tree) Descriptors(g layout.Group) []layout.Descriptor {
	return t.instances.Descriptors(g)
}

// Placements returns a group's placements in slot order, without the hover
// transform.
func (t *Tree) Placements(g layout.Group) []animate.Transform {
	pls := t.instances.Placements(g)
	out := make([]animate.Transform, len(pls))
	for i, pl := range pls {
		out[i] = pl.Transform
	}
	return out
}

// GroupMatrix is the hover transform shared by the tree and the star.
func (t *Tree) GroupMatrix() mgl32.Mat4 {
	return t.float.Matrix()
}

// StarMatrix returns the star model matrix including the hover transform.
func (t *Tree) StarMatrix() mgl32.Mat4 {
	return t.GroupMatrix().Mul4(t.star.Matrix())
}

// Collect fills batches with the instance matrices of every group, hover
// transform applied. batches is resized to one entry per group.
func (t *Tree) Collect(batches []systems.Batch) []systems.Batch {
	if len(batches) != layout.NumGroups {
		batches = make([]systems.Batch, layout.NumGroups)
	}
	parent := t.GroupMatrix()
	for i, g := range layout.Groups {
		t.instances.Collect(g, parent, &batches[i])
	}
	return batches
}
