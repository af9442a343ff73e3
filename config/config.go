// Package config provides configuration loading and access for the scene.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/arix/layout"
	"github.com/pthm-cable/arix/transition"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all scene configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Headless   HeadlessConfig   `yaml:"headless"`
	Camera     CameraConfig     `yaml:"camera"`
	Scene      SceneConfig      `yaml:"scene"`
	Tree       TreeConfig       `yaml:"tree"`
	Transition TransitionConfig `yaml:"transition"`
	Star       StarConfig       `yaml:"star"`
	Float      FloatConfig      `yaml:"float"`
	Snow       SnowConfig       `yaml:"snow"`
	Starfield  StarfieldConfig  `yaml:"starfield"`
	Lights     LightsConfig     `yaml:"lights"`
	PostFX     PostFXConfig     `yaml:"postfx"`
	UI         UIConfig         `yaml:"ui"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// HeadlessConfig holds settings for runs without a window.
type HeadlessConfig struct {
	DT float64 `yaml:"dt"`
}

// CameraConfig holds orbit camera parameters. Angles are radians.
type CameraConfig struct {
	Position        [3]float64 `yaml:"position"`
	Target          [3]float64 `yaml:"target"`
	Fovy            float64    `yaml:"fovy"`
	AutoRotate      bool       `yaml:"auto_rotate"`
	AutoRotateSpeed float64    `yaml:"auto_rotate_speed"`
	MinPolar        float64    `yaml:"min_polar"`
	MaxPolar        float64    `yaml:"max_polar"`
	MinDistance     float64    `yaml:"min_distance"`
	MaxDistance     float64    `yaml:"max_distance"`
}

// SceneConfig holds global scene settings.
type SceneConfig struct {
	Background string `yaml:"background"`
}

// GroupConfig holds the layout and material of one instanced group.
type GroupConfig struct {
	Count         int      `yaml:"count"`
	Height        float64  `yaml:"height"`
	BaseRadius    float64  `yaml:"base_radius"`
	ScatterRadius float64  `yaml:"scatter_radius"`
	ScaleMin      float64  `yaml:"scale_min"`
	ScaleMax      float64  `yaml:"scale_max"`
	SurfaceFactor float64  `yaml:"surface_factor"` // ornaments and frames
	Loops         float64  `yaml:"loops"`          // spiral
	Palette       []string `yaml:"palette"`

	Roughness         float64 `yaml:"roughness"`
	Metalness         float64 `yaml:"metalness"`
	Emissive          string  `yaml:"emissive"`
	EmissiveIntensity float64 `yaml:"emissive_intensity"`
}

// TreeConfig holds one block per instanced group.
type TreeConfig struct {
	Body      GroupConfig `yaml:"body"`
	Ornaments GroupConfig `yaml:"ornaments"`
	Frames    GroupConfig `yaml:"frames"`
	Spiral    GroupConfig `yaml:"spiral"`
}

// Group returns the block for g.
func (t *TreeConfig) Group(g layout.Group) *GroupConfig {
	switch g {
	case layout.GroupOrnament:
		return &t.Ornaments
	case layout.GroupFrame:
		return &t.Frames
	case layout.GroupSpiral:
		return &t.Spiral
	}
	return &t.Body
}

// TransitionConfig holds the progress smoothing parameters.
type TransitionConfig struct {
	Smoothing    float64 `yaml:"smoothing"`     // approach rate per second
	InitialState string  `yaml:"initial_state"` // "tree" or "scattered"
}

// StarConfig holds the tree-top star parameters.
type StarConfig struct {
	Scatter           [3]float64 `yaml:"scatter"`
	Tree              [3]float64 `yaml:"tree"`
	MinScale          float64    `yaml:"min_scale"`
	MaxScale          float64    `yaml:"max_scale"`
	Spin              float64    `yaml:"spin"` // radians per second
	Depth             float64    `yaml:"depth"`
	Color             string     `yaml:"color"`
	EmissiveIntensity float64    `yaml:"emissive_intensity"`
	LightIntensity    float64    `yaml:"light_intensity"`
	LightDistance     float64    `yaml:"light_distance"`
}

// FloatParams holds one set of hover parameters.
type FloatParams struct {
	Speed             float64 `yaml:"speed"`
	RotationIntensity float64 `yaml:"rotation_intensity"`
	FloatIntensity    float64 `yaml:"float_intensity"`
}

// FloatConfig holds hover parameters per target state.
type FloatConfig struct {
	Tree      FloatParams `yaml:"tree"`
	Scattered FloatParams `yaml:"scattered"`
}

// SnowConfig holds falling snow parameters.
type SnowConfig struct {
	Count   int     `yaml:"count"`
	Extent  float64 `yaml:"extent"`
	Speed   float64 `yaml:"speed"`
	Size    float64 `yaml:"size"`
	Opacity float64 `yaml:"opacity"`
	Color   string  `yaml:"color"`
}

// StarfieldConfig holds background star parameters.
type StarfieldConfig struct {
	Radius     float64 `yaml:"radius"`
	Depth      float64 `yaml:"depth"`
	Count      int     `yaml:"count"`
	Factor     float64 `yaml:"factor"`
	Saturation float64 `yaml:"saturation"`
	Speed      float64 `yaml:"speed"`
}

// LightConfig describes one light. Angle is only used by spot lights.
type LightConfig struct {
	Position  [3]float64 `yaml:"position"`
	Color     string     `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
	Angle     float64    `yaml:"angle"`
}

// LightsConfig holds the scene lights.
type LightsConfig struct {
	Ambient LightConfig `yaml:"ambient"`
	Key     LightConfig `yaml:"key"`
	Fill    LightConfig `yaml:"fill"`
	Rim     LightConfig `yaml:"rim"`
}

// PostFXConfig holds postprocessing parameters.
type PostFXConfig struct {
	Enabled          bool    `yaml:"enabled"`
	BloomThreshold   float64 `yaml:"bloom_threshold"`
	BloomIntensity   float64 `yaml:"bloom_intensity"`
	BloomRadius      float64 `yaml:"bloom_radius"`
	NoiseOpacity     float64 `yaml:"noise_opacity"`
	VignetteOffset   float64 `yaml:"vignette_offset"`
	VignetteDarkness float64 `yaml:"vignette_darkness"`
}

// UIConfig holds overlay text and limits.
type UIConfig struct {
	Title        string   `yaml:"title"`
	TitleFade    float64  `yaml:"title_fade"`
	Credits      []string `yaml:"credits"`
	BodyCountMin int      `yaml:"body_count_min"`
	BodyCountMax int      `yaml:"body_count_max"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // seconds per stats record
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // frames
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32    float32
	ScreenH32    float32
	DT32         float32 // Headless.DT as float32
	Background   layout.Color
	Specs        layout.Specs
	Counts       [layout.NumGroups]int
	InitialState transition.State
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the loaded values. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if _, err := layout.ParseHex(c.Scene.Background); err != nil {
		errs = append(errs, fmt.Errorf("scene.background: %w", err))
	}

	for _, g := range layout.Groups {
		gc := c.Tree.Group(g)
		name := "tree." + g.String()
		if gc.Count < 0 || gc.Count > layout.IDStride {
			errs = append(errs, fmt.Errorf("%s.count: %d outside [0, %d]", name, gc.Count, layout.IDStride))
		}
		if gc.Height <= 0 || gc.BaseRadius <= 0 {
			errs = append(errs, fmt.Errorf("%s: height and base_radius must be positive", name))
		}
		if gc.ScaleMin <= 0 || gc.ScaleMax < gc.ScaleMin {
			errs = append(errs, fmt.Errorf("%s: scale range [%g, %g] invalid", name, gc.ScaleMin, gc.ScaleMax))
		}
		if len(gc.Palette) == 0 {
			errs = append(errs, fmt.Errorf("%s.palette: empty", name))
		}
		for i, hex := range gc.Palette {
			if _, err := layout.ParseHex(hex); err != nil {
				errs = append(errs, fmt.Errorf("%s.palette[%d]: %w", name, i, err))
			}
		}
		if gc.Emissive != "" {
			if _, err := layout.ParseHex(gc.Emissive); err != nil {
				errs = append(errs, fmt.Errorf("%s.emissive: %w", name, err))
			}
		}
	}

	if c.Transition.Smoothing <= 0 {
		errs = append(errs, fmt.Errorf("transition.smoothing: must be positive, got %g", c.Transition.Smoothing))
	}
	if _, err := transition.ParseState(c.Transition.InitialState); err != nil {
		errs = append(errs, fmt.Errorf("transition.initial_state: %w", err))
	}

	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance < c.Camera.MinDistance {
		errs = append(errs, errors.New("camera: distance limits invalid"))
	}
	if c.Camera.MaxPolar < c.Camera.MinPolar {
		errs = append(errs, errors.New("camera: polar limits invalid"))
	}
	if c.Snow.Count < 0 || c.Starfield.Count < 0 {
		errs = append(errs, errors.New("snow and starfield counts must not be negative"))
	}
	if c.Headless.DT <= 0 {
		errs = append(errs, fmt.Errorf("headless.dt: must be positive, got %g", c.Headless.DT))
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
// Validate must have succeeded first.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.DT32 = float32(c.Headless.DT)
	c.Derived.Background = layout.MustParseHex(c.Scene.Background)
	c.Derived.InitialState, _ = transition.ParseState(c.Transition.InitialState)

	for _, g := range layout.Groups {
		c.Derived.Specs[g] = c.GroupSpec(g)
		c.Derived.Counts[g] = c.Tree.Group(g).Count
	}
}

// GroupSpec converts a group block into layout parameters.
func (c *Config) GroupSpec(g layout.Group) layout.Spec {
	gc := c.Tree.Group(g)
	palette := make(layout.Palette, 0, len(gc.Palette))
	for _, hex := range gc.Palette {
		if col, err := layout.ParseHex(hex); err == nil {
			palette = append(palette, col)
		}
	}
	return layout.Spec{
		Height:        float32(gc.Height),
		BaseRadius:    float32(gc.BaseRadius),
		ScatterRadius: float32(gc.ScatterRadius),
		ScaleMin:      float32(gc.ScaleMin),
		ScaleMax:      float32(gc.ScaleMax),
		SurfaceFactor: float32(gc.SurfaceFactor),
		Loops:         float32(gc.Loops),
		Palette:       palette,
	}
}

// FloatFor returns the hover parameters for the target state.
func (c *Config) FloatFor(s transition.State) FloatParams {
	if s == transition.TreeShape {
		return c.Float.Tree
	}
	return c.Float.Scattered
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
