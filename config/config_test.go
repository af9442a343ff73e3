package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/arix/layout"
	"github.com/pthm-cable/arix/transition"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestDefaultsMatchLayout(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	want := layout.DefaultSpecs()
	for _, g := range layout.Groups {
		got := cfg.Derived.Specs[g]
		w := want[g]
		if got.Height != w.Height || got.BaseRadius != w.BaseRadius || got.ScatterRadius != w.ScatterRadius {
			t.Errorf("%v: shape %+v, want %+v", g, got, w)
		}
		if got.ScaleMin != w.ScaleMin || got.ScaleMax != w.ScaleMax {
			t.Errorf("%v: scale [%f,%f], want [%f,%f]", g, got.ScaleMin, got.ScaleMax, w.ScaleMin, w.ScaleMax)
		}
		if got.SurfaceFactor != w.SurfaceFactor || got.Loops != w.Loops {
			t.Errorf("%v: surface/loops %f/%f, want %f/%f", g, got.SurfaceFactor, got.Loops, w.SurfaceFactor, w.Loops)
		}
		if len(got.Palette) != len(w.Palette) {
			t.Fatalf("%v: palette length %d, want %d", g, len(got.Palette), len(w.Palette))
		}
		for i := range w.Palette {
			if got.Palette[i] != w.Palette[i] {
				t.Errorf("%v: palette[%d] = %s, want %s", g, i, got.Palette[i].Hex(), w.Palette[i].Hex())
			}
		}
	}
}

func TestDefaultCounts(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	tests := []struct {
		group layout.Group
		want  int
	}{
		{layout.GroupBody, 4500},
		{layout.GroupOrnament, 150},
		{layout.GroupFrame, 25},
		{layout.GroupSpiral, 200},
	}
	for _, tt := range tests {
		if got := cfg.Derived.Counts[tt.group]; got != tt.want {
			t.Errorf("%v count = %d, want %d", tt.group, got, tt.want)
		}
	}

	if cfg.Derived.InitialState != transition.TreeShape {
		t.Errorf("expected initial state tree, got %v", cfg.Derived.InitialState)
	}
	if cfg.Derived.Background != (layout.Color{R: 0x00, G: 0x05, B: 0x08}) {
		t.Errorf("unexpected background %s", cfg.Derived.Background.Hex())
	}
}

func TestUserOverridesMerge(t *testing.T) {
	path := writeConfig(t, `
tree:
  body:
    count: 100
transition:
  initial_state: scattered
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}

	if cfg.Derived.Counts[layout.GroupBody] != 100 {
		t.Errorf("expected overridden body count 100, got %d", cfg.Derived.Counts[layout.GroupBody])
	}
	// Untouched keys keep their defaults
	if cfg.Tree.Body.Height != 16 {
		t.Errorf("expected default body height 16, got %f", cfg.Tree.Body.Height)
	}
	if cfg.Derived.Counts[layout.GroupSpiral] != 200 {
		t.Errorf("expected default spiral count, got %d", cfg.Derived.Counts[layout.GroupSpiral])
	}
	if cfg.Derived.InitialState != transition.Scattered {
		t.Errorf("expected scattered initial state, got %v", cfg.Derived.InitialState)
	}
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad palette", "tree:\n  ornaments:\n    palette: [\"#zzzzzz\"]\n", "tree.ornament.palette[0]"},
		{"empty palette", "tree:\n  spiral:\n    palette: []\n", "tree.spiral.palette"},
		{"negative count", "tree:\n  frames:\n    count: -1\n", "tree.frame.count"},
		{"count overflows id range", "tree:\n  body:\n    count: 10001\n", "tree.body.count"},
		{"zero smoothing", "transition:\n  smoothing: 0\n", "transition.smoothing"},
		{"unknown state", "transition:\n  initial_state: sideways\n", "transition.initial_state"},
		{"inverted scale", "tree:\n  body:\n    scale_min: 0.9\n    scale_max: 0.4\n", "scale range"},
		{"bad background", "scene:\n  background: black\n", "scene.background"},
		{"camera limits", "camera:\n  min_distance: 40\n", "camera"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFloatFor(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	tree := cfg.FloatFor(transition.TreeShape)
	if tree.Speed != 0.5 || tree.RotationIntensity != 0.1 || tree.FloatIntensity != 0.2 {
		t.Errorf("unexpected tree float params %+v", tree)
	}
	sc := cfg.FloatFor(transition.Scattered)
	if sc.Speed != 0.2 || sc.RotationIntensity != 0.5 || sc.FloatIntensity != 0.5 {
		t.Errorf("unexpected scattered float params %+v", sc)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Tree.Ornaments.Count = 77

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if again.Derived.Counts[layout.GroupOrnament] != 77 {
		t.Errorf("expected 77 ornaments after roundtrip, got %d", again.Derived.Counts[layout.GroupOrnament])
	}
}

func TestMustInitAndCfg(t *testing.T) {
	MustInit("")
	if Cfg().Screen.Title != "Merry Christmas" {
		t.Errorf("unexpected title %q", Cfg().Screen.Title)
	}
}
