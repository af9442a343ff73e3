package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/arix/config"
	"github.com/pthm-cable/arix/layout"
	"github.com/pthm-cable/arix/transition"
)

func newTestTree(t *testing.T) *Tree {
	t.Helper()
	return newSeededTree(t, 42)
}

func newSeededTree(t *testing.T, seed int64) *Tree {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Derived.Counts = [layout.NumGroups]int{
		layout.GroupBody:     200,
		layout.GroupOrnament: 20,
		layout.GroupSpiral:   30,
		layout.GroupFrame:    5,
	}
	cfg.Derived.InitialState = transition.TreeShape
	cfg.Snow.Count = 50
	cfg.Starfield.Count = 100
	return New(cfg, rand.New(rand.NewSource(seed)))
}

func approx(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

// ---------- Construction ----------

func TestNewSpawnsConfiguredCounts(t *testing.T) {
	tree := newTestTree(t)

	want := map[layout.Group]int{
		layout.GroupBody:     200,
		layout.GroupOrnament: 20,
		layout.GroupSpiral:   30,
		layout.GroupFrame:    5,
	}
	for g, n := range want {
		if got := tree.Count(g); got != n {
			t.Errorf("%s: expected %d particles, got %d", g, n, got)
		}
	}
	if tree.Total() != 255 {
		t.Errorf("expected total 255, got %d", tree.Total())
	}
	if len(tree.Snow.Flakes) != 50 {
		t.Errorf("expected 50 flakes, got %d", len(tree.Snow.Flakes))
	}
	if tree.Progress() != 0 {
		t.Errorf("expected to start scattered, got progress %v", tree.Progress())
	}
}

// ---------- Transition ----------

func TestStepConvergesToTree(t *testing.T) {
	tree := newTestTree(t)

	prev := tree.Progress()
	for i := 0; i < 1000; i++ {
		tree.Step(1.0 / 60)
		if tree.Progress() < prev {
			t.Fatalf("progress decreased at tick %d", i)
		}
		prev = tree.Progress()
	}
	if !approx(tree.Progress(), 1, 1e-3) {
		t.Errorf("expected progress near 1 after 1000 ticks, got %v", tree.Progress())
	}

	// Assembled body particles sit on their tree positions.
	descs := tree.Descriptors(layout.GroupBody)
	pls := tree.Placements(layout.GroupBody)
	for i := range descs {
		if d := pls[i].Position.Sub(descs[i].TreePosition).Len(); d > 0.05 {
			t.Fatalf("body %d is %v away from its tree position", i, d)
		}
	}
}

func TestToggleReverses(t *testing.T) {
	tree := newTestTree(t)
	for i := 0; i < 600; i++ {
		tree.Step(1.0 / 60)
	}
	high := tree.Progress()

	if s := tree.Toggle(); s != transition.Scattered {
		t.Fatalf("expected scattered after toggle, got %v", s)
	}
	tree.Step(1.0 / 60)
	if tree.Progress() >= high {
		t.Errorf("expected progress to fall after toggle, %v -> %v", high, tree.Progress())
	}

	for i := 0; i < 1000; i++ {
		tree.Step(1.0 / 60)
	}
	if !approx(tree.Progress(), 0, 1e-3) {
		t.Errorf("expected progress near 0, got %v", tree.Progress())
	}
}

func TestInstancesSeeCurrentProgress(t *testing.T) {
	tree := newTestTree(t)
	tree.StepTransition(0.5)
	tree.StepInstances()

	p := tree.Progress()
	d := tree.Descriptors(layout.GroupFrame)[0]
	got := tree.Placements(layout.GroupFrame)[0].Position
	want := d.ScatterPosition.Add(d.TreePosition.Sub(d.ScatterPosition).Mul(p))
	if got.Sub(want).Len() > 0.06 {
		t.Errorf("frame placement %v does not match progress %v (want ~%v)", got, p, want)
	}
}

func TestNegativeDtIgnored(t *testing.T) {
	tree := newTestTree(t)
	tree.Step(-1)
	if tree.Elapsed() != 0 || tree.Progress() != 0 {
		t.Errorf("negative dt advanced the scene: elapsed %v progress %v", tree.Elapsed(), tree.Progress())
	}
}

// ---------- Group counts ----------

func TestSetGroupCount(t *testing.T) {
	tree := newTestTree(t)
	ornaments := tree.Descriptors(layout.GroupOrnament)

	if err := tree.SetGroupCount(layout.GroupBody, 80); err != nil {
		t.Fatalf("SetGroupCount: %v", err)
	}
	if tree.Count(layout.GroupBody) != 80 {
		t.Errorf("expected 80 body particles, got %d", tree.Count(layout.GroupBody))
	}
	if tree.Total() != 135 {
		t.Errorf("expected total 135, got %d", tree.Total())
	}

	after := tree.Descriptors(layout.GroupOrnament)
	for i := range ornaments {
		if ornaments[i] != after[i] {
			t.Fatalf("ornament %d changed when body was regenerated", i)
		}
	}
}

func TestSetGroupCountRejectsOutOfRange(t *testing.T) {
	tree := newTestTree(t)
	tests := []struct {
		name string
		n    int
	}{
		{"negative", -1},
		{"above stride", layout.IDStride + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tree.SetGroupCount(layout.GroupBody, tt.n); err == nil {
				t.Error("expected error")
			}
			if tree.Count(layout.GroupBody) != 200 {
				t.Errorf("count changed to %d", tree.Count(layout.GroupBody))
			}
		})
	}
}

// ---------- Matrices ----------

func TestCollectAppliesGroupMatrix(t *testing.T) {
	tree := newTestTree(t)
	for i := 0; i < 90; i++ {
		tree.Step(1.0 / 60)
	}

	batches := tree.Collect(nil)
	if len(batches) != layout.NumGroups {
		t.Fatalf("expected %d batches, got %d", layout.NumGroups, len(batches))
	}

	parent := tree.GroupMatrix()
	frame := tree.Placements(layout.GroupFrame)[0]
	want := parent.Mul4(frame.Matrix())

	var found bool
	for _, b := range batches {
		if b.Group != layout.GroupFrame {
			continue
		}
		for _, bucket := range b.Buckets {
			for _, m := range bucket {
				if matNear(m, want, 1e-4) {
					found = true
				}
			}
		}
	}
	if !found {
		t.Error("first frame matrix not found in its batch")
	}

	// Reusing the slice keeps its length.
	again := tree.Collect(batches)
	if len(again) != layout.NumGroups {
		t.Errorf("expected reused batches, got %d", len(again))
	}
}

func TestStarMatrixFollowsProgress(t *testing.T) {
	tree := newTestTree(t)
	tree.StepAmbient(0)
	low := tree.StarMatrix().Col(3).Vec3()

	for i := 0; i < 1000; i++ {
		tree.Step(1.0 / 60)
	}
	high := tree.StarMatrix().Col(3).Vec3()

	if low.Y() <= high.Y() {
		t.Errorf("star should descend onto the apex: scattered y %v, tree y %v", low.Y(), high.Y())
	}
	scale := tree.StarMatrix().Col(0).Vec3().Len()
	if !approx(scale, float32(tree.cfg.Star.MaxScale), 0.01) {
		t.Errorf("expected assembled star scale %v, got %v", tree.cfg.Star.MaxScale, scale)
	}
}

func TestHoverPhaseFollowsSeed(t *testing.T) {
	a := newSeededTree(t, 42)
	b := newSeededTree(t, 42)
	c := newSeededTree(t, 7)
	for _, tree := range []*Tree{a, b, c} {
		tree.Step(1.0 / 60)
	}

	if !matNear(a.GroupMatrix(), b.GroupMatrix(), 0) {
		t.Error("same seed should give the same hover transform")
	}
	if matNear(a.GroupMatrix(), c.GroupMatrix(), 1e-6) {
		t.Error("different seeds should start the hover at different phases")
	}
	if a.floatOffset < 0 || a.floatOffset >= floatPhaseRange {
		t.Errorf("hover offset %v outside [0, %d)", a.floatOffset, floatPhaseRange)
	}
}

func TestGroupMatrixIsRigid(t *testing.T) {
	tree := newTestTree(t)
	for i := 0; i < 200; i++ {
		tree.Step(1.0 / 60)
		m := tree.GroupMatrix()
		for c := 0; c < 3; c++ {
			if l := m.Col(c).Vec3().Len(); !approx(l, 1, 1e-4) {
				t.Fatalf("hover transform scales column %d by %v", c, l)
			}
		}
	}
}

func matNear(a, b mgl32.Mat4, tol float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > tol || d < -tol {
			return false
		}
	}
	return true
}
