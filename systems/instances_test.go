package systems

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/arix/animate"
	"github.com/pthm-cable/arix/layout"
)

func newTestInstances(t *testing.T) (*Instances, *layout.Generator) {
	t.Helper()
	world := ecs.NewWorld()
	gen := layout.NewGenerator(rand.New(rand.NewSource(7)), layout.DefaultSpecs())
	return NewInstances(world), gen
}

// ---------- Spawn ----------

func TestInstancesSpawnCounts(t *testing.T) {
	inst, gen := newTestInstances(t)

	inst.Spawn(layout.GroupBody, gen.Generate(layout.GroupBody, 120))
	inst.Spawn(layout.GroupSpiral, gen.Generate(layout.GroupSpiral, 30))

	if got := inst.Count(layout.GroupBody); got != 120 {
		t.Errorf("expected 120 body particles, got %d", got)
	}
	if got := inst.Count(layout.GroupSpiral); got != 30 {
		t.Errorf("expected 30 spiral particles, got %d", got)
	}
	if got := inst.Count(layout.GroupOrnament); got != 0 {
		t.Errorf("expected no ornaments, got %d", got)
	}
	if got := inst.Total(); got != 150 {
		t.Errorf("expected total 150, got %d", got)
	}
}

func TestInstancesSpawnReplacesGroup(t *testing.T) {
	inst, gen := newTestInstances(t)

	inst.Spawn(layout.GroupBody, gen.Generate(layout.GroupBody, 50))
	inst.Spawn(layout.GroupFrame, gen.Generate(layout.GroupFrame, 10))

	fresh := gen.Generate(layout.GroupBody, 20)
	inst.Spawn(layout.GroupBody, fresh)

	if got := inst.Count(layout.GroupBody); got != 20 {
		t.Fatalf("expected 20 body particles after second spawn, got %d", got)
	}
	if got := inst.Count(layout.GroupFrame); got != 10 {
		t.Errorf("spawn touched another group: %d frames", got)
	}

	descs := inst.Descriptors(layout.GroupBody)
	for i := range fresh {
		if descs[i] != fresh[i] {
			t.Fatalf("slot %d holds %+v, want %+v", i, descs[i], fresh[i])
		}
	}
}

func TestInstancesSpawnTwiceKeepsIDsUnique(t *testing.T) {
	inst, gen := newTestInstances(t)

	inst.Spawn(layout.GroupSpiral, gen.Generate(layout.GroupSpiral, 40))
	inst.Spawn(layout.GroupSpiral, gen.Generate(layout.GroupSpiral, 25))

	entities := 0
	seen := make(map[int]bool)
	query := inst.filter.Query()
	for query.Next() {
		p, _ := query.Get()
		if p.Group != layout.GroupSpiral {
			continue
		}
		entities++
		if seen[p.Desc.ID] {
			t.Errorf("duplicate id %d", p.Desc.ID)
		}
		seen[p.Desc.ID] = true
		if p.Index >= 25 {
			t.Errorf("slot %d past the new group size", p.Index)
		}
	}
	if entities != 25 || inst.Count(layout.GroupSpiral) != 25 {
		t.Errorf("expected 25 spiral entities, got %d (count %d)", entities, inst.Count(layout.GroupSpiral))
	}
}

func TestInstancesSpawnEmpty(t *testing.T) {
	inst, gen := newTestInstances(t)
	inst.Spawn(layout.GroupOrnament, gen.Generate(layout.GroupOrnament, 15))

	inst.Spawn(layout.GroupOrnament, nil)
	if got := inst.Count(layout.GroupOrnament); got != 0 {
		t.Errorf("expected empty group, got %d", got)
	}

	var b Batch
	inst.Collect(layout.GroupOrnament, mgl32.Ident4(), &b)
	for i, bucket := range b.Buckets {
		if len(bucket) != 0 {
			t.Errorf("bucket %d should be empty, has %d", i, len(bucket))
		}
	}
}

// ---------- Update ----------

func TestInstancesUpdateMatchesAnimate(t *testing.T) {
	inst, gen := newTestInstances(t)

	spiral := gen.Generate(layout.GroupSpiral, 40)
	body := gen.Generate(layout.GroupBody, 40)
	inst.Spawn(layout.GroupSpiral, spiral)
	inst.Spawn(layout.GroupBody, body)

	f := animate.Frame{Progress: 0.35, Elapsed: 2.5}
	inst.Update(f)

	sp := inst.Placements(layout.GroupSpiral)
	for i := range spiral {
		want := animate.Instance(&spiral[i], i, f, true)
		if sp[i].Transform != want {
			t.Fatalf("spiral %d: got %+v, want %+v", i, sp[i].Transform, want)
		}
	}

	bp := inst.Placements(layout.GroupBody)
	for i := range body {
		want := animate.Instance(&body[i], i, f, false)
		if bp[i].Transform != want {
			t.Fatalf("body %d: got %+v, want %+v", i, bp[i].Transform, want)
		}
		if bp[i].Scale != body[i].Scale {
			t.Fatalf("body %d should not pulse", i)
		}
	}
}

func TestInstancesUpdateLeavesDescriptors(t *testing.T) {
	inst, gen := newTestInstances(t)

	orig := gen.Generate(layout.GroupOrnament, 25)
	inst.Spawn(layout.GroupOrnament, orig)

	for tick := 0; tick < 60; tick++ {
		inst.Update(animate.Frame{Progress: float32(tick) / 60, Elapsed: float32(tick) / 60})
	}

	got := inst.Descriptors(layout.GroupOrnament)
	for i := range orig {
		if got[i] != orig[i] {
			t.Fatalf("descriptor %d changed during updates", i)
		}
	}
}

// ---------- Collect ----------

func TestInstancesCollectBuckets(t *testing.T) {
	inst, gen := newTestInstances(t)

	descs := gen.Generate(layout.GroupBody, 200)
	inst.Spawn(layout.GroupBody, descs)
	f := animate.Frame{Progress: 1, Elapsed: 0}
	inst.Update(f)

	var b Batch
	inst.Collect(layout.GroupBody, mgl32.Ident4(), &b)

	if b.Group != layout.GroupBody {
		t.Errorf("expected body batch, got %v", b.Group)
	}

	total := 0
	for _, bucket := range b.Buckets {
		total += len(bucket)
	}
	if total != len(descs) {
		t.Fatalf("expected %d matrices, got %d", len(descs), total)
	}

	// Each bucket lists its particles in slot order.
	next := make([]int, len(b.Buckets))
	for i := range descs {
		pi := descs[i].PaletteIndex
		want := animate.Instance(&descs[i], i, f, false).Matrix()
		got := b.Buckets[pi][next[pi]]
		if !matNear(got, want, 1e-5) {
			t.Fatalf("particle %d: bucket %d entry %d mismatch", i, pi, next[pi])
		}
		next[pi]++
	}
}

func TestInstancesCollectAppliesParent(t *testing.T) {
	inst, gen := newTestInstances(t)
	inst.Spawn(layout.GroupFrame, gen.Generate(layout.GroupFrame, 5))
	inst.Update(animate.Frame{Progress: 1})

	var plain, lifted Batch
	inst.Collect(layout.GroupFrame, mgl32.Ident4(), &plain)
	inst.Collect(layout.GroupFrame, mgl32.Translate3D(0, 2, 0), &lifted)

	for i := range plain.Buckets[0] {
		a := plain.Buckets[0][i].Col(3)
		b := lifted.Buckets[0][i].Col(3)
		if d := b.Y() - a.Y(); d < 1.9999 || d > 2.0001 {
			t.Errorf("frame %d: expected +2 y offset, got %f", i, d)
		}
	}

	// Reusing the batch must not accumulate.
	inst.Collect(layout.GroupFrame, mgl32.Ident4(), &lifted)
	if len(lifted.Buckets[0]) != 5 {
		t.Errorf("expected 5 matrices after reuse, got %d", len(lifted.Buckets[0]))
	}
}

// ---------- Registry ----------

func TestRegistryPhases(t *testing.T) {
	reg := NewSystemRegistry()
	ids := reg.IDs()
	want := []string{PhaseTransition, PhaseInstances, PhaseAmbient, PhaseRender}
	if len(ids) != len(want) {
		t.Fatalf("expected %d phases, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("phase %d: got %q, want %q", i, ids[i], want[i])
		}
	}
	if reg.GetName("missing") != "missing" {
		t.Error("unknown IDs should fall back to the ID")
	}
}

// matNear compares element-wise by absolute difference.
func matNear(a, b mgl32.Mat4, tol float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > tol || d < -tol {
			return false
		}
	}
	return true
}
