package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/arix/animate"
	"github.com/pthm-cable/arix/components"
	"github.com/pthm-cable/arix/layout"
)

// Instances stores every instanced tree particle as an ECS entity and
// recomputes their placements each frame.
type Instances struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Particle, components.Placement]
	filter *ecs.Filter2[components.Particle, components.Placement]

	counts [layout.NumGroups]int
	slots  []slotMatrix
}

// NewInstances creates the particle store on the given world.
func NewInstances(world *ecs.World) *Instances {
	return &Instances{
		world:  world,
		mapper: ecs.NewMap2[components.Particle, components.Placement](world),
		filter: ecs.NewFilter2[components.Particle, components.Placement](world),
	}
}

// Spawn replaces the group's particles with one entity per descriptor.
// Generated ids restart at the group offset, so slots restart at zero too
// and the group never holds two descriptor sets at once.
func (s *Instances) Spawn(group layout.Group, descs []layout.Descriptor) {
	s.clear(group)
	for i := range descs {
		p := components.Particle{Group: group, Index: i, Desc: descs[i]}
		pl := components.Placement{Transform: animate.Instance(&p.Desc, p.Index, animate.Frame{}, group == layout.GroupSpiral)}
		s.mapper.NewEntity(&p, &pl)
	}
	s.counts[group] = len(descs)
}

func (s *Instances) clear(group layout.Group) {
	if s.counts[group] == 0 {
		return
	}
	var toRemove []ecs.Entity

	query := s.filter.Query()
	for query.Next() {
		p, _ := query.Get()
		if p.Group == group {
			toRemove = append(toRemove, query.Entity())
		}
	}

	for _, e := range toRemove {
		s.world.RemoveEntity(e)
	}
	s.counts[group] = 0
}

// Update writes the placement of every particle for the frame. Descriptors
// are read only. Spiral lights pulse.
func (s *Instances) Update(f animate.Frame) {
	query := s.filter.Query()
	for query.Next() {
		p, pl := query.Get()
		pl.Transform = animate.Instance(&p.Desc, p.Index, f, p.Group == layout.GroupSpiral)
	}
}

// Count returns the number of particles in the group.
func (s *Instances) Count(group layout.Group) int {
	return s.counts[group]
}

// Total returns the number of instanced particles across all groups.
func (s *Instances) Total() int {
	n := 0
	for _, c := range s.counts {
		n += c
	}
	return n
}

// Batch holds the instance matrices of one group, bucketed by palette index.
// Within a bucket matrices are in slot order.
type Batch struct {
	Group   layout.Group
	Buckets [][]mgl32.Mat4
}

// Collect fills b with the current matrices of the group. parent is applied
// on the left of every matrix (the floating group transform). Bucket slices
// are reused between frames.
func (s *Instances) Collect(group layout.Group, parent mgl32.Mat4, b *Batch) {
	b.Group = group
	for i := range b.Buckets {
		b.Buckets[i] = b.Buckets[i][:0]
	}

	n := s.counts[group]
	if n == 0 {
		return
	}

	// Place by slot first so bucket order does not depend on storage order.
	if cap(s.slots) < n {
		s.slots = make([]slotMatrix, n)
	}
	slots := s.slots[:n]
	clear(slots)
	query := s.filter.Query()
	for query.Next() {
		p, pl := query.Get()
		if p.Group != group || p.Index >= n {
			continue
		}
		slots[p.Index] = slotMatrix{
			palette: p.Desc.PaletteIndex,
			m:       parent.Mul4(pl.Matrix()),
			set:     true,
		}
	}

	for _, sm := range slots {
		if !sm.set {
			continue
		}
		for len(b.Buckets) <= sm.palette {
			b.Buckets = append(b.Buckets, nil)
		}
		b.Buckets[sm.palette] = append(b.Buckets[sm.palette], sm.m)
	}
}

// Placements returns the current placements of the group in slot order.
// Used by tools that draw without the GPU path.
func (s *Instances) Placements(group layout.Group) []components.Placement {
	out := make([]components.Placement, s.counts[group])
	query := s.filter.Query()
	for query.Next() {
		p, pl := query.Get()
		if p.Group == group && p.Index < len(out) {
			out[p.Index] = *pl
		}
	}
	return out
}

// Descriptors returns the group's descriptors in slot order.
func (s *Instances) Descriptors(group layout.Group) []layout.Descriptor {
	out := make([]layout.Descriptor, s.counts[group])
	query := s.filter.Query()
	for query.Next() {
		p, _ := query.Get()
		if p.Group == group && p.Index < len(out) {
			out[p.Index] = p.Desc
		}
	}
	return out
}

type slotMatrix struct {
	palette int
	m       mgl32.Mat4
	set     bool
}
