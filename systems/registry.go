package systems

import "github.com/pthm-cable/arix/telemetry"

// Phase IDs used for perf tracking.
const (
	PhaseTransition = telemetry.PhaseTransition
	PhaseInstances  = telemetry.PhaseInstances
	PhaseAmbient    = telemetry.PhaseAmbient
	PhaseRender     = telemetry.PhaseRender
)

// SystemInfo describes a frame phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "core", "scene", "visual")
}

// SystemRegistry holds metadata about all frame phases.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the per-frame phases in execution order.
// The perf collector and the debug panel both key off these IDs.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: PhaseTransition, Name: "Transition", Description: "Eases tree progress toward the target", Category: "core"})
	r.Register(SystemInfo{ID: PhaseInstances, Name: "Instances", Description: "Recomputes particle placements", Category: "core"})
	r.Register(SystemInfo{ID: PhaseAmbient, Name: "Ambient", Description: "Star, float, snow and camera", Category: "scene"})
	r.Register(SystemInfo{ID: PhaseRender, Name: "Render", Description: "Draws the scene and postfx", Category: "visual"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
