package telemetry

import "github.com/pthm-cable/arix/layout"

// LayoutRecord is one descriptor flattened for CSV export.
type LayoutRecord struct {
	RunID       string  `csv:"run_id"`
	Group       string  `csv:"group"`
	ID          int     `csv:"id"`
	ScatterX    float32 `csv:"scatter_x"`
	ScatterY    float32 `csv:"scatter_y"`
	ScatterZ    float32 `csv:"scatter_z"`
	TreeX       float32 `csv:"tree_x"`
	TreeY       float32 `csv:"tree_y"`
	TreeZ       float32 `csv:"tree_z"`
	ScatterRotX float32 `csv:"scatter_rot_x"`
	ScatterRotY float32 `csv:"scatter_rot_y"`
	ScatterRotZ float32 `csv:"scatter_rot_z"`
	TreeRotX    float32 `csv:"tree_rot_x"`
	TreeRotY    float32 `csv:"tree_rot_y"`
	TreeRotZ    float32 `csv:"tree_rot_z"`
	Scale       float32 `csv:"scale"`
	Color       string  `csv:"color"`
}

// LayoutRecords flattens a group's descriptors.
func LayoutRecords(runID string, group layout.Group, descs []layout.Descriptor) []LayoutRecord {
	out := make([]LayoutRecord, len(descs))
	for i := range descs {
		d := &descs[i]
		out[i] = LayoutRecord{
			RunID:       runID,
			Group:       group.String(),
			ID:          d.ID,
			ScatterX:    d.ScatterPosition.X(),
			ScatterY:    d.ScatterPosition.Y(),
			ScatterZ:    d.ScatterPosition.Z(),
			TreeX:       d.TreePosition.X(),
			TreeY:       d.TreePosition.Y(),
			TreeZ:       d.TreePosition.Z(),
			ScatterRotX: d.ScatterRotation.X,
			ScatterRotY: d.ScatterRotation.Y,
			ScatterRotZ: d.ScatterRotation.Z,
			TreeRotX:    d.TreeRotation.X,
			TreeRotY:    d.TreeRotation.Y,
			TreeRotZ:    d.TreeRotation.Z,
			Scale:       d.Scale,
			Color:       d.Color.Hex(),
		}
	}
	return out
}
