package telemetry

import "math"

// Collector accumulates frame times and events within time windows and
// produces WindowStats.
type Collector struct {
	runID               string
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32
	simTime         float64

	// Per-window accumulators
	frameMS  []float64
	toggles  int
	respawns int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: nominal seconds per tick (used for tick-to-window conversion)
func NewCollector(runID string, windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		runID:               runID,
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		frameMS:             make([]float64, 0, ticksPerWindow),
	}
}

// RecordFrame records the duration of one frame in seconds.
func (c *Collector) RecordFrame(dt float32) {
	c.simTime += float64(dt)
	c.frameMS = append(c.frameMS, float64(dt)*1000)
}

// RecordToggle records a change of the requested tree state.
func (c *Collector) RecordToggle() {
	c.toggles++
}

// RecordRespawn records a regenerated particle group.
func (c *Collector) RecordRespawn() {
	c.respawns++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// TreeSnapshot is the scene state sampled at window end.
type TreeSnapshot struct {
	State     string
	Progress  float32
	Instances int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, tree TreeSnapshot) WindowStats {
	fs := ComputeFrameStats(c.frameMS)

	stats := WindowStats{
		RunID:           c.runID,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      c.simTime,

		State:     tree.State,
		Progress:  float64(tree.Progress),
		Instances: tree.Instances,

		Toggles:  c.toggles,
		Respawns: c.respawns,

		FrameMeanMS: fs.Mean,
		FrameStdMS:  fs.Std,
		FrameP50MS:  fs.P50,
		FrameP95MS:  fs.P95,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.frameMS = c.frameMS[:0]
	c.toggles = 0
	c.respawns = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

// RunID returns the identifier stamped on every record.
func (c *Collector) RunID() string {
	return c.runID
}
