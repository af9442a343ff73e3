package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// NewRunID returns a fresh identifier attached to every record of a run.
func NewRunID() string {
	return uuid.NewString()
}

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	RunID           string  `csv:"run_id"`
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Tree state at window end
	State     string  `csv:"state"`
	Progress  float64 `csv:"progress"`
	Instances int     `csv:"instances"`

	// Events during window
	Toggles  int `csv:"toggles"`
	Respawns int `csv:"respawns"`

	// Frame time distribution in milliseconds
	FrameMeanMS float64 `csv:"frame_mean_ms"`
	FrameStdMS  float64 `csv:"frame_std_ms"`
	FrameP50MS  float64 `csv:"frame_p50_ms"`
	FrameP95MS  float64 `csv:"frame_p95_ms"`
}

// FrameStats summarizes a set of frame times.
type FrameStats struct {
	Mean, Std, P50, P95 float64
}

// ComputeFrameStats calculates mean, sample standard deviation and
// empirical percentiles. Empty input gives zeros; a single value has
// zero spread.
func ComputeFrameStats(values []float64) FrameStats {
	n := len(values)
	if n == 0 {
		return FrameStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var fs FrameStats
	if n == 1 {
		fs.Mean = sorted[0]
	} else {
		fs.Mean, fs.Std = stat.MeanStdDev(sorted, nil)
		if math.IsNaN(fs.Std) {
			fs.Std = 0
		}
	}
	fs.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	fs.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return fs
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("state", s.State),
		slog.Float64("progress", s.Progress),
		slog.Int("instances", s.Instances),
		slog.Int("toggles", s.Toggles),
		slog.Int("respawns", s.Respawns),
		slog.Float64("frame_mean_ms", s.FrameMeanMS),
		slog.Float64("frame_std_ms", s.FrameStdMS),
		slog.Float64("frame_p50_ms", s.FrameP50MS),
		slog.Float64("frame_p95_ms", s.FrameP95MS),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"state", s.State,
		"progress", s.Progress,
		"instances", s.Instances,
		"toggles", s.Toggles,
		"respawns", s.Respawns,
		"frame_mean_ms", s.FrameMeanMS,
		"frame_p95_ms", s.FrameP95MS,
	)
}
