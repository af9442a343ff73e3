package game

import (
	"sort"

	"github.com/pthm-cable/arix/telemetry"
)

// sortedPhases returns the phase names sorted by average duration
// (descending). Phases without samples keep their execution order.
func sortedPhases(stats telemetry.PerfStats) []string {
	names := make([]string, len(telemetry.Phases))
	copy(names, telemetry.Phases)
	sort.SliceStable(names, func(i, j int) bool {
		return stats.PhaseAvg[names[i]] > stats.PhaseAvg[names[j]]
	})
	return names
}
