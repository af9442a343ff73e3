package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkAssembled    BookmarkType = "assembled"
	BookmarkScattered    BookmarkType = "scattered"
	BookmarkFrameSpike   BookmarkType = "frame_spike"
	BookmarkSteadyFrames BookmarkType = "steady_frames"
)

// Detector thresholds.
const (
	settleEpsilon     = 1e-3 // progress distance from an end state
	spikeFactor       = 2.0  // p95 frame time over the rolling average
	steadyCV          = 0.05 // frame std / mean below this counts as steady
	steadyWindowCount = 5
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	RunID       string       `csv:"run_id"`
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments across stats windows.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	settledAt          string // state the tree last settled in, "" while moving
	steadyWindowsCount int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < steadyWindowCount {
		historySize = steadyWindowCount
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkSettled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if bd.historyFull || bd.historyIdx > 0 {
		// Frame spike: p95 frame time > 2x rolling average
		if b := bd.checkFrameSpike(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Steady frames: low frame time variation over 5+ windows
	if b := bd.checkSteadyFrames(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkSettled fires once each time the tree comes to rest in a state.
func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	var typ BookmarkType
	switch {
	case stats.State == "tree" && stats.Progress >= 1-settleEpsilon:
		typ = BookmarkAssembled
	case stats.State == "scattered" && stats.Progress <= settleEpsilon:
		typ = BookmarkScattered
	default:
		bd.settledAt = ""
		return nil
	}

	if bd.settledAt == stats.State {
		return nil
	}
	bd.settledAt = stats.State
	return &Bookmark{
		RunID:       stats.RunID,
		Type:        typ,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("tree settled %s at %.1fs", stats.State, stats.SimTimeSec),
	}
}

func (bd *BookmarkDetector) checkFrameSpike(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	var sum float64
	for _, h := range history {
		sum += h.FrameP95MS
	}
	avg := sum / float64(len(history))
	if avg <= 0 || stats.FrameP95MS <= spikeFactor*avg {
		return nil
	}
	return &Bookmark{
		RunID:       stats.RunID,
		Type:        BookmarkFrameSpike,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("p95 frame %.2fms vs %.2fms average", stats.FrameP95MS, avg),
	}
}

func (bd *BookmarkDetector) checkSteadyFrames(stats WindowStats) *Bookmark {
	if stats.FrameMeanMS <= 0 || stats.FrameStdMS/stats.FrameMeanMS >= steadyCV {
		bd.steadyWindowsCount = 0
		return nil
	}
	bd.steadyWindowsCount++
	if bd.steadyWindowsCount != steadyWindowCount {
		return nil
	}
	return &Bookmark{
		RunID:       stats.RunID,
		Type:        BookmarkSteadyFrames,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("frame time steady for %d windows at %.2fms", steadyWindowCount, stats.FrameMeanMS),
	}
}
