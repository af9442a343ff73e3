package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arix/layout"
	"github.com/pthm-cable/arix/systems"
)

// HUDData holds all the data needed to render the debug panel.
type HUDData struct {
	FPS       int32
	Tick      int32
	State     string
	Progress  float32
	Counts    [layout.NumGroups]int
	Total     int
	Swatches  [layout.NumGroups]rl.Color
	RunID     string
	BodyCount int // current slider position, may differ from Counts until release
}

// HUD renders the debug panel.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new debug panel.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (h *HUD) SetPosition(x, y int32) {
	h.x = x
	h.y = y
}

// Height returns the panel height in pixels.
func (h *HUD) Height() int32 {
	r := h.renderer
	return r.Theme.Padding*2 + r.Theme.LineHeight*int32(7+layout.NumGroups) + 2 + 24
}

// Draw renders the panel and returns the rectangle reserved for the body
// density slider, which the overlay draws on top.
func (h *HUD) Draw(data HUDData) rl.Rectangle {
	r := h.renderer
	pad := r.Theme.Padding
	r.DrawPanel(h.x, h.y, h.width, h.Height())

	x := h.x + pad
	y := h.y + pad
	inner := h.width - 2*pad

	y = r.DrawSectionHeader(x, y, "Debug")
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", data.Tick))
	y = r.DrawLabelValue(x, y, "State", data.State)
	y = r.DrawBar(x, y, "Progress", data.Progress, inner)

	for _, g := range layout.Groups {
		y = r.DrawColorSwatch(x, y, g.String(), data.Swatches[g])
		rl.DrawText(fmt.Sprintf("%d", data.Counts[g]), x+r.Theme.LabelWidth+18, y-r.Theme.LineHeight, r.Theme.FontSize, r.Theme.ValueColor)
	}
	y = r.DrawLabelValue(x, y, "Total", fmt.Sprintf("%d", data.Total))

	rl.DrawText(fmt.Sprintf("Body density: %d", data.BodyCount), x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight

	return rl.Rectangle{X: float32(x + 30), Y: float32(y), Width: float32(inner - 60), Height: 16}
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseTimes map[string]time.Duration
	Total      time.Duration
	Registry   *systems.SystemRegistry
}

// PerfPanel renders the per-phase frame timing panel.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData, sortedNames []string) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range sortedNames {
		avg := data.PhaseTimes[name]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		displayName := name
		if data.Registry != nil {
			displayName = data.Registry.GetName(name)
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %6s %5.1f%%", displayName, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
