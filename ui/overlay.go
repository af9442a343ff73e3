package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arix/config"
	"github.com/pthm-cable/arix/transition"
	"github.com/pthm-cable/arix/ui/motion"
)

// sliderStep is the granularity of the body density slider.
const sliderStep = 100

// OverlayData is the per-frame input of the overlay.
type OverlayData struct {
	State   transition.State
	ScreenW int32
	ScreenH int32
	HUD     HUDData
	Perf    PerfPanelData
	Phases  []string
}

// Actions reports what the user asked for this frame.
type Actions struct {
	Toggle     bool
	Snapshot   bool
	Fullscreen bool
	BodyCount  int // > 0 when the density slider was released on a new value
}

// Overlay draws the 2D layer above the scene.
type Overlay struct {
	renderer *Renderer
	title    *motion.Title
	glow     *motion.Glow

	titleText string
	credits   []string

	hud       *HUD
	perf      *PerfPanel
	ShowDebug bool

	bodyMin, bodyMax int
	slider           float32
	committed        int
	dragging         bool

	// Widget areas drawn last frame, for input routing.
	hot []rl.Rectangle
}

// NewOverlay creates the overlay. bodyCount is the current body group size.
func NewOverlay(cfg config.UIConfig, bodyCount int) *Overlay {
	return &Overlay{
		renderer:  NewRenderer(),
		title:     motion.NewTitle(float32(cfg.TitleFade), 40),
		glow:      motion.NewGlow(1.2),
		titleText: cfg.Title,
		credits:   cfg.Credits,
		hud:       NewHUD(12, 12, 240),
		perf:      NewPerfPanel(12, 0),
		bodyMin:   cfg.BodyCountMin,
		bodyMax:   cfg.BodyCountMax,
		slider:    float32(bodyCount),
		committed: bodyCount,
	}
}

// Update advances the title and button animations.
func (o *Overlay) Update(dt float32) {
	o.title.Update(dt)
	o.glow.Update(dt)
}

// ToggleDebug shows or hides the debug panel.
func (o *Overlay) ToggleDebug() bool {
	o.ShowDebug = !o.ShowDebug
	return o.ShowDebug
}

// Draw renders the overlay and returns the requested actions.
func (o *Overlay) Draw(d OverlayData) Actions {
	var act Actions
	th := o.renderer.Theme
	cx := d.ScreenW / 2
	o.hot = o.hot[:0]

	o.drawTitle(cx)

	// Toggle button, bottom center
	btn := rl.Rectangle{X: float32(cx - 100), Y: float32(d.ScreenH - 120), Width: 200, Height: 44}
	if motion.ToggleHighlighted(d.State) {
		pad := 3 + 5*o.glow.Value
		halo := rl.Rectangle{X: btn.X - pad, Y: btn.Y - pad, Width: btn.Width + 2*pad, Height: btn.Height + 2*pad}
		rl.DrawRectangleRounded(halo, 0.4, 8, rl.Fade(th.Gold, 0.35+0.4*o.glow.Value))
	}
	o.hot = append(o.hot, btn)
	if gui.Button(btn, motion.ToggleLabel(d.State)) {
		act.Toggle = true
	}

	// Side buttons, right edge
	side := rl.Rectangle{X: float32(d.ScreenW - 140), Y: float32(d.ScreenH/2 - 40), Width: 120, Height: 72}
	o.hot = append(o.hot, side)
	side.Height = 32
	if gui.Button(side, "Snapshot") {
		act.Snapshot = true
	}
	side.Y += 40
	if gui.Button(side, "Fullscreen") {
		act.Fullscreen = true
	}

	// Credits
	y := d.ScreenH - 20*int32(len(o.credits)) - 16
	for _, line := range o.credits {
		o.renderer.DrawCentered(line, cx, y, 14, th.Credit)
		y += 20
	}

	if o.ShowDebug {
		act.BodyCount = o.drawDebug(d)
	}

	return act
}

func (o *Overlay) drawTitle(cx int32) {
	if o.titleText == "" {
		return
	}
	th := o.renderer.Theme
	y := int32(40 - o.title.OffsetY)
	size := th.TitleFontSize

	// Glow: a few offset copies under the main text.
	glowAlpha := o.title.Alpha * (0.15 + 0.2*o.title.Glow)
	for _, off := range [][2]int32{{-2, 0}, {2, 0}, {0, -2}, {0, 2}} {
		o.renderer.DrawCentered(o.titleText, cx+off[0], y+off[1], size, rl.Fade(th.GoldDim, glowAlpha))
	}
	o.renderer.DrawCentered(o.titleText, cx, y, size, rl.Fade(th.Gold, o.title.Alpha))
}

// drawDebug draws the debug and perf panels. It returns the new body count
// once the slider is released on a value different from the current one.
func (o *Overlay) drawDebug(d OverlayData) int {
	hud := d.HUD
	hud.BodyCount = motion.SnapCount(o.slider, o.bodyMin, o.bodyMax, sliderStep)
	rect := o.hud.Draw(hud)
	o.hot = append(o.hot, rl.Rectangle{
		X:      float32(o.hud.x),
		Y:      float32(o.hud.y),
		Width:  float32(o.hud.width),
		Height: float32(o.hud.Height()),
	})

	v := gui.SliderBar(rect, fmt.Sprintf("%d", o.bodyMin), fmt.Sprintf("%d", o.bodyMax), o.slider, float32(o.bodyMin), float32(o.bodyMax))
	if v != o.slider {
		o.slider = v
		o.dragging = true
	}

	o.perf.SetPosition(o.hud.x, o.hud.y+o.hud.Height()+10)
	o.perf.Draw(d.Perf, d.Phases)

	if o.dragging && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		o.dragging = false
		n := motion.SnapCount(o.slider, o.bodyMin, o.bodyMax, sliderStep)
		if n != o.committed {
			o.committed = n
			return n
		}
	}
	return 0
}

// Hit reports whether p lies on a widget drawn in the last frame.
func (o *Overlay) Hit(p rl.Vector2) bool {
	for _, r := range o.hot {
		if rl.CheckCollisionPointRec(p, r) {
			return true
		}
	}
	return false
}

// SetBodyCount syncs the slider with a body count changed elsewhere.
func (o *Overlay) SetBodyCount(n int) {
	o.committed = n
	o.slider = float32(n)
}
