package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.Toggle()
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.snapshotDue = true
	}

	if rl.IsKeyPressed(rl.KeyD) && g.overlay != nil {
		g.overlay.ToggleDebug()
	}

	g.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == g.screenW && h == g.screenH {
		return
	}
	g.screenW = w
	g.screenH = h

	if g.composer != nil {
		g.composer.Resize(w, h)
	}
}

// handleCameraInput processes orbit drag and zoom.
func (g *Game) handleCameraInput() {
	cam := g.tree.Camera

	// A drag only rotates when it starts outside the overlay widgets.
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.dragging = g.overlay == nil || !g.overlay.Hit(rl.GetMousePosition())
	}
	if !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		g.dragging = false
	}
	if g.dragging {
		d := rl.GetMouseDelta()
		cam.Rotate(d.X, d.Y)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.Zoom(wheel)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}
