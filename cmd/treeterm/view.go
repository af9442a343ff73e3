package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/arix/layout"
)

// cellAspect is the height of a terminal cell over its width.
const cellAspect = 2.0

// projector maps world points onto the character grid.
type projector struct {
	w, h int
	vp   mgl32.Mat4
}

func newProjector(eye, target mgl32.Vec3, fovyDeg float32, w, h int) projector {
	aspect := float32(w) / (float32(h) * cellAspect)
	if h == 0 {
		aspect = 1
	}
	view := mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(fovyDeg), aspect, 0.1, 500)
	return projector{w: w, h: h, vp: proj.Mul4(view)}
}

// cell returns the grid position and NDC depth of p. ok is false when p is
// behind the eye or outside the grid.
func (pr projector) cell(p mgl32.Vec3) (x, y int, depth float32, ok bool) {
	clip := pr.vp.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return 0, 0, 0, false
	}
	x = int((ndc.X() + 1) / 2 * float32(pr.w))
	y = int((1 - ndc.Y()) / 2 * float32(pr.h))
	if x < 0 || x >= pr.w || y < 0 || y >= pr.h {
		return 0, 0, 0, false
	}
	return x, y, ndc.Z(), true
}

type glyph struct {
	r     rune
	style tcell.Style
}

// canvas is a character grid with a depth buffer. Nearer plots win.
type canvas struct {
	w, h  int
	depth []float32
	cells []glyph
}

func newCanvas(w, h int) *canvas {
	c := &canvas{}
	c.resize(w, h)
	return c
}

func (c *canvas) resize(w, h int) {
	c.w, c.h = w, h
	c.depth = make([]float32, w*h)
	c.cells = make([]glyph, w*h)
	c.clear()
}

func (c *canvas) clear() {
	for i := range c.depth {
		c.depth[i] = 2
		c.cells[i] = glyph{}
	}
}

func (c *canvas) plot(x, y int, depth float32, g glyph) {
	i := y*c.w + x
	if depth >= c.depth[i] {
		return
	}
	c.depth[i] = depth
	c.cells[i] = g
}

// at returns the glyph at (x, y); r is 0 for empty cells.
func (c *canvas) at(x, y int) glyph {
	return c.cells[y*c.w+x]
}

// groupRune picks a character per particle group.
func groupRune(g layout.Group) rune {
	switch g {
	case layout.GroupOrnament:
		return 'o'
	case layout.GroupFrame:
		return '#'
	case layout.GroupSpiral:
		return '+'
	}
	return '*'
}

func colorStyle(c layout.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}
