package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/arix/layout"
)

func TestProjectorCenter(t *testing.T) {
	pr := newProjector(mgl32.Vec3{0, 0, 22}, mgl32.Vec3{}, 45, 80, 24)

	x, y, _, ok := pr.cell(mgl32.Vec3{})
	if !ok {
		t.Fatal("target should be visible")
	}
	if x != 40 || y != 12 {
		t.Errorf("expected target at grid center (40,12), got (%d,%d)", x, y)
	}

	// Up in the world is up on screen, right is right.
	_, yUp, _, _ := pr.cell(mgl32.Vec3{0, 3, 0})
	if yUp >= y {
		t.Errorf("point above target should be on an earlier row: %d vs %d", yUp, y)
	}
	xRight, _, _, _ := pr.cell(mgl32.Vec3{3, 0, 0})
	if xRight <= x {
		t.Errorf("point right of target should be on a later column: %d vs %d", xRight, x)
	}
}

func TestProjectorRejects(t *testing.T) {
	pr := newProjector(mgl32.Vec3{0, 0, 22}, mgl32.Vec3{}, 45, 80, 24)
	tests := []struct {
		name string
		p    mgl32.Vec3
	}{
		{"behind eye", mgl32.Vec3{0, 0, 40}},
		{"far off screen", mgl32.Vec3{500, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, ok := pr.cell(tt.p); ok {
				t.Errorf("expected %v to be rejected", tt.p)
			}
		})
	}
}

func TestProjectorDepthOrder(t *testing.T) {
	pr := newProjector(mgl32.Vec3{0, 0, 22}, mgl32.Vec3{}, 45, 80, 24)
	_, _, near, _ := pr.cell(mgl32.Vec3{0, 0, 5})
	_, _, far, _ := pr.cell(mgl32.Vec3{0, 0, -5})
	if near >= far {
		t.Errorf("expected nearer point to have smaller depth: %v vs %v", near, far)
	}
}

func TestCanvasKeepsNearest(t *testing.T) {
	cv := newCanvas(4, 3)
	a := glyph{r: 'a', style: tcell.StyleDefault}
	b := glyph{r: 'b', style: tcell.StyleDefault}

	cv.plot(1, 1, 0.5, a)
	cv.plot(1, 1, 0.8, b)
	if got := cv.at(1, 1).r; got != 'a' {
		t.Errorf("farther plot overwrote nearer one: got %q", got)
	}
	cv.plot(1, 1, 0.2, b)
	if got := cv.at(1, 1).r; got != 'b' {
		t.Errorf("nearer plot ignored: got %q", got)
	}

	cv.clear()
	if got := cv.at(1, 1).r; got != 0 {
		t.Errorf("expected empty cell after clear, got %q", got)
	}
}

func TestGroupRunesDistinct(t *testing.T) {
	seen := map[rune]layout.Group{}
	for _, g := range layout.Groups {
		r := groupRune(g)
		if other, dup := seen[r]; dup {
			t.Errorf("%s and %s share rune %q", g, other, r)
		}
		seen[r] = g
	}
}
