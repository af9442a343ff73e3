// Command treeterm previews the animated tree in a terminal.
//
// Usage: go run ./cmd/treeterm [-config file] [-seed n]
//
// Space toggles the tree, q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/arix/config"
	"github.com/pthm-cable/arix/layout"
	"github.com/pthm-cable/arix/scene"
)

const frameInterval = 40 * time.Millisecond

type action int

const (
	actToggle action = iota
	actResize
	actQuit
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("failed to open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("failed to init terminal: %v", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	tree := scene.New(cfg, rand.New(rand.NewSource(*seed)))
	starColor, err := layout.ParseHex(cfg.Star.Color)
	if err != nil {
		starColor = layout.Color{R: 0xfb, G: 0xbf, B: 0x24}
	}
	starStyle := colorStyle(starColor).Bold(true)

	// The event goroutine only translates; all state lives in the loop.
	actions := make(chan action, 8)
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					actions <- actQuit
					return
				case ev.Rune() == ' ':
					actions <- actToggle
				}
			case *tcell.EventResize:
				actions <- actResize
			case nil:
				return
			}
		}
	}()

	w, h := screen.Size()
	cv := newCanvas(w, h)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case a := <-actions:
			switch a {
			case actQuit:
				return
			case actToggle:
				tree.Toggle()
			case actResize:
				screen.Sync()
				w, h = screen.Size()
				cv.resize(w, h)
			}
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			tree.Step(dt)
			draw(screen, cv, tree, starStyle)
		}
	}
}

func draw(screen tcell.Screen, cv *canvas, tree *scene.Tree, starStyle tcell.Style) {
	cv.clear()
	if cv.w == 0 || cv.h < 2 {
		return
	}

	cam := tree.Camera
	pr := newProjector(cam.Position(), cam.Target, cam.Fovy, cv.w, cv.h-1)

	snow := glyph{r: '.', style: tcell.StyleDefault.Foreground(tcell.ColorGray)}
	for _, f := range tree.Snow.Flakes {
		if x, y, d, ok := pr.cell(f); ok {
			cv.plot(x, y, d, snow)
		}
	}

	parent := tree.GroupMatrix()
	for _, g := range layout.Groups {
		descs := tree.Descriptors(g)
		r := groupRune(g)
		for i, pl := range tree.Placements(g) {
			p := parent.Mul4x1(pl.Position.Vec4(1)).Vec3()
			if x, y, d, ok := pr.cell(p); ok {
				cv.plot(x, y, d, glyph{r: r, style: colorStyle(descs[i].Color)})
			}
		}
	}

	if x, y, d, ok := pr.cell(tree.StarMatrix().Col(3).Vec3()); ok {
		cv.plot(x, y, d-0.001, glyph{r: '★', style: starStyle})
	}

	screen.Clear()
	for y := 0; y < cv.h; y++ {
		for x := 0; x < cv.w; x++ {
			if g := cv.at(x, y); g.r != 0 {
				screen.SetContent(x, y, g.r, nil, g.style)
			}
		}
	}
	status := fmt.Sprintf(" %s  progress %.3f  particles %d  [space] toggle  [q] quit",
		tree.State(), tree.Progress(), tree.Total())
	for i, r := range status {
		if i >= cv.w {
			break
		}
		screen.SetContent(i, cv.h-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	screen.Show()
}
