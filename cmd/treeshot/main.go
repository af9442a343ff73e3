// Tree shot tool - renders one frame of the scene to a PNG file.
//
// Usage: go run ./cmd/treeshot -state scattered -seconds 4 -out scattered.png
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arix/config"
	"github.com/pthm-cable/arix/renderer"
	"github.com/pthm-cable/arix/scene"
	"github.com/pthm-cable/arix/transition"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (uses embedded defaults if empty)")
	outPath := flag.String("out", "tree.png", "Output PNG path")
	width := flag.Int("width", 1024, "Render width")
	height := flag.Int("height", 1024, "Render height")
	seed := flag.Int64("seed", 42, "RNG seed")
	stateName := flag.String("state", "tree", "State to settle towards: tree or scattered")
	seconds := flag.Float64("seconds", 6, "Simulated seconds before the shot")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	state, err := transition.ParseState(*stateName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	tree := scene.New(cfg, rand.New(rand.NewSource(*seed)))
	tree.SetState(state)
	for t := 0.0; t < *seconds; t += float64(cfg.Derived.DT32) {
		tree.Step(cfg.Derived.DT32)
	}

	rl.SetConfigFlags(rl.FlagWindowHidden | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(*width), int32(*height), "Tree Shot")
	defer rl.CloseWindow()

	composer := renderer.NewComposer(cfg, int32(*width), int32(*height))
	composer.Init(tree.Stars)
	defer composer.Unload()

	// The back buffer is read before EndDrawing swaps it.
	rl.BeginDrawing()
	composer.Draw(renderer.Scene{
		Camera:    tree.Camera,
		Batches:   tree.Collect(nil),
		Star:      tree.StarMatrix(),
		Snow:      tree.Snow,
		Starfield: tree.Stars,
		Elapsed:   tree.Elapsed(),
	})
	img := rl.LoadImageFromScreen()
	rl.EndDrawing()

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)
	if !success {
		fmt.Fprintf(os.Stderr, "Failed to export image to: %s\n", *outPath)
		os.Exit(1)
	}

	fmt.Printf("Rendered %s at progress %.3f (%d instances) to: %s\n", tree.State(), tree.Progress(), tree.Total(), *outPath)
}
