// Command layoutdump generates the particle layout from a config and seed
// and writes one CSV row per descriptor.
//
// Usage: go run ./cmd/layoutdump -seed 42 -out layout.csv
package main

import (
	"flag"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/arix/config"
	"github.com/pthm-cable/arix/layout"
	"github.com/pthm-cable/arix/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	seed := flag.Int64("seed", 42, "RNG seed")
	out := flag.String("out", "", "Output CSV path (empty = stdout)")
	group := flag.String("group", "", "Only dump one group (body, ornament, spiral, frame)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	groups, err := selectGroups(*group)
	if err != nil {
		log.Fatal(err)
	}

	runID := telemetry.NewRunID()
	gen := layout.NewGenerator(rand.New(rand.NewSource(*seed)), cfg.Derived.Specs)

	// Generate every group in draw order so a seed always yields the same
	// descriptors, whichever group is printed.
	var records []telemetry.LayoutRecord
	for _, g := range layout.Groups {
		descs := gen.Generate(g, cfg.Derived.Counts[g])
		if groups[g] {
			records = append(records, telemetry.LayoutRecords(runID, g, descs)...)
		}
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("failed to create output: %v", err)
		}
		defer f.Close()
		w = f
	}

	if err := gocsv.Marshal(records, w); err != nil {
		log.Fatalf("failed to write layout: %v", err)
	}
	if *out != "" {
		log.Printf("wrote %d descriptors to %s", len(records), *out)
	}
}

func selectGroups(name string) (map[layout.Group]bool, error) {
	sel := make(map[layout.Group]bool, layout.NumGroups)
	if name == "" {
		for _, g := range layout.Groups {
			sel[g] = true
		}
		return sel, nil
	}
	g, err := layout.ParseGroup(name)
	if err != nil {
		return nil, err
	}
	sel[g] = true
	return sel, nil
}
