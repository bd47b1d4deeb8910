// Command dispersion-cli runs one or more headless dispersion simulations
// to completion and reports aggregate metrics, porting
// original_source/src/wasm/cli.cpp's batch runner onto the engine package.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/mapdata"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/sim"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/world"
)

func main() {
	probability := flag.Int("p", 50, "active probability (0-100)")
	mapIndex := flag.Int("m", 0, "map index to load")
	simulations := flag.Int("n", 1, "number of simulations to run")
	flag.Parse()

	if err := run(*probability, *mapIndex, *simulations, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(probability, mapIndex, simulations int, out *os.File) error {
	if simulations < 1 {
		return fmt.Errorf("-n must be at least 1, got %d", simulations)
	}

	catalog := mapdata.DefaultCatalog()
	w := &world.World{}
	engine := sim.NewEngine(w, catalog, sim.Deps{RNG: sim.NewDefaultRNG(1)})

	runs := make([]sim.Metrics, 0, simulations)
	for i := 0; i < simulations; i++ {
		engine.Apply([]sim.Command{{Type: sim.CommandLoadMap, LoadMap: &sim.LoadMapPayload{Index: mapIndex}}})
		engine.Apply([]sim.Command{{Type: sim.CommandSetActiveProbability, SetActiveProbability: &sim.SetActiveProbabilityPayload{Probability: probability}}})

		for !engine.IsComplete() {
			engine.Step()
		}

		runs = append(runs, engine.Metrics())
		engine.Apply([]sim.Command{{Type: sim.CommandReset}})
	}

	logMetrics(out, runs)
	return nil
}

type stat struct {
	min, max int
	avg      float64
}

func summarize(values []int) stat {
	s := stat{min: values[0], max: values[0]}
	total := 0
	for _, v := range values {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
		total += v
	}
	s.avg = float64(total) / float64(len(values))
	return s
}

func logMetrics(out *os.File, runs []sim.Metrics) {
	availableCells := make([]int, len(runs))
	makespans := make([]int, len(runs))
	eTotals := make([]int, len(runs))
	eMaxs := make([]int, len(runs))
	tTotals := make([]int, len(runs))
	tMaxs := make([]int, len(runs))
	for i, m := range runs {
		availableCells[i] = m.AvailableCells
		makespans[i] = m.Makespan
		eTotals[i] = m.ETotal
		eMaxs[i] = m.EMax
		tTotals[i] = m.TTotal
		tMaxs[i] = m.TMax
	}

	fmt.Fprintln(out, "Simulation Metrics:")
	printStat(out, "Available Cells", summarize(availableCells))
	printStat(out, "Makespan", summarize(makespans))
	printStat(out, "E_Total", summarize(eTotals))
	printStat(out, "E_Max", summarize(eMaxs))
	printStat(out, "T_Total", summarize(tTotals))
	printStat(out, "T_Max", summarize(tMaxs))
}

func printStat(out *os.File, label string, s stat) {
	fmt.Fprintf(out, "  %-16s Min=%d Max=%d Avg=%.2f\n", label, s.min, s.max, s.avg)
}
