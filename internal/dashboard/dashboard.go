// Package dashboard runs several independent simulation instances side by
// side and aggregates their metrics, the way the teacher's Hub coordinates
// many independent per-player state slices under one mutex-guarded owner —
// generalized here to many independent engines instead of many actors
// inside one engine.
package dashboard

import (
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/mapdata"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/sim"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/world"
)

// Instance is one independently-constructed engine; no instance shares
// mutable state with another.
type Instance struct {
	Engine *sim.EngineImpl
	world  *world.World
}

// Dashboard owns a fixed set of instances, all loaded with the same map and
// active probability, and steps them in lockstep.
type Dashboard struct {
	instances []*Instance
	catalog   *mapdata.Catalog
}

// New constructs count independent instances loaded with mapIndex and
// activeProbability. seedBase offsets each instance's RNG seed so
// instances do not share a random sequence.
func New(count int, catalog *mapdata.Catalog, mapIndex, activeProbability int, seedBase int64) *Dashboard {
	if count < 1 {
		count = 1
	}
	d := &Dashboard{catalog: catalog}
	for i := 0; i < count; i++ {
		w := &world.World{}
		engine := sim.NewEngine(w, catalog, sim.Deps{RNG: sim.NewDefaultRNG(seedBase + int64(i))})
		engine.Apply([]sim.Command{
			{Type: sim.CommandLoadMap, LoadMap: &sim.LoadMapPayload{Index: mapIndex}},
			{Type: sim.CommandSetActiveProbability, SetActiveProbability: &sim.SetActiveProbabilityPayload{Probability: activeProbability}},
		})
		d.instances = append(d.instances, &Instance{Engine: engine, world: w})
	}
	return d
}

// Count returns the number of instances.
func (d *Dashboard) Count() int {
	return len(d.instances)
}

// StepAll advances every instance that has not yet completed by one tick.
func (d *Dashboard) StepAll() {
	for _, inst := range d.instances {
		if !inst.Engine.IsComplete() {
			inst.Engine.Step()
		}
	}
}

// AllComplete reports whether every instance has settled.
func (d *Dashboard) AllComplete() bool {
	for _, inst := range d.instances {
		if !inst.Engine.IsComplete() {
			return false
		}
	}
	return true
}

// RunToCompletion steps every instance until AllComplete, bounded by
// maxTicks to guard against a misconfigured map that never settles.
func (d *Dashboard) RunToCompletion(maxTicks int) {
	for i := 0; i < maxTicks && !d.AllComplete(); i++ {
		d.StepAll()
	}
}

// Stat summarizes one metric across every instance.
type Stat struct {
	Min, Max int
	Avg      float64
}

func summarize(values []int) Stat {
	s := Stat{Min: values[0], Max: values[0]}
	total := 0
	for _, v := range values {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		total += v
	}
	s.Avg = float64(total) / float64(len(values))
	return s
}

// Aggregate summarizes sim.Metrics across all instances, the same metric
// set cli.cpp's logMetrics reports for repeated single-instance runs.
type Aggregate struct {
	AvailableCells Stat
	Makespan       Stat
	ETotal         Stat
	EMax           Stat
	TTotal         Stat
	TMax           Stat
}

// Snapshot aggregates the current metrics across every instance.
func (d *Dashboard) Snapshot() Aggregate {
	availableCells := make([]int, len(d.instances))
	makespans := make([]int, len(d.instances))
	eTotals := make([]int, len(d.instances))
	eMaxs := make([]int, len(d.instances))
	tTotals := make([]int, len(d.instances))
	tMaxs := make([]int, len(d.instances))

	for i, inst := range d.instances {
		m := inst.Engine.Metrics()
		availableCells[i] = m.AvailableCells
		makespans[i] = m.Makespan
		eTotals[i] = m.ETotal
		eMaxs[i] = m.EMax
		tTotals[i] = m.TTotal
		tMaxs[i] = m.TMax
	}

	return Aggregate{
		AvailableCells: summarize(availableCells),
		Makespan:       summarize(makespans),
		ETotal:         summarize(eTotals),
		EMax:           summarize(eMaxs),
		TTotal:         summarize(tTotals),
		TMax:           summarize(tMaxs),
	}
}
