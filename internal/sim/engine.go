// Package sim implements the simulation tick (spec.md §4.C8), the event
// log (§4.C9), and the scalar metrics (§4.C10) on top of internal/world's
// grid and decision procedure.
package sim

import (
	"context"

	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/mapdata"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/world"
	"github.com/Kristofy/uniform-dispersion-problem-3d/logging"
	"github.com/Kristofy/uniform-dispersion-problem-3d/logging/dispersion"
)

// Engine is the minimal surface area exposed to hosts (CLI, dashboard,
// websocket handler, tests).
type Engine interface {
	Apply(cmds []Command)
	Step()
	Snapshot() Snapshot
	PopEvent(id int) int
	Metrics() Metrics
	IsComplete() bool
}

// EngineImpl is the concrete Engine backed by a *world.World and a map
// catalog. It is not safe for concurrent use; a Loop serializes access to
// a single instance from one goroutine.
type EngineImpl struct {
	world   *world.World
	catalog *mapdata.Catalog

	activeProbability int
	rng               RNG

	robotSteps []int
	robotTime  []int
	events     eventLog

	metrics Metrics

	deps    Deps
	ctx     context.Context
	anomaly engineAnomalySink
}

// NewEngine constructs an engine over w using catalog for LoadMap/Reset
// commands. deps.RNG defaults to a fixed-seed source if nil, so a host
// that doesn't care about determinism still gets reproducible runs
// until it injects its own.
func NewEngine(w *world.World, catalog *mapdata.Catalog, deps Deps) *EngineImpl {
	if deps.RNG == nil {
		deps.RNG = NewDefaultRNG(1)
	}
	e := &EngineImpl{
		world:             w,
		catalog:           catalog,
		activeProbability: 50,
		rng:               deps.RNG,
		deps:              deps,
		ctx:               context.Background(),
	}
	e.anomaly = engineAnomalySink{e: e}
	w.SetAnomalySink(e.anomaly)
	e.syncMetricsFromWorld()
	return e
}

// engineAnomalySink adapts the world's AnomalySink interface to the
// dispersion logging helpers, tagged with the current tick.
type engineAnomalySink struct {
	e *EngineImpl
}

func (s engineAnomalySink) SettlementAnomaly(robotID, expectedTick, actualTick int) {
	dispersion.SettlementAnomaly(s.e.ctx, s.e.publisher(), uint64(s.e.metrics.SimulationSteps), robotID, expectedTick, actualTick)
}

func (s engineAnomalySink) RobotArenaOverflow() {
	dispersion.RobotArenaOverflow(s.e.ctx, s.e.publisher(), uint64(s.e.metrics.SimulationSteps))
	if s.e.deps.Metrics != nil {
		s.e.deps.Metrics.Add("sim_robot_arena_overflow_total", 1)
	}
}

func (e *EngineImpl) publisher() logging.Publisher {
	return e.deps.Events
}

func (e *EngineImpl) growPerRobotTables(n int) {
	for len(e.robotSteps) < n {
		e.robotSteps = append(e.robotSteps, 0)
		e.robotTime = append(e.robotTime, 0)
	}
	e.events.growTo(n)
}

func (e *EngineImpl) resetPerRobotTables() {
	e.robotSteps = e.robotSteps[:0]
	e.robotTime = e.robotTime[:0]
	e.events.reset()
}

func (e *EngineImpl) syncMetricsFromWorld() {
	e.metrics.AvailableCells = e.world.AvailableCells()
	e.metrics.RobotCount = e.world.RobotCount
}

// Apply stages and immediately executes host edit commands (spec.md §6).
func (e *EngineImpl) Apply(cmds []Command) {
	for _, cmd := range cmds {
		e.applyOne(cmd)
	}
	e.syncMetricsFromWorld()
}

func (e *EngineImpl) applyOne(cmd Command) {
	switch cmd.Type {
	case CommandSetCell:
		if p := cmd.SetCell; p != nil {
			e.world.SetCell(p.X, p.Y, p.Z, p.Kind)
		}
	case CommandAddRobot:
		if p := cmd.AddRobot; p != nil {
			e.world.AddRobot(p.X, p.Y, p.Z)
		}
	case CommandLoadMap:
		if p := cmd.LoadMap; p != nil {
			e.world.LoadMap(e.catalog, p.Index)
			e.resetPerRobotTables()
			e.metrics = Metrics{}
			e.syncMetricsFromWorld()
			if m, ok := e.catalog.Resolve(p.Index); ok {
				dispersion.MapLoaded(e.ctx, e.publisher(), uint64(e.metrics.SimulationSteps), m.Name, e.world.AvailableCells())
			}
		}
	case CommandSetActiveProbability:
		if p := cmd.SetActiveProbability; p != nil {
			prob := p.Probability
			if prob < 0 {
				prob = 0
			}
			if prob > 100 {
				prob = 100
			}
			e.activeProbability = prob
		}
	case CommandSetStartPosition:
		if p := cmd.SetStartPosition; p != nil {
			e.world.SetStartPosition(p.X, p.Y, p.Z)
		}
	case CommandReset:
		e.world.Reset(e.catalog)
		e.resetPerRobotTables()
		e.metrics = Metrics{}
		e.syncMetricsFromWorld()
	}
}

// Step advances the simulation by one tick (spec.md §4.C8).
func (e *EngineImpl) Step() {
	e.metrics.SimulationSteps++
	complete := true

	w := e.world
	e.growPerRobotTables(w.RobotCount)

	for id := 0; id < w.RobotCount; id++ {
		r := &w.Robots[id]
		if !r.Active {
			continue
		}
		complete = false

		roll := e.rng.Intn(101)
		if roll > e.activeProbability {
			r.Sleeping = true
			continue
		}
		r.Sleeping = false

		obs := w.ObserveRobot(r)
		tav := w.Distance(r.Position.X, r.Position.Y, r.Position.Z)
		world.Decide(r, obs, tav, e.anomaly)
	}

	doorIdx := w.RobotAtCell(w.Door.X, w.Door.Y, w.Door.Z)
	if doorIdx < 0 {
		w.AddRobot(w.Door.X, w.Door.Y, w.Door.Z)
		complete = false
	}
	e.growPerRobotTables(w.RobotCount)

	for id := 0; id < w.RobotCount; id++ {
		r := &w.Robots[id]
		if r.Active {
			if !r.Target.Eq(r.Position) {
				e.robotSteps[id]++
				e.metrics.TTotal++
				r.Position = r.Target
			}
		} else {
			r.SettledAge++
		}
		e.robotTime[id]++
		e.metrics.ETotal++
		if e.robotSteps[id] > e.metrics.TMax {
			e.metrics.TMax = e.robotSteps[id]
		}
		if e.robotTime[id] > e.metrics.EMax {
			e.metrics.EMax = e.robotTime[id]
		}
	}

	w.RebuildRobotField()

	e.metrics.Makespan = e.metrics.SimulationSteps
	e.syncMetricsFromWorld()
	wasComplete := e.metrics.Complete
	e.metrics.Complete = complete
	if complete && !wasComplete {
		dispersion.SimulationComplete(e.ctx, e.publisher(), uint64(e.metrics.SimulationSteps), dispersion.SimulationCompletePayload{
			Makespan:  e.metrics.Makespan,
			TotalTime: e.metrics.ETotal,
			MaxTime:   e.metrics.EMax,
		})
	}
}

// Snapshot returns the current render view and metrics.
func (e *EngineImpl) Snapshot() Snapshot {
	w := e.world
	cells := make([]world.CellKind, w.Dims.Count())
	for x := 0; x < w.Dims.X; x++ {
		for y := 0; y < w.Dims.Y; y++ {
			for z := 0; z < w.Dims.Z; z++ {
				cells[x*(w.Dims.Y*w.Dims.Z)+y*w.Dims.Z+z] = w.CellView(x, y, z)
			}
		}
	}
	return Snapshot{
		Dims:    w.Dims,
		Door:    w.Door,
		Cells:   cells,
		Metrics: e.metrics,
	}
}

// PopEvent derives and rolls forward the lifecycle diff tag for id
// (spec.md §4.C9).
func (e *EngineImpl) PopEvent(id int) int {
	if id < 0 || id >= e.world.RobotCount {
		return -1
	}
	r := &e.world.Robots[id]
	return e.events.popEvent(id, r.Active, r.LastMove)
}

// Metrics returns the current scalar counters.
func (e *EngineImpl) Metrics() Metrics {
	return e.metrics
}

// IsComplete reports whether the simulation has finished.
func (e *EngineImpl) IsComplete() bool {
	return e.metrics.Complete
}

var _ Engine = (*EngineImpl)(nil)
