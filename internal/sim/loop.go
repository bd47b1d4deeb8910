package sim

import (
	"context"
	"time"

	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/telemetry"
	"github.com/Kristofy/uniform-dispersion-problem-3d/logging"
	"github.com/Kristofy/uniform-dispersion-problem-3d/logging/dispersion"
)

// LoopConfig tunes the command buffer and tick loop orchestration.
type LoopConfig struct {
	TickRate        int
	CommandCapacity int
}

// LoopTickContext bundles a tick's counter, wall-clock time, and delta.
// Advance and the LoopHooks callbacks do not take it; Loop never builds one.
type LoopTickContext struct {
	Tick  uint64
	Now   time.Time
	Delta float64
}

// LoopStepResult summarizes one completed tick for AfterStep.
type LoopStepResult struct {
	Tick     uint64
	Now      time.Time
	Delta    float64
	Snapshot Snapshot
	Duration time.Duration
}

// LoopHooks are optional callbacks the host can install around a tick.
type LoopHooks struct {
	// NextTick supplies the tick counter; if nil, Loop increments its own.
	NextTick func() uint64
	// AfterStep runs once a tick has been committed, e.g. to broadcast the
	// snapshot to websocket subscribers.
	AfterStep func(LoopStepResult)
}

// Loop coordinates command ingestion and the fixed-timestep simulation
// runner, mirroring the teacher's sim.Loop: a ring-buffered command queue
// drained once per tick in front of a single Engine instance.
type Loop struct {
	engine Engine
	buffer *CommandBuffer
	hooks  LoopHooks
	config LoopConfig
	logger telemetry.Logger
	events logging.Publisher
	clock  logging.Clock
	tick   uint64
}

// NewLoop wraps engine with a ring-buffer queue and a fixed-timestep runner.
func NewLoop(engine Engine, cfg LoopConfig, deps Deps, hooks LoopHooks) *Loop {
	if engine == nil {
		return nil
	}
	buffer := NewCommandBuffer(cfg.CommandCapacity, deps.Metrics)
	clock := deps.Clock
	if clock == nil {
		clock = logging.SystemClock{}
	}
	return &Loop{
		engine: engine,
		buffer: buffer,
		hooks:  hooks,
		config: cfg,
		logger: deps.Logger,
		events: deps.Events,
		clock:  clock,
	}
}

// Enqueue stages a command for the next Advance, returning false if the
// buffer is full.
func (l *Loop) Enqueue(cmd Command) bool {
	if l == nil {
		return false
	}
	ok := l.buffer.Push(cmd)
	if !ok {
		dispersion.CommandDropped(context.Background(), l.events, l.tick, string(cmd.Type))
	}
	return ok
}

// Pending reports the number of staged commands.
func (l *Loop) Pending() int {
	if l == nil {
		return 0
	}
	return l.buffer.Len()
}

// Advance drains staged commands, applies them, and steps the engine once.
func (l *Loop) Advance() LoopStepResult {
	if l == nil {
		return LoopStepResult{}
	}
	commands := l.buffer.Drain()
	l.engine.Apply(commands)
	l.engine.Step()

	if l.hooks.NextTick != nil {
		l.tick = l.hooks.NextTick()
	} else {
		l.tick++
	}

	return LoopStepResult{
		Tick:     l.tick,
		Now:      l.clock.Now(),
		Snapshot: l.engine.Snapshot(),
	}
}

// Run drives the fixed-timestep loop until the stop channel closes.
func (l *Loop) Run(stop <-chan struct{}) {
	if l == nil {
		return
	}
	tickRate := l.config.TickRate
	if tickRate <= 0 {
		tickRate = 15
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			start := l.clock.Now()
			result := l.Advance()
			result.Duration = l.clock.Now().Sub(start)
			if l.hooks.AfterStep != nil {
				l.hooks.AfterStep(result)
			}
		}
	}
}

// SetAfterStep installs or replaces the AfterStep hook. Hosts that need a
// handle to the Loop before constructing their hook (e.g. a websocket hub
// that broadcasts LoopStepResult) build the Loop first and wire the hook in
// afterward.
func (l *Loop) SetAfterStep(fn func(LoopStepResult)) {
	if l == nil {
		return
	}
	l.hooks.AfterStep = fn
}

// Engine exposes the underlying engine for callers that need direct reads
// (e.g. the websocket hub's initial snapshot for a new viewer).
func (l *Loop) Engine() Engine {
	if l == nil {
		return nil
	}
	return l.engine
}
