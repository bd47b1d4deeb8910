// Package dispersion publishes typed logging events for the simulation
// engine without influencing its behavior: every publish call here is a
// side effect on top of a decision already made elsewhere.
package dispersion

import (
	"context"

	"github.com/Kristofy/uniform-dispersion-problem-3d/logging"
)

const (
	// EventSettlementAnomaly is emitted when a robot settles on a tick
	// other than the one its door distance predicts.
	EventSettlementAnomaly logging.EventType = "dispersion.settlement_anomaly"
	// EventRobotArenaOverflow is emitted when a spawn or AddRobot command
	// is suppressed because the robot arena is already at capacity.
	EventRobotArenaOverflow logging.EventType = "dispersion.robot_arena_overflow"
	// EventCommandDropped is emitted when the command buffer drops a
	// command because the host enqueued faster than the loop could drain.
	EventCommandDropped logging.EventType = "dispersion.command_dropped"
	// EventMapLoaded is emitted when a LoadMap command loads a map; a Reset
	// command reloads the map without emitting it.
	EventMapLoaded logging.EventType = "dispersion.map_loaded"
	// EventSimulationComplete is emitted the tick every active robot has
	// settled.
	EventSimulationComplete logging.EventType = "dispersion.simulation_complete"
)

// SettlementAnomalyPayload carries the expected and actual settlement tick
// for a robot that settled off its BFS-predicted schedule.
type SettlementAnomalyPayload struct {
	RobotID      int `json:"robotId"`
	ExpectedTick int `json:"expectedTick"`
	ActualTick   int `json:"actualTick"`
}

// SettlementAnomaly publishes a warning describing the mismatch.
func SettlementAnomaly(ctx context.Context, pub logging.Publisher, tick uint64, robotID, expected, actual int) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventSettlementAnomaly,
		Tick:     tick,
		Severity: logging.SeverityWarn,
		Category: "simulation",
		Payload: SettlementAnomalyPayload{
			RobotID:      robotID,
			ExpectedTick: expected,
			ActualTick:   actual,
		},
	})
}

// RobotArenaOverflow publishes a warning when a spawn is suppressed.
func RobotArenaOverflow(ctx context.Context, pub logging.Publisher, tick uint64) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventRobotArenaOverflow,
		Tick:     tick,
		Severity: logging.SeverityWarn,
		Category: "simulation",
	})
}

// CommandDroppedPayload identifies the kind of command that was dropped.
type CommandDroppedPayload struct {
	Kind string `json:"kind"`
}

// CommandDropped publishes a warning when the command buffer overflows.
func CommandDropped(ctx context.Context, pub logging.Publisher, tick uint64, kind string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCommandDropped,
		Tick:     tick,
		Severity: logging.SeverityWarn,
		Category: "simulation",
		Payload:  CommandDroppedPayload{Kind: kind},
	})
}

// MapLoadedPayload describes the map that was just loaded.
type MapLoadedPayload struct {
	Name           string `json:"name"`
	AvailableCells int    `json:"availableCells"`
}

// MapLoaded publishes an info event after a map load.
func MapLoaded(ctx context.Context, pub logging.Publisher, tick uint64, name string, availableCells int) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventMapLoaded,
		Tick:     tick,
		Severity: logging.SeverityInfo,
		Category: "simulation",
		Payload:  MapLoadedPayload{Name: name, AvailableCells: availableCells},
	})
}

// SimulationCompletePayload summarizes the finished run.
type SimulationCompletePayload struct {
	Makespan  int `json:"makespan"`
	TotalTime int `json:"totalTime"`
	MaxTime   int `json:"maxTime"`
}

// SimulationComplete publishes an info event the tick every robot settles.
func SimulationComplete(ctx context.Context, pub logging.Publisher, tick uint64, payload SimulationCompletePayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventSimulationComplete,
		Tick:     tick,
		Severity: logging.SeverityInfo,
		Category: "simulation",
		Payload:  payload,
	})
}
