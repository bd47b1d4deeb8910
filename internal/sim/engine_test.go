package sim

import (
	"testing"

	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/geom"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/mapdata"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/world"
)

func newTestEngine() (*EngineImpl, *world.World, *mapdata.Catalog) {
	catalog := mapdata.DefaultCatalog()
	w := &world.World{}
	e := NewEngine(w, catalog, Deps{RNG: NewDefaultRNG(7)})
	return e, w, catalog
}

func loadMap(e *EngineImpl, idx int) {
	e.Apply([]Command{{Type: CommandLoadMap, LoadMap: &LoadMapPayload{Index: idx}}})
}

func setActiveProbability(e *EngineImpl, p int) {
	e.Apply([]Command{{Type: CommandSetActiveProbability, SetActiveProbability: &SetActiveProbabilityPayload{Probability: p}}})
}

// I1: after load_map, available_cells equals the popcount and distance at
// the door is 0.
func TestLoadMapAvailableCellsAndDoorDistance(t *testing.T) {
	e, w, catalog := newTestEngine()
	for i := 0; i < catalog.Count(); i++ {
		loadMap(e, i)
		m := catalog.At(i)
		want := mapdata.Popcount(m.Dims, m.Bits)
		if got := e.Metrics().AvailableCells; got != want {
			t.Errorf("map %d: AvailableCells = %d, want %d", i, got, want)
		}
		if got := w.Distance(m.Door.X, m.Door.Y, m.Door.Z); got != 0 {
			t.Errorf("map %d: door distance = %d, want 0", i, got)
		}
	}
}

// Scenario 1: single-cell room, total-block settlement after two ticks.
func TestSingleCellRoomScenario(t *testing.T) {
	e, w, _ := newTestEngine()
	loadMap(e, 0) // single-cell-room
	setActiveProbability(e, 100)

	if got := e.Metrics().AvailableCells; got != 1 {
		t.Fatalf("AvailableCells = %d, want 1", got)
	}

	e.Step() // tick 1: spawns at door
	if w.RobotCount != 1 {
		t.Fatalf("after tick 1: RobotCount = %d, want 1", w.RobotCount)
	}
	if e.IsComplete() {
		t.Errorf("tick 1 should not be complete")
	}

	e.Step() // tick 2: decides, total-blocks, settles
	if w.Robots[0].Active {
		t.Errorf("after tick 2: robot should have settled")
	}
	if e.IsComplete() {
		t.Errorf("tick 2 should not yet report complete")
	}

	e.Step() // tick 3: nothing active, no respawn needed
	if !e.IsComplete() {
		t.Errorf("tick 3 should report complete")
	}
}

// Scenario 2: straight corridor, five cells each settled with a robot.
func TestStraightCorridorScenario(t *testing.T) {
	e, w, _ := newTestEngine()
	loadMap(e, 1) // straight-corridor
	setActiveProbability(e, 100)

	if got := e.Metrics().AvailableCells; got != 5 {
		t.Fatalf("AvailableCells = %d, want 5", got)
	}

	for i := 0; i < 64 && !e.IsComplete(); i++ {
		e.Step()
	}
	if !e.IsComplete() {
		t.Fatalf("corridor did not complete within the tick budget")
	}
	if w.RobotCount != 5 {
		t.Errorf("RobotCount = %d, want 5", w.RobotCount)
	}
	for id := 0; id < w.RobotCount; id++ {
		if w.Robots[id].Active {
			t.Errorf("robot %d still active after completion", id)
		}
	}
	occupied := make(map[int]bool)
	for z := 0; z < 5; z++ {
		rid := w.RobotAtCell(0, 0, z)
		if rid < 0 {
			t.Errorf("cell z=%d has no settled robot", z)
			continue
		}
		occupied[rid] = true
	}
	if len(occupied) != 5 {
		t.Errorf("expected 5 distinct robots settled across the corridor, got %d", len(occupied))
	}
	if got := e.Metrics().TTotal; got < 10 {
		t.Errorf("TTotal = %d, want >= 10", got)
	}
}

// Scenario 3: up-preference in a vertical shaft.
func TestVerticalShaftPrefersUp(t *testing.T) {
	e, w, _ := newTestEngine()
	loadMap(e, 2) // vertical-shaft
	setActiveProbability(e, 100)

	e.Step() // spawn at (0,0,0)
	if !w.Robots[0].Position.Eq(w.Door) {
		t.Fatalf("robot did not spawn at the door")
	}

	e.Step() // moves up to (0,1,0)
	if w.Robots[0].Position.Y != 1 {
		t.Fatalf("after tick 2: Y = %d, want 1", w.Robots[0].Position.Y)
	}

	e.Step() // moves up to (0,2,0)
	if w.Robots[0].Position.Y != 2 {
		t.Fatalf("after tick 3: Y = %d, want 2", w.Robots[0].Position.Y)
	}

	e.Step() // total-blocks/settles at the top
	if w.Robots[0].Active {
		t.Errorf("robot should settle once it reaches the top of the shaft")
	}
}

// Scenario 5 / I3: earliest-id wins when two robots target the same cell.
func TestEarliestIDWinsOnCollision(t *testing.T) {
	e, w, _ := newTestEngine()
	w.Init(3, 3, 3)
	w.SetCell(0, 0, 0, world.Empty)
	w.SetCell(1, 1, 1, world.Empty)
	w.SetCell(0, 0, 1, world.Empty)
	w.AddRobot(0, 0, 0)
	w.AddRobot(0, 0, 1)
	w.RebuildRobotField()
	w.Robots[0].Target = geom.Vec3{X: 1, Y: 1, Z: 1}
	w.Robots[1].Target = geom.Vec3{X: 1, Y: 1, Z: 1}
	w.Robots[0].Position = geom.Vec3{X: 1, Y: 1, Z: 1}
	w.Robots[1].Position = geom.Vec3{X: 1, Y: 1, Z: 1}
	w.RebuildRobotField()

	if got := w.RobotAtCell(1, 1, 1); got != 0 {
		t.Errorf("RobotAtCell = %d, want earliest id 0", got)
	}
	if w.Robots[1].Position.X != 1 || w.Robots[1].Position.Y != 1 || w.Robots[1].Position.Z != 1 {
		t.Errorf("loser's position should still be overwritten: %v", w.Robots[1].Position)
	}
	_ = e
}

// Scenario 6: activation probability 0 keeps every active robot sleeping.
func TestActivationProbabilityZero(t *testing.T) {
	e, w, _ := newTestEngine()
	loadMap(e, 1) // straight-corridor
	setActiveProbability(e, 0)

	e.Step() // spawns the first robot
	positionBefore := w.Robots[0].Position

	for i := 0; i < 5; i++ {
		e.Step()
	}

	if !w.Robots[0].Sleeping {
		t.Errorf("robot should remain sleeping with active_probability=0")
	}
	if !w.Robots[0].Position.Eq(positionBefore) {
		t.Errorf("sleeping robot moved: %v -> %v", positionBefore, w.Robots[0].Position)
	}
	if got := e.Metrics().TTotal; got != 0 {
		t.Errorf("TTotal = %d, want 0", got)
	}
	if e.IsComplete() {
		t.Errorf("simulation should never report complete while a robot remains active")
	}
}

// I5: a settled robot never changes position in any subsequent tick.
func TestSettledRobotNeverMoves(t *testing.T) {
	e, w, _ := newTestEngine()
	loadMap(e, 0) // single-cell-room
	setActiveProbability(e, 100)
	e.Step()
	e.Step() // settles
	pos := w.Robots[0].Position
	for i := 0; i < 10; i++ {
		e.Step()
		if !w.Robots[0].Position.Eq(pos) {
			t.Fatalf("settled robot moved on tick %d: %v -> %v", i, pos, w.Robots[0].Position)
		}
	}
}

// I6: robot_steps[id] <= robot_time[id] at every tick.
func TestRobotStepsNeverExceedRobotTime(t *testing.T) {
	e, w, _ := newTestEngine()
	loadMap(e, 1) // straight-corridor
	setActiveProbability(e, 70)
	for i := 0; i < 40; i++ {
		e.Step()
		for id := 0; id < w.RobotCount; id++ {
			if e.robotSteps[id] > e.robotTime[id] {
				t.Fatalf("tick %d robot %d: robotSteps=%d > robotTime=%d", i, id, e.robotSteps[id], e.robotTime[id])
			}
		}
	}
}

// I7: once complete, completion stays true absent an external edit.
func TestCompletionStaysTrueUntilExternalEdit(t *testing.T) {
	e, _, _ := newTestEngine()
	loadMap(e, 0)
	setActiveProbability(e, 100)
	for i := 0; i < 8 && !e.IsComplete(); i++ {
		e.Step()
	}
	if !e.IsComplete() {
		t.Fatalf("single-cell room did not complete")
	}
	e.Step()
	if !e.IsComplete() {
		t.Errorf("completion should remain true without an external edit")
	}
	e.Apply([]Command{{Type: CommandAddRobot, AddRobot: &AddRobotPayload{X: 0, Y: 0, Z: 0}}})
	e.Step()
	if !e.IsComplete() {
		t.Errorf("AddRobot onto an already-full single-cell arena should be suppressed, not reopen completion")
	}
}

// I8: once a robot's transition has been consumed by one PopEvent call,
// further calls with no intervening tick keep reporting the same tag.
func TestPopEventStableWithoutIntermediateTick(t *testing.T) {
	e, _, _ := newTestEngine()
	loadMap(e, 0)
	setActiveProbability(e, 100)
	e.Step()

	first := e.PopEvent(0)
	second := e.PopEvent(0)
	third := e.PopEvent(0)
	if first == -1 || second == -1 || third == -1 {
		t.Fatalf("PopEvent returned -1 for a valid id")
	}
	if second != third {
		t.Errorf("PopEvent should stabilize once the transition has been consumed: %d vs %d", second, third)
	}
}

// PopEvent on an id outside the robot arena returns -1.
func TestPopEventInvalidID(t *testing.T) {
	e, _, _ := newTestEngine()
	loadMap(e, 0)
	if got := e.PopEvent(0); got != -1 {
		t.Errorf("PopEvent(0) with no robots spawned = %d, want -1", got)
	}
	if got := e.PopEvent(-1); got != -1 {
		t.Errorf("PopEvent(-1) = %d, want -1", got)
	}
}

// R1: load_map(i); reset yields the same walkable/door/distance/metrics.
func TestResetMatchesLoadMap(t *testing.T) {
	e, w, catalog := newTestEngine()
	loadMap(e, 3) // cross-room
	wantAvailable := e.Metrics().AvailableCells
	wantDoor := w.Door

	e.Apply([]Command{{Type: CommandAddRobot, AddRobot: &AddRobotPayload{X: 1, Y: 0, Z: 1}}})
	e.Step()
	e.Apply([]Command{{Type: CommandReset}})

	if w.RobotCount != 0 {
		t.Errorf("Reset should clear the robot arena, RobotCount = %d", w.RobotCount)
	}
	if !w.Door.Eq(wantDoor) {
		t.Errorf("Reset door = %v, want %v", w.Door, wantDoor)
	}
	if got := e.Metrics().AvailableCells; got != wantAvailable {
		t.Errorf("Reset AvailableCells = %d, want %d", got, wantAvailable)
	}
	if got := e.Metrics().SimulationSteps; got != 0 {
		t.Errorf("Reset should zero SimulationSteps, got %d", got)
	}
	_ = catalog
}

// B1: out-of-bounds SetCell leaves walkable/robot_count untouched.
func TestSetCellOutOfBoundsIsNoop(t *testing.T) {
	e, w, _ := newTestEngine()
	loadMap(e, 0)
	before := e.Metrics().AvailableCells
	e.Apply([]Command{{Type: CommandSetCell, SetCell: &SetCellPayload{X: 99, Y: 99, Z: 99, Kind: world.Empty}}})
	if got := e.Metrics().AvailableCells; got != before {
		t.Errorf("AvailableCells changed after out-of-bounds SetCell: %d -> %d", before, got)
	}
	if w.RobotCount != 0 {
		t.Errorf("RobotCount changed after out-of-bounds SetCell: %d", w.RobotCount)
	}
}

// B2: a door with all six neighbors Wall spawns then total-blocks next tick.
func TestDoorFullyWalledTotalBlocks(t *testing.T) {
	e, w, _ := newTestEngine()
	w.Init(1, 1, 1)
	w.SetCell(0, 0, 0, world.Empty)
	w.Door = geom.Vec3{X: 0, Y: 0, Z: 0}
	w.BFS()
	setActiveProbability(e, 100)

	e.Step()
	if w.RobotCount != 1 {
		t.Fatalf("expected a robot spawned at the door")
	}
	e.Step()
	if w.Robots[0].Active {
		t.Errorf("robot should total-block on the second tick")
	}
}
