package world

import "github.com/Kristofy/uniform-dispersion-problem-3d/internal/geom"

// Robot is a single robot's mutable per-tick state (spec component C4).
// obs is a reusable 3x3x3 neighborhood scratch buffer; it is overwritten
// in place every decision round rather than reallocated, so a robot never
// allocates on the hot decision path.
type Robot struct {
	ID int

	Position geom.Vec3
	Target   geom.Vec3

	// ExternalAxis is the nominal upward axis of the world. It is fixed to
	// Up at construction and never rotated by the engine; it exists for
	// compatibility with a future variant that does rotate it.
	ExternalAxis geom.Vec3

	PrimaryDir   geom.Vec3
	SecondaryDir geom.Vec3
	LastMove     geom.Vec3

	EverMoved bool
	ActiveFor int

	Active     bool
	Sleeping   bool
	SettledAge int

	obs [27]CellState
}

// AgedOut reports whether a settled robot has aged past the point where it
// renders indistinguishably from a wall (spec: "at age > 5").
func (r *Robot) AgedOut() bool {
	return !r.Active && r.SettledAge > 5
}

// newRobot constructs a Robot at pos. active controls the initial Active
// flag; Target starts equal to Position so an unmoved robot's commit phase
// is a no-op until a decision sets Target.
func newRobot(id int, pos geom.Vec3, active bool) Robot {
	return Robot{
		ID:           id,
		Position:     pos,
		Target:       pos,
		ExternalAxis: geom.Up.Vec(),
		Active:       active,
	}
}
