package sim

import "github.com/Kristofy/uniform-dispersion-problem-3d/internal/geom"

// LifecycleState is the coarse per-robot state spec.md §4.C9 diffs against.
type LifecycleState int

const (
	StateIdle LifecycleState = iota
	StateActive
	StateSettled
)

// EventTag is the diff tag popped by PopEvent, packed into the low 3 bits
// of the return value.
type EventTag int

const (
	TagNoChange EventTag = iota
	TagMoving
	TagStopped
	TagSettled
	TagInvalid
)

// eventLog tracks prev_state[]/curr_state[] for every robot id (spec.md
// §4.C9). Both arrays grow lazily as the robot arena grows; new slots
// default to StateIdle.
type eventLog struct {
	prev []LifecycleState
	curr []LifecycleState
}

func (e *eventLog) growTo(n int) {
	for len(e.prev) < n {
		e.prev = append(e.prev, StateIdle)
		e.curr = append(e.curr, StateIdle)
	}
}

func (e *eventLog) reset() {
	e.prev = e.prev[:0]
	e.curr = e.curr[:0]
}

// diffTag implements the Idle/Active/Settled transition table of
// spec.md §4.C9 exactly.
func diffTag(prev, curr LifecycleState) EventTag {
	switch prev {
	case StateIdle:
		switch curr {
		case StateIdle:
			return TagNoChange
		case StateActive:
			return TagMoving
		case StateSettled:
			return TagSettled
		}
	case StateActive:
		switch curr {
		case StateIdle:
			return TagStopped
		case StateActive:
			return TagMoving
		case StateSettled:
			return TagSettled
		}
	case StateSettled:
		if curr == StateSettled {
			return TagNoChange
		}
		return TagInvalid
	}
	return TagInvalid
}

// popEvent derives the diff tag for id from the stored (prev, curr) pair,
// rolls the state forward from active, and packs (tag, direction) into a
// small integer: tag occupies bits 0..2, direction occupies bits 3..5
// (0..5 in canonical order, 6 if lastMove is not a unit direction, e.g.
// zero). Invalid id returns -1.
func (e *eventLog) popEvent(id int, active bool, lastMove geom.Vec3) int {
	if id < 0 || id >= len(e.curr) {
		return -1
	}
	tag := diffTag(e.prev[id], e.curr[id])
	e.prev[id] = e.curr[id]
	if active {
		e.curr[id] = StateActive
	} else {
		e.curr[id] = StateSettled
	}

	dirCode := 6
	if d, ok := geom.DirectionOf(lastMove); ok {
		dirCode = int(d)
	}
	return int(tag) | (dirCode << 3)
}
