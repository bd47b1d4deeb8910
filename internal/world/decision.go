package world

import "github.com/Kristofy/uniform-dispersion-problem-3d/internal/geom"

// relCells enumerates every relative displacement in {-1,0,1}^3 except the
// center, in a fixed scan order, for the settlement reachability check.
var relCells = func() []geom.Vec3 {
	cells := make([]geom.Vec3, 0, 26)
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			for k := -1; k <= 1; k++ {
				if i == 0 && j == 0 && k == 0 {
					continue
				}
				cells = append(cells, geom.Vec3{X: i, Y: j, Z: k})
			}
		}
	}
	return cells
}()

// settlementBlocksReachability reports whether forcing the center cell to
// Wall would disconnect any pair of non-center cells that were mutually
// reachable before (spec §4.C7 step 2).
func settlementBlocksReachability(obs [27]CellState) bool {
	withWallCenter := obs
	withWallCenter[RelIndex(0, 0, 0)] = StateWall
	for _, from := range relCells {
		for _, to := range relCells {
			if Reachable(from, to, &obs) && !Reachable(from, to, &withWallCenter) {
				return true
			}
		}
	}
	return false
}

// lidsClosed returns a copy of obs with the entire top layer (y=1, i.e.
// relative dy=+1) and bottom layer (dy=-1) forced to Wall, simulating both
// horizontal lids closed (spec §4.C7 step 2, the obs2 variant).
func lidsClosed(obs [27]CellState) [27]CellState {
	out := obs
	for i := -1; i <= 1; i++ {
		for k := -1; k <= 1; k++ {
			out[RelIndex(i, 1, k)] = StateWall
			out[RelIndex(i, -1, k)] = StateWall
		}
	}
	return out
}

// setMove records a move decision toward the neighbor at relative
// position rel (spec §4.C7 "set_move"): last_move and ever_moved are only
// recorded when the destination is Free; when it is Occupied, only target
// is recorded, so the robot "pushes into" a cell that may vacate this
// tick without yet counting as having moved.
func (r *Robot) setMove(rel geom.Vec3, obs *[27]CellState) {
	r.Target = r.Position.Add(rel)
	if obs[RelIndex(rel.X, rel.Y, rel.Z)] == StateFree {
		r.LastMove = rel
		r.EverMoved = true
	}
}

// Decide runs the local decision procedure (spec §4.C7) for a robot whose
// neighborhood has already been captured into obs via Observe. tav is the
// BFS door-distance of the robot's current cell. sink receives optional,
// behavior-neutral settlement-timing anomaly notices.
func Decide(r *Robot, obs [27]CellState, tav int, sink AnomalySink) {
	r.ActiveFor++

	// Step 1: total-block check.
	blocked := true
	for _, d := range geom.All() {
		if obs[RelIndex(d.Vec().X, d.Vec().Y, d.Vec().Z)] != StateWall {
			blocked = false
			break
		}
	}
	if blocked {
		r.Active = false
		return
	}

	// Step 2: settlement test.
	axisWalled := func(a, b geom.Direction) bool {
		return obs[RelIndex(a.Vec().X, a.Vec().Y, a.Vec().Z)] == StateWall ||
			obs[RelIndex(b.Vec().X, b.Vec().Y, b.Vec().Z)] == StateWall
	}
	candidate := r.EverMoved &&
		axisWalled(geom.Up, geom.Down) &&
		axisWalled(geom.Left, geom.Right) &&
		axisWalled(geom.Forward, geom.Back)

	if candidate {
		obs2 := lidsClosed(obs)
		if !settlementBlocksReachability(obs) && !settlementBlocksReachability(obs2) {
			if sink != nil && r.ActiveFor != tav+1 {
				sink.SettlementAnomaly(r.ID, tav+1, r.ActiveFor)
			}
			r.Active = false
			r.SettledAge = 0
			return
		}
	}

	// Step 3: prefer up.
	up := geom.Up.Vec()
	if !r.LastMove.Eq(geom.Down.Vec()) && obs[RelIndex(up.X, up.Y, up.Z)] != StateWall {
		r.setMove(up, &obs)
		return
	}

	// Step 4: horizontal sweep.
	negLastMove := r.LastMove.Neg()
	for _, d := range geom.All() {
		v := d.Vec()
		if v.Dot(r.ExternalAxis) != 0 {
			continue
		}
		if v.Eq(negLastMove) {
			continue
		}
		if obs[RelIndex(v.X, v.Y, v.Z)] != StateWall {
			r.setMove(v, &obs)
			return
		}
	}

	// Step 5: fall-through.
	r.setMove(geom.Down.Vec(), &obs)
}
