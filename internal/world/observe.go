package world

// RelIndex returns the linear index of a relative displacement
// (dx,dy,dz) in {-1,0,1}^3 within a 27-element neighborhood buffer: the
// center cell is index 13.
func RelIndex(dx, dy, dz int) int {
	return (dx+1)*9 + (dy+1)*3 + (dz + 1)
}

// Observe assembles the 3x3x3 neighborhood of (x,y,z) into dst, writing
// cellState(i,j,k) for every relative displacement in {-1,0,1}^3 at its
// RelIndex slot (spec §4.C5). dst is reused in place; it is never
// reallocated here.
func (w *World) Observe(x, y, z int, dst *[27]CellState) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				dst[RelIndex(dx, dy, dz)] = w.cellState(x+dx, y+dy, z+dz)
			}
		}
	}
}

// ObserveRobot fills r's own neighborhood scratch buffer from r's current
// Position and returns a copy for Decide, so the decision round never
// allocates a fresh [27]CellState per robot per tick.
func (w *World) ObserveRobot(r *Robot) [27]CellState {
	w.Observe(r.Position.X, r.Position.Y, r.Position.Z, &r.obs)
	return r.obs
}
