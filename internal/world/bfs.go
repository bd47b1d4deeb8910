package world

import "github.com/Kristofy/uniform-dispersion-problem-3d/internal/geom"

// BFS recomputes the distance field from the door over 6-connected
// walkable cells (spec §4.C3). Cells with no walkable path from the door
// retain Unreachable. The queue capacity equals the number of cells, which
// always bounds the number of walkable cells, so it cannot overflow.
func (w *World) BFS() {
	for i := range w.distance {
		w.distance[i] = Unreachable
	}
	if !w.inBounds(w.Door.X, w.Door.Y, w.Door.Z) {
		return
	}
	doorIdx := w.index(w.Door.X, w.Door.Y, w.Door.Z)
	if !w.walkable[doorIdx] {
		return
	}

	queue := make([]geom.Vec3, 0, len(w.distance))
	w.distance[doorIdx] = 0
	queue = append(queue, w.Door)

	for head := 0; head < len(queue); head++ {
		v := queue[head]
		vIdx := w.index(v.X, v.Y, v.Z)
		for _, d := range geom.All() {
			next := v.Add(d.Vec())
			if !w.inBounds(next.X, next.Y, next.Z) {
				continue
			}
			nextIdx := w.index(next.X, next.Y, next.Z)
			if w.distance[nextIdx] != Unreachable {
				continue
			}
			if !w.walkable[nextIdx] {
				continue
			}
			w.distance[nextIdx] = w.distance[vIdx] + 1
			queue = append(queue, next)
		}
	}
}
