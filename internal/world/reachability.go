package world

import "github.com/Kristofy/uniform-dispersion-problem-3d/internal/geom"

// Reachable decides whether from and to — both relative displacements in
// {-1,0,1}^3 — are mutually reachable via 6-connected non-Wall cells of
// neighborhood (spec §4.C6). If either endpoint is Wall the answer is
// false. This operates purely on the 27-element buffer; it never touches
// the world.
func Reachable(from, to geom.Vec3, neighborhood *[27]CellState) bool {
	fromIdx := RelIndex(from.X, from.Y, from.Z)
	toIdx := RelIndex(to.X, to.Y, to.Z)
	if neighborhood[fromIdx] == StateWall || neighborhood[toIdx] == StateWall {
		return false
	}

	var reach [27]bool
	reach[fromIdx] = true

	for changed := true; changed; {
		changed = false
		for i := -1; i <= 1; i++ {
			for j := -1; j <= 1; j++ {
				for k := -1; k <= 1; k++ {
					idx := RelIndex(i, j, k)
					if !reach[idx] {
						continue
					}
					for _, d := range geom.All() {
						ni, nj, nk := i+d.Vec().X, j+d.Vec().Y, k+d.Vec().Z
						if ni < -1 || ni > 1 || nj < -1 || nj > 1 || nk < -1 || nk > 1 {
							continue
						}
						nIdx := RelIndex(ni, nj, nk)
						if reach[nIdx] || neighborhood[nIdx] == StateWall {
							continue
						}
						reach[nIdx] = true
						changed = true
					}
				}
			}
		}
	}

	return reach[toIdx]
}
