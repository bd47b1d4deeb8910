// Package mapdata implements the bit-packed, immutable static map catalog
// (spec component C2): name, dimensions, door coordinate, and a packed
// walkability bitmap, plus the designer-authored JSON bundle format that
// feeds additional entries into the same catalog at runtime.
package mapdata

import "github.com/Kristofy/uniform-dispersion-problem-3d/internal/geom"

// Map is one catalog entry: a name, its dimensions, its door coordinate,
// and its packed walkability bitmap. Invariant: Door lies inside the
// volume and the bit at Door is set.
type Map struct {
	Name string
	Dims Dims
	Door geom.Vec3
	Bits []byte
}

// Walkable reports whether (x,y,z) is walkable in m.
func (m Map) Walkable(x, y, z int) bool {
	return DecodeBit(m.Dims, m.Bits, x, y, z)
}

// Catalog is an ordered, immutable table of maps. The zero value is an
// empty catalog.
type Catalog struct {
	maps []Map
}

// NewCatalog builds a catalog from the given maps, in order.
func NewCatalog(maps ...Map) *Catalog {
	return &Catalog{maps: append([]Map(nil), maps...)}
}

// Count returns the number of catalog entries.
func (c *Catalog) Count() int {
	if c == nil {
		return 0
	}
	return len(c.maps)
}

// At returns the entry at index i. If i is out of range and the catalog is
// non-empty, entry 0 is returned (per spec.md §7's "invalid map index"
// policy); if the catalog is empty, the zero Map is returned.
func (c *Catalog) At(i int) Map {
	if c == nil || len(c.maps) == 0 {
		return Map{}
	}
	if i < 0 || i >= len(c.maps) {
		return c.maps[0]
	}
	return c.maps[i]
}

// Resolve returns the entry at index i the way LoadMap does: index 0 when
// i is out of range, and ok=false only when the catalog itself is empty.
func (c *Catalog) Resolve(i int) (Map, bool) {
	if c == nil || len(c.maps) == 0 {
		return Map{}, false
	}
	return c.At(i), true
}

// NameLength returns the byte length of the name of entry i, or -1 if i is
// out of range.
func (c *Catalog) NameLength(i int) int {
	if c == nil || i < 0 || i >= len(c.maps) {
		return -1
	}
	return len(c.maps[i].Name)
}

// NameChar returns the byte at position j of entry i's name, or 0 if
// either index is out of range.
func (c *Catalog) NameChar(i, j int) byte {
	if c == nil || i < 0 || i >= len(c.maps) {
		return 0
	}
	name := c.maps[i].Name
	if j < 0 || j >= len(name) {
		return 0
	}
	return name[j]
}

// Append adds a map to the end of the catalog and returns its index.
func (c *Catalog) Append(m Map) int {
	c.maps = append(c.maps, m)
	return len(c.maps) - 1
}
