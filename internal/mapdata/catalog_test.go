package mapdata

import (
	"testing"

	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/geom"
)

func TestEncodeDecodeBitsRoundTrip(t *testing.T) {
	d := Dims{X: 3, Y: 2, Z: 4}
	walkable := func(x, y, z int) bool {
		return (x+y+z)%2 == 0
	}
	bits := EncodeBits(d, walkable)
	for z := 0; z < d.Z; z++ {
		for y := 0; y < d.Y; y++ {
			for x := 0; x < d.X; x++ {
				want := walkable(x, y, z)
				got := DecodeBit(d, bits, x, y, z)
				if got != want {
					t.Fatalf("DecodeBit(%d,%d,%d) = %v, want %v", x, y, z, got, want)
				}
			}
		}
	}
}

func TestDecodeBitOutOfRange(t *testing.T) {
	d := Dims{X: 2, Y: 2, Z: 2}
	bits := EncodeBits(d, func(x, y, z int) bool { return true })
	if DecodeBit(d, bits, -1, 0, 0) {
		t.Errorf("negative coordinate should decode as wall")
	}
	if DecodeBit(d, bits, 2, 0, 0) {
		t.Errorf("coordinate past extent should decode as wall")
	}
}

func TestPopcountMatchesWalkableCount(t *testing.T) {
	for _, m := range DefaultCatalog().maps {
		want := 0
		for z := 0; z < m.Dims.Z; z++ {
			for y := 0; y < m.Dims.Y; y++ {
				for x := 0; x < m.Dims.X; x++ {
					if m.Walkable(x, y, z) {
						want++
					}
				}
			}
		}
		if got := Popcount(m.Dims, m.Bits); got != want {
			t.Errorf("%s: Popcount = %d, want %d", m.Name, got, want)
		}
	}
}

func TestBuiltinMapsDoorInvariant(t *testing.T) {
	for _, m := range DefaultCatalog().maps {
		if !m.Walkable(m.Door.X, m.Door.Y, m.Door.Z) {
			t.Errorf("%s: door %v is not walkable", m.Name, m.Door)
		}
		if m.Door.X < 0 || m.Door.X >= m.Dims.X || m.Door.Y < 0 || m.Door.Y >= m.Dims.Y || m.Door.Z < 0 || m.Door.Z >= m.Dims.Z {
			t.Errorf("%s: door %v lies outside volume %v", m.Name, m.Door, m.Dims)
		}
	}
}

func TestDemoMapInvariants(t *testing.T) {
	m := DemoMap()
	if m.Dims != (Dims{X: 3, Y: 4, Z: 4}) {
		t.Fatalf("DemoMap dims = %+v, want {3 4 4}", m.Dims)
	}
	if m.Door != (geom.Vec3{X: 2, Y: 1, Z: 1}) {
		t.Errorf("DemoMap door = %+v, want {2 1 1}", m.Door)
	}
	if !m.Walkable(m.Door.X, m.Door.Y, m.Door.Z) {
		t.Errorf("DemoMap door %v must be walkable", m.Door)
	}
	if Popcount(m.Dims, m.Bits) == 0 {
		t.Errorf("DemoMap has no walkable cells")
	}
	catalog := DefaultCatalog()
	if catalog.At(4).Name != m.Name {
		t.Errorf("DemoMap must be DefaultCatalog index 4, got %q at index 4", catalog.At(4).Name)
	}
}

func TestCatalogInvalidIndexFallsBackToFirst(t *testing.T) {
	c := DefaultCatalog()
	first := c.At(0)
	got := c.At(999)
	if got.Name != first.Name {
		t.Errorf("At(999) = %q, want fallback to %q", got.Name, first.Name)
	}
	got = c.At(-1)
	if got.Name != first.Name {
		t.Errorf("At(-1) = %q, want fallback to %q", got.Name, first.Name)
	}
}

func TestEmptyCatalogIsNoop(t *testing.T) {
	c := NewCatalog()
	if got := c.At(0); got.Name != "" {
		t.Errorf("empty catalog At(0) = %+v, want zero value", got)
	}
	if _, ok := c.Resolve(0); ok {
		t.Errorf("empty catalog Resolve should report ok=false")
	}
}

func TestNameAccessors(t *testing.T) {
	c := DefaultCatalog()
	name := c.At(0).Name
	if got := c.NameLength(0); got != len(name) {
		t.Errorf("NameLength(0) = %d, want %d", got, len(name))
	}
	for i := 0; i < len(name); i++ {
		if got := c.NameChar(0, i); got != name[i] {
			t.Errorf("NameChar(0,%d) = %q, want %q", i, got, name[i])
		}
	}
	if got := c.NameChar(0, len(name)); got != 0 {
		t.Errorf("NameChar past end should be 0, got %q", got)
	}
	if got := c.NameLength(-1); got != -1 {
		t.Errorf("NameLength(-1) = %d, want -1", got)
	}
}
