package geom

import "testing"

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -1, 2}
	if got := a.Add(b); !got.Eq(Vec3{5, 1, 5}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); !got.Eq(Vec3{-3, 3, 1}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Neg(); !got.Eq(Vec3{-1, -2, -3}) {
		t.Errorf("Neg = %v", got)
	}
	if got := a.Dot(b); got != 4-2+6 {
		t.Errorf("Dot = %d, want %d", got, 4-2+6)
	}
}
