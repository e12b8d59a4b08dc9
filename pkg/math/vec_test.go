package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestVec3Add(t *testing.T) {
	v := Vec3{1, 2, 3}.Add(Vec3{4, 5, 6})
	if v != (Vec3{5, 7, 9}) {
		t.Errorf("Add: got %+v, want (5, 7, 9)", v)
	}
}

func TestVec3Cross(t *testing.T) {
	// X cross Y = Z
	v := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	if v != (Vec3{0, 0, 1}) {
		t.Errorf("Cross: got %+v, want (0, 0, 1)", v)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}.Normalize()
	if math32.Abs(v.Length()-1) > 1e-6 {
		t.Errorf("normalized length = %f, want 1", v.Length())
	}

	// Zero vector stays zero
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector normalized to %+v", z)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, 3}
	b := Vec3{2, 4, 3}

	if got := a.Min(b); got != (Vec3{1, 4, 3}) {
		t.Errorf("Min: got %+v, want (1, 4, 3)", got)
	}
	if got := a.Max(b); got != (Vec3{2, 5, 3}) {
		t.Errorf("Max: got %+v, want (2, 5, 3)", got)
	}
}

func TestVec3Distance(t *testing.T) {
	d := Vec3{0, 0, 0}.Distance(Vec3{3, 4, 0})
	if math32.Abs(d-5) > 1e-6 {
		t.Errorf("Distance = %f, want 5", d)
	}
}
