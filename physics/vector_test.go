package physics

import (
	"math"
	"testing"
)

func approxEq(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestDistance(t *testing.T) {
	if d := Distance(Vec2{0, 0}, Vec2{3, 4}); !approxEq(d, 5) {
		t.Errorf("Distance = %v, want 5", d)
	}
	if d := Distance(Vec2{1, 1}, Vec2{1, 1}); d != 0 {
		t.Errorf("Distance of identical points = %v, want 0", d)
	}
}

func TestNormalize(t *testing.T) {
	n := Normalize(Vec2{3, 4})
	if !approxEq(n.X, 0.6) || !approxEq(n.Y, 0.8) {
		t.Errorf("Normalize(3,4) = (%v,%v), want (0.6,0.8)", n.X, n.Y)
	}

	// Zero vector stays zero
	z := Normalize(Vec2{0, 0})
	if z.X != 0 || z.Y != 0 {
		t.Errorf("Normalize(0,0) = (%v,%v), want (0,0)", z.X, z.Y)
	}
}

func TestRotate(t *testing.T) {
	r := Rotate(Vec2{1, 0}, math.Pi/2)
	if !approxEq(r.X, 0) || !approxEq(r.Y, 1) {
		t.Errorf("Rotate((1,0), 90deg) = (%v,%v), want (0,1)", r.X, r.Y)
	}

	full := Rotate(Vec2{1, 2}, 2*math.Pi)
	if !approxEq(full.X, 1) || !approxEq(full.Y, 2) {
		t.Errorf("full rotation = (%v,%v), want (1,2)", full.X, full.Y)
	}
}

func TestHeadingVector(t *testing.T) {
	h := Heading(0)
	if !approxEq(h.X, 1) || !approxEq(h.Y, 0) {
		t.Errorf("Heading(0) = (%v,%v), want (1,0)", h.X, h.Y)
	}
}

func TestNormalizeAngle(t *testing.T) {
	if a := NormalizeAngle(3 * math.Pi); !approxEq(a, math.Pi) {
		t.Errorf("NormalizeAngle(3pi) = %v, want pi", a)
	}
	if a := NormalizeAngle(-3 * math.Pi); !approxEq(a, -math.Pi) && !approxEq(a, math.Pi) {
		t.Errorf("NormalizeAngle(-3pi) = %v, want +-pi", a)
	}
}
