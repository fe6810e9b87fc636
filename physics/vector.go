// Package physics provides the 2D geometry and kinematics used by the
// simulation: vector primitives, segment intersection, sensor ray casting,
// and car motion integration.
package physics

import "math"

// Vec2 is a 2D point or direction.
type Vec2 struct {
	X float32
	Y float32
}

// Segment is a line segment between two points.
type Segment struct {
	A Vec2
	B Vec2
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Vec2) float32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func Normalize(v Vec2) Vec2 {
	mag := float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
	if mag == 0 {
		return v
	}
	return Vec2{X: v.X / mag, Y: v.Y / mag}
}

// Rotate returns v rotated by angle radians around the origin.
func Rotate(v Vec2, angle float32) Vec2 {
	sin, cos := math.Sincos(float64(angle))
	s := float32(sin)
	c := float32(cos)
	return Vec2{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
	}
}

// Heading returns the unit direction vector for a heading angle.
func Heading(angle float32) Vec2 {
	sin, cos := math.Sincos(float64(angle))
	return Vec2{X: float32(cos), Y: float32(sin)}
}

// NormalizeAngle wraps an angle to [-Pi, Pi].
func NormalizeAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
