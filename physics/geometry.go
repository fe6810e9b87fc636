package physics

import "math"

// parallelEpsilon is the denominator threshold below which two segments are
// treated as parallel.
const parallelEpsilon = 1e-10

// LineIntersection computes the intersection of segments a1-a2 and b1-b2.
// The second return value is false when the segments are parallel or the
// intersection falls outside either segment.
func LineIntersection(a1, a2, b1, b2 Vec2) (Vec2, bool) {
	d1x := a2.X - a1.X
	d1y := a2.Y - a1.Y
	d2x := b2.X - b1.X
	d2y := b2.Y - b1.Y

	denom := float64(d1x*d2y - d1y*d2x)
	if math.Abs(denom) < parallelEpsilon {
		return Vec2{}, false
	}

	t := float64((b1.X-a1.X)*d2y-(b1.Y-a1.Y)*d2x) / denom
	u := float64((b1.X-a1.X)*d1y-(b1.Y-a1.Y)*d1x) / denom

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vec2{}, false
	}

	return Vec2{
		X: a1.X + float32(t)*d1x,
		Y: a1.Y + float32(t)*d1y,
	}, true
}

// PointToSegmentDistance returns the shortest distance from p to the segment
// s1-s2. A zero-length segment degenerates to point distance.
func PointToSegmentDistance(p, s1, s2 Vec2) float32 {
	dx := s2.X - s1.X
	dy := s2.Y - s1.Y

	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance(p, s1)
	}

	t := ((p.X-s1.X)*dx + (p.Y-s1.Y)*dy) / lenSq
	t = clamp01(t)

	closest := Vec2{X: s1.X + t*dx, Y: s1.Y + t*dy}
	return Distance(p, closest)
}

// SegmentDistance returns the shortest distance from p to seg.
func SegmentDistance(p Vec2, seg Segment) float32 {
	return PointToSegmentDistance(p, seg.A, seg.B)
}
