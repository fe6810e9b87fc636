package physics

// Sensor is a fixed-angle ray attached to a car, measuring the distance to
// the nearest wall. Values are recomputed from scratch every tick.
type Sensor struct {
	Angle     float32 // relative to the car heading
	MaxLength float32
	Distance  float32
	Hit       bool
	End       Vec2
}

// CastSensors updates every sensor in place by ray casting from pos against
// all walls. A sensor that hits nothing reports Distance == MaxLength and
// Hit == false.
func CastSensors(pos Vec2, heading float32, sensors []Sensor, walls []Segment) {
	for i := range sensors {
		s := &sensors[i]

		dir := Heading(heading + s.Angle)
		end := Vec2{
			X: pos.X + dir.X*s.MaxLength,
			Y: pos.Y + dir.Y*s.MaxLength,
		}

		s.Distance = s.MaxLength
		s.Hit = false
		s.End = end

		for _, w := range walls {
			hit, ok := LineIntersection(pos, end, w.A, w.B)
			if !ok {
				continue
			}
			d := Distance(pos, hit)
			if d < s.Distance {
				s.Distance = d
				s.Hit = true
				s.End = hit
			}
		}
	}
}

// CheckWallCollision reports whether a car centered at pos is within radius
// of any wall. Collision is point-vs-segment; the car footprint is
// approximated by the radius.
func CheckWallCollision(pos Vec2, walls []Segment, radius float32) bool {
	for _, w := range walls {
		if SegmentDistance(pos, w) <= radius {
			return true
		}
	}
	return false
}
