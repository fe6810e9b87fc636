package track

import "github.com/tracklab/evodrive/physics"

// Oval builds a rectangular ring track: an outer rectangle of the given
// size with an inner rectangle inset by the corridor width, four ordered
// checkpoints (right, top, left, bottom corridor midpoints) and a start
// pose in the bottom corridor facing +X.
//
// Track shapes are otherwise a host concern; this one builder exists so
// headless runs and tests have a course to drive.
func Oval(width, height, corridor float32) *Track {
	x0, y0 := float32(0), float32(0)
	x1, y1 := width, height
	ix0, iy0 := corridor, corridor
	ix1, iy1 := width-corridor, height-corridor

	walls := []Wall{
		// Outer rectangle
		{A: physics.Vec2{X: x0, Y: y0}, B: physics.Vec2{X: x1, Y: y0}},
		{A: physics.Vec2{X: x1, Y: y0}, B: physics.Vec2{X: x1, Y: y1}},
		{A: physics.Vec2{X: x1, Y: y1}, B: physics.Vec2{X: x0, Y: y1}},
		{A: physics.Vec2{X: x0, Y: y1}, B: physics.Vec2{X: x0, Y: y0}},
		// Inner rectangle
		{A: physics.Vec2{X: ix0, Y: iy0}, B: physics.Vec2{X: ix1, Y: iy0}},
		{A: physics.Vec2{X: ix1, Y: iy0}, B: physics.Vec2{X: ix1, Y: iy1}},
		{A: physics.Vec2{X: ix1, Y: iy1}, B: physics.Vec2{X: ix0, Y: iy1}},
		{A: physics.Vec2{X: ix0, Y: iy1}, B: physics.Vec2{X: ix0, Y: iy0}},
	}

	cx := width / 2
	cy := height / 2

	checkpoints := []Checkpoint{
		{ID: 0, Seg: physics.Segment{A: physics.Vec2{X: ix1, Y: cy}, B: physics.Vec2{X: x1, Y: cy}}},
		{ID: 1, Seg: physics.Segment{A: physics.Vec2{X: cx, Y: y0}, B: physics.Vec2{X: cx, Y: iy0}}},
		{ID: 2, Seg: physics.Segment{A: physics.Vec2{X: x0, Y: cy}, B: physics.Vec2{X: ix0, Y: cy}}},
		{ID: 3, Seg: physics.Segment{A: physics.Vec2{X: cx, Y: iy1}, B: physics.Vec2{X: cx, Y: y1}}},
	}

	return &Track{
		Walls:        walls,
		Checkpoints:  checkpoints,
		StartPos:     physics.Vec2{X: width * 0.25, Y: height - corridor/2},
		StartHeading: 0,
	}
}
