// Package track defines the static geometry the simulation runs on.
package track

import "github.com/tracklab/evodrive/physics"

// Wall is an impassable line segment.
type Wall = physics.Segment

// Checkpoint is a line segment cars must cross in sequence.
// ID is the zero-based position in the track's checkpoint order.
type Checkpoint struct {
	Seg physics.Segment
	ID  int
}

// Track holds the full course layout plus the shared start pose.
// The simulation treats a Track as immutable; layout changes happen by
// swapping in a whole new Track via the engine.
type Track struct {
	Walls        []Wall
	Checkpoints  []Checkpoint
	StartPos     physics.Vec2
	StartHeading float32
}
