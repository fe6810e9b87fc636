// Package components defines the ECS components attached to car entities.
// Components are plain value types; all behavior lives in the physics,
// genetics and engine packages.
package components

import "github.com/tracklab/evodrive/physics"

// MaxSensors bounds the sensor fan size so SensorRig stays a fixed-size
// component.
const MaxSensors = 16

// Pose is a car's position and heading.
type Pose struct {
	Pos     physics.Vec2
	Heading float32
}

// Motion is a car's speed and derived velocity.
type Motion struct {
	Speed float32
	Vel   physics.Vec2
}

// Controls holds the control signals applied on the current tick, either
// decoded from a brain's outputs or set by the manual driver.
type Controls struct {
	Steer    float32 // [-1, 1]
	Throttle float32 // [0, 1]
	Brake    float32 // [0, 1]
}

// SensorRig is a car's fixed fan of ray sensors. Count is at most
// MaxSensors; Sensors[Count:] is unused.
type SensorRig struct {
	Count   int
	Sensors [MaxSensors]physics.Sensor
}

// Active returns the live sensor slice.
func (r *SensorRig) Active() []physics.Sensor {
	return r.Sensors[:r.Count]
}

// Progress tracks a car's race bookkeeping within one generation.
// Checkpoints is monotonic; the next expected checkpoint id is
// Checkpoints mod the track's checkpoint count.
type Progress struct {
	Fitness     float32
	Distance    float32
	Checkpoints int
	Alive       bool
}

// Racer identifies a car. ID keys the engine's brain map; Color is a
// stable palette index for hosts that render the population.
type Racer struct {
	ID    uint32
	Color uint8
}

// AIDriven is a tag component marking cars that belong to the evolving
// population. The manual car is spawned without it, so population filters
// never see it.
type AIDriven struct{}
