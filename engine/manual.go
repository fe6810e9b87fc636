package engine

import (
	"github.com/tracklab/evodrive/components"
	"github.com/tracklab/evodrive/physics"
)

// ManualControls is the host-supplied input state for the manually driven
// car.
type ManualControls struct {
	Forward bool
	Left    bool
	Back    bool
	Right   bool
}

// StartManualRace adds a manually driven car at the start pose, or resets
// it if one already exists. The manual car shares the track and physics
// with the population but has no brain and never enters evolution or
// fitness aggregation.
func (e *Engine) StartManualRace() {
	if e.hasManual {
		e.resetManualPose()
		return
	}

	id := e.nextID
	e.nextID++

	pose := components.Pose{Pos: e.track.StartPos, Heading: e.track.StartHeading}
	motion := components.Motion{}
	controls := components.Controls{}
	rig := e.newSensorRig()
	progress := components.Progress{Alive: true}
	racer := components.Racer{ID: id, Color: uint8(id % colorCount)}

	e.manual = e.manualMapper.NewEntity(&pose, &motion, &controls, &rig, &progress, &racer)
	e.hasManual = true
}

// UpdateManualCar translates host key state into control signals for the
// manual car. Has no effect when no manual car exists.
func (e *Engine) UpdateManualCar(mc ManualControls) {
	if !e.hasManual {
		return
	}
	controls := e.controlsMap.Get(e.manual)
	if controls == nil {
		return
	}

	controls.Throttle = 0
	if mc.Forward {
		controls.Throttle = 1
	}
	controls.Brake = 0
	if mc.Back {
		controls.Brake = 1
	}
	controls.Steer = 0
	if mc.Left {
		controls.Steer = -1
	}
	if mc.Right {
		controls.Steer = 1
	}
}

// RemoveManualVehicle deletes the manual car, if present.
func (e *Engine) RemoveManualVehicle() {
	if !e.hasManual {
		return
	}
	e.manualMapper.Remove(e.manual)
	e.hasManual = false
}

// updateManualCar integrates the manual car for one tick. Sensors are kept
// fresh so hosts can render them; collision kills the car the same way it
// kills population cars, but nothing else reacts to its state.
func (e *Engine) updateManualCar(dt float32) {
	if !e.hasManual {
		return
	}

	pose := e.poseMap.Get(e.manual)
	motion := e.motionMap.Get(e.manual)
	controls := e.controlsMap.Get(e.manual)
	rig := e.rigMap.Get(e.manual)
	progress := e.progressMap.Get(e.manual)
	if pose == nil || motion == nil || controls == nil || rig == nil || progress == nil {
		return
	}
	if !progress.Alive {
		return
	}

	physics.CastSensors(pose.Pos, pose.Heading, rig.Active(), e.track.Walls)

	st := physics.CarState{
		Pos:     pose.Pos,
		Heading: pose.Heading,
		Speed:   motion.Speed,
	}
	stepDist := physics.IntegrateCar(&st, controls.Steer, controls.Throttle, controls.Brake, e.carParams(), dt)

	pose.Pos = st.Pos
	pose.Heading = st.Heading
	motion.Speed = st.Speed
	motion.Vel = st.Vel
	progress.Distance += stepDist

	radius := float32(e.cfg.Physics.CollisionRadius)
	if physics.CheckWallCollision(st.Pos, e.track.Walls, radius) {
		progress.Alive = false
		return
	}

	if len(e.track.Checkpoints) > 0 {
		next := progress.Checkpoints % len(e.track.Checkpoints)
		cp := e.track.Checkpoints[next]
		if physics.SegmentDistance(st.Pos, cp.Seg) <= radius {
			progress.Checkpoints++
		}
	}
}

// resetManualPose puts the manual car back at the start pose.
func (e *Engine) resetManualPose() {
	if !e.hasManual {
		return
	}
	pose := e.poseMap.Get(e.manual)
	motion := e.motionMap.Get(e.manual)
	controls := e.controlsMap.Get(e.manual)
	rig := e.rigMap.Get(e.manual)
	progress := e.progressMap.Get(e.manual)
	if pose == nil || motion == nil || controls == nil || rig == nil || progress == nil {
		return
	}
	e.resetCarState(pose, motion, controls, rig, progress)
}
