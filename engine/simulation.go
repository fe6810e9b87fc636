package engine

import (
	"math"

	"github.com/tracklab/evodrive/genetics"
	"github.com/tracklab/evodrive/physics"
)

// Update advances the simulation by one host frame and returns the new
// state snapshot. When the engine is stopped this is a no-op apart from
// the snapshot.
//
// The wall-clock delta is clamped to the configured max step so a stalled
// host cannot produce a huge integration jump, then scaled by the
// simulation speed multiplier.
func (e *Engine) Update() Snapshot {
	if !e.running {
		return e.Snapshot()
	}

	now := e.now()
	dt := now.Sub(e.lastUpdate).Seconds()
	e.lastUpdate = now

	if dt > e.cfg.Simulation.MaxStep {
		dt = e.cfg.Simulation.MaxStep
	}
	dt *= e.cfg.Simulation.SpeedMultiplier

	e.step(float32(dt))
	return e.Snapshot()
}

// step runs one fixed tick of the simulation.
func (e *Engine) step(dt float32) {
	e.tick++
	e.elapsed += float64(dt)

	e.updateCarsParallel(dt)
	e.updateManualCar(dt)

	alive := 0
	var best float32
	query := e.carFilter.Query()
	for query.Next() {
		_, _, _, _, progress, _, _ := query.Get()
		if progress.Alive {
			alive++
		}
		if progress.Fitness > best {
			best = progress.Fitness
		}
	}
	if best > e.bestEver {
		e.bestEver = best
	}

	if alive == 0 || e.elapsed >= e.maxGenSec {
		e.rollGeneration()
	}
}

// computeCar runs sensing, inference, physics, collision and checkpoint
// logic for one car. It reads only the snapshot, the immutable track and
// the shared config, so chunks can run on worker goroutines.
func (e *Engine) computeCar(snap *carSnapshot, it *carIntent, scratch *workerScratch, dt float32) {
	it.Rig = snap.Rig
	sensors := it.Rig.Active()
	physics.CastSensors(snap.Pose.Pos, snap.Pose.Heading, sensors, e.track.Walls)

	// Network inputs: normalized sensor distances, then speed, heading
	// sine and cosine, and the previous brake signal.
	inputs := scratch.Inputs
	for i, s := range sensors {
		inputs[i] = s.Distance / s.MaxLength
	}
	idx := len(sensors)
	inputs[idx] = snap.Motion.Speed / float32(e.cfg.Physics.MaxSpeed)
	inputs[idx+1] = float32(math.Sin(float64(snap.Pose.Heading)))
	inputs[idx+2] = float32(math.Cos(float64(snap.Pose.Heading)))
	inputs[idx+3] = snap.Controls.Brake

	outs, err := snap.Brain.FeedForward(inputs)
	if err != nil {
		// Dimension mismatch means a mis-assembled brain; freeze the car
		// rather than corrupting the tick for the rest of the field.
		it.Pose = snap.Pose
		it.Motion = snap.Motion
		it.Controls = snap.Controls
		it.Progress = snap.Progress
		it.Progress.Alive = false
		it.Died = snap.Progress.Alive
		it.CheckpointHit = false
		Logf("[ERROR] car %d brain rejected inputs: %v", snap.ID, err)
		return
	}

	// Interpret outputs: steering scaled to [-1,1], throttle and brake
	// taken as raw [0,1] activations.
	it.Controls = snap.Controls
	it.Controls.Steer = (outs[0] - 0.5) * 2
	it.Controls.Throttle = outs[1]
	it.Controls.Brake = outs[2]

	st := physics.CarState{
		Pos:     snap.Pose.Pos,
		Heading: snap.Pose.Heading,
		Speed:   snap.Motion.Speed,
	}
	stepDist := physics.IntegrateCar(&st, it.Controls.Steer, it.Controls.Throttle, it.Controls.Brake, e.carParams(), dt)

	it.Pose.Pos = st.Pos
	it.Pose.Heading = st.Heading
	it.Motion.Speed = st.Speed
	it.Motion.Vel = st.Vel

	it.Progress = snap.Progress
	it.Progress.Distance += stepDist

	radius := float32(e.cfg.Physics.CollisionRadius)
	alive := !physics.CheckWallCollision(st.Pos, e.track.Walls, radius)
	it.Progress.Alive = alive
	it.Died = snap.Progress.Alive && !alive

	// Checkpoints must be crossed in order: only contact with the
	// checkpoint at id == passed mod total earns credit.
	it.CheckpointHit = false
	if alive && len(e.track.Checkpoints) > 0 {
		next := it.Progress.Checkpoints % len(e.track.Checkpoints)
		cp := e.track.Checkpoints[next]
		if physics.SegmentDistance(st.Pos, cp.Seg) <= radius {
			it.Progress.Checkpoints++
			it.CheckpointHit = true
		}
	}

	ind := genetics.Individual{
		Alive:       it.Progress.Alive,
		Distance:    it.Progress.Distance,
		Checkpoints: it.Progress.Checkpoints,
		Brake:       it.Controls.Brake,
	}
	it.Progress.Fitness = genetics.Score(ind, float32(e.elapsed), e.fitnessWeights())
}
