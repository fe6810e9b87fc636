package engine

import (
	"fmt"

	"github.com/tracklab/evodrive/components"
	"github.com/tracklab/evodrive/neural"
	"github.com/tracklab/evodrive/physics"
	"github.com/tracklab/evodrive/track"
)

// CarSnapshot is a read-only copy of one car's state.
type CarSnapshot struct {
	ID    uint32
	Color uint8

	Pos     physics.Vec2
	Heading float32
	Speed   float32
	Vel     physics.Vec2

	Controls components.Controls
	Sensors  []physics.Sensor

	Fitness     float32
	Distance    float32
	Checkpoints int
	Alive       bool

	Manual bool
}

// Snapshot is a read-only copy of the whole simulation state, suitable for
// rendering and telemetry. The engine keeps exclusive write access to the
// live state; hosts only ever see these copies.
type Snapshot struct {
	Cars   []CarSnapshot
	Manual *CarSnapshot

	Generation       int
	BestFitnessEver  float32
	Running          bool
	ElapsedSec       float64
	MaxGenerationSec float64
	AliveCount       int
}

// carSnapshotFrom copies one car's components into a CarSnapshot.
func carSnapshotFrom(
	pose *components.Pose,
	motion *components.Motion,
	controls *components.Controls,
	rig *components.SensorRig,
	progress *components.Progress,
	racer *components.Racer,
	manual bool,
) CarSnapshot {
	sensors := make([]physics.Sensor, rig.Count)
	copy(sensors, rig.Active())

	return CarSnapshot{
		ID:          racer.ID,
		Color:       racer.Color,
		Pos:         pose.Pos,
		Heading:     pose.Heading,
		Speed:       motion.Speed,
		Vel:         motion.Vel,
		Controls:    *controls,
		Sensors:     sensors,
		Fitness:     progress.Fitness,
		Distance:    progress.Distance,
		Checkpoints: progress.Checkpoints,
		Alive:       progress.Alive,
		Manual:      manual,
	}
}

// Snapshot returns the current state of the whole simulation.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Generation:       e.generation,
		BestFitnessEver:  e.bestEver,
		Running:          e.running,
		ElapsedSec:       e.elapsed,
		MaxGenerationSec: e.maxGenSec,
	}

	query := e.carFilter.Query()
	for query.Next() {
		pose, motion, controls, rig, progress, racer, _ := query.Get()
		cs := carSnapshotFrom(pose, motion, controls, rig, progress, racer, false)
		if cs.Alive {
			snap.AliveCount++
		}
		snap.Cars = append(snap.Cars, cs)
	}

	if e.hasManual {
		pose := e.poseMap.Get(e.manual)
		motion := e.motionMap.Get(e.manual)
		controls := e.controlsMap.Get(e.manual)
		rig := e.rigMap.Get(e.manual)
		progress := e.progressMap.Get(e.manual)
		racer := e.racerMap.Get(e.manual)
		if pose != nil && motion != nil && controls != nil && rig != nil && progress != nil && racer != nil {
			cs := carSnapshotFrom(pose, motion, controls, rig, progress, racer, true)
			snap.Manual = &cs
		}
	}

	return snap
}

// Track returns the active track. Callers must treat it as read-only;
// layout changes go through SetTrack.
func (e *Engine) Track() *track.Track {
	return e.track
}

// BestCar returns a snapshot of the highest-fitness population car, first
// maximal on ties. The second return value is false for an empty
// population.
func (e *Engine) BestCar() (CarSnapshot, bool) {
	var best CarSnapshot
	found := false

	query := e.carFilter.Query()
	for query.Next() {
		pose, motion, controls, rig, progress, racer, _ := query.Get()
		if !found || progress.Fitness > best.Fitness {
			best = carSnapshotFrom(pose, motion, controls, rig, progress, racer, false)
			found = true
		}
	}
	return best, found
}

// AliveCars returns snapshots of all population cars still alive.
func (e *Engine) AliveCars() []CarSnapshot {
	var out []CarSnapshot
	query := e.carFilter.Query()
	for query.Next() {
		pose, motion, controls, rig, progress, racer, _ := query.Get()
		if progress.Alive {
			out = append(out, carSnapshotFrom(pose, motion, controls, rig, progress, racer, false))
		}
	}
	return out
}

// Generation returns the current generation counter (starts at 1).
func (e *Engine) Generation() int {
	return e.generation
}

// BestFitnessEver returns the running maximum fitness across generations.
func (e *Engine) BestFitnessEver() float32 {
	return e.bestEver
}

// ExportBrain serializes a car's network for host-side save.
func (e *Engine) ExportBrain(id uint32) (neural.WeightsRecord, error) {
	brain, ok := e.brains[id]
	if !ok {
		return neural.WeightsRecord{}, fmt.Errorf("engine: no car with id %d", id)
	}
	return brain.MarshalWeights(), nil
}

// ImportBrain validates a weights record and assigns the resulting network
// to a car. The record must match the engine's configured topology; an
// invalid record leaves the car unchanged.
func (e *Engine) ImportBrain(id uint32, rec neural.WeightsRecord) error {
	if _, ok := e.brains[id]; !ok {
		return fmt.Errorf("engine: no car with id %d", id)
	}

	brain, err := neural.ParseWeights(rec)
	if err != nil {
		return err
	}
	if brain.NumInputs != e.cfg.Derived.Inputs ||
		brain.NumHidden != e.cfg.Neural.Hidden ||
		brain.NumOutputs != e.cfg.Neural.Outputs {
		return fmt.Errorf("engine: brain topology %dx%dx%d does not match configuration %dx%dx%d",
			brain.NumInputs, brain.NumHidden, brain.NumOutputs,
			e.cfg.Derived.Inputs, e.cfg.Neural.Hidden, e.cfg.Neural.Outputs)
	}

	e.brains[id] = brain
	return nil
}
