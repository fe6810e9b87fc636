package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/tracklab/evodrive/components"
	"github.com/tracklab/evodrive/genetics"
	"github.com/tracklab/evodrive/neural"
	"github.com/tracklab/evodrive/track"
)

// newSensorRig builds the fixed forward-semicircle sensor fan.
func (e *Engine) newSensorRig() components.SensorRig {
	count := e.cfg.Sensors.Count
	maxLen := float32(e.cfg.Sensors.MaxLength)

	rig := components.SensorRig{Count: count}
	for i := 0; i < count; i++ {
		angle := float32(0)
		if count > 1 {
			angle = -math.Pi/2 + math.Pi*float32(i)/float32(count-1)
		}
		rig.Sensors[i].Angle = angle
		rig.Sensors[i].MaxLength = maxLen
		rig.Sensors[i].Distance = maxLen
	}
	return rig
}

// spawnCar creates one population car at the start pose with the given
// brain. The brain is registered under the car's ID.
func (e *Engine) spawnCar(brain *neural.Network) ecs.Entity {
	id := e.nextID
	e.nextID++

	pose := components.Pose{Pos: e.track.StartPos, Heading: e.track.StartHeading}
	motion := components.Motion{}
	controls := components.Controls{}
	rig := e.newSensorRig()
	progress := components.Progress{Alive: true}
	racer := components.Racer{ID: id, Color: uint8(id % colorCount)}

	e.brains[id] = brain

	return e.carMapper.NewEntity(&pose, &motion, &controls, &rig, &progress, &racer, &components.AIDriven{})
}

// spawnPopulation creates size cars with fresh random brains.
func (e *Engine) spawnPopulation(size int) error {
	for i := 0; i < size; i++ {
		brain, err := neural.NewRandom(e.rng, e.cfg.Derived.Inputs, e.cfg.Neural.Hidden, e.cfg.Neural.Outputs)
		if err != nil {
			return fmt.Errorf("engine: %w", err)
		}
		e.spawnCar(brain)
	}
	return nil
}

// despawnPopulation removes every population car and its brain. The manual
// car is untouched.
func (e *Engine) despawnPopulation() {
	// Queries must finish before entities are removed, so removal happens
	// in a second pass.
	type carRef struct {
		entity ecs.Entity
		id     uint32
	}
	var toRemove []carRef

	query := e.carFilter.Query()
	for query.Next() {
		_, _, _, _, _, racer, _ := query.Get()
		toRemove = append(toRemove, carRef{entity: query.Entity(), id: racer.ID})
	}

	for _, ref := range toRemove {
		e.carMapper.Remove(ref.entity)
		delete(e.brains, ref.id)
	}
}

// collectPopulation snapshots the population for evolution, with fitness
// recomputed from the final state of the generation.
func (e *Engine) collectPopulation() []genetics.Individual {
	weights := e.fitnessWeights()
	elapsed := float32(e.elapsed)

	var pop []genetics.Individual
	query := e.carFilter.Query()
	for query.Next() {
		_, _, controls, _, progress, racer, _ := query.Get()

		ind := genetics.Individual{
			ID:          racer.ID,
			Brain:       e.brains[racer.ID],
			Alive:       progress.Alive,
			Distance:    progress.Distance,
			Checkpoints: progress.Checkpoints,
			Brake:       controls.Brake,
		}
		ind.Fitness = genetics.Score(ind, elapsed, weights)
		pop = append(pop, ind)
	}
	return pop
}

// rollGeneration evolves the population and restarts the race.
func (e *Engine) rollGeneration() {
	pop := e.collectPopulation()

	res, err := genetics.Evolve(e.rng, pop, e.evolutionParams())
	if err != nil {
		// Population invariants guarantee this cannot happen in a running
		// engine; treat it as an internal failure, not a user error.
		Logf("[ERROR] evolution failed at generation %d: %v", e.generation, err)
		return
	}

	if res.BestFitness > e.bestEver {
		e.bestEver = res.BestFitness
	}

	e.flushTelemetry(pop, res)
	e.logGeneration(res, len(pop))

	e.despawnPopulation()
	for _, brain := range res.Brains {
		e.spawnCar(brain)
	}

	e.generation++
	e.elapsed = 0
	e.maxGenSec = e.cfg.Simulation.MaxGenerationSec
}

// flushTelemetry writes the finished generation's stats record.
func (e *Engine) flushTelemetry(pop []genetics.Individual, res genetics.Result) {
	fitnesses := make([]float64, len(pop))
	for i := range pop {
		fitnesses[i] = float64(pop[i].Fitness)
	}

	stats := e.collector.Flush(e.generation, e.elapsed, float64(e.bestEver), fitnesses, genetics.AliveCount(pop))
	stats.LowDiversity = res.LowDiversity
	stats.MutationRate = float64(res.MutationRate)
	stats.MutationStrength = float64(res.MutationStrength)

	if err := e.out.WriteGeneration(stats); err != nil {
		Logf("[WARN] telemetry write failed: %v", err)
	}
}

// Reset discards the population irreversibly and regenerates a fresh one
// of the same size at generation 1 with all timers zeroed.
func (e *Engine) Reset() error {
	size := e.cfg.Population.Size
	e.despawnPopulation()

	if err := e.spawnPopulation(size); err != nil {
		return err
	}

	e.generation = 1
	e.bestEver = 0
	e.elapsed = 0
	e.tick = 0
	e.maxGenSec = e.cfg.Simulation.MaxGenerationSec
	e.resetManualPose()
	return nil
}

// SetTrack replaces the active track and resets every car's pose and
// physics state to the new start pose. Brains are preserved, so evolution
// continues across the track change.
func (e *Engine) SetTrack(trk *track.Track) error {
	if trk == nil {
		return fmt.Errorf("engine: nil track")
	}
	e.track = trk

	query := e.carFilter.Query()
	for query.Next() {
		pose, motion, controls, rig, progress, _, _ := query.Get()
		e.resetCarState(pose, motion, controls, rig, progress)
	}

	e.elapsed = 0
	e.resetManualPose()
	return nil
}

// resetCarState puts one car back at the start pose with cleared physics
// and progress.
func (e *Engine) resetCarState(
	pose *components.Pose,
	motion *components.Motion,
	controls *components.Controls,
	rig *components.SensorRig,
	progress *components.Progress,
) {
	*pose = components.Pose{Pos: e.track.StartPos, Heading: e.track.StartHeading}
	*motion = components.Motion{}
	*controls = components.Controls{}
	*rig = e.newSensorRig()
	*progress = components.Progress{Alive: true}
}

// SetPopulationSize resizes the population. Existing brains are kept up to
// the new size; growth is filled with fresh random brains. Non-positive
// sizes are rejected and the prior population is retained.
func (e *Engine) SetPopulationSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("engine: population size must be positive, got %d", n)
	}

	pop := e.collectPopulation()
	e.despawnPopulation()

	keep := n
	if keep > len(pop) {
		keep = len(pop)
	}
	for i := 0; i < keep; i++ {
		e.spawnCar(pop[i].Brain)
	}
	if err := e.spawnPopulation(n - keep); err != nil {
		return err
	}

	e.cfg.Population.Size = n
	e.elapsed = 0
	return nil
}

// SetMaxGenerationTime changes the generation timeout. Non-positive
// durations are rejected and the prior limit is retained.
func (e *Engine) SetMaxGenerationTime(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("engine: max generation time must be positive, got %v", d)
	}
	e.maxGenSec = d.Seconds()
	e.cfg.Simulation.MaxGenerationSec = e.maxGenSec
	return nil
}
