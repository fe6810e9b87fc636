// Package engine owns the authoritative simulation state and drives the
// per-tick update and generation lifecycle. The engine is the sole writer
// of that state; hosts receive value snapshots only.
package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/tracklab/evodrive/components"
	"github.com/tracklab/evodrive/config"
	"github.com/tracklab/evodrive/genetics"
	"github.com/tracklab/evodrive/neural"
	"github.com/tracklab/evodrive/physics"
	"github.com/tracklab/evodrive/telemetry"
	"github.com/tracklab/evodrive/track"
)

// colorCount is the size of the host-side car palette.
const colorCount = 10

// Engine holds the complete simulation state.
type Engine struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.Config

	// Entity mappers for the evolving population (AIDriven-tagged).
	carMapper *ecs.Map7[
		components.Pose,
		components.Motion,
		components.Controls,
		components.SensorRig,
		components.Progress,
		components.Racer,
		components.AIDriven,
	]
	carFilter *ecs.Filter7[
		components.Pose,
		components.Motion,
		components.Controls,
		components.SensorRig,
		components.Progress,
		components.Racer,
		components.AIDriven,
	]

	// Mapper for the manually driven car (no AIDriven tag, so the
	// population filter never sees it).
	manualMapper *ecs.Map6[
		components.Pose,
		components.Motion,
		components.Controls,
		components.SensorRig,
		components.Progress,
		components.Racer,
	]

	// Individual component mappers for lookups
	poseMap     *ecs.Map1[components.Pose]
	motionMap   *ecs.Map1[components.Motion]
	controlsMap *ecs.Map1[components.Controls]
	rigMap      *ecs.Map1[components.SensorRig]
	progressMap *ecs.Map1[components.Progress]
	racerMap    *ecs.Map1[components.Racer]

	// Brain storage (per car by ID)
	brains map[uint32]*neural.Network
	nextID uint32

	track *track.Track

	// Generation state. The engine is the only writer.
	running    bool
	generation int
	bestEver   float32
	elapsed    float64
	maxGenSec  float64
	tick       int64

	lastUpdate time.Time
	now        func() time.Time // swappable clock for hosts and tests

	manual    ecs.Entity
	hasManual bool

	parallel  *parallelState
	collector *telemetry.Collector
	out       *telemetry.OutputManager
}

// New creates an engine with a fresh random population at generation 1.
// The track supplies the walls, checkpoints and start pose; the engine
// treats it as immutable.
func New(cfg *config.Config, trk *track.Track, seed int64) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if trk == nil {
		return nil, fmt.Errorf("engine: nil track")
	}

	world := ecs.NewWorld()

	e := &Engine{
		world: world,
		rng:   rand.New(rand.NewSource(seed)),
		cfg:   cfg,
		brains: make(map[uint32]*neural.Network),
		carMapper: ecs.NewMap7[
			components.Pose,
			components.Motion,
			components.Controls,
			components.SensorRig,
			components.Progress,
			components.Racer,
			components.AIDriven,
		](world),
		carFilter: ecs.NewFilter7[
			components.Pose,
			components.Motion,
			components.Controls,
			components.SensorRig,
			components.Progress,
			components.Racer,
			components.AIDriven,
		](world),
		manualMapper: ecs.NewMap6[
			components.Pose,
			components.Motion,
			components.Controls,
			components.SensorRig,
			components.Progress,
			components.Racer,
		](world),
		poseMap:     ecs.NewMap1[components.Pose](world),
		motionMap:   ecs.NewMap1[components.Motion](world),
		controlsMap: ecs.NewMap1[components.Controls](world),
		rigMap:      ecs.NewMap1[components.SensorRig](world),
		progressMap: ecs.NewMap1[components.Progress](world),
		racerMap:    ecs.NewMap1[components.Racer](world),
		track:       trk,
		generation:  1,
		maxGenSec:   cfg.Simulation.MaxGenerationSec,
		now:         time.Now,
		collector:   telemetry.NewCollector(),
	}
	e.parallel = newParallelState(cfg.Derived.Inputs)

	if err := e.spawnPopulation(cfg.Population.Size); err != nil {
		return nil, err
	}

	return e, nil
}

// SetOutput attaches a telemetry output manager. A nil manager disables
// CSV output.
func (e *Engine) SetOutput(out *telemetry.OutputManager) {
	e.out = out
}

// SetClock replaces the wall-clock source. Headless hosts and tests use
// this to drive the engine with a synthetic fixed-step clock.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Start begins (or resumes) tick processing. The wall clock is re-anchored
// so the first delta after a pause stays small.
func (e *Engine) Start() {
	e.running = true
	e.lastUpdate = e.now()
}

// Stop pauses tick processing. State is preserved for resume.
func (e *Engine) Stop() {
	e.running = false
}

// Close releases the worker pool. The engine must not be updated after
// Close.
func (e *Engine) Close() {
	e.parallel.stopWorkers()
}

// Running reports whether the engine is processing ticks.
func (e *Engine) Running() bool {
	return e.running
}

// carParams builds the shared motion constants from the config.
func (e *Engine) carParams() physics.CarParams {
	return physics.CarParams{
		AccelFactor: float32(e.cfg.Physics.AccelFactor),
		BrakeFactor: float32(e.cfg.Physics.BrakeFactor),
		Friction:    float32(e.cfg.Physics.Friction),
		MaxSpeed:    float32(e.cfg.Physics.MaxSpeed),
		TurnRate:    float32(e.cfg.Physics.TurnRate),
	}
}

// fitnessWeights builds the scoring coefficients from the config.
func (e *Engine) fitnessWeights() genetics.Weights {
	return genetics.Weights{
		Distance:       float32(e.cfg.Fitness.DistanceWeight),
		Checkpoint:     float32(e.cfg.Fitness.CheckpointWeight),
		Survival:       float32(e.cfg.Fitness.SurvivalWeight),
		DeathPenalty:   float32(e.cfg.Fitness.DeathPenalty),
		BrakeThreshold: float32(e.cfg.Fitness.BrakeThreshold),
		BrakePenalty:   float32(e.cfg.Fitness.BrakePenalty),
	}
}

// evolutionParams builds the evolution hyper-parameters from the config.
func (e *Engine) evolutionParams() genetics.Params {
	return genetics.Params{
		EliteFrac:            float32(e.cfg.Evolution.EliteFrac),
		CrossoverProb:        float32(e.cfg.Evolution.CrossoverProb),
		MutationRateHigh:     float32(e.cfg.Evolution.MutationRateHigh),
		MutationStrengthHigh: float32(e.cfg.Evolution.MutationStrengthHigh),
		MutationRateLow:      float32(e.cfg.Evolution.MutationRateLow),
		MutationStrengthLow:  float32(e.cfg.Evolution.MutationStrengthLow),
	}
}
