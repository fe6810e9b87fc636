package engine

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/tracklab/evodrive/components"
	"github.com/tracklab/evodrive/neural"
)

// carSnapshot captures read-only state for parallel processing.
type carSnapshot struct {
	Entity   ecs.Entity
	ID       uint32
	Pose     components.Pose
	Motion   components.Motion
	Controls components.Controls
	Rig      components.SensorRig
	Progress components.Progress
	Brain    *neural.Network
}

// carIntent captures computed outputs to apply after the parallel phase.
type carIntent struct {
	Pose     components.Pose
	Motion   components.Motion
	Controls components.Controls
	Rig      components.SensorRig
	Progress components.Progress

	Died          bool // alive -> dead transition this tick
	CheckpointHit bool
}

// workerScratch holds per-worker reusable buffers.
type workerScratch struct {
	Inputs []float32
}

// workChunk represents a range of cars for a worker to process.
type workChunk struct {
	start, end int
	dt         float32
}

// parallelState holds resources for parallel car computation.
type parallelState struct {
	snapshots  []carSnapshot
	intents    []carIntent
	scratches  []workerScratch
	numWorkers int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState(numInputs int) *parallelState {
	numWorkers := runtime.GOMAXPROCS(0)
	scratches := make([]workerScratch, numWorkers)
	for i := range scratches {
		scratches[i].Inputs = make([]float32, numInputs)
	}
	return &parallelState{
		numWorkers: numWorkers,
		scratches:  scratches,
		snapshots:  make([]carSnapshot, 0, 128),
		intents:    make([]carIntent, 0, 128),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(e *Engine) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(e, i)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(e *Engine, workerID int) {
	defer p.wg.Done()
	scratch := &p.scratches[workerID]

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			e.computeChunk(chunk.start, chunk.end, scratch, chunk.dt)
			p.doneChan <- struct{}{}
		}
	}
}

// updateCarsParallel advances all alive population cars by one tick.
// Phase A snapshots entity state single-threaded, phase B computes sensors,
// inference and physics (parallel above the configured threshold; the track
// is immutable for the duration), and phase C applies intents
// single-threaded so fitness aggregation sees a consistent population.
func (e *Engine) updateCarsParallel(dt float32) {
	// Phase A: Build snapshots (single-threaded)
	e.parallel.snapshots = e.parallel.snapshots[:0]

	query := e.carFilter.Query()
	for query.Next() {
		pose, motion, controls, rig, progress, racer, _ := query.Get()

		if !progress.Alive {
			continue
		}

		brain, ok := e.brains[racer.ID]
		if !ok {
			continue
		}

		e.parallel.snapshots = append(e.parallel.snapshots, carSnapshot{
			Entity:   query.Entity(),
			ID:       racer.ID,
			Pose:     *pose,
			Motion:   *motion,
			Controls: *controls,
			Rig:      *rig,
			Progress: *progress,
			Brain:    brain,
		})
	}

	n := len(e.parallel.snapshots)
	if n == 0 {
		return
	}

	// Resize intents slice
	if cap(e.parallel.intents) < n {
		e.parallel.intents = make([]carIntent, n)
	}
	e.parallel.intents = e.parallel.intents[:n]

	// Phase B: Compute - single or parallel based on car count
	if n < e.cfg.Simulation.ParallelThreshold {
		scratch := &e.parallel.scratches[0]
		e.computeChunk(0, n, scratch, dt)
	} else {
		e.computeParallel(n, dt)
	}

	// Phase C: Apply intents (single-threaded, preserves determinism)
	e.applyIntents()
}

// computeParallel dispatches work to the worker pool.
func (e *Engine) computeParallel(n int, dt float32) {
	if !e.parallel.running {
		e.parallel.startWorkers(e)
	}

	numWorkers := e.parallel.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	chunksDispatched := 0
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		e.parallel.workChan <- workChunk{start: start, end: end, dt: dt}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-e.parallel.doneChan
	}
}

// computeChunk processes cars [start, end) with one worker's scratch space.
func (e *Engine) computeChunk(start, end int, scratch *workerScratch, dt float32) {
	for i := start; i < end; i++ {
		e.computeCar(&e.parallel.snapshots[i], &e.parallel.intents[i], scratch, dt)
	}
}

// applyIntents writes computed results back to the ECS components.
func (e *Engine) applyIntents() {
	for i := range e.parallel.snapshots {
		snap := &e.parallel.snapshots[i]
		intent := &e.parallel.intents[i]

		pose := e.poseMap.Get(snap.Entity)
		motion := e.motionMap.Get(snap.Entity)
		controls := e.controlsMap.Get(snap.Entity)
		rig := e.rigMap.Get(snap.Entity)
		progress := e.progressMap.Get(snap.Entity)

		if pose == nil || motion == nil || controls == nil || rig == nil || progress == nil {
			continue
		}

		*pose = intent.Pose
		*motion = intent.Motion
		*controls = intent.Controls
		*rig = intent.Rig
		*progress = intent.Progress

		if intent.Died {
			e.collector.RecordDeath()
		}
		if intent.CheckpointHit {
			e.collector.RecordCheckpoint()
		}
	}
}
