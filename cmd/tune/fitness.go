package main

import (
	"io"
	"sync"
	"time"

	"github.com/tracklab/evodrive/config"
	"github.com/tracklab/evodrive/engine"
	"github.com/tracklab/evodrive/track"
)

// FitnessEvaluator runs headless simulations and computes the objective.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	seeds       []int64
	baseConfig  *config.Config
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		seeds:       seeds,
		baseConfig:  baseCfg,
	}
}

// Evaluate computes the objective for a parameter vector (lower = better):
// negative best-fitness-ever averaged over all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, r := range results {
		total += r
	}
	avgBest := total / float64(len(fe.seeds))

	return -avgBest
}

// runSimulation runs one headless simulation and returns its best fitness
// ever.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	trk := track.Oval(1200, 800, 120)
	eng, err := engine.New(cfg, trk, seed)
	if err != nil {
		return 0
	}
	defer eng.Close()

	const tick = time.Second / 60
	clock := time.Unix(0, 0)
	eng.SetClock(func() time.Time { return clock })

	eng.Start()
	for eng.Generation() <= fe.generations {
		clock = clock.Add(tick)
		eng.Update()
	}
	eng.Stop()

	return float64(eng.BestFitnessEver())
}

// copyConfig makes an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

func init() {
	// Evaluations run many engines; keep their generation logs quiet.
	engine.SetLogWriter(io.Discard)
}
