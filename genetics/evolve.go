package genetics

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tracklab/evodrive/neural"
)

// Params holds the evolution hyper-parameters for one run.
type Params struct {
	EliteFrac     float32 // fraction of the sorted population eligible as parents
	CrossoverProb float32 // probability a child comes from crossover vs a single parent

	// Mutation settings picked per generation based on fitness diversity.
	// Low diversity (a stagnating population) gets the stronger pair.
	MutationRateHigh     float32 // rate under LOW diversity
	MutationStrengthHigh float32 // strength under LOW diversity
	MutationRateLow      float32 // rate under HIGH diversity
	MutationStrengthLow  float32 // strength under HIGH diversity
}

// Result describes one completed evolution step. Brains[0] is always the
// exact clone of the previous generation's best network.
type Result struct {
	Brains []*neural.Network

	BestFitness  float32
	MeanFitness  float32
	FitnessRange float32
	LowDiversity bool

	MutationRate     float32
	MutationStrength float32
}

// Evolve produces the next generation's brains from a scored population.
//
// The population is sorted by fitness, the single best individual is
// carried forward unchanged, and the remaining slots are filled by children
// of parents drawn uniformly from the top EliteFrac of the sort. The
// mutation rate and strength adapt to the population's fitness spread:
// a narrow spread means the search has stagnated, so mutation is raised to
// escape; a wide spread means there is still signal to exploit, so
// mutation is lowered.
//
// An empty population violates the engine's invariants and is an error.
func Evolve(rng *rand.Rand, pop []Individual, p Params) (Result, error) {
	if len(pop) == 0 {
		return Result{}, fmt.Errorf("genetics: evolve called with empty population")
	}

	sorted := make([]Individual, len(pop))
	copy(sorted, pop)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Fitness > sorted[j].Fitness
	})

	fitnesses := make([]float64, len(sorted))
	for i := range sorted {
		fitnesses[i] = float64(sorted[i].Fitness)
	}
	mean := float32(stat.Mean(fitnesses, nil))
	span := sorted[0].Fitness - sorted[len(sorted)-1].Fitness

	// Diversity is LOW when the fitness spread is narrow relative to the
	// mean (or in absolute terms for near-zero populations).
	threshold := float32(100)
	if 0.1*mean > threshold {
		threshold = 0.1 * mean
	}
	low := span < threshold

	rate := p.MutationRateLow
	strength := p.MutationStrengthLow
	if low {
		rate = p.MutationRateHigh
		strength = p.MutationStrengthHigh
	}

	poolSize := int(float32(len(sorted)) * p.EliteFrac)
	if poolSize < 1 {
		poolSize = 1
	}
	pool := sorted[:poolSize]

	brains := make([]*neural.Network, 0, len(pop))

	// Elitism: the best network survives byte-for-byte.
	brains = append(brains, sorted[0].Brain.Clone())

	for len(brains) < len(pop) {
		a := pool[rng.Intn(poolSize)]
		b := pool[rng.Intn(poolSize)]

		var child *neural.Network
		if rng.Float32() < p.CrossoverProb {
			var err error
			child, err = neural.Crossover(rng, a.Brain, b.Brain)
			if err != nil {
				return Result{}, fmt.Errorf("genetics: %w", err)
			}
		} else {
			child = a.Brain.Clone()
		}

		brains = append(brains, child.Mutate(rng, rate, strength))
	}

	return Result{
		Brains:           brains,
		BestFitness:      sorted[0].Fitness,
		MeanFitness:      mean,
		FitnessRange:     span,
		LowDiversity:     low,
		MutationRate:     rate,
		MutationStrength: strength,
	}, nil
}
