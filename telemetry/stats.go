// Package telemetry collects per-generation statistics and writes them as
// CSV for offline analysis.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds the aggregated record for one completed generation.
type GenerationStats struct {
	Generation      int     `csv:"generation"`
	ElapsedSec      float64 `csv:"elapsed_sec"`
	BestFitness     float64 `csv:"best_fitness"`
	BestFitnessEver float64 `csv:"best_fitness_ever"`
	MeanFitness     float64 `csv:"mean_fitness"`
	StdFitness      float64 `csv:"std_fitness"`
	FitnessP10      float64 `csv:"fitness_p10"`
	FitnessP50      float64 `csv:"fitness_p50"`
	FitnessP90      float64 `csv:"fitness_p90"`

	AliveAtEnd  int `csv:"alive_at_end"`
	Deaths      int `csv:"deaths"`
	Checkpoints int `csv:"checkpoints"`

	LowDiversity     bool    `csv:"low_diversity"`
	MutationRate     float64 `csv:"mutation_rate"`
	MutationStrength float64 `csv:"mutation_strength"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFitnessStats calculates mean, std and percentiles from raw fitness
// values.
func ComputeFitnessStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}
