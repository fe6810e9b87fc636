// Package main provides CMA-ES optimization of the evolution
// hyper-parameters over headless simulation runs.
package main

import "github.com/tracklab/evodrive/config"

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "elite_frac", Min: 0.1, Max: 0.6, Default: 0.3},
			{Name: "crossover_prob", Min: 0.3, Max: 1.0, Default: 0.7},
			{Name: "mutation_rate_high", Min: 0.1, Max: 0.6, Default: 0.3},
			{Name: "mutation_strength_high", Min: 0.3, Max: 1.5, Default: 0.9},
			{Name: "mutation_rate_low", Min: 0.02, Max: 0.3, Default: 0.1},
			{Name: "mutation_strength_low", Min: 0.05, Max: 0.6, Default: 0.3},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Evolution.EliteFrac = clamped[0]
	cfg.Evolution.CrossoverProb = clamped[1]
	cfg.Evolution.MutationRateHigh = clamped[2]
	cfg.Evolution.MutationStrengthHigh = clamped[3]
	cfg.Evolution.MutationRateLow = clamped[4]
	cfg.Evolution.MutationStrengthLow = clamped[5]
}
