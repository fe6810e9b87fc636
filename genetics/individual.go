// Package genetics implements fitness scoring and the generational
// evolution step. It operates on flat Individual snapshots collected from
// the engine's entity store, so it stays independent of the ECS.
package genetics

import "github.com/tracklab/evodrive/neural"

// Individual is the per-car snapshot evolution works on.
type Individual struct {
	ID          uint32
	Brain       *neural.Network
	Fitness     float32
	Alive       bool
	Distance    float32
	Checkpoints int
	Brake       float32 // last brake input, for the degenerate-braking penalty
}

// Best returns the index of the highest-fitness individual, first maximal
// wins on ties. Returns -1 for an empty population.
func Best(pop []Individual) int {
	best := -1
	for i := range pop {
		if best < 0 || pop[i].Fitness > pop[best].Fitness {
			best = i
		}
	}
	return best
}

// Average returns the mean fitness, 0 for an empty population.
func Average(pop []Individual) float32 {
	if len(pop) == 0 {
		return 0
	}
	var sum float32
	for i := range pop {
		sum += pop[i].Fitness
	}
	return sum / float32(len(pop))
}

// AliveCount returns the number of individuals still alive.
func AliveCount(pop []Individual) int {
	n := 0
	for i := range pop {
		if pop[i].Alive {
			n++
		}
	}
	return n
}
