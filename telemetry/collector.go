package telemetry

// Collector accumulates events within one generation and produces a
// GenerationStats record at rollover.
type Collector struct {
	deaths      int
	checkpoints int
}

// NewCollector creates an empty stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordDeath records a car hitting a wall.
func (c *Collector) RecordDeath() {
	c.deaths++
}

// RecordCheckpoint records an in-order checkpoint crossing.
func (c *Collector) RecordCheckpoint() {
	c.checkpoints++
}

// Flush assembles the record for a finished generation and resets the
// counters for the next one. Fitness aggregates are computed here from the
// final per-car scores.
func (c *Collector) Flush(generation int, elapsedSec float64, bestEver float64, fitnesses []float64, aliveAtEnd int) GenerationStats {
	mean, std, p10, p50, p90 := ComputeFitnessStats(fitnesses)

	var best float64
	for _, f := range fitnesses {
		if f > best {
			best = f
		}
	}

	stats := GenerationStats{
		Generation:      generation,
		ElapsedSec:      elapsedSec,
		BestFitness:     best,
		BestFitnessEver: bestEver,
		MeanFitness:     mean,
		StdFitness:      std,
		FitnessP10:      p10,
		FitnessP50:      p50,
		FitnessP90:      p90,
		AliveAtEnd:      aliveAtEnd,
		Deaths:          c.deaths,
		Checkpoints:     c.checkpoints,
	}

	c.deaths = 0
	c.checkpoints = 0

	return stats
}
