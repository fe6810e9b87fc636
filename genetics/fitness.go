package genetics

// Weights holds the fitness scoring coefficients for one run.
type Weights struct {
	Distance   float32 // per unit of distance traveled
	Checkpoint float32 // per checkpoint passed
	Survival   float32 // per second of generation time survived

	DeathPenalty   float32 // multiplier (<1) applied to dead cars
	BrakeThreshold float32 // brake input above this is penalized
	BrakePenalty   float32 // flat penalty subtracted for heavy braking
}

// Score computes an individual's fitness from its current snapshot.
// Idempotent: it derives the value from the snapshot alone and never
// accumulates, so it is safe to call every tick.
func Score(ind Individual, elapsed float32, w Weights) float32 {
	f := ind.Distance*w.Distance +
		float32(ind.Checkpoints)*w.Checkpoint +
		elapsed*w.Survival

	if !ind.Alive {
		f *= w.DeathPenalty
	}

	// Discourage the degenerate "always brake" strategy.
	if ind.Brake > w.BrakeThreshold {
		f -= w.BrakePenalty
	}

	if f < 0 {
		f = 0
	}
	return f
}
