package genetics

import (
	"math"
	"testing"
)

func testWeights() Weights {
	return Weights{
		Distance:       1.0,
		Checkpoint:     500,
		Survival:       10,
		DeathPenalty:   0.7,
		BrakeThreshold: 0.8,
		BrakePenalty:   50,
	}
}

func TestScore(t *testing.T) {
	w := testWeights()

	tests := []struct {
		name    string
		ind     Individual
		elapsed float32
		want    float32
	}{
		{
			name:    "distance only",
			ind:     Individual{Distance: 120, Alive: true},
			elapsed: 0,
			want:    120,
		},
		{
			name:    "checkpoints dominate",
			ind:     Individual{Distance: 100, Checkpoints: 2, Alive: true},
			elapsed: 0,
			want:    100 + 2*500,
		},
		{
			name:    "survival time",
			ind:     Individual{Distance: 50, Alive: true},
			elapsed: 5,
			want:    50 + 5*10,
		},
		{
			name:    "death penalty multiplies",
			ind:     Individual{Distance: 100, Checkpoints: 1, Alive: false},
			elapsed: 0,
			want:    (100 + 500) * 0.7,
		},
		{
			name:    "heavy braking penalized",
			ind:     Individual{Distance: 100, Alive: true, Brake: 0.9},
			elapsed: 0,
			want:    100 - 50,
		},
		{
			name:    "brake at threshold not penalized",
			ind:     Individual{Distance: 100, Alive: true, Brake: 0.8},
			elapsed: 0,
			want:    100,
		},
		{
			name:    "floor at zero",
			ind:     Individual{Distance: 10, Alive: true, Brake: 1.0},
			elapsed: 0,
			want:    0,
		},
		{
			name:    "empty snapshot",
			ind:     Individual{Alive: true},
			elapsed: 0,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.ind, tt.elapsed, w)
			if math.Abs(float64(got-tt.want)) > 1e-3 {
				t.Errorf("Score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreIdempotent(t *testing.T) {
	w := testWeights()
	ind := Individual{Distance: 200, Checkpoints: 3, Alive: true}

	first := Score(ind, 4, w)
	for i := 0; i < 10; i++ {
		if got := Score(ind, 4, w); got != first {
			t.Fatalf("Score changed on repeat call: %v vs %v", got, first)
		}
	}
}

func TestBest(t *testing.T) {
	if got := Best(nil); got != -1 {
		t.Errorf("Best(nil) = %d, want -1", got)
	}

	pop := []Individual{
		{Fitness: 10},
		{Fitness: 30},
		{Fitness: 30}, // tie goes to the first maximal
		{Fitness: 20},
	}
	if got := Best(pop); got != 1 {
		t.Errorf("Best = %d, want 1", got)
	}
}

func TestAverageAndAliveCount(t *testing.T) {
	pop := []Individual{
		{Fitness: 10, Alive: true},
		{Fitness: 20, Alive: false},
		{Fitness: 30, Alive: true},
	}
	if got := Average(pop); got != 20 {
		t.Errorf("Average = %v, want 20", got)
	}
	if got := AliveCount(pop); got != 2 {
		t.Errorf("AliveCount = %d, want 2", got)
	}
	if got := Average(nil); got != 0 {
		t.Errorf("Average(nil) = %v, want 0", got)
	}
}
