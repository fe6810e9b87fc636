package neural

import (
	"math/rand"
	"testing"
)

func TestWeightsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	nn, _ := NewRandom(rng, 7, 5, 3)

	rec := nn.MarshalWeights()
	if rec.Version != WeightsVersion {
		t.Errorf("Version = %d, want %d", rec.Version, WeightsVersion)
	}

	back, err := ParseWeights(rec)
	if err != nil {
		t.Fatalf("ParseWeights failed: %v", err)
	}
	if !networksEqual(nn, back) {
		t.Error("round-tripped network differs from the original")
	}

	// Mutating the record must not touch the parsed network.
	rec.W1[0] += 100
	if back.W1[0][0] == rec.W1[0] {
		t.Error("parsed network shares storage with the record")
	}
}

func TestParseWeightsRejectsBadRecords(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	nn, _ := NewRandom(rng, 4, 3, 2)
	good := nn.MarshalWeights()

	tests := []struct {
		name   string
		mutate func(r *WeightsRecord)
	}{
		{"wrong version", func(r *WeightsRecord) { r.Version = 99 }},
		{"zero inputs", func(r *WeightsRecord) { r.NumInputs = 0 }},
		{"negative hidden", func(r *WeightsRecord) { r.NumHidden = -1 }},
		{"short w1", func(r *WeightsRecord) { r.W1 = r.W1[:len(r.W1)-1] }},
		{"short b1", func(r *WeightsRecord) { r.B1 = r.B1[:1] }},
		{"long w2", func(r *WeightsRecord) { r.W2 = append(r.W2, 0) }},
		{"short b2", func(r *WeightsRecord) { r.B2 = nil }},
		{"dims inconsistent with data", func(r *WeightsRecord) { r.NumHidden = 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := good
			rec.W1 = append([]float32(nil), good.W1...)
			rec.B1 = append([]float32(nil), good.B1...)
			rec.W2 = append([]float32(nil), good.W2...)
			rec.B2 = append([]float32(nil), good.B2...)
			tt.mutate(&rec)

			if _, err := ParseWeights(rec); err == nil {
				t.Error("ParseWeights should reject the record")
			}
		})
	}
}
