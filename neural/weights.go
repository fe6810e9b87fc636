package neural

import "fmt"

// WeightsVersion is the current WeightsRecord format version.
const WeightsVersion = 1

// WeightsRecord holds flattened network parameters for save/load across the
// host boundary. Records are never trusted as-is: ParseWeights validates
// version and dimensions before a Network is built.
type WeightsRecord struct {
	Version    int       `json:"version" yaml:"version"`
	NumInputs  int       `json:"num_inputs" yaml:"num_inputs"`
	NumHidden  int       `json:"num_hidden" yaml:"num_hidden"`
	NumOutputs int       `json:"num_outputs" yaml:"num_outputs"`
	W1         []float32 `json:"w1" yaml:"w1"` // [NumInputs * NumHidden], row-major by input
	B1         []float32 `json:"b1" yaml:"b1"` // [NumHidden]
	W2         []float32 `json:"w2" yaml:"w2"` // [NumHidden * NumOutputs], row-major by hidden
	B2         []float32 `json:"b2" yaml:"b2"` // [NumOutputs]
}

// MarshalWeights flattens the network parameters into a WeightsRecord.
func (nn *Network) MarshalWeights() WeightsRecord {
	rec := WeightsRecord{
		Version:    WeightsVersion,
		NumInputs:  nn.NumInputs,
		NumHidden:  nn.NumHidden,
		NumOutputs: nn.NumOutputs,
		W1:         make([]float32, nn.NumInputs*nn.NumHidden),
		B1:         make([]float32, nn.NumHidden),
		W2:         make([]float32, nn.NumHidden*nn.NumOutputs),
		B2:         make([]float32, nn.NumOutputs),
	}

	for i := 0; i < nn.NumInputs; i++ {
		copy(rec.W1[i*nn.NumHidden:], nn.W1[i])
	}
	copy(rec.B1, nn.B1)
	for j := 0; j < nn.NumHidden; j++ {
		copy(rec.W2[j*nn.NumOutputs:], nn.W2[j])
	}
	copy(rec.B2, nn.B2)

	return rec
}

// ParseWeights validates a record and builds a fresh Network from it.
// The returned network shares no storage with the record.
func ParseWeights(rec WeightsRecord) (*Network, error) {
	if rec.Version != WeightsVersion {
		return nil, fmt.Errorf("neural: unsupported weights version %d", rec.Version)
	}
	if rec.NumInputs <= 0 || rec.NumHidden <= 0 || rec.NumOutputs <= 0 {
		return nil, fmt.Errorf("neural: invalid dimensions %dx%dx%d", rec.NumInputs, rec.NumHidden, rec.NumOutputs)
	}
	if len(rec.W1) != rec.NumInputs*rec.NumHidden {
		return nil, fmt.Errorf("neural: w1 has %d values, want %d", len(rec.W1), rec.NumInputs*rec.NumHidden)
	}
	if len(rec.B1) != rec.NumHidden {
		return nil, fmt.Errorf("neural: b1 has %d values, want %d", len(rec.B1), rec.NumHidden)
	}
	if len(rec.W2) != rec.NumHidden*rec.NumOutputs {
		return nil, fmt.Errorf("neural: w2 has %d values, want %d", len(rec.W2), rec.NumHidden*rec.NumOutputs)
	}
	if len(rec.B2) != rec.NumOutputs {
		return nil, fmt.Errorf("neural: b2 has %d values, want %d", len(rec.B2), rec.NumOutputs)
	}

	nn := newEmpty(rec.NumInputs, rec.NumHidden, rec.NumOutputs)
	for i := 0; i < rec.NumInputs; i++ {
		copy(nn.W1[i], rec.W1[i*rec.NumHidden:(i+1)*rec.NumHidden])
	}
	copy(nn.B1, rec.B1)
	for j := 0; j < rec.NumHidden; j++ {
		copy(nn.W2[j], rec.W2[j*rec.NumOutputs:(j+1)*rec.NumOutputs])
	}
	copy(nn.B2, rec.B2)

	return nn, nil
}
