// Package neural provides the feedforward networks that drive cars.
package neural

import (
	"fmt"
	"math"
	"math/rand"
)

// Network is a fully connected sigmoid perceptron with one hidden layer.
// Dimensions are fixed at construction; every operation that combines two
// networks requires identical dimensions.
//
// A Network is exclusively owned by one car. Reproduction always works on
// copies (Clone, Mutate, Crossover all return fresh storage) so two cars
// never share mutable weights.
type Network struct {
	NumInputs  int
	NumHidden  int
	NumOutputs int

	W1 [][]float32 // [input][hidden]
	B1 []float32   // [hidden]
	W2 [][]float32 // [hidden][output]
	B2 []float32   // [output]
}

// NewRandom creates a network with every weight and bias drawn uniformly
// from [-1, 1]. Non-positive layer sizes are a construction error.
func NewRandom(rng *rand.Rand, inputs, hidden, outputs int) (*Network, error) {
	if inputs <= 0 || hidden <= 0 || outputs <= 0 {
		return nil, fmt.Errorf("neural: invalid dimensions %dx%dx%d", inputs, hidden, outputs)
	}

	nn := newEmpty(inputs, hidden, outputs)
	for i := range nn.W1 {
		for j := range nn.W1[i] {
			nn.W1[i][j] = uniform(rng)
		}
	}
	for j := range nn.B1 {
		nn.B1[j] = uniform(rng)
	}
	for j := range nn.W2 {
		for k := range nn.W2[j] {
			nn.W2[j][k] = uniform(rng)
		}
	}
	for k := range nn.B2 {
		nn.B2[k] = uniform(rng)
	}
	return nn, nil
}

// newEmpty allocates a zeroed network of the given dimensions.
func newEmpty(inputs, hidden, outputs int) *Network {
	nn := &Network{
		NumInputs:  inputs,
		NumHidden:  hidden,
		NumOutputs: outputs,
		W1:         make([][]float32, inputs),
		B1:         make([]float32, hidden),
		W2:         make([][]float32, hidden),
		B2:         make([]float32, outputs),
	}
	for i := range nn.W1 {
		nn.W1[i] = make([]float32, hidden)
	}
	for j := range nn.W2 {
		nn.W2[j] = make([]float32, outputs)
	}
	return nn
}

// uniform draws from [-1, 1).
func uniform(rng *rand.Rand) float32 {
	return rng.Float32()*2 - 1
}

// FeedForward computes the network outputs for one input vector.
// The input length must match NumInputs; a mismatch is an error, never a
// silent truncation. Pure and deterministic.
func (nn *Network) FeedForward(inputs []float32) ([]float32, error) {
	if len(inputs) != nn.NumInputs {
		return nil, fmt.Errorf("neural: input size %d does not match network inputs %d", len(inputs), nn.NumInputs)
	}

	hidden := make([]float32, nn.NumHidden)
	for j := 0; j < nn.NumHidden; j++ {
		sum := nn.B1[j]
		for i := 0; i < nn.NumInputs; i++ {
			sum += inputs[i] * nn.W1[i][j]
		}
		hidden[j] = sigmoid(sum)
	}

	outputs := make([]float32, nn.NumOutputs)
	for k := 0; k < nn.NumOutputs; k++ {
		sum := nn.B2[k]
		for j := 0; j < nn.NumHidden; j++ {
			sum += hidden[j] * nn.W2[j][k]
		}
		outputs[k] = sigmoid(sum)
	}
	return outputs, nil
}

// sigmoid is the logistic activation 1/(1+e^-x).
func sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(-float64(x))))
}

// Clone creates a deep copy with no shared backing storage.
func (nn *Network) Clone() *Network {
	c := newEmpty(nn.NumInputs, nn.NumHidden, nn.NumOutputs)
	for i := range nn.W1 {
		copy(c.W1[i], nn.W1[i])
	}
	copy(c.B1, nn.B1)
	for j := range nn.W2 {
		copy(c.W2[j], nn.W2[j])
	}
	copy(c.B2, nn.B2)
	return c
}

// Mutate returns a new network where each parameter is independently
// perturbed by uniform(-0.5,0.5)*strength with probability rate. The
// receiver is left untouched.
func (nn *Network) Mutate(rng *rand.Rand, rate, strength float32) *Network {
	c := nn.Clone()
	perturb := func(v float32) float32 {
		if rng.Float32() < rate {
			return v + (rng.Float32()-0.5)*strength
		}
		return v
	}
	for i := range c.W1 {
		for j := range c.W1[i] {
			c.W1[i][j] = perturb(c.W1[i][j])
		}
	}
	for j := range c.B1 {
		c.B1[j] = perturb(c.B1[j])
	}
	for j := range c.W2 {
		for k := range c.W2[j] {
			c.W2[j][k] = perturb(c.W2[j][k])
		}
	}
	for k := range c.B2 {
		c.B2[k] = perturb(c.B2[k])
	}
	return c
}

// Crossover returns a child that starts as a copy of a and independently
// takes b's value for each parameter with probability 0.5. Mismatched
// parent dimensions are a usage error.
func Crossover(rng *rand.Rand, a, b *Network) (*Network, error) {
	if a.NumInputs != b.NumInputs || a.NumHidden != b.NumHidden || a.NumOutputs != b.NumOutputs {
		return nil, fmt.Errorf("neural: crossover dimension mismatch %dx%dx%d vs %dx%dx%d",
			a.NumInputs, a.NumHidden, a.NumOutputs, b.NumInputs, b.NumHidden, b.NumOutputs)
	}

	c := a.Clone()
	pick := func(av, bv float32) float32 {
		if rng.Float32() < 0.5 {
			return bv
		}
		return av
	}
	for i := range c.W1 {
		for j := range c.W1[i] {
			c.W1[i][j] = pick(a.W1[i][j], b.W1[i][j])
		}
	}
	for j := range c.B1 {
		c.B1[j] = pick(a.B1[j], b.B1[j])
	}
	for j := range c.W2 {
		for k := range c.W2[j] {
			c.W2[j][k] = pick(a.W2[j][k], b.W2[j][k])
		}
	}
	for k := range c.B2 {
		c.B2[k] = pick(a.B2[k], b.B2[k])
	}
	return c, nil
}
