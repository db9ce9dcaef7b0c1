// Package nn implements the fixed-topology controller network.
package nn

import "fmt"

// MLP is a feedforward network with ReLU hidden layers and a linear
// output layer. Weights are stored contiguously, layer by layer, each
// neuron as [bias, w_1 .. w_in].
type MLP struct {
	Sizes   []int // input, hidden..., output
	Weights []float32

	// activations per layer, reused across Forward calls
	acts [][]float32
}

// GenomeSize returns the number of weights (including biases) for the
// given layer sizes.
func GenomeSize(sizes ...int) int {
	n := 0
	for l := 1; l < len(sizes); l++ {
		n += (sizes[l-1] + 1) * sizes[l]
	}
	return n
}

// NewMLP creates a zero-weight network for input -> hidden... -> output.
func NewMLP(input int, hidden []int, output int) *MLP {
	sizes := make([]int, 0, len(hidden)+2)
	sizes = append(sizes, input)
	sizes = append(sizes, hidden...)
	sizes = append(sizes, output)

	m := &MLP{
		Sizes:   sizes,
		Weights: make([]float32, GenomeSize(sizes...)),
		acts:    make([][]float32, len(sizes)-1),
	}
	for l := 1; l < len(sizes); l++ {
		m.acts[l-1] = make([]float32, sizes[l])
	}
	return m
}

// GenomeSize returns the total number of weights of m.
func (m *MLP) GenomeSize() int { return len(m.Weights) }

// SetWeights copies w into the network.
func (m *MLP) SetWeights(w []float32) error {
	if len(w) != len(m.Weights) {
		return fmt.Errorf("nn: got %d weights, network has %d", len(w), len(m.Weights))
	}
	copy(m.Weights, w)
	return nil
}

// Forward performs a forward pass and returns the index of the largest output.
func (m *MLP) Forward(input []float32) int {
	return argmax(m.forward(input))
}

func (m *MLP) forward(input []float32) []float32 {
	offset := 0
	prev := input
	last := len(m.acts) - 1
	for l, act := range m.acts {
		for j := range act {
			sum := m.Weights[offset] // bias
			offset++
			for _, x := range prev {
				sum += x * m.Weights[offset]
				offset++
			}
			if l < last {
				sum = relu(sum)
			}
			act[j] = sum
		}
		prev = act
	}
	return prev
}

func relu(x float32) float32 {
	if x > 0 {
		return x
	}
	return 0
}

func argmax(vals []float32) int {
	maxIdx := 0
	maxVal := vals[0]
	for i := 1; i < len(vals); i++ {
		if vals[i] > maxVal {
			maxVal = vals[i]
			maxIdx = i
		}
	}
	return maxIdx
}
