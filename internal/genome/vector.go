// Package genome provides the flat float32 weight vector evolved by the
// trainer. Vector satisfies ga.Genome.
package genome

import (
	"math"
	"math/rand"

	"snakeevo/internal/ga"
)

// Mutation controls how Mutate perturbs genes.
type Mutation struct {
	Sigma  float64 // std-dev of the Gaussian perturbation
	ResetP float64 // per-gene probability of a full re-draw
}

// DefaultMutation matches the trainer's defaults.
var DefaultMutation = Mutation{Sigma: 0.06, ResetP: 0.01}

// Crossover selects the recombination operator.
type Crossover int

const (
	CrossoverUniform Crossover = iota
	CrossoverSinglePoint
)

// Vector is a controller weight vector plus the operator settings it
// passes on to its offspring.
type Vector struct {
	W        []float32
	Mutation Mutation
	Op       Crossover // recombination operator used by Crossover
}

var _ ga.Genome = (*Vector)(nil)

// New wraps weights without copying them.
func New(w []float32, m Mutation, c Crossover) *Vector {
	return &Vector{W: w, Mutation: m, Op: c}
}

// Random generates a vector of the given size
func Random(size int, m Mutation, c Crossover, rng *rand.Rand) *Vector {
	w := make([]float32, size)
	// Xavier-like initialization
	scale := float32(math.Sqrt(2.0 / float64(size)))
	for i := range w {
		w[i] = float32(rng.NormFloat64()) * scale
	}
	return New(w, m, c)
}

// Initializer adapts Random to the optimizer's constructor.
func Initializer(size int, m Mutation, c Crossover) func(*rand.Rand) ga.Genome {
	return func(rng *rand.Rand) ga.Genome {
		return Random(size, m, c, rng)
	}
}

// Weights returns the underlying slice.
func (v *Vector) Weights() []float32 { return v.W }

// Clone makes a deep copy of the vector
func (v *Vector) Clone() ga.Genome {
	return New(cloneWeights(v.W), v.Mutation, v.Op)
}

// Crossover combines v and other into a new vector using v's operator.
// other must be a *Vector of the same length.
func (v *Vector) Crossover(other ga.Genome, rng *rand.Rand) ga.Genome {
	o := other.(*Vector)
	var child []float32
	switch v.Op {
	case CrossoverSinglePoint:
		child, _ = SinglePoint(v.W, o.W, rng)
	default:
		child, _ = Uniform(v.W, o.W, 0.5, rng)
	}
	return New(child, v.Mutation, v.Op)
}

// Mutate changes each gene with probability rate, in place. A changed
// gene is re-drawn with probability ResetP and perturbed otherwise.
func (v *Vector) Mutate(rate float64, rng *rand.Rand) {
	MutateWithReset(v.W, rate, v.Mutation.Sigma, v.Mutation.ResetP, rng)
}

func cloneWeights(src []float32) []float32 {
	dst := make([]float32, len(src))
	copy(dst, src)
	return dst
}
