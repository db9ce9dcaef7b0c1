package genome

import (
	"math/rand"
)

// Uniform performs uniform crossover between two parents.
// Each gene is swapped with probability rate. Returns both children.
func Uniform(p1, p2 []float32, rate float64, rng *rand.Rand) ([]float32, []float32) {
	size := len(p1)
	c1 := make([]float32, size)
	c2 := make([]float32, size)

	for i := 0; i < size; i++ {
		if rng.Float64() < rate {
			c1[i] = p2[i]
			c2[i] = p1[i]
		} else {
			c1[i] = p1[i]
			c2[i] = p2[i]
		}
	}

	return c1, c2
}

// SinglePoint performs single-point crossover
func SinglePoint(p1, p2 []float32, rng *rand.Rand) ([]float32, []float32) {
	size := len(p1)
	c1 := make([]float32, size)
	c2 := make([]float32, size)
	if size == 0 {
		return c1, c2
	}
	point := rng.Intn(size)

	copy(c1[:point], p1[:point])
	copy(c1[point:], p2[point:])
	copy(c2[:point], p2[:point])
	copy(c2[point:], p1[point:])

	return c1, c2
}
