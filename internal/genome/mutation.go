package genome

import (
	"math/rand"
)

// Gaussian adds N(0, sigma) noise to each gene with probability rate.
func Gaussian(w []float32, rate, sigma float64, rng *rand.Rand) {
	for i := range w {
		if rng.Float64() < rate {
			w[i] += float32(rng.NormFloat64() * sigma)
		}
	}
}

// MutateWithReset selects each gene with probability rate. A selected
// gene is re-drawn from N(0, 0.5) with probability resetP, otherwise it
// gets N(0, sigma) noise.
func MutateWithReset(w []float32, rate, sigma, resetP float64, rng *rand.Rand) {
	if resetP <= 0 {
		Gaussian(w, rate, sigma, rng)
		return
	}
	for i := range w {
		if rng.Float64() >= rate {
			continue
		}
		if rng.Float64() < resetP {
			w[i] = float32(rng.NormFloat64() * 0.5)
		} else {
			w[i] += float32(rng.NormFloat64() * sigma)
		}
	}
}
