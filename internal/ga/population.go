package ga

import (
	"math/rand"
	"slices"
)

// Genome is the weight vector of one controller. The optimizer only
// clones, crosses and mutates it; the representation is up to the caller.
type Genome interface {
	// Weights returns the ordered parameters. Callers must not modify them.
	Weights() []float32
	// Clone returns a deep copy.
	Clone() Genome
	// Crossover returns a new genome combining the receiver and other.
	// Neither parent is modified.
	Crossover(other Genome, rng *rand.Rand) Genome
	// Mutate perturbs each gene in place with probability rate.
	Mutate(rate float64, rng *rand.Rand)
}

// EpisodeRunner plays one episode for one genome at a time.
type EpisodeRunner interface {
	// Reset starts a fresh episode controlled by g.
	Reset(g Genome)
	// Alive reports whether the current episode is still running.
	Alive() bool
	// Step advances the episode by one tick.
	Step()
	// Result returns the fitness and score of the finished episode.
	Result() (fitness float64, score int)
}

// Individual represents one candidate controller in the population
type Individual struct {
	Genome  Genome
	Fitness float64
	Score   int
	Alive   bool // set while an episode is running
}

// NewIndividual wraps g in an unevaluated individual.
func NewIndividual(g Genome) *Individual {
	return &Individual{Genome: g}
}

// Clone creates an unevaluated individual holding a deep copy of the genome
func (ind *Individual) Clone() *Individual {
	return NewIndividual(ind.Genome.Clone())
}

// sortedByFitness returns a new slice ordered by fitness, descending.
// Equal fitness keeps the input order.
func sortedByFitness(pop []*Individual) []*Individual {
	sorted := slices.Clone(pop)
	slices.SortStableFunc(sorted, func(a, b *Individual) int {
		switch {
		case a.Fitness > b.Fitness:
			return -1
		case a.Fitness < b.Fitness:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// best returns the individual with highest fitness, the earliest on ties.
func best(pop []*Individual) *Individual {
	if len(pop) == 0 {
		return nil
	}
	b := pop[0]
	for _, ind := range pop[1:] {
		if ind.Fitness > b.Fitness {
			b = ind
		}
	}
	return b
}
