package ga

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Selection fills the non-elite part of the mating pool. The set of
// strategies is closed: Tournament, Roulette and Rank.
type Selection interface {
	fmt.Stringer
	validate(size int) error
	// pick appends n individuals drawn from pop, which is sorted by
	// fitness descending.
	pick(dst, pop []*Individual, n int, rng *rand.Rand) []*Individual
}

// DefaultSelection is used by RunGeneration.
var DefaultSelection Selection = Tournament{K: 5}

// Tournament picks the fittest of K distinct random individuals per slot.
type Tournament struct {
	K int
}

// Roulette samples with probability proportional to fitness.
type Roulette struct{}

// Rank samples with probability proportional to rank (best = size).
type Rank struct{}

// NewTournament validates k on its own; the check against the
// population size happens when selecting.
func NewTournament(k int) (Tournament, error) {
	if k < 1 {
		return Tournament{}, fmt.Errorf("%w: got %d", ErrInvalidTournament, k)
	}
	return Tournament{K: k}, nil
}

// ParseSelection maps a method name to its strategy.
// k is only used by "tournament".
func ParseSelection(name string, k int) (Selection, error) {
	switch name {
	case "tournament":
		return NewTournament(k)
	case "roulette":
		return Roulette{}, nil
	case "rank":
		return Rank{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSelection, name)
	}
}

func (t Tournament) String() string { return fmt.Sprintf("tournament(k=%d)", t.K) }
func (Roulette) String() string     { return "roulette" }
func (Rank) String() string         { return "rank" }

func (t Tournament) validate(size int) error {
	if t.K < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidTournament, t.K)
	}
	if t.K > size {
		return fmt.Errorf("%w: k=%d size=%d", ErrTournamentTooLarge, t.K, size)
	}
	return nil
}

func (Roulette) validate(int) error { return nil }
func (Rank) validate(int) error     { return nil }

func (t Tournament) pick(dst, pop []*Individual, n int, rng *rand.Rand) []*Individual {
	contestants := make([]*Individual, t.K)
	for k := 0; k < n; k++ {
		// K distinct draws; the same individual may still win several slots
		for i, idx := range rng.Perm(len(pop))[:t.K] {
			contestants[i] = pop[idx]
		}
		dst = append(dst, best(contestants))
	}
	return dst
}

func (Roulette) pick(dst, pop []*Individual, n int, rng *rand.Rand) []*Individual {
	weights := make([]float64, len(pop))
	for i, ind := range pop {
		// negative fitness gets no share of the wheel
		weights[i] = max(ind.Fitness, 0)
	}
	if floats.Sum(weights) == 0 {
		for k := 0; k < n; k++ {
			dst = append(dst, pop[rng.Intn(len(pop))])
		}
		return dst
	}
	return sampleWeighted(dst, pop, weights, n, rng)
}

func (Rank) pick(dst, pop []*Individual, n int, rng *rand.Rand) []*Individual {
	weights := make([]float64, len(pop))
	for i := range pop {
		weights[i] = float64(len(pop) - i)
	}
	return sampleWeighted(dst, pop, weights, n, rng)
}

// sampleWeighted draws n individuals with replacement, each with
// probability weights[i]/sum(weights). The sum must be positive.
func sampleWeighted(dst, pop []*Individual, weights []float64, n int, rng *rand.Rand) []*Individual {
	cum := floats.CumSum(make([]float64, len(weights)), weights)
	total := cum[len(cum)-1]
	for k := 0; k < n; k++ {
		r := rng.Float64() * total
		idx := sort.Search(len(cum), func(i int) bool { return cum[i] > r })
		if idx == len(cum) {
			idx = len(cum) - 1
		}
		dst = append(dst, pop[idx])
	}
	return dst
}
