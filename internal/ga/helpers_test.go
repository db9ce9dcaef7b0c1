package ga

import (
	"math/rand"
	"slices"
)

// stubGenome tracks lineage in its id so tests can tell clones from
// crossover children.
type stubGenome struct {
	id      string
	w       []float32
	mutated int
}

func newStub(id string, w ...float32) *stubGenome {
	return &stubGenome{id: id, w: w}
}

func (g *stubGenome) Weights() []float32 { return g.w }

func (g *stubGenome) Clone() Genome {
	return &stubGenome{id: g.id, w: slices.Clone(g.w)}
}

func (g *stubGenome) Crossover(other Genome, rng *rand.Rand) Genome {
	o := other.(*stubGenome)
	child := make([]float32, len(g.w))
	for i := range child {
		child[i] = (g.w[i] + o.w[i]) / 2
	}
	return &stubGenome{id: "x(" + g.id + "," + o.id + ")", w: child}
}

func (g *stubGenome) Mutate(rate float64, rng *rand.Rand) {
	g.mutated++
	for i := range g.w {
		if rng.Float64() < rate {
			g.w[i] += float32(rng.NormFloat64())
		}
	}
}

// scriptRunner keeps each episode alive for a fixed number of steps and
// scores it with the first weight.
type scriptRunner struct {
	steps    int
	left     int
	current  Genome
	resets   int
	stepped  int
	scoreMul int
}

func (r *scriptRunner) Reset(g Genome) {
	r.current = g
	r.left = r.steps
	r.resets++
}

func (r *scriptRunner) Alive() bool { return r.left > 0 }

func (r *scriptRunner) Step() {
	r.left--
	r.stepped++
}

func (r *scriptRunner) Result() (float64, int) {
	f := float64(r.current.Weights()[0])
	return f, int(f) * r.scoreMul
}

func stubGenomes(fitness ...float32) []Genome {
	out := make([]Genome, len(fitness))
	for i, f := range fitness {
		out[i] = newStub(string(rune('a'+i)), f, float32(i))
	}
	return out
}

func ids(pop []*Individual) []string {
	out := make([]string, len(pop))
	for i, ind := range pop {
		out[i] = ind.Genome.(*stubGenome).id
	}
	return out
}
