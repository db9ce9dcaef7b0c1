package ga

import (
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
)

// Optimizer owns the population and drives the
// evaluate -> select -> reproduce cycle.
type Optimizer struct {
	cfg    Config
	runner EpisodeRunner
	rng    *rand.Rand
	log    *slog.Logger
	onEval func(GenerationStats, []*Individual)

	population  []*Individual
	generation  int
	bestFitness float64
	history     []float64
	lastStats   GenerationStats
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithLogger sets the logger used for progress records.
func WithLogger(l *slog.Logger) Option {
	return func(o *Optimizer) { o.log = l }
}

// WithObserver registers fn to be called after every evaluation with
// the stats and the ranked population. fn must not modify the population.
func WithObserver(fn func(stats GenerationStats, ranked []*Individual)) Option {
	return func(o *Optimizer) { o.onEval = fn }
}

// New creates an optimizer with cfg.Size genomes produced by init.
func New(cfg Config, init func(*rand.Rand) Genome, runner EpisodeRunner, rng *rand.Rand, opts ...Option) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	genomes := make([]Genome, cfg.Size)
	for i := range genomes {
		genomes[i] = init(rng)
	}
	return NewFromGenomes(cfg, genomes, runner, rng, opts...)
}

// NewFromGenomes creates an optimizer whose first generation holds
// exactly the given genomes, in order.
func NewFromGenomes(cfg Config, genomes []Genome, runner EpisodeRunner, rng *rand.Rand, opts ...Option) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(genomes) != cfg.Size {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrPopulationSize, len(genomes), cfg.Size)
	}

	o := &Optimizer{
		cfg:        cfg,
		runner:     runner,
		rng:        rng,
		log:        slog.Default(),
		population: make([]*Individual, cfg.Size),
		generation: 1,
	}
	for i, g := range genomes {
		o.population[i] = NewIndividual(g)
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Config returns the construction parameters.
func (o *Optimizer) Config() Config { return o.cfg }

// Generation returns the current generation number, starting at 1.
func (o *Optimizer) Generation() int { return o.generation }

// BestFitness returns the best fitness of the last evaluation.
func (o *Optimizer) BestFitness() float64 { return o.bestFitness }

// History returns a copy of the best fitness per evaluated generation.
func (o *Optimizer) History() []float64 { return slices.Clone(o.history) }

// LastStats returns the statistics of the last evaluation.
func (o *Optimizer) LastStats() GenerationStats { return o.lastStats }

// Population returns the current individuals. The slice is a copy; the
// individuals are shared.
func (o *Optimizer) Population() []*Individual { return slices.Clone(o.population) }

// Evaluate plays one episode per individual, records fitness and score,
// and installs the population sorted by fitness (descending, stable).
func (o *Optimizer) Evaluate() GenerationStats {
	o.log.Debug("evaluating generation", "generation", o.generation, "size", len(o.population))

	for i, ind := range o.population {
		o.play(ind)
		if (i+1)%10 == 0 {
			o.log.Debug("evaluation progress", "done", i+1, "size", len(o.population))
		}
	}

	o.population = sortedByFitness(o.population)
	o.bestFitness = o.population[0].Fitness
	o.history = append(o.history, o.bestFitness)
	o.lastStats = computeStats(o.generation, o.population)

	o.log.Info("generation evaluated", "stats", o.lastStats)
	if o.onEval != nil {
		o.onEval(o.lastStats, slices.Clone(o.population))
	}
	return o.lastStats
}

// play runs the episode to its natural end.
func (o *Optimizer) play(ind *Individual) {
	o.runner.Reset(ind.Genome)
	ind.Alive = o.runner.Alive()
	for ind.Alive {
		o.runner.Step()
		ind.Alive = o.runner.Alive()
	}
	ind.Fitness, ind.Score = o.runner.Result()
}

// Select builds a mating pool of exactly Size individuals: the elite
// prefix followed by individuals chosen by sel. Individuals are shared
// with the population, not cloned.
func (o *Optimizer) Select(sel Selection) ([]*Individual, error) {
	if err := o.checkSelection(sel); err != nil {
		return nil, err
	}

	selected := make([]*Individual, 0, o.cfg.Size)
	selected = append(selected, o.population[:o.cfg.ElitismCount]...)
	selected = sel.pick(selected, o.population, o.cfg.Size-o.cfg.ElitismCount, o.rng)
	return selected, nil
}

func (o *Optimizer) checkSelection(sel Selection) error {
	if sel == nil {
		return fmt.Errorf("%w: nil", ErrUnknownSelection)
	}
	return sel.validate(o.cfg.Size)
}

// Reproduce replaces the population with offspring of selected and
// advances the generation counter.
func (o *Optimizer) Reproduce(selected []*Individual) ([]*Individual, error) {
	if len(selected) != o.cfg.Size {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSelectionSize, len(selected), o.cfg.Size)
	}

	next := make([]*Individual, 0, o.cfg.Size)
	for _, elite := range selected[:o.cfg.ElitismCount] {
		next = append(next, elite.Clone())
	}

	for len(next) < o.cfg.Size {
		p1 := selected[o.rng.Intn(len(selected))]
		p2 := selected[o.rng.Intn(len(selected))]

		var child Genome
		if o.rng.Float64() < o.cfg.CrossoverRate {
			child = p1.Genome.Crossover(p2.Genome, o.rng)
		} else {
			child = p1.Genome.Clone()
		}
		if o.cfg.MutationRate > 0 {
			child.Mutate(o.cfg.MutationRate, o.rng)
		}
		next = append(next, NewIndividual(child))
	}

	o.population = next
	o.generation++
	return slices.Clone(next), nil
}

// RunGeneration runs one full cycle with DefaultSelection and returns
// the best fitness of its evaluation phase.
func (o *Optimizer) RunGeneration() (float64, error) {
	return o.RunGenerationWith(DefaultSelection)
}

// RunGenerationWith runs one full cycle with the given selection.
func (o *Optimizer) RunGenerationWith(sel Selection) (float64, error) {
	if err := o.checkSelection(sel); err != nil {
		return 0, err
	}
	stats := o.Evaluate()
	selected, err := o.Select(sel)
	if err != nil {
		return stats.BestFitness, fmt.Errorf("generation %d: %w", stats.Generation, err)
	}
	if _, err := o.Reproduce(selected); err != nil {
		return stats.BestFitness, fmt.Errorf("generation %d: %w", stats.Generation, err)
	}
	return stats.BestFitness, nil
}
