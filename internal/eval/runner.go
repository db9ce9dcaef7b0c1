// Package eval plays controllers through Snake episodes and scores them.
package eval

import (
	"fmt"
	"math/rand"

	"snakeevo/internal/config"
	"snakeevo/internal/env"
	"snakeevo/internal/ga"
	"snakeevo/internal/nn"
)

// Runner plays one episode at a time and satisfies ga.EpisodeRunner.
// It is not safe for concurrent use.
type Runner struct {
	cfg      *config.Config
	mlp      *nn.MLP
	features *env.FeatureExtractor
	game     *env.Game
	rng      *rand.Rand

	fixedSeed bool
	seed      uint32
	replay    *env.Replay
}

var _ ga.EpisodeRunner = (*Runner)(nil)

// NewRunner creates a runner whose game seeds are drawn from rng.
func NewRunner(cfg *config.Config, rng *rand.Rand) *Runner {
	return &Runner{
		cfg:      cfg,
		mlp:      nn.NewMLP(cfg.Obs().Dim(), cfg.NN.Hidden, env.NumActions),
		features: env.NewFeatureExtractor(cfg.Obs()),
		rng:      rng,
	}
}

// UseSeed makes every following episode start from seed, so that all
// agents of a generation face the same game. Without it each episode
// draws its seed from the runner's rng.
func (r *Runner) UseSeed(seed uint32) {
	r.fixedSeed = true
	r.seed = seed
}

// Record starts capturing actions of the next episodes into rp.
// Pass nil to stop recording.
func (r *Runner) Record(rp *env.Replay) {
	r.replay = rp
}

// Reset loads g into the network and starts a new game.
func (r *Runner) Reset(g ga.Genome) {
	// a genome of the wrong size would silently keep the previous weights
	if err := r.mlp.SetWeights(g.Weights()); err != nil {
		panic(fmt.Sprintf("eval: genome has %d weights, network needs %d", len(g.Weights()), r.mlp.GenomeSize()))
	}

	seed := r.seed
	if !r.fixedSeed {
		seed = r.rng.Uint32()
	}
	if r.game == nil {
		r.game = env.NewGame(r.cfg.Params(), seed)
	} else {
		r.game.Reset(seed)
	}
	if r.replay != nil {
		r.replay.Seed = seed
		r.replay.Params = r.cfg.Params()
		r.replay.Actions = r.replay.Actions[:0]
	}
}

// Alive reports whether the snake is still playing.
func (r *Runner) Alive() bool {
	return r.game != nil && r.game.Alive
}

// Step feeds the current observation through the network and applies
// the chosen action.
func (r *Runner) Step() {
	action := env.Action(r.mlp.Forward(r.features.Extract(r.game)))
	if r.replay != nil {
		r.replay.Record(action)
	}
	r.game.Step(action)
}

// Stats returns the statistics of the current episode with its fitness.
func (r *Runner) Stats() env.EpisodeStats {
	stats := r.game.Stats()
	stats.Fitness = ComputeFitness(r.cfg.Fitness, stats)
	return stats
}

// Result returns the fitness and the number of fruits eaten.
func (r *Runner) Result() (float64, int) {
	stats := r.Stats()
	if r.replay != nil {
		r.replay.FinalStats = stats
	}
	return stats.Fitness, stats.Fruits
}

// Play runs a whole episode for g and returns its statistics.
func (r *Runner) Play(g ga.Genome) env.EpisodeStats {
	r.Reset(g)
	for r.Alive() {
		r.Step()
	}
	stats := r.Stats()
	if r.replay != nil {
		r.replay.FinalStats = stats
	}
	return stats
}
