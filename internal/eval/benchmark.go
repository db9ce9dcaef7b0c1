package eval

import (
	"math/rand"
	"runtime"
	"sync"

	"snakeevo/internal/config"
	"snakeevo/internal/env"
	"snakeevo/internal/ga"
)

// Benchmark evaluates genomes on a fixed seed suite, outside the
// training loop. Episodes run on a bounded pool of goroutines.
type Benchmark struct {
	cfg     *config.Config
	seeds   []uint32
	workers int
}

// NewBenchmark creates a benchmark over the configured seed suite.
func NewBenchmark(cfg *config.Config) *Benchmark {
	workers := cfg.Eval.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	seeds := make([]uint32, len(cfg.Eval.BenchmarkSeeds))
	for i, s := range cfg.Eval.BenchmarkSeeds {
		seeds[i] = uint32(s)
	}
	return &Benchmark{cfg: cfg, seeds: seeds, workers: workers}
}

// Run plays every genome on every seed and aggregates per genome.
func (b *Benchmark) Run(genomes []ga.Genome) []env.AggregatedStats {
	episodes := make([][]env.EpisodeStats, len(genomes))
	for i := range episodes {
		episodes[i] = make([]env.EpisodeStats, len(b.seeds))
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, b.workers)

	for i, g := range genomes {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, g ga.Genome) {
			defer wg.Done()
			defer func() { <-sem }()
			// each goroutine owns its network and game
			r := NewRunner(b.cfg, rand.New(rand.NewSource(0)))
			for j, seed := range b.seeds {
				r.UseSeed(seed)
				episodes[i][j] = r.Play(g)
			}
		}(i, g)
	}
	wg.Wait()

	results := make([]env.AggregatedStats, len(genomes))
	for i, eps := range episodes {
		results[i] = env.Aggregate(eps)
	}
	return results
}
