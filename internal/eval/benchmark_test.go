package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snakeevo/internal/config"
	"snakeevo/internal/env"
	"snakeevo/internal/ga"
)

func TestBenchmarkRun(t *testing.T) {
	cfg := config.Default()
	cfg.Eval.BenchmarkSeeds = []int{1, 2, 3}
	cfg.Eval.Workers = 2

	b := NewBenchmark(cfg)
	results := b.Run([]ga.Genome{zeroGenome(cfg), alwaysLeft(cfg), zeroGenome(cfg)})
	require.Len(t, results, 3)

	for _, i := range []int{0, 2} {
		assert.Equal(t, 3, results[i].NumEpisodes)
		assert.Equal(t, 5.0, results[i].TicksMean)
		assert.Equal(t, 3, results[i].DeathCounts[env.DeathWall])
		assert.Zero(t, results[i].FitnessStd)
	}
	assert.Equal(t, float64(cfg.Env.TickCap), results[1].FitnessMean)
	assert.Equal(t, float64(cfg.Env.TickCap), results[1].RobustnessScore(cfg.Eval.RobustnessLambda))
}

func TestBenchmarkNoGenomes(t *testing.T) {
	assert.Empty(t, NewBenchmark(config.Default()).Run(nil))
}
