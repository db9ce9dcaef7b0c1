package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snakeevo/internal/ga"
)

func TestSummarize(t *testing.T) {
	s, ok := Summarize([]float64{2, 8, 5, 8, 7})
	require.True(t, ok)
	assert.Equal(t, 5, s.Generations)
	assert.Equal(t, 8.0, s.Best)
	assert.Equal(t, 2, s.BestGeneration)
	assert.Equal(t, 2.0, s.Initial)
	assert.Equal(t, 7.0, s.Final)
	assert.InDelta(t, 250.0, s.Improvement, 1e-9)
	assert.InDelta(t, 6.0, s.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(5.2), s.Std, 1e-9)

	s, ok = Summarize([]float64{-4, -2})
	require.True(t, ok)
	assert.InDelta(t, 50.0, s.Improvement, 1e-9)

	s, ok = Summarize([]float64{0, 3})
	require.True(t, ok)
	assert.True(t, math.IsNaN(s.Improvement))

	_, ok = Summarize(nil)
	assert.False(t, ok)
}

func TestMovingAverageWindow(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 0}, {10, 0}, {11, 2}, {24, 4}, {50, 10}, {500, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MovingAverageWindow(tt.n), "n=%d", tt.n)
	}
}

func TestMovingAverage(t *testing.T) {
	assert.Equal(t, []float64{2, 3, 4}, MovingAverage([]float64{1, 2, 3, 4, 5}, 3))
	assert.Equal(t, []float64{1, 2}, MovingAverage([]float64{1, 2}, 1))
	assert.Nil(t, MovingAverage([]float64{1, 2}, 3))
	assert.Nil(t, MovingAverage([]float64{1, 2}, 0))
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, []float64{0, 5}))
	assert.Contains(t, buf.String(), "Improvement:        n/a")
	assert.Contains(t, buf.String(), "Best generation:    2")

	buf.Reset()
	require.NoError(t, WriteSummary(&buf, []float64{10, 15}))
	assert.Contains(t, buf.String(), "Improvement:        50.0%")

	buf.Reset()
	require.NoError(t, WriteSummary(&buf, nil))
	assert.Equal(t, "No data to report\n", buf.String())
}

func TestWriteGenerationSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGenerationSummary(&buf, ga.GenerationStats{Generation: 3, BestFitness: 12.5, BestScore: 4}))
	assert.Contains(t, buf.String(), "GENERATION 3")
	assert.Contains(t, buf.String(), "12.50")
}

func TestPlotFitness(t *testing.T) {
	history := make([]float64, 30)
	for i := range history {
		history[i] = float64(i * i)
	}
	path := filepath.Join(t.TempDir(), "plots", "fitness.png")
	require.NoError(t, PlotFitness(history, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, PlotFitness(nil, path))
}
