// Package report turns the optimizer's history into summaries and plots.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"snakeevo/internal/ga"
)

// Summary describes a whole run from its best-fitness history.
type Summary struct {
	Generations    int
	Best           float64
	BestGeneration int // 1-based, first occurrence of Best
	Initial        float64
	Final          float64
	Improvement    float64 // percent of |Initial|; NaN when Initial is 0
	Mean           float64
	Std            float64
}

// Summarize computes the run summary. ok is false for an empty history.
func Summarize(history []float64) (s Summary, ok bool) {
	if len(history) == 0 {
		return Summary{}, false
	}
	s.Generations = len(history)
	s.BestGeneration = floats.MaxIdx(history) + 1
	s.Best = history[s.BestGeneration-1]
	s.Initial = history[0]
	s.Final = history[len(history)-1]
	s.Improvement = math.NaN()
	if s.Initial != 0 {
		s.Improvement = (s.Final - s.Initial) / math.Abs(s.Initial) * 100
	}
	s.Mean, s.Std = stat.PopMeanStdDev(history, nil)
	return s, true
}

// MovingAverageWindow is the smoothing window used for plots: 0 (no
// smoothing) up to 10 generations, then min(10, n/5).
func MovingAverageWindow(n int) int {
	if n <= 10 {
		return 0
	}
	return min(10, n/5)
}

// MovingAverage returns the mean of every full window of xs. The i-th
// value belongs to generation index i+window-1.
func MovingAverage(xs []float64, window int) []float64 {
	if window <= 0 || window > len(xs) {
		return nil
	}
	out := make([]float64, 0, len(xs)-window+1)
	sum := floats.Sum(xs[:window])
	out = append(out, sum/float64(window))
	for i := window; i < len(xs); i++ {
		sum += xs[i] - xs[i-window]
		out = append(out, sum/float64(window))
	}
	return out
}

// WriteSummary prints the final statistics block.
func WriteSummary(w io.Writer, history []float64) error {
	s, ok := Summarize(history)
	if !ok {
		_, err := fmt.Fprintln(w, "No data to report")
		return err
	}

	improvement := "n/a"
	if !math.IsNaN(s.Improvement) {
		improvement = fmt.Sprintf("%.1f%%", s.Improvement)
	}

	var b strings.Builder
	fmt.Fprintln(&b, "FINAL STATISTICS")
	fmt.Fprintf(&b, "  Generations:        %d\n", s.Generations)
	fmt.Fprintf(&b, "  Best fitness:       %.2f\n", s.Best)
	fmt.Fprintf(&b, "  Best generation:    %d\n", s.BestGeneration)
	fmt.Fprintf(&b, "  Initial fitness:    %.2f\n", s.Initial)
	fmt.Fprintf(&b, "  Final fitness:      %.2f\n", s.Final)
	fmt.Fprintf(&b, "  Improvement:        %s\n", improvement)
	fmt.Fprintf(&b, "  Mean fitness:       %.2f\n", s.Mean)
	fmt.Fprintf(&b, "  Std deviation:      %.2f\n", s.Std)
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteGenerationSummary prints a boxed one-generation summary.
func WriteGenerationSummary(w io.Writer, s ga.GenerationStats) error {
	rule := strings.Repeat("=", 60)
	_, err := fmt.Fprintf(w, "\n%s\nGENERATION %d\n%s\n"+
		"  Best fitness: %10.2f | Score: %3d\n"+
		"  Mean fitness: %10.2f | Mean score: %6.2f\n%s\n",
		rule, s.Generation, rule,
		s.BestFitness, s.BestScore,
		s.MeanFitness, s.MeanScore, rule)
	return err
}
