package ga

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarises one evaluation phase.
type GenerationStats struct {
	Generation  int     `json:"generation" csv:"generation"`
	BestFitness float64 `json:"best_fitness" csv:"best_fitness"`
	MeanFitness float64 `json:"mean_fitness" csv:"mean_fitness"`
	StdFitness  float64 `json:"std_fitness" csv:"std_fitness"`
	BestScore   int     `json:"best_score" csv:"best_score"` // score of the fittest individual
	MaxScore    int     `json:"max_score" csv:"max_score"`
	MeanScore   float64 `json:"mean_score" csv:"mean_score"`
}

func computeStats(gen int, sorted []*Individual) GenerationStats {
	fitness := make([]float64, len(sorted))
	scores := make([]float64, len(sorted))
	for i, ind := range sorted {
		fitness[i] = ind.Fitness
		scores[i] = float64(ind.Score)
	}
	mean, std := stat.PopMeanStdDev(fitness, nil)
	return GenerationStats{
		Generation:  gen,
		BestFitness: floats.Max(fitness),
		MeanFitness: mean,
		StdFitness:  std,
		BestScore:   sorted[0].Score,
		MaxScore:    int(floats.Max(scores)),
		MeanScore:   stat.Mean(scores, nil),
	}
}

// LogValue implements slog.LogValuer.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Float64("best_fitness", s.BestFitness),
		slog.Float64("mean_fitness", s.MeanFitness),
		slog.Float64("std_fitness", s.StdFitness),
		slog.Int("best_score", s.BestScore),
		slog.Int("max_score", s.MaxScore),
		slog.Float64("mean_score", s.MeanScore),
	)
}
