package env

import (
	"gonum.org/v1/gonum/stat"
)

// DeathReason indicates how the snake died
type DeathReason int

const (
	DeathNone    DeathReason = iota
	DeathWall                // hit a wall
	DeathSelf                // hit own body
	DeathStall               // no fruit for too long
	DeathTimeout             // tick cap reached
)

func (d DeathReason) String() string {
	switch d {
	case DeathNone:
		return "none"
	case DeathWall:
		return "wall"
	case DeathSelf:
		return "self"
	case DeathStall:
		return "stall"
	case DeathTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// MarshalText encodes the reason by name in replays and logs.
func (d DeathReason) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (d *DeathReason) UnmarshalText(b []byte) error {
	for r := DeathNone; r <= DeathTimeout; r++ {
		if r.String() == string(b) {
			*d = r
			return nil
		}
	}
	*d = DeathNone
	return nil
}

// EpisodeStats captures all metrics from a single episode
type EpisodeStats struct {
	Fitness     float64     `json:"fitness"`
	Fruits      int         `json:"fruits"`
	Ticks       int         `json:"ticks"`
	ProgressSum float64     `json:"progress_sum"` // cumulative distance improvement
	Death       DeathReason `json:"death"`
	Seed        uint32      `json:"seed"`
}

// AggregatedStats holds statistics across multiple episodes
type AggregatedStats struct {
	FitnessMean  float64
	FitnessStd   float64
	FruitsMean   float64
	TicksMean    float64
	ProgressMean float64
	DeathCounts  map[DeathReason]int
	NumEpisodes  int
}

// Aggregate computes statistics from multiple episode stats
func Aggregate(episodes []EpisodeStats) AggregatedStats {
	agg := AggregatedStats{
		DeathCounts: make(map[DeathReason]int),
		NumEpisodes: len(episodes),
	}
	if len(episodes) == 0 {
		return agg
	}

	fitness := make([]float64, len(episodes))
	fruits := make([]float64, len(episodes))
	ticks := make([]float64, len(episodes))
	progress := make([]float64, len(episodes))
	for i, ep := range episodes {
		fitness[i] = ep.Fitness
		fruits[i] = float64(ep.Fruits)
		ticks[i] = float64(ep.Ticks)
		progress[i] = ep.ProgressSum
		agg.DeathCounts[ep.Death]++
	}

	agg.FitnessMean, agg.FitnessStd = stat.PopMeanStdDev(fitness, nil)
	agg.FruitsMean = stat.Mean(fruits, nil)
	agg.TicksMean = stat.Mean(ticks, nil)
	agg.ProgressMean = stat.Mean(progress, nil)
	return agg
}

// RobustnessScore computes the ranking score: mean - lambda * std
func (a AggregatedStats) RobustnessScore(lambda float64) float64 {
	return a.FitnessMean - lambda*a.FitnessStd
}
