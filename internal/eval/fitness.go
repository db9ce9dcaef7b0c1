package eval

import (
	"math"

	"snakeevo/internal/config"
	"snakeevo/internal/env"
)

// ComputeFitness scores a finished episode according to the track mode.
func ComputeFitness(cfg config.FitnessConfig, stats env.EpisodeStats) float64 {
	switch cfg.Mode {
	case "self":
		return fitnessSelf(cfg, stats)
	case "fruit":
		return fitnessFruit(cfg, stats)
	case "multi":
		return fitnessMulti(cfg, stats)
	default:
		return fitnessWall(cfg, stats)
	}
}

func fitnessWall(cfg config.FitnessConfig, stats env.EpisodeStats) float64 {
	score := float64(stats.Ticks)
	if stats.Death == env.DeathWall {
		score -= cfg.WallPenalty
	}
	return score
}

func fitnessSelf(cfg config.FitnessConfig, stats env.EpisodeStats) float64 {
	score := float64(stats.Ticks)
	switch stats.Death {
	case env.DeathSelf:
		score -= cfg.SelfPenalty
	case env.DeathWall:
		score -= cfg.WallPenalty * 0.33 // lighter wall penalty for self track
	case env.DeathStall:
		score -= cfg.StallPenalty
	}
	return score
}

func fitnessFruit(cfg config.FitnessConfig, stats env.EpisodeStats) float64 {
	score := cfg.FruitReward * float64(stats.Fruits)
	score += cfg.SurvivalW * math.Min(float64(stats.Ticks), float64(cfg.SurvivalCap))
	score += cfg.ProgressW * stats.ProgressSum
	return score - deathPenalty(stats.Death)
}

func fitnessMulti(cfg config.FitnessConfig, stats env.EpisodeStats) float64 {
	score := 8000 * float64(stats.Fruits)
	score += 2 * math.Min(float64(stats.Ticks), 60)
	score += cfg.ProgressW * stats.ProgressSum
	return score - deathPenalty(stats.Death)
}

func deathPenalty(d env.DeathReason) float64 {
	switch d {
	case env.DeathWall, env.DeathSelf:
		return 300
	case env.DeathStall, env.DeathTimeout:
		return 150
	}
	return 0
}
