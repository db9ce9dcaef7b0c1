package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"snakeevo/internal/ga"
)

// Champion is the saved form of the best individual of a generation.
type Champion struct {
	RunID      string    `json:"run_id"`
	Generation int       `json:"generation"`
	Fitness    float64   `json:"fitness"`
	Score      int       `json:"score"`
	Genome     []float32 `json:"genome"`
}

// NewChampion snapshots ind.
func NewChampion(runID string, gen int, ind *ga.Individual) Champion {
	w := ind.Genome.Weights()
	genome := make([]float32, len(w))
	copy(genome, w)
	return Champion{
		RunID:      runID,
		Generation: gen,
		Fitness:    ind.Fitness,
		Score:      ind.Score,
		Genome:     genome,
	}
}

// SaveChampion saves the champion genome to a file
func SaveChampion(path string, c Champion) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadChampion loads a champion from a file
func LoadChampion(path string) (*Champion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Champion
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding champion %s: %w", path, err)
	}
	return &c, nil
}
