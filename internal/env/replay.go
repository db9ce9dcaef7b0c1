package env

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Replay stores a deterministic action trace for playback
type Replay struct {
	Seed       uint32       `json:"seed"`
	Params     Params       `json:"params"`
	Actions    []Action     `json:"actions"`
	FinalStats EpisodeStats `json:"final_stats"`
}

// NewReplay creates a new replay recorder
func NewReplay(p Params, seed uint32) *Replay {
	return &Replay{
		Seed:    seed,
		Params:  p,
		Actions: make([]Action, 0, 256),
	}
}

// Record adds an action to the replay
func (r *Replay) Record(action Action) {
	r.Actions = append(r.Actions, action)
}

// Save writes the replay as indented JSON, creating parent directories.
func (r *Replay) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadReplay loads a replay from a file
func LoadReplay(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Replay
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding replay %s: %w", path, err)
	}
	return &r, nil
}

// Playback recreates the initial game of the replay
func (r *Replay) Playback() *Game {
	return NewGame(r.Params, r.Seed)
}

// PlaybackStep applies the first step recorded actions to g.
func (r *Replay) PlaybackStep(g *Game, step int) {
	step = min(step, len(r.Actions))
	for i := 0; i < step && g.Alive; i++ {
		g.Step(r.Actions[i])
	}
}
