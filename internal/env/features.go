package env

import "fmt"

// Obs selects which observation vector a controller sees.
type Obs string

const (
	ObsWallMin  Obs = "wall_min"  // danger ahead/left/right, walls only
	ObsSelfMin  Obs = "self_min"  // dangers plus body rays
	ObsFruitMin Obs = "fruit_min" // fruit direction, dangers, length
	ObsMultiMin Obs = "multi_min" // all of the above
)

// ParseObs validates an observation name.
func ParseObs(s string) (Obs, error) {
	switch o := Obs(s); o {
	case ObsWallMin, ObsSelfMin, ObsFruitMin, ObsMultiMin:
		return o, nil
	default:
		return "", fmt.Errorf("env: unknown observation %q", s)
	}
}

// Dim returns the observation dimension.
func (o Obs) Dim() int {
	switch o {
	case ObsSelfMin, ObsFruitMin:
		return 6
	case ObsMultiMin:
		return 10
	default:
		return 3
	}
}

// FeatureExtractor builds observation vectors into a reused buffer.
type FeatureExtractor struct {
	obs    Obs
	buffer []float32
}

// NewFeatureExtractor creates a feature extractor for the given observation type
func NewFeatureExtractor(obs Obs) *FeatureExtractor {
	return &FeatureExtractor{
		obs:    obs,
		buffer: make([]float32, obs.Dim()),
	}
}

// Extract builds the observation vector for the current game state.
// The returned slice is owned by the extractor.
func (f *FeatureExtractor) Extract(g *Game) []float32 {
	b := f.buffer
	switch f.obs {
	case ObsSelfMin:
		f.dangers(b[0:3], g)
		f.bodyRays(b[3:6], g)
	case ObsFruitMin:
		b[0], b[1] = g.FruitDirection()
		f.dangers(b[2:5], g)
		b[5] = g.LengthNorm()
	case ObsMultiMin:
		f.dangers(b[0:3], g)
		f.bodyRays(b[3:6], g)
		b[6], b[7] = g.FruitDirection()
		b[8] = g.FruitDistanceNorm()
		b[9] = g.LengthNorm()
	default:
		b[0] = boolToFloat(g.IsDangerWall(ActionStraight))
		b[1] = boolToFloat(g.IsDangerWall(ActionLeft))
		b[2] = boolToFloat(g.IsDangerWall(ActionRight))
	}
	return b
}

// dangers fills straight/left/right collision flags (wall or body).
func (f *FeatureExtractor) dangers(dst []float32, g *Game) {
	dst[0] = boolToFloat(g.IsDanger(ActionStraight))
	dst[1] = boolToFloat(g.IsDanger(ActionLeft))
	dst[2] = boolToFloat(g.IsDanger(ActionRight))
}

func (f *FeatureExtractor) bodyRays(dst []float32, g *Game) {
	dst[0] = g.BodyDistanceInDir(ActionStraight)
	dst[1] = g.BodyDistanceInDir(ActionLeft)
	dst[2] = g.BodyDistanceInDir(ActionRight)
}

func boolToFloat(b bool) float32 {
	if b {
		return 1.0
	}
	return 0.0
}
