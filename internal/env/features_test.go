package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObs(t *testing.T) {
	tests := []struct {
		in      string
		dim     int
		wantErr bool
	}{
		{"wall_min", 3, false},
		{"self_min", 6, false},
		{"fruit_min", 6, false},
		{"multi_min", 10, false},
		{"pixels", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			obs, err := ParseObs(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dim, obs.Dim())
			assert.Len(t, NewFeatureExtractor(obs).Extract(NewGame(testParams(), 1)), tt.dim)
		})
	}
}

func TestExtractWallMin(t *testing.T) {
	g := NewGame(testParams(), 1)
	fe := NewFeatureExtractor(ObsWallMin)
	assert.Equal(t, []float32{0, 0, 0}, fe.Extract(g))

	g.Snake[0] = Point{9, 0}
	assert.Equal(t, []float32{1, 1, 0}, fe.Extract(g))
}

func TestExtractSelfMinSeesBody(t *testing.T) {
	p := testParams()
	p.StartLength = 5
	g := NewGame(p, 1)
	g.Step(ActionRight)
	g.Step(ActionRight)
	// heading left at (4,6); the body is directly to the right (up)
	fe := NewFeatureExtractor(ObsSelfMin)
	obs := fe.Extract(g)
	assert.Equal(t, float32(0), obs[0])
	assert.Equal(t, float32(1), obs[2])
	assert.Less(t, obs[5], float32(1))
}

func TestExtractReusesBuffer(t *testing.T) {
	fe := NewFeatureExtractor(ObsMultiMin)
	a := fe.Extract(NewGame(testParams(), 1))
	b := fe.Extract(NewGame(testParams(), 2))
	assert.Same(t, &a[0], &b[0])
}
