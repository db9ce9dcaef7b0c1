package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		k       int
		want    Selection
		wantErr error
	}{
		{"tournament", 3, Tournament{K: 3}, nil},
		{"roulette", 0, Roulette{}, nil},
		{"rank", 0, Rank{}, nil},
		{"tournament", 0, nil, ErrInvalidTournament},
		{"Tournament", 3, nil, ErrUnknownSelection},
		{"truncation", 3, nil, ErrUnknownSelection},
		{"", 3, nil, ErrUnknownSelection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelection(tt.name, tt.k)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectReturnsSizeForEveryMethod(t *testing.T) {
	for _, sel := range []Selection{Tournament{K: 1}, Tournament{K: 4}, Tournament{K: 7}, Roulette{}, Rank{}} {
		for _, elites := range []int{0, 1, 6} {
			o, _ := newTestOptimizer(t, Config{Size: 7, ElitismCount: elites}, 9, 2, 7, 1, 8, 2, 8, 1)
			o.Evaluate()
			selected, err := o.Select(sel)
			require.NoError(t, err, sel.String())
			assert.Len(t, selected, 7, sel.String())
			assert.Equal(t, o.Population()[:elites], selected[:elites], sel.String())
		}
	}
}

func TestSelectSharesIndividuals(t *testing.T) {
	o, _ := newTestOptimizer(t, Config{Size: 5, ElitismCount: 1}, 1, 5, 4, 3, 2, 1)
	o.Evaluate()
	members := map[*Individual]bool{}
	for _, ind := range o.Population() {
		members[ind] = true
	}
	selected, err := o.Select(Rank{})
	require.NoError(t, err)
	for _, ind := range selected {
		assert.True(t, members[ind])
	}
}

func TestTournamentTooLargeFailsBeforeDrawing(t *testing.T) {
	o, _ := newTestOptimizer(t, Config{Size: 3}, 77, 1, 2, 3)
	o.Evaluate()

	_, err := o.Select(Tournament{K: 4})
	require.ErrorIs(t, err, ErrTournamentTooLarge)

	// the random source was not touched
	assert.Equal(t, rand.New(rand.NewSource(77)).Int63(), o.rng.Int63())
}

func TestTournamentFullSizeAlwaysPicksBest(t *testing.T) {
	o, _ := newTestOptimizer(t, Config{Size: 5}, 3, 2, 9, 4, 9, 1)
	o.Evaluate()
	selected, err := o.Select(Tournament{K: 5})
	require.NoError(t, err)
	for _, ind := range selected {
		// ties go to whichever of the two 9s was drawn first
		assert.Equal(t, 9.0, ind.Fitness)
	}
}

func TestTournamentSizeOneIsUniform(t *testing.T) {
	o, _ := newTestOptimizer(t, Config{Size: 4}, 8, 4, 3, 2, 1)
	o.Evaluate()

	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		selected, err := o.Select(Tournament{K: 1})
		require.NoError(t, err)
		for _, id := range ids(selected) {
			counts[id]++
		}
	}
	for _, id := range []string{"a", "b", "c", "d"} {
		assert.InDelta(t, 2000, counts[id], 200, id)
	}
}

func TestRouletteAllZeroFallsBackToUniform(t *testing.T) {
	o, _ := newTestOptimizer(t, Config{Size: 5}, 1, 0, 0, 0, 0, 0)
	o.Evaluate()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		selected, err := o.Select(Roulette{})
		require.NoError(t, err)
		require.Len(t, selected, 5)
		for _, id := range ids(selected) {
			seen[id] = true
		}
	}
	assert.Len(t, seen, 5)
}

func TestRouletteProportionalToFitness(t *testing.T) {
	o, _ := newTestOptimizer(t, Config{Size: 3}, 4, 0, 1, 3)
	o.Evaluate()

	counts := map[string]int{}
	const rounds = 4000
	for i := 0; i < rounds; i++ {
		selected, err := o.Select(Roulette{})
		require.NoError(t, err)
		for _, id := range ids(selected) {
			counts[id]++
		}
	}
	total := float64(rounds * 3)
	assert.Zero(t, counts["a"], "zero fitness must never be drawn")
	assert.InDelta(t, 0.25, float64(counts["b"])/total, 0.02)
	assert.InDelta(t, 0.75, float64(counts["c"])/total, 0.02)
}

func TestRouletteIgnoresNegativeFitness(t *testing.T) {
	o, _ := newTestOptimizer(t, Config{Size: 3}, 2, -5, 0, 3)
	o.Evaluate()
	for i := 0; i < 20; i++ {
		selected, err := o.Select(Roulette{})
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "c", "c"}, ids(selected))
	}
}

func TestRouletteAllNegativeFallsBackToUniform(t *testing.T) {
	o, _ := newTestOptimizer(t, Config{Size: 4}, 2, -1, -2, -3, -4)
	o.Evaluate()
	selected, err := o.Select(Roulette{})
	require.NoError(t, err)
	assert.Len(t, selected, 4)
}

func TestRankWeightsByPosition(t *testing.T) {
	// raw fitness is wildly skewed; rank selection only sees the order
	o, _ := newTestOptimizer(t, Config{Size: 4}, 6, 1000, 3, 2, 1)
	o.Evaluate()

	counts := map[string]int{}
	const rounds = 5000
	for i := 0; i < rounds; i++ {
		selected, err := o.Select(Rank{})
		require.NoError(t, err)
		for _, id := range ids(selected) {
			counts[id]++
		}
	}
	total := float64(rounds * 4)
	assert.InDelta(t, 0.4, float64(counts["a"])/total, 0.02)
	assert.InDelta(t, 0.3, float64(counts["b"])/total, 0.02)
	assert.InDelta(t, 0.2, float64(counts["c"])/total, 0.02)
	assert.InDelta(t, 0.1, float64(counts["d"])/total, 0.02)
}

func TestSelectionStrings(t *testing.T) {
	assert.Equal(t, "tournament(k=5)", DefaultSelection.String())
	assert.Equal(t, "roulette", Roulette{}.String())
	assert.Equal(t, "rank", Rank{}.String())
}
