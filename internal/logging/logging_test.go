package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snakeevo/internal/ga"
	"snakeevo/internal/genome"
)

func TestNewSlogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewSlogger(&buf, "json", "warn")
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", "k", 1)
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, float64(1), line["k"])

	_, err = NewSlogger(&buf, "xml", "info")
	assert.Error(t, err)
	_, err = NewSlogger(&buf, "text", "loud")
	assert.Error(t, err)
}

func TestMetricsWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "runs", "run.csv")
	jsonPath := filepath.Join(dir, "runs", "run.jsonl")
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	w, err := NewMetricsWriter("run-1", csvPath, jsonPath, log)
	require.NoError(t, err)

	stats := []ga.GenerationStats{
		{Generation: 1, BestFitness: 10, MeanFitness: 4.5, StdFitness: 2, BestScore: 1, MaxScore: 2, MeanScore: 0.5},
		{Generation: 2, BestFitness: 12, MeanFitness: 6, StdFitness: 1.5, BestScore: 2, MaxScore: 2, MeanScore: 1},
	}
	for _, s := range stats {
		require.NoError(t, w.Write(s, ga.Rank{}))
	}
	require.NoError(t, w.Close())

	records, err := readMetrics(csvPath)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for i, rec := range records {
		assert.Equal(t, "run-1", rec.RunID)
		assert.Equal(t, "rank", rec.Selection)
		assert.Equal(t, stats[i], rec.GenerationStats)
	}

	f, err := os.Open(jsonPath)
	require.NoError(t, err)
	defer f.Close()
	var lines int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec GenerationRecord
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		assert.Equal(t, stats[lines], rec.GenerationStats)
		lines++
	}
	assert.Equal(t, 2, lines)
}

func TestChampionSaveLoad(t *testing.T) {
	ind := ga.NewIndividual(genome.New([]float32{0.5, -1, 2}, genome.DefaultMutation, genome.CrossoverUniform))
	ind.Fitness = 42
	ind.Score = 3

	c := NewChampion("run-2", 17, ind)
	ind.Genome.Weights()[0] = 99 // the snapshot is independent

	path := filepath.Join(t.TempDir(), "a", "champion.json")
	require.NoError(t, SaveChampion(path, c))

	loaded, err := LoadChampion(path)
	require.NoError(t, err)
	assert.Equal(t, c, *loaded)
	assert.Equal(t, []float32{0.5, -1, 2}, loaded.Genome)

	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err = LoadChampion(path)
	assert.Error(t, err)
}

func readMetrics(path string) ([]GenerationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []GenerationRecord
	err = gocsv.UnmarshalFile(f, &records)
	return records, err
}
