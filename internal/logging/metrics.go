package logging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"snakeevo/internal/ga"
)

// GenerationRecord is one row of the metrics CSV and one JSON line.
type GenerationRecord struct {
	RunID string `csv:"run_id" json:"run_id"`
	ga.GenerationStats
	Selection string `csv:"selection" json:"selection"`
}

// MetricsWriter appends per-generation records to a CSV and a JSONL file.
type MetricsWriter struct {
	runID         string
	csvFile       *os.File
	jsonFile      *os.File
	headerWritten bool
	log           *slog.Logger
}

// NewMetricsWriter creates both files, truncating existing ones.
func NewMetricsWriter(runID, csvPath, jsonPath string, log *slog.Logger) (*MetricsWriter, error) {
	for _, p := range []string{csvPath, jsonPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	csvFile, err := os.Create(csvPath)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", csvPath, err)
	}
	jsonFile, err := os.Create(jsonPath)
	if err != nil {
		csvFile.Close()
		return nil, fmt.Errorf("creating %s: %w", jsonPath, err)
	}

	return &MetricsWriter{
		runID:    runID,
		csvFile:  csvFile,
		jsonFile: jsonFile,
		log:      log,
	}, nil
}

// Write appends one generation.
func (m *MetricsWriter) Write(stats ga.GenerationStats, sel ga.Selection) error {
	rec := GenerationRecord{RunID: m.runID, GenerationStats: stats, Selection: sel.String()}
	records := []GenerationRecord{rec}

	if !m.headerWritten {
		if err := gocsv.Marshal(records, m.csvFile); err != nil {
			return fmt.Errorf("writing metrics csv: %w", err)
		}
		m.headerWritten = true
	} else if err := gocsv.MarshalWithoutHeaders(records, m.csvFile); err != nil {
		return fmt.Errorf("writing metrics csv: %w", err)
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding metrics json: %w", err)
	}
	if _, err := m.jsonFile.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("writing metrics json: %w", err)
	}

	m.log.Debug("metrics written", "gen", stats.Generation, "csv", m.csvFile.Name())
	return nil
}

// Close closes both files.
func (m *MetricsWriter) Close() error {
	errCSV := m.csvFile.Close()
	errJSON := m.jsonFile.Close()
	if errCSV != nil {
		return errCSV
	}
	return errJSON
}
