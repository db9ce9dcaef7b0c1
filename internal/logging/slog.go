// Package logging sets up structured logging and writes training
// artifacts: per-generation metrics and champion genomes.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// NewSlogger builds a logger writing to w. format is "text" or "json";
// level is one of debug, info, warn, error.
func NewSlogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}
}
