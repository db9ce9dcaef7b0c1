package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"snakeevo/internal/config"
	"snakeevo/internal/env"
	"snakeevo/internal/eval"
	"snakeevo/internal/ga"
	"snakeevo/internal/genome"
	"snakeevo/internal/logging"
	"snakeevo/internal/report"
)

func main() {
	configPath := flag.String("config", "", "path to config file (empty = built-in defaults)")
	generations := flag.Int("generations", 100, "number of generations to run")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.NewSlogger(os.Stderr, cfg.Logging.Format, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(log)

	if err := run(cfg, *generations, log); err != nil {
		log.Error("training failed", "error", err)
		os.Exit(1)
	}
}

// trainer holds everything the per-generation observer needs.
type trainer struct {
	cfg       *config.Config
	runID     string
	runDir    string
	log       *slog.Logger
	metrics   *logging.MetricsWriter
	bench     *eval.Benchmark
	selection ga.Selection
	gameSeed  uint32

	bestEver *logging.Champion
}

func run(cfg *config.Config, generations int, log *slog.Logger) error {
	runID := uuid.NewString()
	runDir := filepath.Join(cfg.Logging.ArtifactsDir, runID)
	log = log.With("run_id", runID)

	sel, err := cfg.Selection()
	if err != nil {
		return err
	}
	crossover, err := cfg.CrossoverOp()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("creating run directory: %w", err)
	}
	if err := cfg.WriteYAML(filepath.Join(runDir, "config.yaml")); err != nil {
		return err
	}

	metrics, err := logging.NewMetricsWriter(runID, cfg.Logging.CSVPath, cfg.Logging.JSONPath, log)
	if err != nil {
		return err
	}
	defer metrics.Close()

	t := &trainer{
		cfg:       cfg,
		runID:     runID,
		runDir:    runDir,
		log:       log,
		metrics:   metrics,
		bench:     eval.NewBenchmark(cfg),
		selection: sel,
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	runner := eval.NewRunner(cfg, rand.New(rand.NewSource(cfg.Seed+1)))

	log.Info("starting training",
		"track", cfg.Track.Mode,
		"obs", cfg.Track.Obs,
		"hidden", cfg.NN.Hidden,
		"genome_size", cfg.GenomeSize(),
		"population", cfg.GA.Population,
		"elites", cfg.GA.Elites,
		"selection", sel.String(),
		"generations", generations,
	)

	opt, err := ga.New(
		cfg.GAConfig(),
		genome.Initializer(cfg.GenomeSize(), cfg.Mutation(), crossover),
		runner,
		rng,
		ga.WithLogger(log),
		ga.WithObserver(t.observe),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	for i := 0; i < generations; i++ {
		if cfg.Eval.SharedSeed {
			t.gameSeed = uint32(cfg.Seed + int64(opt.Generation()))
			runner.UseSeed(t.gameSeed)
		}
		if _, err := opt.RunGenerationWith(sel); err != nil {
			return err
		}
	}

	history := opt.History()
	log.Info("training complete", "generations", len(history), "elapsed", time.Since(start))

	if err := report.WriteSummary(os.Stdout, history); err != nil {
		return err
	}
	if cfg.Logging.PlotPath != "" {
		if err := report.PlotFitness(history, cfg.Logging.PlotPath); err != nil {
			log.Warn("failed to save fitness plot", "error", err)
		}
	}
	if t.bestEver != nil {
		path := filepath.Join(runDir, "champion_final.json")
		if err := logging.SaveChampion(path, *t.bestEver); err != nil {
			log.Warn("failed to save final champion", "error", err)
		}
		log.Info("best ever", "generation", t.bestEver.Generation, "fitness", t.bestEver.Fitness, "score", t.bestEver.Score)
	}
	return nil
}

// observe runs after each evaluation, while the population is ranked.
func (t *trainer) observe(stats ga.GenerationStats, ranked []*ga.Individual) {
	cfg := t.cfg
	gen := stats.Generation
	best := ranked[0]

	if err := t.metrics.Write(stats, t.selection); err != nil {
		t.log.Warn("failed to write metrics", "error", err)
	}
	if cfg.Logging.EveryGenSummary {
		report.WriteGenerationSummary(os.Stdout, stats)
	}

	if t.bestEver == nil || best.Fitness > t.bestEver.Fitness {
		c := logging.NewChampion(t.runID, gen, best)
		t.bestEver = &c
	}

	if cfg.Logging.TopNDebug > 0 && gen%10 == 0 {
		for i, ind := range ranked[:min(cfg.Logging.TopNDebug, len(ranked))] {
			t.log.Debug("top agent", "rank", i+1, "fitness", ind.Fitness, "score", ind.Score)
		}
	}

	if cfg.Eval.BenchmarkEvery > 0 && gen%cfg.Eval.BenchmarkEvery == 0 {
		t.benchmark(gen, ranked)
	}

	if cfg.Logging.SaveChampionEvery > 0 && gen%cfg.Logging.SaveChampionEvery == 0 {
		path := filepath.Join(t.runDir, fmt.Sprintf("champion_gen%d.json", gen))
		if err := logging.SaveChampion(path, logging.NewChampion(t.runID, gen, best)); err != nil {
			t.log.Warn("failed to save champion", "error", err)
		}
	}

	if cfg.Logging.ReplayEvery > 0 && gen%cfg.Logging.ReplayEvery == 0 {
		t.saveReplay(gen, best)
	}
}

func (t *trainer) benchmark(gen int, ranked []*ga.Individual) {
	top := ranked[:min(t.cfg.Eval.BenchmarkTop, len(ranked))]
	if len(top) == 0 {
		return
	}
	genomes := make([]ga.Genome, len(top))
	for i, ind := range top {
		genomes[i] = ind.Genome
	}

	var ticks, fruits, robust float64
	results := t.bench.Run(genomes)
	for _, r := range results {
		ticks += r.TicksMean
		fruits += r.FruitsMean
		robust += r.RobustnessScore(t.cfg.Eval.RobustnessLambda)
	}
	n := float64(len(results))
	t.log.Info("benchmark",
		"gen", gen,
		"agents", len(results),
		"avg_ticks", ticks/n,
		"avg_fruits", fruits/n,
		"avg_robust", robust/n,
	)
}

// saveReplay replays the best agent on the generation's game seed.
func (t *trainer) saveReplay(gen int, best *ga.Individual) {
	seed := t.gameSeed
	if !t.cfg.Eval.SharedSeed {
		seed = uint32(t.cfg.Seed + int64(gen))
	}
	rp := env.NewReplay(t.cfg.Params(), seed)
	r := eval.NewRunner(t.cfg, nil)
	r.UseSeed(seed)
	r.Record(rp)
	r.Play(best.Genome)

	path := filepath.Join(t.runDir, fmt.Sprintf("replay_gen%d.json", gen))
	if err := rp.Save(path); err != nil {
		t.log.Warn("failed to save replay", "error", err)
	}
}
