package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"snakeevo/internal/env"
	"snakeevo/internal/ga"
	"snakeevo/internal/genome"
	"snakeevo/internal/nn"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the root configuration structure
type Config struct {
	Seed    int64         `yaml:"seed"`
	Track   TrackConfig   `yaml:"track"`
	Env     EnvConfig     `yaml:"env"`
	NN      NNConfig      `yaml:"nn"`
	GA      GAConfig      `yaml:"ga"`
	Eval    EvalConfig    `yaml:"eval"`
	Logging LogConfig     `yaml:"logging"`
	Fitness FitnessConfig `yaml:"fitness"`
}

// TrackConfig defines the training track
type TrackConfig struct {
	Mode    string `yaml:"mode"`    // wall|self|fruit|multi
	Obs     string `yaml:"obs"`     // wall_min|self_min|fruit_min|multi_min
	Actions string `yaml:"actions"` // relative3
}

// EnvConfig defines environment parameters
type EnvConfig struct {
	Width        int  `yaml:"width"`
	Height       int  `yaml:"height"`
	StartLength  int  `yaml:"start_length"`
	TickCap      int  `yaml:"tick_cap"`
	StallWindow  int  `yaml:"stall_window"`
	FruitEnabled bool `yaml:"fruit_enabled"`
}

// NNConfig defines neural network architecture
type NNConfig struct {
	Hidden     []int  `yaml:"hidden"`
	Activation string `yaml:"activation"` // relu
}

// GAConfig defines genetic algorithm parameters
type GAConfig struct {
	Population     int     `yaml:"population"`
	Elites         int     `yaml:"elites"`
	Selection      string  `yaml:"selection"` // tournament|roulette|rank
	TournamentK    int     `yaml:"tournament_k"`
	Crossover      string  `yaml:"crossover"` // uniform|single_point
	CrossoverRate  float64 `yaml:"crossover_rate"`
	MutationRate   float64 `yaml:"mutation_rate"`
	MutationSigma  float64 `yaml:"mutation_sigma"`
	ResetMutationP float64 `yaml:"reset_mutation_p"`
}

// EvalConfig defines evaluation parameters
type EvalConfig struct {
	RobustnessLambda float64 `yaml:"robustness_lambda"`
	BenchmarkEvery   int     `yaml:"benchmark_every"`
	BenchmarkSeeds   []int   `yaml:"benchmark_seeds"`
	BenchmarkTop     int     `yaml:"benchmark_top"`
	Workers          int     `yaml:"workers"`
	SharedSeed       bool    `yaml:"shared_seed"` // one game seed per generation for every agent
}

// LogConfig defines logging parameters
type LogConfig struct {
	Format            string `yaml:"format"` // text|json
	Level             string `yaml:"level"`  // debug|info|warn|error
	EveryGenSummary   bool   `yaml:"every_gen_summary"`
	TopNDebug         int    `yaml:"topn_debug"`
	SaveChampionEvery int    `yaml:"save_champion_every"`
	ReplayEvery       int    `yaml:"replay_every"`
	ArtifactsDir      string `yaml:"artifacts_dir"`
	CSVPath           string `yaml:"csv_path"`
	JSONPath          string `yaml:"json_path"`
	PlotPath          string `yaml:"plot_path"`
}

// FitnessConfig defines fitness function parameters
type FitnessConfig struct {
	Mode         string  `yaml:"mode"` // wall|self|fruit|multi
	WallPenalty  float64 `yaml:"wall_penalty"`
	SelfPenalty  float64 `yaml:"self_penalty"`
	StallPenalty float64 `yaml:"stall_penalty"`
	FruitReward  float64 `yaml:"fruit_reward"`
	SurvivalCap  int     `yaml:"survival_cap"`
	SurvivalW    float64 `yaml:"survival_w"`
	ProgressW    float64 `yaml:"progress_w"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads a YAML config file over the embedded defaults.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over the embedded defaults and validates the result.
// Keys absent from data keep their default value.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the core and environment cannot recover from.
func (c *Config) Validate() error {
	var errs []error
	if err := c.GAConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Selection(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.CrossoverOp(); err != nil {
		errs = append(errs, err)
	}
	if _, err := env.ParseObs(c.Track.Obs); err != nil {
		errs = append(errs, err)
	}
	if c.Env.Width < 1 || c.Env.Height < 1 {
		errs = append(errs, fmt.Errorf("config: grid must be at least 1x1, got %dx%d", c.Env.Width, c.Env.Height))
	}
	if c.Env.StartLength < 1 || c.Env.StartLength > c.Env.Width/2+1 {
		errs = append(errs, fmt.Errorf("config: start_length %d does not fit a width of %d", c.Env.StartLength, c.Env.Width))
	}
	if c.Env.TickCap < 1 || c.Env.StallWindow < 1 {
		errs = append(errs, errors.New("config: tick_cap and stall_window must be positive"))
	}
	for _, h := range c.NN.Hidden {
		if h < 1 {
			errs = append(errs, fmt.Errorf("config: hidden layer size %d", h))
		}
	}
	return errors.Join(errs...)
}

// GAConfig converts the ga section to the optimizer's configuration.
func (c *Config) GAConfig() ga.Config {
	return ga.Config{
		Size:          c.GA.Population,
		MutationRate:  c.GA.MutationRate,
		CrossoverRate: c.GA.CrossoverRate,
		ElitismCount:  c.GA.Elites,
	}
}

// Selection returns the configured selection strategy.
func (c *Config) Selection() (ga.Selection, error) {
	return ga.ParseSelection(c.GA.Selection, c.GA.TournamentK)
}

// CrossoverOp returns the configured recombination operator.
func (c *Config) CrossoverOp() (genome.Crossover, error) {
	switch c.GA.Crossover {
	case "", "uniform":
		return genome.CrossoverUniform, nil
	case "single_point":
		return genome.CrossoverSinglePoint, nil
	default:
		return 0, fmt.Errorf("config: unknown crossover %q", c.GA.Crossover)
	}
}

// Mutation returns the per-gene mutation settings.
func (c *Config) Mutation() genome.Mutation {
	return genome.Mutation{Sigma: c.GA.MutationSigma, ResetP: c.GA.ResetMutationP}
}

// Params returns the episode rules.
func (c *Config) Params() env.Params {
	return env.Params{
		Width:        c.Env.Width,
		Height:       c.Env.Height,
		StartLength:  c.Env.StartLength,
		TickCap:      c.Env.TickCap,
		StallWindow:  c.Env.StallWindow,
		FruitEnabled: c.Env.FruitEnabled,
	}
}

// Obs returns the observation type. Validate has already checked it.
func (c *Config) Obs() env.Obs {
	return env.Obs(c.Track.Obs)
}

// GenomeSize returns the number of weights of the configured network.
func (c *Config) GenomeSize() int {
	sizes := append([]int{c.Obs().Dim()}, c.NN.Hidden...)
	return nn.GenomeSize(append(sizes, env.NumActions)...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
