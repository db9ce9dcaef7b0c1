package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"snakeevo/internal/config"
	"snakeevo/internal/env"
	"snakeevo/internal/logging"
	"snakeevo/internal/nn"
)

func main() {
	configPath := flag.String("config", "", "path to config file (empty = built-in defaults)")
	championPath := flag.String("champion", "", "path to champion JSON")
	replayPath := flag.String("replay", "", "path to a replay JSON (overrides -champion)")
	from := flag.Int("from", 0, "fast-forward a replay to this tick before displaying")
	seed := flag.Uint("seed", 12345, "random seed for the game")
	delay := flag.Int("delay", 100, "delay between frames in milliseconds")
	noDisplay := flag.Bool("no-display", false, "run without display (just print stats)")
	noTimeout := flag.Bool("no-timeout", false, "disable tick cap (play until death)")
	noStall := flag.Bool("no-stall", false, "disable stall detection")
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

	if *noTimeout {
		cfg.Env.TickCap = 999999
	}
	if *noStall {
		cfg.Env.StallWindow = 999999
	}

	var p player
	switch {
	case *replayPath != "":
		p, err = newReplayPlayer(*replayPath, *from)
	case *championPath != "":
		p, err = newChampionPlayer(cfg, *championPath, uint32(*seed), log)
	default:
		err = fmt.Errorf("one of -champion or -replay is required")
	}
	if err != nil {
		log.Error("cannot start playback", "error", err)
		os.Exit(1)
	}

	display := NewDisplay(p.game.Width, p.game.Height)
	frameDelay := time.Duration(*delay) * time.Millisecond

	for p.game.Alive {
		action, ok := p.next()
		if !ok {
			break
		}
		if !*noDisplay {
			display.Render(p.game, action)
			time.Sleep(frameDelay)
		}
		p.game.Step(action)
	}
	if !*noDisplay {
		display.Render(p.game, -1)
	}

	stats := p.game.Stats()
	fmt.Println()
	fmt.Println("═══════════════════════════════════")
	fmt.Printf("  Game Over! Death: %s\n", stats.Death)
	fmt.Printf("  Ticks: %d, Fruits: %d\n", stats.Ticks, stats.Fruits)
	fmt.Printf("  Progress Sum: %.2f\n", stats.ProgressSum)
	fmt.Println("═══════════════════════════════════")
}

// player yields the actions of one game, either from a network or a
// recorded trace.
type player struct {
	game *env.Game
	next func() (env.Action, bool)
}

func newChampionPlayer(cfg *config.Config, path string, seed uint32, log *slog.Logger) (player, error) {
	champion, err := logging.LoadChampion(path)
	if err != nil {
		return player{}, err
	}
	mlp := nn.NewMLP(cfg.Obs().Dim(), cfg.NN.Hidden, env.NumActions)
	if err := mlp.SetWeights(champion.Genome); err != nil {
		return player{}, fmt.Errorf("champion does not match the configured network: %w", err)
	}
	log.Info("loaded champion",
		"run_id", champion.RunID,
		"generation", champion.Generation,
		"fitness", champion.Fitness,
		"score", champion.Score,
		"seed", seed,
	)

	game := env.NewGame(cfg.Params(), seed)
	features := env.NewFeatureExtractor(cfg.Obs())
	return player{
		game: game,
		next: func() (env.Action, bool) {
			return env.Action(mlp.Forward(features.Extract(game))), true
		},
	}, nil
}

// newReplayPlayer plays a recorded trace, skipping its first from ticks.
func newReplayPlayer(path string, from int) (player, error) {
	rp, err := env.LoadReplay(path)
	if err != nil {
		return player{}, err
	}
	game := rp.Playback()
	rp.PlaybackStep(game, max(from, 0))
	i := game.Tick
	return player{
		game: game,
		next: func() (env.Action, bool) {
			if i >= len(rp.Actions) {
				return 0, false
			}
			i++
			return rp.Actions[i-1], true
		},
	}, nil
}
