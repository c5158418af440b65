package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol3d/model"
	"github.com/sheikhrachel/go-gol3d/rules"
	"github.com/sheikhrachel/go-gol3d/utils"
	"github.com/sheikhrachel/go-gol3d/worker"
)

const defaultConfigFile = "config.json"

type options struct {
	configFile string
	rule       string
	pattern    string
	gridFile   string
	outputFile string
	stepOnce   bool
	verbose    bool
	list       bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("gol3d", flag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", defaultConfigFile, "JSON configuration file")
	fs.StringVar(&opts.rule, "rule", "", "rule preset name or B/S notation, e.g. B45/S5")
	fs.StringVar(&opts.pattern, "pattern", "", "start from a named pattern instead of a random grid")
	fs.StringVar(&opts.gridFile, "grid", "", "start from a JSON grid file")
	fs.StringVar(&opts.outputFile, "out", "", "write the final grid as JSON to this file")
	fs.BoolVar(&opts.stepOnce, "step", false, "run a single generation and exit")
	fs.BoolVar(&opts.verbose, "v", false, "enable debug logging")
	fs.BoolVar(&opts.list, "list", false, "list rule presets and patterns and exit")
	return opts, fs.Parse(args)
}

// loadConfig reads the config file and applies flag overrides. A missing
// default config file falls back to the defaults.
func loadConfig(opts options, logger *slog.Logger) (utils.Config, error) {
	config, err := utils.LoadConfig(opts.configFile)
	if err != nil {
		if opts.configFile != defaultConfigFile || !errors.Is(err, os.ErrNotExist) {
			return config, err
		}
		logger.Info("using default configuration", "reason", "config.json not found")
		config = utils.DefaultConfig()
	}

	if opts.rule != "" {
		config.Rule, config.Birth, config.Survive = opts.rule, "", ""
	}
	if opts.pattern != "" {
		config.Pattern = opts.pattern
	}
	if opts.gridFile != "" {
		config.GridFile = opts.gridFile
	}
	if opts.outputFile != "" {
		config.OutputFile = opts.outputFile
	}
	if opts.stepOnce {
		config.MaxGenerations = 1
	}

	if err = config.Validate(); err != nil {
		return config, err
	}
	if config.RateWarning() {
		logger.Warn("rates higher than 10 can cause issues", "rate", config.Rate)
	}
	return config, nil
}

func listPresets(out io.Writer) {
	fmt.Fprintln(out, "Rules:")
	for _, name := range rules.Names() {
		fmt.Fprintf(out, "  %-10s %s\n", name, rules.Presets[name])
	}
	fmt.Fprintln(out, "Patterns:")
	for _, name := range model.PatternNames() {
		p := model.Patterns[name]
		fmt.Fprintf(out, "  %-28s %s %s\n", name, p.Build().Dims(), p.Rule)
	}
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	model.SetLogger(logger)

	if opts.list {
		listPresets(os.Stdout)
		return
	}

	config, err := loadConfig(opts, logger)
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, os.Stdout, config); err != nil {
		logger.Error("simulation failed", "err", err)
		os.Exit(1)
	}
}

// run drives the simulation until it settles, hits a limit or ctx ends.
func run(ctx context.Context, out io.Writer, config utils.Config) error {
	g, err := initializeGame(config)
	if err != nil {
		return err
	}
	displayGameInfo(out, config, g)

	w := worker.New(g.engine)
	defer w.Close()

	ticker := time.NewTicker(config.Interval())
	defer ticker.Stop()

	g.history.Record(g.grid)

	var (
		generation    = 0
		lastFrameTime = time.Now()
		reason        string
	)

	// Main game loop
	for {
		res, err := w.Submit(ctx, worker.Request{Grid: g.grid, Rule: g.rule, Dims: g.grid.Dims()})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				reason = "interrupted"
				break
			}
			return errors.Wrapf(err, "[run] generation %d", generation+1)
		}

		frameStart := time.Now()
		generation++
		status, period := updateGameState(g, generation, model.StepResult(res), frameStart.Sub(lastFrameTime))
		lastFrameTime = frameStart

		if !config.Quiet {
			displayGameStatus(out, generation, res.AliveCount, status, g)
		}

		model.GridToPool(g.grid, g.engine.Pool)
		g.grid = res.Next

		var done bool
		if done, reason = checkStopConditions(model.StepResult(res), period, generation, config); done {
			break
		}

		// Wait before next frame
		select {
		case <-ctx.Done():
			reason = "interrupted"
		case <-ticker.C:
			continue
		}
		break
	}

	fmt.Fprintf(out, "\nSimulation has ended: %s\n", reason)
	fmt.Fprintf(out, "Final stats: %d generations in %.1f seconds, %d living cells\n",
		generation, g.stats.Runtime().Seconds(), g.grid.CountLivingCells())
	fmt.Fprintf(out, "Average: %.1f gen/sec, %.1f avg population, %d peak population\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation, g.stats.PeakPopulation)
	(&model.LayerRenderer{Out: out}).Display(g.grid)

	if config.OutputFile != "" {
		if err = saveGrid(config.OutputFile, g.grid); err != nil {
			return err
		}
		fmt.Fprintf(out, "Final grid written to %s\n", config.OutputFile)
	}
	return nil
}
