package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol3d/model"
	"github.com/sheikhrachel/go-gol3d/rules"
	"github.com/sheikhrachel/go-gol3d/utils"
)

// game is the state the main loop carries between generations
type game struct {
	grid    *model.Grid
	rule    rules.Rule
	engine  model.Engine
	history *model.History
	stats   *utils.Stats
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config) (*game, error) {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	grid, rule, err := loadStartingGrid(config, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	engine := model.Engine{
		Parallel: config.UseParallel,
		Workers:  config.Workers,
		Bounded:  config.UseBoundedGrid,
	}
	if config.UseMemoryPool {
		engine.Pool = model.NewGridPool()
	}

	return &game{
		grid:    grid,
		rule:    rule,
		engine:  engine,
		history: model.NewHistory(config.HistorySize),
		stats:   utils.NewStats(),
	}, nil
}

// loadStartingGrid builds the first generation from a named pattern, a JSON
// grid file or a random fill, in that order of preference. A pattern brings
// its own rule unless a rule was configured.
func loadStartingGrid(config utils.Config, rng *rand.Rand) (*model.Grid, rules.Rule, error) {
	rule, err := config.ResolveRule()
	if err != nil {
		return nil, rules.Rule{}, errors.Wrap(err, "[loadStartingGrid] bad rule")
	}

	switch {
	case config.Pattern != "":
		p, ok := model.LookupPattern(config.Pattern)
		if !ok {
			return nil, rules.Rule{}, errors.Errorf("[loadStartingGrid] unknown pattern %q, have %v",
				config.Pattern, model.PatternNames())
		}
		if !config.RuleGiven() {
			rule = rules.Presets[p.Rule]
		}
		return p.Build(), rule, nil

	case config.GridFile != "":
		f, err := os.Open(config.GridFile)
		if err != nil {
			return nil, rules.Rule{}, errors.Wrapf(err, "[loadStartingGrid] failed to open grid file: %+v", config.GridFile)
		}
		defer f.Close()

		grid, err := model.ReadGridJSON(f)
		if err != nil {
			return nil, rules.Rule{}, errors.Wrapf(err, "[loadStartingGrid] failed to load grid file: %+v", config.GridFile)
		}
		return grid, rule, nil

	default:
		grid, err := model.NewGrid(config.XSize, config.YSize, config.ZSize)
		if err != nil {
			return nil, rules.Rule{}, errors.Wrap(err, "[loadStartingGrid] failed to create grid")
		}
		grid.Randomize(rng, config.RandomDensity)
		return grid, rule, nil
	}
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, config utils.Config, g *game) {
	fmt.Fprintf(out, "Features: Parallel: %v, Memory Pool: %v, Bounded: %v\n",
		config.UseParallel, config.UseMemoryPool, config.UseBoundedGrid)
	fmt.Fprintf(out, "Grid: %s | Rule: %s | Rate: %.1f gen/sec | Initial living cells: %d\n",
		g.grid.Dims(), g.rule, config.Rate, g.grid.CountLivingCells())
	fmt.Fprintln(out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(out)
}

// updateGameState records a finished generation and returns the status label
// and the cycle period detected, if any
func updateGameState(g *game, generation int, res model.StepResult, frameDuration time.Duration) (string, int) {
	g.stats.Update(generation, res.AliveCount, frameDuration)
	g.stats.BoundingBoxSize = res.Next.GetBoundingBoxSize()
	period := g.history.Record(res.Next)

	status := "Active"
	switch {
	case res.AliveCount == 0:
		status = "Extinct"
	case !res.Changed:
		status = "Still"
	case period > 1:
		status = fmt.Sprintf("Oscillating (period %d)", period)
	}
	return status, period
}

// displayGameStatus shows the current game status
func displayGameStatus(out io.Writer, generation, livingCells int, status string, g *game) {
	density := float64(livingCells) / float64(g.grid.Len()) * 100
	fmt.Fprintf(out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		generation, livingCells, density, status)
	fmt.Fprintf(out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Active Region: %d cells | Runtime: %.1fs\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation, g.stats.BoundingBoxSize, g.stats.Runtime().Seconds())
}

// checkStopConditions determines if the run should end after a generation
func checkStopConditions(res model.StepResult, period, generation int, config utils.Config) (bool, string) {
	if !res.Changed {
		return true, "no cells changed"
	}
	if config.StopOnCycle && period > 1 {
		return true, fmt.Sprintf("cycle of period %d detected", period)
	}
	if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
		return true, fmt.Sprintf("reached maximum generations limit (%d)", config.MaxGenerations)
	}
	return false, ""
}

// saveGrid writes the grid to path in the JSON exchange format
func saveGrid(path string, grid *model.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "[saveGrid] failed to create file: %+v", path)
	}
	if err = model.WriteGridJSON(f, grid); err != nil {
		f.Close()
		return errors.Wrapf(err, "[saveGrid] failed to write file: %+v", path)
	}
	return errors.Wrapf(f.Close(), "[saveGrid] failed to close file: %+v", path)
}
