package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sheikhrachel/go-gol3d/model"
	"github.com/sheikhrachel/go-gol3d/rules"
	"github.com/sheikhrachel/go-gol3d/utils"
)

func testConfig() utils.Config {
	c := utils.DefaultConfig()
	c.Rate = 1000
	c.Quiet = true
	c.Seed = 1
	return c
}

func TestLoadStartingGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("random", func(t *testing.T) {
		c := testConfig()
		c.XSize, c.YSize, c.ZSize = 4, 5, 6
		g, r, err := loadStartingGrid(c, rng)
		if err != nil {
			t.Fatal(err)
		}
		if g.Dims() != (model.Dims{X: 4, Y: 5, Z: 6}) || !r.Equal(rules.Conway) {
			t.Errorf("got %s %s", g.Dims(), r)
		}
	})

	t.Run("pattern brings its rule", func(t *testing.T) {
		c := testConfig()
		c.Pattern = "Accordion Replicator B45/S5"
		g, r, err := loadStartingGrid(c, rng)
		if err != nil {
			t.Fatal(err)
		}
		if g.CountLivingCells() != 5 || r.String() != "B45/S5" {
			t.Errorf("got %d living, rule %s", g.CountLivingCells(), r)
		}
	})

	t.Run("custom rule overrides pattern rule", func(t *testing.T) {
		c := testConfig()
		c.Pattern = "Blinker B45/S5"
		c.Birth, c.Survive = "3", "2,3"
		_, r, err := loadStartingGrid(c, rng)
		if err != nil {
			t.Fatal(err)
		}
		if !r.Equal(rules.Conway) {
			t.Errorf("rule = %s, want B3/S23", r)
		}
	})

	t.Run("configured rule overrides pattern rule", func(t *testing.T) {
		c := testConfig()
		c.Pattern = "Blinker B3/S23"
		c.Rule = rules.HighLife
		_, r, err := loadStartingGrid(c, rng)
		if err != nil {
			t.Fatal(err)
		}
		if !r.Equal(rules.Presets[rules.HighLife]) {
			t.Errorf("rule = %s, want B36/S23", r)
		}
	})

	t.Run("rule flag overrides pattern rule", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(`{"rate": 2}`), 0o600); err != nil {
			t.Fatal(err)
		}
		opts, err := parseFlags([]string{"-config", path, "-pattern", "Blinker B45/S5", "-rule", "B36/S23"})
		if err != nil {
			t.Fatal(err)
		}
		c, err := loadConfig(opts, slog.New(slog.NewTextHandler(io.Discard, nil)))
		if err != nil {
			t.Fatal(err)
		}
		_, r, err := loadStartingGrid(c, rng)
		if err != nil {
			t.Fatal(err)
		}
		if r.String() != "B36/S23" {
			t.Errorf("rule = %s, want B36/S23", r)
		}
	})

	t.Run("grid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "grid.json")
		if err := os.WriteFile(path, []byte(`[[[1,0]],[[0,1]]]`), 0o600); err != nil {
			t.Fatal(err)
		}
		c := testConfig()
		c.GridFile = path
		c.Rule = "B6/S567"
		g, r, err := loadStartingGrid(c, rng)
		if err != nil {
			t.Fatal(err)
		}
		if g.Dims() != (model.Dims{X: 2, Y: 1, Z: 2}) || g.CountLivingCells() != 2 || r.String() != "B6/S567" {
			t.Errorf("got %s with %d living, rule %s", g.Dims(), g.CountLivingCells(), r)
		}
	})

	t.Run("errors", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(bad, []byte(`[[[1],[0,1]]]`), 0o600); err != nil {
			t.Fatal(err)
		}
		for name, modify := range map[string]func(*utils.Config){
			"unknown pattern":  func(c *utils.Config) { c.Pattern = "Nope" },
			"missing file":     func(c *utils.Config) { c.GridFile = filepath.Join(t.TempDir(), "none.json") },
			"ragged grid file": func(c *utils.Config) { c.GridFile = bad },
			"bad rule":         func(c *utils.Config) { c.Rule = "B/S" },
			"zero size":        func(c *utils.Config) { c.XSize = 0 },
		} {
			c := testConfig()
			modify(&c)
			if _, _, err := loadStartingGrid(c, rng); err == nil {
				t.Errorf("%s: expected error", name)
			}
		}
	})
}

func TestCheckStopConditions(t *testing.T) {
	c := testConfig()
	c.MaxGenerations = 10

	tests := []struct {
		name       string
		changed    bool
		period     int
		generation int
		stopOnCyc  bool
		wantStop   bool
		wantReason string
	}{
		{"running", true, 0, 3, true, false, ""},
		{"fixed point", false, 1, 3, true, true, "no cells changed"},
		{"cycle", true, 2, 3, true, true, "cycle of period 2 detected"},
		{"cycle ignored", true, 2, 3, false, false, ""},
		{"limit", true, 0, 10, true, true, "reached maximum generations limit (10)"},
	}
	for _, tt := range tests {
		c.StopOnCycle = tt.stopOnCyc
		stop, reason := checkStopConditions(model.StepResult{Changed: tt.changed}, tt.period, tt.generation, c)
		if stop != tt.wantStop || reason != tt.wantReason {
			t.Errorf("%s: got (%v, %q), want (%v, %q)", tt.name, stop, reason, tt.wantStop, tt.wantReason)
		}
	}
}

func TestUpdateGameState(t *testing.T) {
	c := testConfig()
	c.Pattern = "Blinker B3/S23"
	g, err := initializeGame(c)
	if err != nil {
		t.Fatal(err)
	}
	g.history.Record(g.grid)

	var statuses []string
	for gen := 1; gen <= 3; gen++ {
		res := model.Step(g.grid, g.rule)
		status, _ := updateGameState(g, gen, res, 0)
		statuses = append(statuses, status)
		g.grid = res.Next
		// the blinker's box is a 3-cell line in either phase
		if g.stats.BoundingBoxSize != 3 {
			t.Errorf("generation %d BoundingBoxSize = %d, want 3", gen, g.stats.BoundingBoxSize)
		}
	}
	want := []string{"Active", "Oscillating (period 2)", "Oscillating (period 2)"}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("generation %d status = %q, want %q", i+1, statuses[i], want[i])
		}
	}

	empty, _ := model.NewGrid(2, 2, 2)
	if status, _ := updateGameState(g, 4, model.StepResult{Next: empty}, 0); status != "Extinct" {
		t.Errorf("status = %q, want Extinct", status)
	}
	if g.stats.BoundingBoxSize != 0 {
		t.Errorf("BoundingBoxSize = %d after extinction, want 0", g.stats.BoundingBoxSize)
	}

	var buf bytes.Buffer
	displayGameStatus(&buf, 4, 0, "Extinct", g)
	if !strings.Contains(buf.String(), "Gen: 4 | Living: 0 | Density: 0.0% | Status: Extinct") {
		t.Errorf("displayGameStatus() = %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Active Region: 0 cells") {
		t.Errorf("displayGameStatus() = %q", buf.String())
	}
}

func TestRunStopsOnCycle(t *testing.T) {
	c := testConfig()
	c.Pattern = "Blinker B3/S23"
	c.OutputFile = filepath.Join(t.TempDir(), "out.json")

	var out bytes.Buffer
	if err := run(context.Background(), &out, c); err != nil {
		t.Fatalf("run() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Simulation has ended: cycle of period 2 detected") {
		t.Errorf("run() output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Final stats: 2 generations") {
		t.Errorf("run() output:\n%s", out.String())
	}

	f, err := os.Open(c.OutputFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	saved, err := model.ReadGridJSON(f)
	if err != nil {
		t.Fatal(err)
	}
	if !saved.Equal(model.Patterns["Blinker B3/S23"].Build()) {
		t.Errorf("saved grid = %v", saved.ToNested())
	}
}

func TestRunStopsOnFixedPoint(t *testing.T) {
	c := testConfig()
	c.XSize, c.YSize, c.ZSize = 3, 3, 3
	c.RandomDensity = 0
	c.Quiet = false

	var out bytes.Buffer
	if err := run(context.Background(), &out, c); err != nil {
		t.Fatalf("run() unexpected error: %v", err)
	}
	for _, want := range []string{"Gen: 1 | Living: 0", "Simulation has ended: no cells changed"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("run() output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if err := run(ctx, &out, testConfig()); err != nil {
		t.Fatalf("run() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Simulation has ended: interrupted") {
		t.Errorf("run() output:\n%s", out.String())
	}
}

func TestLoadConfigFlags(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"rule": "B6/S567", "birth": "1", "survive": "1"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	opts, err := parseFlags([]string{"-config", path, "-rule", "B45/S5", "-step", "-out", "final.json"})
	if err != nil {
		t.Fatal(err)
	}
	c, err := loadConfig(opts, logger)
	if err != nil {
		t.Fatalf("loadConfig() unexpected error: %v", err)
	}
	r, _ := c.ResolveRule()
	if r.String() != "B45/S5" || c.MaxGenerations != 1 || c.OutputFile != "final.json" {
		t.Errorf("loadConfig() = rule %s, max %d, out %q", r, c.MaxGenerations, c.OutputFile)
	}

	opts, _ = parseFlags([]string{"-config", filepath.Join(t.TempDir(), "missing.json")})
	if _, err = loadConfig(opts, logger); err == nil {
		t.Error("loadConfig() with a missing explicit file expected error")
	}

	if _, err = parseFlags([]string{"-bogus"}); err == nil {
		t.Error("parseFlags() expected error for unknown flag")
	}
}

func TestListPresets(t *testing.T) {
	var buf bytes.Buffer
	listPresets(&buf)
	for _, want := range []string{"Standard", "B3/S23", "Carter Bays Glider B6/S567", "30x30x2"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("listPresets() missing %q", want)
		}
	}
}
