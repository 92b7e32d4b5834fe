// Command gridsearch runs a grid search scenario from the command line and
// prints the explored grid together with a run report.
//
// Usage:
//
//	gridsearch [-scenario maze.yaml] [-algo UCS] [-delay 20ms] [-dynamic -p 0.01 -seed 7]
//	gridsearch -all            # run every algorithm on the same grid
//	gridsearch -save out.yaml  # write the effective scenario and exit
//	gridsearch -start 0,0 -target 19,24 -wall 5,8 -wall 6,8
//
// Without -scenario the built-in 20×25 sample maze is used. Flags that are
// set explicitly override the scenario file; -start, -target and -wall edit
// the loaded layout (-wall toggles). Ctrl-C cancels the run.
//
// Before the reports a diagnostics line gives the number of connected
// regions and the BFS step distance from Start to Target.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/gridsearch/engine"
	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/scenario"
	"github.com/katalvlaran/gridsearch/search"
)

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "YAML scenario file (default: built-in sample maze)")
		algo         = flag.String("algo", "", "algorithm: BFS, DFS, UCS, DLS, IDDFS or Bidirectional")
		delay        = flag.Duration("delay", 0, "pause after every step and path cell")
		dynamic      = flag.Bool("dynamic", false, "inject dynamic obstacles during the run")
		prob         = flag.Float64("p", grid.DefaultObstacleProbability, "obstacle probability per step")
		seed         = flag.Int64("seed", 0, "obstacle RNG seed (0 selects the fixed default)")
		depth        = flag.Int("depth", search.DefaultDepthLimit, "DLS depth limit")
		maxDepth     = flag.Int("maxdepth", search.DefaultMaxDepth, "IDDFS depth cap")
		all          = flag.Bool("all", false, "run every algorithm and print a comparison")
		save         = flag.String("save", "", "write the scenario (without -start/-target/-wall edits) to this file and exit")
		quiet        = flag.Bool("quiet", false, "suppress progress logging")
		edits        layout
	)
	flag.Var(cellFlag{&edits.start}, "start", "move Start to row,col")
	flag.Var(cellFlag{&edits.target}, "target", "move Target to row,col")
	flag.Var(cellsFlag{&edits.walls}, "wall", "toggle a wall at row,col (repeatable)")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if *quiet {
		logger.SetOutput(io.Discard)
	}

	sc := scenario.Sample()
	sc.StepDelay = 0
	if *scenarioPath != "" {
		var err error
		if sc, err = scenario.LoadFile(*scenarioPath); err != nil {
			log.Fatalf("[ERROR] %v", err)
		}
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["algo"] {
		sc.Algorithm = *algo
	}
	if set["delay"] {
		sc.StepDelay = *delay
	}
	if set["dynamic"] {
		sc.DynamicObstacles = dynamic
	}
	if set["p"] {
		sc.ObstacleProbability = prob
	}
	if set["seed"] {
		sc.Seed = *seed
	}
	if set["depth"] {
		sc.DepthLimit = depth
	}
	if set["maxdepth"] {
		sc.MaxDepth = maxDepth
	}
	if err := sc.Validate(); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	if *save != "" {
		if err := writeScenario(*save, sc); err != nil {
			log.Fatalf("[ERROR] %v", err)
		}
		logger.Printf("[INFO] Scenario written to %s", *save)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, sc, edits, logger, *all); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

// layout holds command-line edits applied on top of the scenario.
type layout struct {
	start, target *grid.Position
	walls         []grid.Position
}

// apply routes the edits through the controller.
func (l layout) apply(c *engine.Controller) error {
	if l.start != nil {
		if err := c.SetStart(*l.start); err != nil {
			return err
		}
	}
	if l.target != nil {
		if err := c.SetTarget(*l.target); err != nil {
			return err
		}
	}
	for _, p := range l.walls {
		if err := c.ToggleWall(p); err != nil {
			return err
		}
	}
	return nil
}

// run builds the controller for sc, applies edits, and executes one
// algorithm, or all of them when all is set, printing diagnostics, the grid
// and a report line per run.
func run(ctx context.Context, w io.Writer, sc *scenario.Scenario, edits layout, logger *log.Logger, all bool) error {
	g, err := sc.Build()
	if err != nil {
		return err
	}
	opts, err := sc.EngineOptions()
	if err != nil {
		return err
	}
	opts = append(opts,
		engine.WithStepDelay(sc.StepDelay),
		engine.WithPathDelay(sc.StepDelay),
		engine.WithLogger(logger),
	)
	if sc.StepDelay == 0 {
		opts = append(opts, engine.WithIterationDelay(0))
	}
	c, err := engine.New(g, opts...)
	if err != nil {
		return err
	}
	if err := edits.apply(c); err != nil {
		return err
	}
	diagnose(w, c.Grid())

	algos := []search.Algorithm{c.Algorithm()}
	if all {
		algos = search.Algorithms()
	}
	for _, a := range algos {
		if err := c.SelectAlgorithm(a); err != nil {
			return err
		}
		rep, err := c.Run(ctx)
		if err != nil {
			return err
		}
		if !all {
			render(w, c.Grid())
			fmt.Fprintln(w)
		}
		printReport(w, rep)
		if ctx.Err() != nil {
			break
		}
	}
	return nil
}

var glyphs = map[grid.CellState]byte{
	grid.Empty:           '.',
	grid.Wall:            '#',
	grid.Start:           'S',
	grid.Target:          'T',
	grid.Frontier:        '+',
	grid.Explored:        'o',
	grid.Path:            '*',
	grid.DynamicObstacle: 'X',
}

// render prints one character per cell, one line per row.
func render(w io.Writer, g *grid.Grid) {
	for _, row := range g.Snapshot() {
		line := make([]byte, len(row))
		for i, st := range row {
			line[i] = glyphs[st]
		}
		fmt.Fprintln(w, string(line))
	}
}

// diagnose prints the region count and the step distance from Start to
// Target, or "unreachable".
func diagnose(w io.Writer, g *grid.Grid) {
	dist := "unreachable"
	if d, ok := g.Distances(g.Start())[g.Target()]; ok {
		dist = strconv.Itoa(d)
	}
	fmt.Fprintf(w, "grid %dx%d regions=%d distance=%s\n",
		g.Rows(), g.Cols(), len(g.ConnectedComponents()), dist)
}

func printReport(w io.Writer, rep engine.Report) {
	out := rep.Outcome
	fmt.Fprintf(w, "%-13s %-9s steps=%-5d expanded=%-5d path=%-3d cost=%-6.1f obstacles=%-3d elapsed=%v run=%s\n",
		rep.Algorithm, out.Status, out.Steps, out.Expanded, len(out.Path), out.Cost,
		len(rep.Obstacles), rep.Elapsed.Round(time.Microsecond), rep.RunID)
}

func writeScenario(path string, sc *scenario.Scenario) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sc.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// parseCell reads "row,col".
func parseCell(v string) (grid.Position, error) {
	r, c, ok := strings.Cut(v, ",")
	if !ok {
		return grid.Position{}, fmt.Errorf("cell %q: want row,col", v)
	}
	row, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return grid.Position{}, fmt.Errorf("cell %q: %w", v, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return grid.Position{}, fmt.Errorf("cell %q: %w", v, err)
	}
	return grid.Pos(row, col), nil
}

// cellFlag is a flag.Value for one cell.
type cellFlag struct{ p **grid.Position }

func (f cellFlag) String() string {
	if f.p == nil || *f.p == nil {
		return ""
	}
	return (*f.p).String()
}

func (f cellFlag) Set(v string) error {
	pos, err := parseCell(v)
	if err != nil {
		return err
	}
	*f.p = &pos
	return nil
}

// cellsFlag is a repeatable flag.Value collecting cells.
type cellsFlag struct{ ps *[]grid.Position }

func (f cellsFlag) String() string {
	if f.ps == nil {
		return ""
	}
	parts := make([]string, len(*f.ps))
	for i, p := range *f.ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

func (f cellsFlag) Set(v string) error {
	pos, err := parseCell(v)
	if err != nil {
		return err
	}
	*f.ps = append(*f.ps, pos)
	return nil
}
