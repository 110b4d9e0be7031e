// # internal/app/app.go
package app

import (
	"log/slog"
	"time"

	"includecost/internal/config"
	apperrors "includecost/internal/errors"
	"includecost/internal/graph"
	"includecost/internal/history"
	"includecost/internal/lexer"
	"includecost/internal/observability"
	"includecost/internal/scanner"
)

// Result is the outcome of one pipeline run. Cycle is non-nil when the
// include graph turned out not to be a DAG; in that case the Set's closure
// and cost fields are unset and Set.Resolved() reports false.
type Result struct {
	Set   *graph.Set
	Cycle *graph.CycleError
}

type App struct {
	Config  *config.Config
	Scanner *scanner.Scanner

	store *history.Store
}

func New(cfg *config.Config) (*App, error) {
	sc, err := scanner.New(cfg.SourceExtensions, cfg.HeaderExtensions, cfg.Exclude.Files)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Scanner: sc}
	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInternal, "open history store")
		}
		a.store = store
	}
	return a, nil
}

func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Run executes the whole batch pipeline: scan, parse, stub synthesis, link,
// cycle check, closure, cost aggregation, history. Phases are strictly
// sequential; each one's postcondition is the next one's precondition.
func (a *App) Run() (*Result, error) {
	start := time.Now()

	slog.Info("scanning directory", "path", a.Config.ScanPath)
	loaded, err := a.Scanner.Scan(a.Config.ScanPath)
	if err != nil {
		return nil, err
	}
	observability.ObservePhase("scan", start)

	slog.Info("parsing files", "count", len(loaded))
	parseStart := time.Now()
	set := graph.NewSet()
	for _, lf := range loaded {
		f := &graph.File{Name: lf.Name, Data: lf.Data, Source: lf.Source}
		f.TextLines = lexer.CountLines(lf.Data)
		f.ParsedIncludes, f.CodeLines = lexer.Scan(lf.Data)
		if _, err := set.Add(f); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInternal, "register file")
		}
	}
	observability.ObservePhase("parse", parseStart)

	slog.Info("generating stubs for missing includes")
	stubStart := time.Now()
	created := set.SynthesizeStubs()
	slog.Debug("stubs synthesized", "count", created)
	observability.ObservePhase("stubs", stubStart)

	slog.Info("resolving include relations")
	linkStart := time.Now()
	if err := set.LinkIncludes(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "link includes")
	}
	observability.ObservePhase("link", linkStart)

	observability.GraphFiles.Set(float64(set.Len()))
	observability.GraphEdges.Set(float64(set.EdgeCount()))
	observability.GraphStubs.Set(float64(set.StubCount()))

	slog.Info("checking circular dependencies")
	cycleStart := time.Now()
	cycle := set.CheckCycles()
	observability.ObservePhase("cycle_check", cycleStart)

	if cycle != nil {
		slog.Error("circular dependency detected", "a", cycle.A, "b", cycle.B)
		observability.CyclesDetected.Inc()
	} else {
		slog.Info("resolving indirect includes")
		closureStart := time.Now()
		set.ResolveIndirect()
		observability.ObservePhase("closure", closureStart)

		slog.Info("calculating include costs")
		costStart := time.Now()
		set.CalcCosts()
		observability.ObservePhase("cost", costStart)
	}

	observability.RunsTotal.Inc()

	result := &Result{Set: set, Cycle: cycle}
	if err := a.recordRun(result); err != nil {
		slog.Warn("failed to record run history", "error", err)
	}

	slog.Info("run complete", "files", set.Len(), "duration", time.Since(start))
	return result, nil
}

func (a *App) recordRun(result *Result) error {
	if a.store == nil {
		return nil
	}

	set := result.Set
	run := history.Run{
		ScanPath:      a.Config.ScanPath,
		Files:         set.Len(),
		Sources:       set.SourceCount(),
		Headers:       set.Len() - set.SourceCount() - set.StubCount(),
		Stubs:         set.StubCount(),
		Edges:         set.EdgeCount(),
		CodeLines:     set.TotalCodeLines(),
		CompiledLines: set.TotalCompiledLines(),
	}
	if result.Cycle != nil {
		run.CycleWitness = result.Cycle.Error()
	}
	_, err := a.store.SaveRun(run)
	return err
}

// Trend compares the two most recent recorded runs.
func (a *App) Trend() (history.Delta, bool, error) {
	if a.store == nil {
		return history.Delta{}, false, apperrors.New(apperrors.CodeNotSupported, "history store not configured")
	}
	runs, err := a.store.LatestRuns(2)
	if err != nil {
		return history.Delta{}, false, err
	}
	delta, ok := history.ComputeTrend(runs)
	return delta, ok, nil
}
