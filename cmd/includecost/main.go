// # cmd/includecost/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"includecost/internal/app"
	"includecost/internal/config"
	"includecost/internal/observability"
	"includecost/internal/report"
)

var (
	configPath  = flag.String("config", "./includecost.toml", "Path to config file")
	sortKey     = flag.String("sort", "", "Sort key: name, size, includes, code-lines, text-lines, combined-lines, contrib-self, contrib-total")
	descending  = flag.Bool("desc", false, "Sort descending")
	tsvPath     = flag.String("tsv", "", "Write TSV report to this path")
	historyPath = flag.String("history", "", "Record runs into this sqlite file")
	trend       = flag.Bool("trend", false, "Print the delta against the previous recorded run")
	watch       = flag.Bool("watch", false, "Re-run analysis when the directory changes")
	ui          = flag.Bool("ui", false, "Enable terminal UI mode")
	metricsAddr = flag.String("metrics-addr", "", "Serve prometheus metrics on this address")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	version     = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("includecost v%s\n", VERSION)
		os.Exit(0)
	}

	setupLogging()

	cfg := loadConfig()
	if flag.NArg() > 0 {
		cfg.ScanPath = flag.Arg(0)
	}
	if *sortKey != "" {
		cfg.Report.Sort = *sortKey
	}
	if *descending {
		cfg.Report.Descending = true
	}
	if *tsvPath != "" {
		cfg.Report.TSV = *tsvPath
	}
	if *historyPath != "" {
		cfg.History.Path = *historyPath
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	key, err := report.ParseSortKey(cfg.Report.Sort)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if cfg.Metrics.Addr != "" {
		observability.Serve(cfg.Metrics.Addr)
	}

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	result, err := a.Run()
	if err != nil {
		slog.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	if *ui {
		if err := runUI(a, result, key, cfg.Report.Descending, *watch); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
		return
	}

	printResult(result, key, cfg.Report.Descending, cfg.Report.TSV)

	if *trend {
		printTrend(a)
	}

	if *watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err := a.Watch(ctx, func(r *app.Result) {
			printResult(r, key, cfg.Report.Descending, cfg.Report.TSV)
		})
		if err != nil && ctx.Err() == nil {
			slog.Error("watch failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if result.Cycle != nil {
		os.Exit(2)
	}
}

func setupLogging() {
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stderr
	if *ui {
		// In UI mode, keep logs out of the terminal the TUI owns.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err == nil {
			if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err == nil {
				output = f
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

func loadConfig() *config.Config {
	cfg, err := config.Load(*configPath)
	if err == nil {
		return cfg
	}
	if *configPath == "./includecost.toml" && os.IsNotExist(err) {
		// No config file is fine; flags and defaults cover everything.
		return config.Default()
	}
	slog.Error("failed to load config", "path", *configPath, "error", err)
	os.Exit(1)
	return nil
}

func printResult(result *app.Result, key report.SortKey, desc bool, tsvOut string) {
	gen := report.New(result.Set, key, desc)

	if result.Cycle != nil {
		fmt.Fprintln(os.Stderr, result.Cycle.Error())
	}
	fmt.Println(gen.Table())

	if tsvOut != "" {
		if err := os.WriteFile(tsvOut, []byte(gen.TSV()), 0o644); err != nil {
			slog.Error("failed to write TSV", "path", tsvOut, "error", err)
		} else {
			slog.Info("wrote TSV report", "path", tsvOut)
		}
	}
}

func printTrend(a *app.App) {
	delta, ok, err := a.Trend()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return
	}
	if !ok {
		fmt.Println("Trend: not enough recorded runs yet")
		return
	}
	fmt.Printf("Trend since %s: files %+d, code lines %+d, compiled lines %+d\n",
		delta.From.Format("2006-01-02 15:04:05"),
		delta.Files, delta.CodeLines, delta.CompiledLines)
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "includecost", "includecost.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "includecost", "includecost.log")
	}

	return "includecost.log"
}
