package observability

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics definitions
var (
	PhaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "includecost_phase_seconds",
		Help:    "Time spent in each pipeline phase.",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})

	GraphFiles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "includecost_graph_files_total",
		Help: "Total number of file records in the include graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "includecost_graph_edges_total",
		Help: "Total number of direct include edges.",
	})

	GraphStubs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "includecost_graph_stubs_total",
		Help: "Number of stub records synthesized for missing include targets.",
	})

	CyclesDetected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "includecost_cycles_detected_total",
		Help: "Number of runs that halted on a circular include.",
	})

	RunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "includecost_runs_total",
		Help: "Number of completed pipeline runs.",
	})
)

// ObservePhase records the duration of one pipeline phase.
func ObservePhase(phase string, start time.Time) {
	PhaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}

// Serve exposes /metrics on addr. Intended for watch mode; a plain batch run
// exits before anything could scrape it.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		slog.Info("serving metrics", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("metrics server stopped", "error", err)
		}
	}()
}
