package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/prometheus/client_golang/prometheus"

	"rosync/internal/ports"
	"rosync/internal/types"
)

// MetricsTextfileAdapter collects run metrics in a private registry and
// writes them in the node_exporter textfile format on Flush.
type MetricsTextfileAdapter struct {
	Path     string
	registry *prometheus.Registry

	runs       *prometheus.CounterVec
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	lastRun    *prometheus.GaugeVec
	lastChange *prometheus.GaugeVec
}

func NewMetricsTextfileAdapter(path string) *MetricsTextfileAdapter {
	registry := prometheus.NewRegistry()
	a := &MetricsTextfileAdapter{
		Path:     path,
		registry: registry,
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rosync",
				Name:      "runs_total",
				Help:      "Reconciliation runs by path and result",
			},
			[]string{"path", "result"},
		),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rosync",
				Name:      "operations_total",
				Help:      "Planned device operations by path and kind",
			},
			[]string{"path", "operation"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "rosync",
				Name:      "run_duration_seconds",
				Help:      "Reconciliation run duration in seconds",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"path"},
		),
		lastRun: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "rosync",
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the last run of a path finished",
			},
			[]string{"path"},
		),
		lastChange: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "rosync",
				Name:      "last_run_changed",
				Help:      "1 if the last run of a path changed the device",
			},
			[]string{"path"},
		),
	}
	registry.MustRegister(a.runs, a.operations, a.duration, a.lastRun, a.lastChange)
	return a
}

func (a *MetricsTextfileAdapter) ObserveRun(record types.RunRecord) {
	result := "unchanged"
	switch {
	case record.Error != "":
		result = "error"
	case record.Changed && record.DryRun:
		result = "would_change"
	case record.Changed:
		result = "changed"
	}
	a.runs.WithLabelValues(record.Path, result).Inc()
	for _, kind := range []types.OperationKind{types.OperationRemove, types.OperationUpdate, types.OperationCreate, types.OperationMove} {
		if count := record.Summary.Count(kind); count > 0 {
			a.operations.WithLabelValues(record.Path, string(kind)).Add(float64(count))
		}
	}
	a.duration.WithLabelValues(record.Path).Observe(record.Duration().Seconds())
	a.lastRun.WithLabelValues(record.Path).Set(float64(record.FinishedAt.Unix()))
	changed := 0.0
	if record.Changed {
		changed = 1
	}
	a.lastChange.WithLabelValues(record.Path).Set(changed)
}

// Gatherer exposes the registry, e.g. for tests.
func (a *MetricsTextfileAdapter) Gatherer() prometheus.Gatherer {
	return a.registry
}

func (a *MetricsTextfileAdapter) Flush() error {
	if a.Path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create metrics directory").
			WithCause(err)
	}
	if err := prometheus.WriteToTextfile(a.Path, a.registry); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write metrics textfile").
			WithCause(err)
	}
	return nil
}

var _ ports.MetricsPort = (*MetricsTextfileAdapter)(nil)
