package plugin

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/celer-dev/celerc/comp"
	"github.com/celer-dev/celerc/exec"
)

// MetricsPlugin measures wall-clock time spent in each phase (spec §4.13
// "metrics", grounded on `plugin/builtin/metrics.rs`'s MetricsPlugin).
// When Registry is non-nil, phase durations are additionally recorded as
// a Prometheus histogram; the default (nil) path never touches
// Prometheus at all.
type MetricsPlugin struct {
	NopRuntime
	detailed  bool
	start     time.Time
	lastStart time.Time

	beforeCompMs uint64
	compMs       uint64

	histogram *prometheus.HistogramVec
}

// NewMetricsPlugin returns the `metrics` built-in. startTime is the
// compilation's Prep-phase start (so "before comp" time includes
// prep+pack); registry is optional.
func NewMetricsPlugin(detailed bool, startTime time.Time, registry *prometheus.Registry) *MetricsPlugin {
	p := &MetricsPlugin{
		NopRuntime: NopRuntime{id: "metrics"},
		detailed:   detailed,
		start:      startTime,
	}
	if detailed {
		p.beforeCompMs = uint64(time.Since(startTime).Milliseconds())
		p.lastStart = time.Now()
	} else {
		p.lastStart = startTime
	}
	if registry != nil {
		p.histogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "celerc",
			Name:      "phase_duration_ms",
			Help:      "Wall-clock duration of each compilation phase, in milliseconds.",
		}, []string{"phase"})
		registry.MustRegister(p.histogram)
	}
	return p
}

func (p *MetricsPlugin) OnAfterCompile(*comp.CompDoc) error {
	if p.detailed {
		p.compMs = uint64(time.Since(p.lastStart).Milliseconds())
		if p.histogram != nil {
			p.histogram.WithLabelValues("comp").Observe(float64(p.compMs))
		}
		p.lastStart = time.Now()
	}
	return nil
}

func (p *MetricsPlugin) OnAfterExecute(doc *exec.ExecDoc) error {
	execMs := uint64(time.Since(p.lastStart).Milliseconds())

	if p.detailed {
		if p.histogram != nil {
			p.histogram.WithLabelValues("prep+pack").Observe(float64(p.beforeCompMs))
			p.histogram.WithLabelValues("comp").Observe(float64(p.compMs))
			p.histogram.WithLabelValues("exec").Observe(float64(execMs))
		}
		slog.Info("compiled",
			"prep_pack_ms", p.beforeCompMs,
			"comp_ms", p.compMs,
			"exec_ms", execMs,
			"total_ms", p.beforeCompMs+p.compMs+execMs,
		)
		return nil
	}

	if p.histogram != nil {
		p.histogram.WithLabelValues("total").Observe(float64(execMs))
	}
	slog.Info("compiled", "total_ms", execMs)
	return nil
}
