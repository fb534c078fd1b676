package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusOK      = "ok"
	StatusEmpty   = "empty"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

// ReportMetrics records statement builds on its own registry.
// A nil *ReportMetrics is valid and records nothing.
type ReportMetrics struct {
	registry *prometheus.Registry

	buildsTotal   *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
}

func NewReportMetrics() *ReportMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	return &ReportMetrics{
		registry: reg,
		buildsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salarycalc",
			Name:      "report_builds_total",
			Help:      "Total number of payroll statement builds.",
		}, []string{"kind", "status"}),
		buildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "salarycalc",
			Name:      "report_build_duration_seconds",
			Help:      "Latency distribution for payroll statement builds.",
			Buckets: []float64{
				0.005, 0.01, 0.02, 0.05,
				0.1, 0.2, 0.5,
				1, 2, 5, 10,
			},
		}, []string{"kind"}),
	}
}

// ObserveBuild counts one build and records its duration.
func (m *ReportMetrics) ObserveBuild(kind, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.buildsTotal.WithLabelValues(kind, status).Inc()
	m.buildDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *ReportMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *ReportMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
