package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "pyrefgen"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stubs          *prom.CounterVec
	excluded       *prom.CounterVec
	moduleDuration *prom.HistogramVec
	buildDuration  prom.Histogram
	buildOutcome   *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stubs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stubs_emitted_total",
			Help:      "Reference stubs written per module",
		}, []string{"module"}),
		excluded: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_excluded_total",
			Help:      "Source files skipped per module and reason",
		}, []string{"module", "reason"}),
		moduleDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "module_render_duration_seconds",
			Help:      "Time spent rendering one module",
			Buckets:   prom.DefBuckets,
		}, []string{"module"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total run duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Runs by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.stubs, pr.excluded, pr.moduleDuration, pr.buildDuration, pr.buildOutcome)
	return pr
}

func (p *PrometheusRecorder) IncStubEmitted(module string) {
	p.stubs.WithLabelValues(module).Inc()
}

func (p *PrometheusRecorder) IncFileExcluded(module string, reason ExcludeReason) {
	p.excluded.WithLabelValues(module, string(reason)).Inc()
}

func (p *PrometheusRecorder) ObserveModuleDuration(module string, d time.Duration) {
	p.moduleDuration.WithLabelValues(module).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcome) {
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile writes everything gathered from g to path in the text
// exposition format read by node_exporter's textfile collector.
func WriteTextfile(path string, g prom.Gatherer) error {
	if err := prom.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
