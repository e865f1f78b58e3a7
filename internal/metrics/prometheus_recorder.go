package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitelint"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration *prom.HistogramVec
	runDuration   prom.Histogram
	runOutcome    *prom.CounterVec
	issues        *prom.CounterVec
	a11yScore     prom.Gauge
	documents     prom.Gauge
	lastPassed    prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual validation stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total validation run duration",
			Buckets:   prom.DefBuckets,
		}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Validation runs by outcome",
		}, []string{"outcome"}),
		issues: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "issues_total",
			Help:      "Issues found by rule and severity",
		}, []string{"rule", "severity"}),
		a11yScore: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "a11y_score",
			Help:      "Accessibility score of the last run",
		}),
		documents: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "documents",
			Help:      "Documents scanned by the last run",
		}),
		lastPassed: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_passed",
			Help:      "1 if the last completed run passed, 0 otherwise",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.runDuration, pr.runOutcome, pr.issues,
		pr.a11yScore, pr.documents, pr.lastPassed)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
	switch outcome {
	case OutcomePassed:
		p.lastPassed.Set(1)
	case OutcomeFailed:
		p.lastPassed.Set(0)
	}
}

func (p *PrometheusRecorder) AddIssues(rule, severity string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.issues.WithLabelValues(rule, severity).Add(float64(n))
}

func (p *PrometheusRecorder) SetA11yScore(score int) {
	if p == nil {
		return
	}
	p.a11yScore.Set(float64(score))
}

func (p *PrometheusRecorder) SetDocuments(n int) {
	if p == nil {
		return
	}
	p.documents.Set(float64(n))
}
