package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	artifactsAccepted *prom.CounterVec
	artifactsRejected *prom.CounterVec
	resolveOutcomes   *prom.CounterVec
	stageResults      *prom.CounterVec
	buildDuration     prom.Histogram
	lintDuration      prom.Histogram
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.artifactsAccepted = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pybuilder",
			Name:      "artifacts_registered_total",
			Help:      "Artifacts accepted into the build registry, by kind",
		}, []string{"kind"})
		pr.artifactsRejected = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pybuilder",
			Name:      "artifacts_rejected_total",
			Help:      "Artifacts silently dropped because the backend does not support their kind",
		}, []string{"kind"})
		pr.resolveOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pybuilder",
			Name:      "manifest_resolutions_total",
			Help:      "Manifest resolution outcomes",
		}, []string{"outcome"})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pybuilder",
			Name:      "stage_results_total",
			Help:      "Pipeline stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "pybuilder",
			Name:      "build_duration_seconds",
			Help:      "Backend build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.lintDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "pybuilder",
			Name:      "lint_duration_seconds",
			Help:      "Linter subprocess duration",
			Buckets:   prom.DefBuckets,
		})
		reg.MustRegister(pr.artifactsAccepted, pr.artifactsRejected, pr.resolveOutcomes,
			pr.stageResults, pr.buildDuration, pr.lintDuration)
	})
	return pr
}

func (p *PrometheusRecorder) IncArtifactRegistered(kind string) {
	if p == nil || p.artifactsAccepted == nil {
		return
	}
	p.artifactsAccepted.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncArtifactRejected(kind string) {
	if p == nil || p.artifactsRejected == nil {
		return
	}
	p.artifactsRejected.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncResolveOutcome(outcome string) {
	if p == nil || p.resolveOutcomes == nil {
		return
	}
	p.resolveOutcomes.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveLintDuration(d time.Duration) {
	if p == nil || p.lintDuration == nil {
		return
	}
	p.lintDuration.Observe(d.Seconds())
}
