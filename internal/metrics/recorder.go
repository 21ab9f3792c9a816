// Package metrics provides observability hooks for build and resolution metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never requires nil checks and has zero
// overhead when disabled. Swap in PrometheusRecorder to activate collection.
package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for the build core. Implementations
// must be safe for concurrent use.
type Recorder interface {
	// IncArtifactRegistered counts artifacts accepted into the build registry.
	IncArtifactRegistered(kind string)

	// IncArtifactRejected counts artifacts refused because the resolved
	// backend does not support their kind. Registration stays silent for
	// compatibility; this counter is the observable trace of the drop.
	IncArtifactRejected(kind string)

	// IncResolveOutcome counts manifest resolution outcomes
	// (pep517, unsupported_backend, not_pep517, io_error).
	IncResolveOutcome(outcome string)

	// IncStageResult counts pipeline stage results by outcome.
	IncStageResult(stage string, result ResultLabel)

	// ObserveBuildDuration records the wall time of a backend build.
	ObserveBuildDuration(d time.Duration)

	// ObserveLintDuration records the wall time of a linter run.
	ObserveLintDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncArtifactRegistered(string)          {}
func (NoopRecorder) IncArtifactRejected(string)            {}
func (NoopRecorder) IncResolveOutcome(string)              {}
func (NoopRecorder) IncStageResult(string, ResultLabel)    {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)    {}
func (NoopRecorder) ObserveLintDuration(time.Duration)     {}
