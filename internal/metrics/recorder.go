package metrics

import "time"

// ExcludeReason enumerates why a source file produced no stub.
type ExcludeReason string

const (
	ReasonPrivate      ExcludeReason = "private"
	ReasonExcludedFile ExcludeReason = "excluded_file"
	ReasonExcludedDir  ExcludeReason = "excluded_dir"
	ReasonEntryPoint   ExcludeReason = "entry_point"
)

// BuildOutcome enumerates the final status of a run.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// Recorder defines observability hooks for rendering. Implementations may
// forward to Prometheus; NoopRecorder is the default.
type Recorder interface {
	IncStubEmitted(module string)
	IncFileExcluded(module string, reason ExcludeReason)
	ObserveModuleDuration(module string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcome)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncStubEmitted(string)                       {}
func (NoopRecorder) IncFileExcluded(string, ExcludeReason)       {}
func (NoopRecorder) ObserveModuleDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)          {}
func (NoopRecorder) IncBuildOutcome(BuildOutcome)                {}
