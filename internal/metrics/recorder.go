package metrics

import "time"

// OutcomeLabel enumerates run outcomes.
type OutcomeLabel string

const (
	OutcomePassed  OutcomeLabel = "passed"
	OutcomeFailed  OutcomeLabel = "failed"
	OutcomeAborted OutcomeLabel = "aborted"
)

// Recorder defines observability hooks for runs and their stages.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome OutcomeLabel)
	AddIssues(rule, severity string, n int)
	SetA11yScore(score int)
	SetDocuments(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)                 {}
func (NoopRecorder) AddIssues(string, string, int)              {}
func (NoopRecorder) SetA11yScore(int)                           {}
func (NoopRecorder) SetDocuments(int)                           {}
