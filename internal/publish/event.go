// Package publish announces validation results on NATS JetStream.
package publish

import (
	"time"

	"git.home.luguber.info/inful/sitelint/internal/report"
)

// ReportEvent is the message published after every run.
type ReportEvent struct {
	RunID     string    `json:"run_id"`
	Revision  string    `json:"revision,omitempty"`
	StartedAt time.Time `json:"started_at"`
	Timestamp time.Time `json:"timestamp"`
	Passed    bool      `json:"passed"`
	Errors    int       `json:"errors"`
	Warnings  int       `json:"warnings"`
	Documents int       `json:"documents"`
	A11yScore *int      `json:"a11y_score,omitempty"`
	// ErrorsByRule and WarningsByRule tally issues per rule.
	ErrorsByRule   map[string]int `json:"errors_by_rule,omitempty"`
	WarningsByRule map[string]int `json:"warnings_by_rule,omitempty"`
	Summary        string         `json:"summary"`
}

// NewReportEvent summarizes r.
func NewReportEvent(r *report.Report) *ReportEvent {
	return &ReportEvent{
		RunID:          r.RunID,
		Revision:       r.Revision,
		StartedAt:      r.StartedAt,
		Passed:         r.Passed(),
		Errors:         r.ErrorCount(),
		Warnings:       r.WarningCount(),
		Documents:      r.Documents,
		A11yScore:      r.A11yScore,
		ErrorsByRule:   r.CountByRule(report.SeverityError),
		WarningsByRule: r.CountByRule(report.SeverityWarning),
		Summary:        r.Summary(),
	}
}
