// Package history persists validation run summaries.
package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitelint/internal/report"
)

// Run is the stored summary of one validation run.
type Run struct {
	ID        string
	StartedAt time.Time
	Revision  string
	Duration  time.Duration
	Passed    bool
	Errors    int
	Warnings  int
	Documents int
	// A11yScore is nil when the accessibility audit did not run.
	A11yScore *int
	// Issues is the JSON-encoded report.Findings of the run.
	Issues []byte
}

// Store defines the interface for persisting and retrieving runs.
type Store interface {
	// Record stores a run.
	Record(ctx context.Context, run Run) error

	// Latest returns up to limit runs, newest first.
	Latest(ctx context.Context, limit int) ([]Run, error)

	// Get returns one run by id.
	Get(ctx context.Context, id string) (Run, error)

	// Close closes the store and releases resources.
	Close() error
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// FromReport summarizes r for storage. A report without a run id is
// assigned one.
func FromReport(r *report.Report) (Run, error) {
	issues, err := json.Marshal(r.Findings)
	if err != nil {
		return Run{}, err
	}
	id := r.RunID
	if id == "" {
		id = NewRunID()
	}
	return Run{
		ID:        id,
		StartedAt: r.StartedAt,
		Revision:  r.Revision,
		Duration:  r.Duration,
		Passed:    r.Passed(),
		Errors:    r.ErrorCount(),
		Warnings:  r.WarningCount(),
		Documents: r.Documents,
		A11yScore: r.A11yScore,
		Issues:    issues,
	}, nil
}

// Findings decodes the stored issues.
func (r Run) Findings() (report.Findings, error) {
	var f report.Findings
	if len(r.Issues) == 0 {
		return f, nil
	}
	err := json.Unmarshal(r.Issues, &f)
	return f, err
}
