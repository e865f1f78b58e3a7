package report

import (
	"fmt"
	"time"
)

// Severity indicates whether an issue blocks publishing.
type Severity int

const (
	// SeverityWarning indicates issues that should be fixed but don't block publishing.
	SeverityWarning Severity = iota
	// SeverityError indicates issues that fail the run.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Rule identifiers shared across checkers.
const (
	RuleDeadLink         = "dead-link"
	RuleAltText          = "alt-text"
	RuleHeadingHierarchy = "heading-hierarchy"
	RuleLinkText         = "link-text"
	RuleSEO              = "seo"
	RuleDuplicateTitle   = "duplicate-title"
	RuleDuplicateDesc    = "duplicate-description"
	RuleUntranslated     = "untranslated-content"
	RuleOrphanContent    = "orphan-content"
	RuleContentMissing   = "content-missing"
	RuleFrontmatter      = "frontmatter"
	RuleComponent        = "component"
	RuleFieldFormat      = "field-format"
	RuleUnknownAuthor    = "unknown-author"
	RuleUnknownCategory  = "unknown-category"
	RuleAssetMissing     = "asset-missing"
	RuleWordCount        = "word-count"
	RuleHeadingStyle     = "heading-style"
	RuleManifest         = "manifest"
	RuleManifestLocale   = "manifest-locale"
)

// Issue is a single finding. Issues are values and are never modified after
// creation.
type Issue struct {
	Page    string `json:"page"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"` // 1-based; 0 for page-level findings
}

// String renders the issue as "page:line [rule] message".
func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s:%d [%s] %s", i.Page, i.Line, i.Rule, i.Message)
	}
	return fmt.Sprintf("%s [%s] %s", i.Page, i.Rule, i.Message)
}

// Findings are the ordered errors and warnings produced by one checker.
type Findings struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Error appends an error-level issue.
func (f *Findings) Error(page, rule, message string, line int) {
	f.Errors = append(f.Errors, Issue{Page: page, Rule: rule, Message: message, Line: line})
}

// Warn appends a warning-level issue.
func (f *Findings) Warn(page, rule, message string, line int) {
	f.Warnings = append(f.Warnings, Issue{Page: page, Rule: rule, Message: message, Line: line})
}

// Append copies other's issues after f's, preserving order.
func (f *Findings) Append(other Findings) {
	f.Errors = append(f.Errors, other.Errors...)
	f.Warnings = append(f.Warnings, other.Warnings...)
}

// Report is the aggregated outcome of a validation run.
type Report struct {
	Findings

	RunID     string        `json:"run_id,omitempty"`
	Revision  string        `json:"revision,omitempty"`
	StartedAt time.Time     `json:"started_at,omitzero"`
	Duration  time.Duration `json:"duration_ns,omitempty"`
	Documents int           `json:"documents"`
	// A11yScore is nil when the accessibility audit did not run.
	A11yScore *int `json:"a11y_score,omitempty"`
}

// New creates an empty report.
func New() *Report {
	return &Report{Findings: Findings{Errors: []Issue{}, Warnings: []Issue{}}}
}

// Add aggregates the findings of one checker.
func (r *Report) Add(f Findings) {
	r.Append(f)
}

// AddErrors aggregates error-level issues.
func (r *Report) AddErrors(issues ...Issue) {
	r.Errors = append(r.Errors, issues...)
}

// AddWarnings aggregates warning-level issues.
func (r *Report) AddWarnings(issues ...Issue) {
	r.Warnings = append(r.Warnings, issues...)
}

// SetA11yScore records the accessibility score.
func (r *Report) SetA11yScore(score int) {
	r.A11yScore = &score
}

// Passed reports the verdict: a run fails iff it produced at least one error.
// Warnings never affect the verdict.
func (r *Report) Passed() bool {
	return len(r.Errors) == 0
}

// ErrorCount returns the number of error-level issues.
func (r *Report) ErrorCount() int {
	return len(r.Errors)
}

// WarningCount returns the number of warning-level issues.
func (r *Report) WarningCount() int {
	return len(r.Warnings)
}

// CountByRule tallies issues of the given severity by rule.
func (r *Report) CountByRule(sev Severity) map[string]int {
	issues := r.Warnings
	if sev == SeverityError {
		issues = r.Errors
	}
	counts := make(map[string]int)
	for _, issue := range issues {
		counts[issue.Rule]++
	}
	return counts
}

// Summary returns the one-line summary printed at the end of a run.
func (r *Report) Summary() string {
	verdict := "PASS"
	if !r.Passed() {
		verdict = "FAIL"
	}
	s := fmt.Sprintf("%s: %d error%s, %d warning%s", verdict,
		r.ErrorCount(), pluralize(r.ErrorCount()),
		r.WarningCount(), pluralize(r.WarningCount()))
	if r.A11yScore != nil {
		s += fmt.Sprintf(", accessibility score %d/100", *r.A11yScore)
	}
	return s
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
