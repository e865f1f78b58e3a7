package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Formatter renders a report for output.
type Formatter interface {
	Format(w io.Writer, r *Report) error
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string, quiet bool) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	case "html":
		return NewHTMLFormatter()
	default:
		return NewTextFormatter(quiet)
	}
}

// TextFormatter formats reports as human-readable text: warnings first,
// then errors, then the summary line.
type TextFormatter struct {
	quiet bool
}

// NewTextFormatter creates a text formatter. In quiet mode warnings are omitted.
func NewTextFormatter(quiet bool) *TextFormatter {
	return &TextFormatter{quiet: quiet}
}

// Format outputs the report in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, r *Report) error {
	ew := &errWriter{w: w}

	if !f.quiet && len(r.Warnings) > 0 {
		ew.println(fmt.Sprintf("Warnings (%d):", len(r.Warnings)))
		f.writeIssues(ew, "⚠", r.Warnings)
		ew.println("")
	}
	if len(r.Errors) > 0 {
		ew.println(fmt.Sprintf("Errors (%d):", len(r.Errors)))
		f.writeIssues(ew, "✗", r.Errors)
		ew.println("")
	}

	ew.println(strings.Repeat("━", 60))
	if r.Documents > 0 {
		ew.println(fmt.Sprintf("  %d document%s scanned", r.Documents, pluralize(r.Documents)))
	}
	if r.Passed() {
		ew.println("✨ " + r.Summary())
	} else {
		ew.println("❌ " + r.Summary())
	}
	return ew.err
}

// writeIssues prints issues with the location and rule columns aligned.
func (f *TextFormatter) writeIssues(ew *errWriter, icon string, issues []Issue) {
	locWidth, ruleWidth := 0, 0
	for _, issue := range issues {
		locWidth = max(locWidth, runewidth.StringWidth(location(issue)))
		ruleWidth = max(ruleWidth, runewidth.StringWidth(issue.Rule))
	}
	for _, issue := range issues {
		ew.println(fmt.Sprintf("  %s %s  %s  %s", icon,
			runewidth.FillRight(location(issue), locWidth),
			runewidth.FillRight(issue.Rule, ruleWidth),
			issue.Message))
	}
}

func location(issue Issue) string {
	if issue.Line > 0 {
		return issue.Page + ":" + strconv.Itoa(issue.Line)
	}
	return issue.Page
}

// errWriter remembers the first write error so callers can check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}

// JSONFormatter formats reports as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	*Report
	Passed       bool `json:"passed"`
	ErrorCount   int  `json:"error_count"`
	WarningCount int  `json:"warning_count"`
}

// Format outputs the report in JSON format.
func (f *JSONFormatter) Format(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(JSONOutput{
		Report:       r,
		Passed:       r.Passed(),
		ErrorCount:   r.ErrorCount(),
		WarningCount: r.WarningCount(),
	})
}
