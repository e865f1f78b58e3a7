// Package a11y audits document text for accessibility problems and scores
// the corpus.
package a11y

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"git.home.luguber.info/inful/sitelint/internal/content"
	"git.home.luguber.info/inful/sitelint/internal/links"
	"git.home.luguber.info/inful/sitelint/internal/report"
	"git.home.luguber.info/inful/sitelint/internal/util/sets"
)

const (
	// MaxScore is the score of a corpus without issues.
	MaxScore = 100
	// PenaltyPerIssue is subtracted from MaxScore for every issue.
	PenaltyPerIssue = 5
)

// DisallowedLinkText are link labels that say nothing about the destination.
// Comparison is against the trimmed, lower-cased label.
var DisallowedLinkText = sets.New(
	"click here",
	"read more",
	"learn more",
	"here",
	"link",
	"more",
	"this",
)

var (
	emptyAltImage  = regexp.MustCompile(`!\[\s*\]\(`)
	imgTag         = regexp.MustCompile(`(?i)<img\b`)
	altAttr        = regexp.MustCompile(`(?i)\balt=`)
	headingPattern = regexp.MustCompile(`^(#{1,6})\s`)
)

// Result is the outcome of an audit.
type Result struct {
	Issues []report.Issue `json:"issues"`
	Score  int            `json:"score"`
}

// Score returns max(0, 100 - 5*issues).
func Score(issues int) int {
	return max(0, MaxScore-PenaltyPerIssue*issues)
}

type heading struct {
	level int
	line  int
}

// AuditDocument returns the accessibility issues of one document in line
// order. Every line is scanned, code fences included.
func AuditDocument(doc *content.Document) []report.Issue {
	var (
		issues   []report.Issue
		headings []heading
	)
	add := func(rule, msg string, line int) {
		issues = append(issues, report.Issue{Page: doc.Page, Rule: rule, Message: msg, Line: line})
	}

	for i, line := range doc.Lines() {
		lineNo := i + 1
		if emptyAltImage.MatchString(line) {
			add(report.RuleAltText, "Image missing alt text", lineNo)
		}
		if imgTag.MatchString(line) && !altAttr.MatchString(line) {
			add(report.RuleAltText, "<img> tag missing alt attribute", lineNo)
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			headings = append(headings, heading{level: len(m[1]), line: lineNo})
		}

		for _, m := range links.MarkdownLink.FindAllStringSubmatch(line, -1) {
			text := m[1]
			if DisallowedLinkText.Has(strings.ToLower(strings.TrimSpace(text))) {
				add(report.RuleLinkText, fmt.Sprintf("Non-descriptive link text %q", text), lineNo)
			}
		}
	}

	issues = append(issues, hierarchyIssues(doc.Page, headings)...)
	sortByLine(issues)
	return issues
}

// hierarchyIssues reports skipped levels between consecutive headings and
// every h1 after the first.
func hierarchyIssues(page string, headings []heading) []report.Issue {
	var issues []report.Issue
	seenH1 := false
	for i, h := range headings {
		if h.level == 1 {
			if seenH1 {
				issues = append(issues, report.Issue{
					Page: page, Rule: report.RuleHeadingHierarchy,
					Message: "Multiple h1 headings", Line: h.line,
				})
			}
			seenH1 = true
		}
		if i == 0 {
			continue
		}
		prev := headings[i-1]
		if h.level > prev.level+1 {
			missing := make([]string, 0, h.level-prev.level-1)
			for l := prev.level + 1; l < h.level; l++ {
				missing = append(missing, fmt.Sprintf("h%d", l))
			}
			issues = append(issues, report.Issue{
				Page: page, Rule: report.RuleHeadingHierarchy,
				Message: fmt.Sprintf("Heading level skipped: h%d → h%d (missing %s)",
					prev.level, h.level, strings.Join(missing, ", ")),
				Line: h.line,
			})
		}
	}
	return issues
}

func sortByLine(issues []report.Issue) {
	slices.SortStableFunc(issues, func(a, b report.Issue) int { return a.Line - b.Line })
}

// Audit pools the issues of every document and scores them. An empty corpus
// scores MaxScore.
func Audit(docs []*content.Document) Result {
	issues := []report.Issue{}
	for _, doc := range docs {
		issues = append(issues, AuditDocument(doc)...)
	}
	return Result{Issues: issues, Score: Score(len(issues))}
}

// Findings returns the audit issues as warnings.
func (r Result) Findings() report.Findings {
	return report.Findings{Warnings: r.Issues}
}
