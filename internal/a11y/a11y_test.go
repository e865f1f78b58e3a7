package a11y

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitelint/internal/content"
	"git.home.luguber.info/inful/sitelint/internal/report"
)

func doc(text string) *content.Document {
	return content.NewDocument("content", "page/en.mdx", text)
}

func rules(issues []report.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Rule)
	}
	return out
}

func TestAuditDocument_AltText(t *testing.T) {
	issues := AuditDocument(doc("![](/a.png)\n![Logo](/b.png)\n<img src=\"/c.png\">\n<img src=\"/d.png\" alt=\"\">\n![ ](/e.png) <img src=x>"))

	require.Len(t, issues, 4)
	assert.Equal(t, "Image missing alt text", issues[0].Message)
	assert.Equal(t, 1, issues[0].Line)
	assert.Equal(t, "<img> tag missing alt attribute", issues[1].Message)
	assert.Equal(t, 3, issues[1].Line)
	assert.Equal(t, 5, issues[2].Line)
	assert.Equal(t, 5, issues[3].Line)
}

func TestAuditDocument_HeadingSkip(t *testing.T) {
	issues := AuditDocument(doc("## Section\n\n#### Subsection"))

	require.Len(t, issues, 1)
	assert.Equal(t, report.RuleHeadingHierarchy, issues[0].Rule)
	assert.Contains(t, issues[0].Message, "h2 → h4")
	assert.Contains(t, issues[0].Message, "missing h3")
	assert.Equal(t, 3, issues[0].Line)
}

func TestAuditDocument_HeadingSkipSeveralLevels(t *testing.T) {
	issues := AuditDocument(doc("# Title\n#### Deep"))
	require.Len(t, issues, 1)
	assert.Equal(t, "Heading level skipped: h1 → h4 (missing h2, h3)", issues[0].Message)
}

func TestAuditDocument_HeadingEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		count int
	}{
		{"one level deeper", "# A\n## B\n### C", 0},
		{"going back up", "# A\n## B\n### C\n## D\n# E", 1},
		{"no space is not a heading", "#Tag\n### C", 0},
		{"seven hashes", "# A\n####### not a heading", 0},
		{"fenced code is scanned", "# A\n```\n#### comment\n```\n## B", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, AuditDocument(doc(tt.text)), tt.count)
		})
	}
}

func TestAuditDocument_InsideCodeFence(t *testing.T) {
	issues := AuditDocument(doc("# T\n```\n![](/a.png)\n<img src=\"/b.png\">\n[here](/b)\n```\n"))

	assert.Equal(t, []string{report.RuleAltText, report.RuleAltText, report.RuleLinkText}, rules(issues))
	assert.Equal(t, []int{3, 4, 5}, []int{issues[0].Line, issues[1].Line, issues[2].Line})
}

func TestAuditDocument_MultipleH1(t *testing.T) {
	issues := AuditDocument(doc("# One\ntext\n# Two\n## Sub\n# Three"))

	require.Len(t, issues, 2)
	assert.Equal(t, 3, issues[0].Line)
	assert.Equal(t, 5, issues[1].Line)
	assert.Equal(t, "Multiple h1 headings", issues[0].Message)
}

func TestAuditDocument_LinkText(t *testing.T) {
	issues := AuditDocument(doc("[here](/a) and [click here](/b)"))

	require.Len(t, issues, 2)
	assert.Equal(t, []string{report.RuleLinkText, report.RuleLinkText}, rules(issues))
	assert.Equal(t, `Non-descriptive link text "here"`, issues[0].Message)
	assert.Equal(t, `Non-descriptive link text "click here"`, issues[1].Message)
}

func TestAuditDocument_LinkTextCaseAndTrim(t *testing.T) {
	issues := AuditDocument(doc("[ Read More ](/a) [Pricing details](/b) [this page](/c)"))
	require.Len(t, issues, 1)
	assert.Equal(t, `Non-descriptive link text " Read More "`, issues[0].Message)
}

func TestAuditDocument_LineCarriesSeveralRules(t *testing.T) {
	issues := AuditDocument(doc("## A\n#### B ![](/x.png) [more](/y)"))
	assert.Equal(t, []string{report.RuleAltText, report.RuleLinkText, report.RuleHeadingHierarchy}, rules(issues))
}

func TestAudit_EmptyCorpus(t *testing.T) {
	r := Audit(nil)
	assert.Equal(t, Result{Issues: []report.Issue{}, Score: 100}, r)
}

func TestAudit_ScoreClampsAtZero(t *testing.T) {
	text := strings.Repeat("![](/img.png)\n", 21)
	r := Audit([]*content.Document{doc(text)})
	assert.Len(t, r.Issues, 21)
	assert.Equal(t, 0, r.Score)
}

func TestScore(t *testing.T) {
	assert.Equal(t, 100, Score(0))
	assert.Equal(t, 95, Score(1))
	assert.Equal(t, 0, Score(20))
	assert.Equal(t, 0, Score(100))
}

func TestProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("score is non-increasing and within bounds", prop.ForAll(
		func(n int) bool {
			s := Score(n)
			return s >= 0 && s <= MaxScore && Score(n+1) <= s
		},
		gen.IntRange(0, 1000),
	))

	properties.Property("empty alt always flagged, non-empty never", prop.ForAll(
		func(alt string) bool {
			empty := AuditDocument(doc("![](/i.png)"))
			named := AuditDocument(doc("![" + alt + "](/i.png)"))
			return len(empty) == 1 && len(named) == 0
		},
		gen.AlphaString().SuchThat(func(s string) bool {
			return s != "" && !DisallowedLinkText.Has(strings.ToLower(s))
		}),
	))

	properties.Property("heading jumps", prop.ForAll(
		func(from, to int) bool {
			text := strings.Repeat("#", from) + " A\n" + strings.Repeat("#", to) + " B"
			issues := AuditDocument(doc(text))
			if to <= from+1 {
				return len(issues) == 0 || (from == 1 && to == 1 && len(issues) == 1)
			}
			return len(issues) == 1 &&
				strings.Contains(issues[0].Message, "missing h"+string(rune('0'+from+1)))
		},
		gen.IntRange(1, 6),
		gen.IntRange(1, 6),
	))

	properties.Property("N h1 headings raise N-1 issues", prop.ForAll(
		func(n int) bool {
			text := strings.Repeat("# Title\n", n)
			return len(AuditDocument(doc(text))) == n-1
		},
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}
