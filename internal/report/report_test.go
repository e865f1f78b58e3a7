package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	r := New()
	r.Documents = 3
	r.Add(Findings{
		Warnings: []Issue{{Page: "content/home/en.mdx", Rule: RuleSEO, Message: "Title too short (12 chars)"}},
	})
	r.AddErrors(Issue{Page: "navigation", Rule: RuleDeadLink, Message: `Dead link "/nope" in navigation`})
	r.SetA11yScore(95)
	return r
}

func TestReport_Verdict(t *testing.T) {
	r := New()
	assert.True(t, r.Passed())

	r.AddWarnings(Issue{Page: "p", Rule: RuleSEO, Message: "w"}, Issue{Page: "p", Rule: RuleSEO, Message: "w2"})
	assert.True(t, r.Passed(), "warnings never fail a run")

	r.AddErrors(Issue{Page: "p", Rule: RuleFrontmatter, Message: "e"})
	assert.False(t, r.Passed())
	assert.Equal(t, 1, r.ErrorCount())
	assert.Equal(t, 2, r.WarningCount())
}

func TestReport_AddPreservesOrder(t *testing.T) {
	r := New()
	var a, b Findings
	a.Error("a", RuleDeadLink, "first", 0)
	b.Error("b", RuleDeadLink, "second", 0)
	b.Warn("b", RuleSEO, "warn", 2)

	r.Add(a)
	r.Add(b)

	require.Len(t, r.Errors, 2)
	assert.Equal(t, "first", r.Errors[0].Message)
	assert.Equal(t, "second", r.Errors[1].Message)
	assert.Equal(t, 2, r.Warnings[0].Line)
}

func TestReport_CountByRule(t *testing.T) {
	r := sampleReport()
	r.AddWarnings(Issue{Page: "x", Rule: RuleSEO, Message: "m"})

	assert.Equal(t, map[string]int{RuleSEO: 2}, r.CountByRule(SeverityWarning))
	assert.Equal(t, map[string]int{RuleDeadLink: 1}, r.CountByRule(SeverityError))
}

func TestReport_Summary(t *testing.T) {
	assert.Equal(t, "FAIL: 1 error, 1 warning, accessibility score 95/100", sampleReport().Summary())
	assert.Equal(t, "PASS: 0 errors, 0 warnings", New().Summary())
}

func TestIssue_String(t *testing.T) {
	assert.Equal(t, "content/a/en.mdx:4 [alt-text] Image missing alt text",
		Issue{Page: "content/a/en.mdx", Rule: RuleAltText, Message: "Image missing alt text", Line: 4}.String())
	assert.Equal(t, "footer [dead-link] x", Issue{Page: "footer", Rule: RuleDeadLink, Message: "x"}.String())
}

func TestTextFormatter_WarningsBeforeErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(false).Format(&buf, sampleReport()))

	out := buf.String()
	warnIdx := strings.Index(out, "Warnings (1):")
	errIdx := strings.Index(out, "Errors (1):")
	require.GreaterOrEqual(t, warnIdx, 0)
	require.Greater(t, errIdx, warnIdx)
	assert.Contains(t, out, "3 documents scanned")
	assert.True(t, strings.HasSuffix(out, "❌ FAIL: 1 error, 1 warning, accessibility score 95/100\n"))
}

func TestTextFormatter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(true).Format(&buf, sampleReport()))
	assert.NotContains(t, buf.String(), "Warnings")
	assert.Contains(t, buf.String(), "Errors (1):")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, sampleReport()))

	var decoded struct {
		Passed       bool    `json:"passed"`
		ErrorCount   int     `json:"error_count"`
		WarningCount int     `json:"warning_count"`
		A11yScore    int     `json:"a11y_score"`
		Errors       []Issue `json:"errors"`
		Warnings     []Issue `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.False(t, decoded.Passed)
	assert.Equal(t, 1, decoded.ErrorCount)
	assert.Equal(t, 1, decoded.WarningCount)
	assert.Equal(t, 95, decoded.A11yScore)
	assert.Equal(t, "navigation", decoded.Errors[0].Page)
	assert.Zero(t, decoded.Errors[0].Line)
}

func TestHTMLFormatter_EscapesContent(t *testing.T) {
	r := New()
	r.AddErrors(Issue{Page: "content/x/en.mdx", Rule: RuleAltText, Message: "<img> tag missing alt attribute", Line: 7})

	var buf bytes.Buffer
	require.NoError(t, NewHTMLFormatter().Format(&buf, r))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "&lt;img&gt; tag missing alt attribute")
	assert.Contains(t, out, "<td>7</td>")
	assert.Contains(t, out, `class="summary fail"`)
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, NewFormatter("json", false))
	assert.IsType(t, &HTMLFormatter{}, NewFormatter("html", false))
	assert.IsType(t, &TextFormatter{}, NewFormatter("text", false))
}
