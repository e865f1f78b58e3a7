// Package seo evaluates document metadata with search-engine heuristics.
// Every finding is a warning.
package seo

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/sitelint/internal/content"
	"git.home.luguber.info/inful/sitelint/internal/frontmatter"
	"git.home.luguber.info/inful/sitelint/internal/report"
	"git.home.luguber.info/inful/sitelint/internal/util/sets"
)

// StopWords are ignored by the repeated-word heuristic.
var StopWords = sets.New(
	"the", "and", "for", "are", "but", "not", "you", "all", "any", "can",
	"her", "was", "one", "our", "out", "has", "have", "had", "his", "how",
	"its", "may", "new", "now", "see", "two", "way", "who", "did", "get",
	"use", "with", "that", "this", "from", "your", "they", "will", "what",
	"when", "which", "their", "there", "been", "into", "more", "than",
	"them", "then", "these", "some", "also", "about", "each", "other",
)

// MinRepeatedWordLength is the shortest word counted by the repeated-word
// heuristic.
const MinRepeatedWordLength = 3

var wordSplit = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Thresholds bound the metadata heuristics. Lengths are in characters.
type Thresholds struct {
	TitleMin        int
	TitleMax        int
	DescriptionMin  int
	DescriptionMax  int
	RepeatThreshold int
}

// DefaultThresholds returns the standard search-snippet bounds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TitleMin:        30,
		TitleMax:        70,
		DescriptionMin:  70,
		DescriptionMax:  160,
		RepeatThreshold: 4,
	}
}

// CheckDocument evaluates the title and description of one document.
func CheckDocument(page string, fm frontmatter.Frontmatter, th Thresholds) []report.Issue {
	var issues []report.Issue
	warn := func(format string, args ...any) {
		issues = append(issues, report.Issue{Page: page, Rule: report.RuleSEO, Message: fmt.Sprintf(format, args...)})
	}

	title := fm.Get("title")
	desc := fm.Get("description")

	if title != "" {
		if n := utf8.RuneCountInString(title); n < th.TitleMin {
			warn("Title too short (%d chars, minimum %d)", n, th.TitleMin)
		} else if n > th.TitleMax {
			warn("Title too long (%d chars, maximum %d)", n, th.TitleMax)
		}
	}

	if desc == "" {
		return issues
	}

	if n := utf8.RuneCountInString(desc); n < th.DescriptionMin {
		warn("Description too short (%d chars, minimum %d)", n, th.DescriptionMin)
	} else if n > th.DescriptionMax {
		warn("Description too long (%d chars, maximum %d)", n, th.DescriptionMax)
	}

	if strings.HasSuffix(desc, "...") {
		warn("Description appears truncated (ends with \"...\")")
	}

	if title != "" {
		lt, ld := strings.ToLower(title), strings.ToLower(desc)
		if lt == ld {
			warn("Title and description are identical")
		} else if strings.HasPrefix(ld, lt) {
			warn("Description starts with the title")
		}
	}

	if !strings.HasSuffix(desc, ".") && !strings.HasSuffix(desc, "!") && !strings.HasSuffix(desc, "?") {
		warn("Description is missing terminal punctuation")
	}

	if word, count, ok := RepeatedWord(desc, th.RepeatThreshold); ok {
		warn("Word %q repeated %d times in description", word, count)
	}

	return issues
}

// RepeatedWord returns the first word, in order of first appearance, that
// occurs at least threshold times in text. Words shorter than
// MinRepeatedWordLength and stop words are ignored; matching is
// case-insensitive.
func RepeatedWord(text string, threshold int) (string, int, bool) {
	counts := make(map[string]int)
	var order []string
	for _, w := range wordSplit.Split(strings.ToLower(text), -1) {
		if utf8.RuneCountInString(w) < MinRepeatedWordLength || StopWords.Has(w) {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	for _, w := range order {
		if counts[w] >= threshold {
			return w, counts[w], true
		}
	}
	return "", 0, false
}

// Check evaluates every document that has frontmatter.
func Check(docs []*content.Document, th Thresholds) report.Findings {
	var f report.Findings
	for _, doc := range docs {
		if doc.Frontmatter == nil {
			continue
		}
		f.Warnings = append(f.Warnings, CheckDocument(doc.Page, doc.Frontmatter, th)...)
	}
	return f
}
