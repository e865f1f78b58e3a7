// Package links validates internal links against the pages registered in the
// site manifest. External destinations are never dereferenced.
package links

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"git.home.luguber.info/inful/sitelint/internal/content"
	"git.home.luguber.info/inful/sitelint/internal/manifest"
	"git.home.luguber.info/inful/sitelint/internal/report"
	"git.home.luguber.info/inful/sitelint/internal/util/sets"
)

// Link contexts used for manifest-level links.
const (
	ContextNavigation = "navigation"
	ContextCTA        = "navigation CTA"
	ContextFooter     = "footer"
)

var (
	externalPattern = regexp.MustCompile(`^(https?://|mailto:|tel:|#)`)
	// MarkdownLink matches `[text](target)`; group 1 is the text, group 2 the
	// target. Image syntax and titles are not special-cased.
	MarkdownLink = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	hrefAttr     = regexp.MustCompile(`\bhref=(?:"([^"]*)"|'([^']*)')`)
)

// SlugSet is the set of valid internal destinations.
type SlugSet = sets.Set[string]

// NewSlugSet builds the set of internal destinations from the manifest.
func NewSlugSet(m *manifest.Manifest) SlugSet {
	s := sets.New[string]()
	for _, p := range m.Pages {
		s.Add(manifest.NormalizeSlug(p.Slug))
	}
	return s
}

// IsExternal reports whether href points outside the site or is an in-page
// anchor.
func IsExternal(href string) bool {
	return externalPattern.MatchString(href)
}

// Normalize removes one trailing "/" unless href is exactly "/". Query
// strings and fragments are kept, so "/features#plans" is its own
// destination.
func Normalize(href string) string {
	if href == "/" {
		return href
	}
	return strings.TrimSuffix(href, "/")
}

// Checker validates hrefs against a slug set.
type Checker struct {
	slugs SlugSet
}

// NewChecker creates a checker for the pages of m.
func NewChecker(m *manifest.Manifest) *Checker {
	return &Checker{slugs: NewSlugSet(m)}
}

// CheckHref returns an error message when href is an internal absolute link
// to an unregistered page. Relative and external hrefs are not checked.
func (c *Checker) CheckHref(href, context string) (string, bool) {
	if IsExternal(href) || !strings.HasPrefix(href, "/") {
		return "", true
	}
	if c.slugs.Has(Normalize(href)) {
		return "", true
	}
	return fmt.Sprintf("Dead link %q in %s", href, context), false
}

// Ref is one link target found in a document.
type Ref struct {
	Href string
	Line int
}

// ExtractRefs returns every markdown link target and href attribute in text
// in scan order. The whole text is scanned at once, so a match may span
// lines; Line is the line the match starts on.
func ExtractRefs(text string) []Ref {
	var hits []hit
	for _, m := range MarkdownLink.FindAllStringSubmatchIndex(text, -1) {
		hits = append(hits, hit{pos: m[0], href: text[m[4]:m[5]]})
	}
	for _, m := range hrefAttr.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2], m[3]
		if start < 0 {
			start, end = m[4], m[5]
		}
		hits = append(hits, hit{pos: m[0], href: text[start:end]})
	}
	slices.SortStableFunc(hits, func(a, b hit) int { return a.pos - b.pos })

	refs := make([]Ref, 0, len(hits))
	line, scanned := 1, 0
	for _, h := range hits {
		line += strings.Count(text[scanned:h.pos], "\n")
		scanned = h.pos
		refs = append(refs, Ref{Href: h.href, Line: line})
	}
	return refs
}

type hit struct {
	pos  int
	href string
}

// Validate checks navigation, the navigation call to action, footer links and
// every document, in that order. All findings are errors.
func Validate(m *manifest.Manifest, docs []*content.Document) report.Findings {
	c := NewChecker(m)
	var f report.Findings

	check := func(href, context string, line int) {
		if msg, ok := c.CheckHref(href, context); !ok {
			f.Error(context, report.RuleDeadLink, msg, line)
		}
	}

	if nav := m.Navigation; nav != nil {
		for _, item := range nav.Items {
			check(item.Href, ContextNavigation, 0)
		}
		if nav.CTA != nil {
			check(nav.CTA.Href, ContextCTA, 0)
		}
	}
	if m.Footer != nil {
		for _, col := range m.Footer.Columns {
			for _, link := range col.Links {
				check(link.Href, ContextFooter, 0)
			}
		}
	}

	for _, doc := range docs {
		for _, ref := range ExtractRefs(doc.Text) {
			check(ref.Href, doc.Page, ref.Line)
		}
	}
	return f
}
