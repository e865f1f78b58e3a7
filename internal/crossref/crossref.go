// Package crossref runs the cross-document checks: duplicate metadata within
// a locale, untranslated copies across locales and content folders the
// manifest never references.
//
// Duplicate detection is two-phase: Collect indexes the whole corpus, then
// the Index methods judge it.
package crossref

import (
	"fmt"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/sitelint/internal/content"
	"git.home.luguber.info/inful/sitelint/internal/report"
)

// group is an insertion-ordered multimap from a value to the pages holding it.
type group struct {
	keys  []string
	pages map[string][]string
}

func newGroup() *group {
	return &group{pages: make(map[string][]string)}
}

func (g *group) add(key, page string) {
	if _, ok := g.pages[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.pages[key] = append(g.pages[key], page)
}

type localeIndex struct {
	titles       *group
	descriptions *group
}

type variant struct {
	locale      string
	page        string
	fingerprint string
}

// Index is the result of the collection phase.
type Index struct {
	locales  []string
	byLocale map[string]*localeIndex

	contentPaths []string
	variants     map[string][]variant
}

// Collect indexes titles, descriptions and body fingerprints of docs.
func Collect(docs []*content.Document) *Index {
	idx := &Index{
		byLocale: make(map[string]*localeIndex),
		variants: make(map[string][]variant),
	}

	for _, doc := range docs {
		li, ok := idx.byLocale[doc.Locale]
		if !ok {
			li = &localeIndex{titles: newGroup(), descriptions: newGroup()}
			idx.byLocale[doc.Locale] = li
			idx.locales = append(idx.locales, doc.Locale)
		}
		if title := doc.Title(); title != "" {
			li.titles.add(title, doc.Page)
		}
		if desc := doc.Description(); desc != "" {
			li.descriptions.add(desc, doc.Page)
		}

		body := strings.TrimSpace(doc.Body())
		if body == "" {
			continue
		}
		if _, ok := idx.variants[doc.ContentPath]; !ok {
			idx.contentPaths = append(idx.contentPaths, doc.ContentPath)
		}
		idx.variants[doc.ContentPath] = append(idx.variants[doc.ContentPath], variant{
			locale:      doc.Locale,
			page:        doc.Page,
			fingerprint: mdfp.CalculateFingerprintFromParts("", body),
		})
	}
	return idx
}

// Duplicates warns once per title or description shared by more than one
// document of the same locale. Documents in different locales are never
// compared.
func (idx *Index) Duplicates() report.Findings {
	var f report.Findings
	for _, locale := range idx.locales {
		li := idx.byLocale[locale]
		duplicates(&f, li.titles, locale, report.RuleDuplicateTitle, "title")
		duplicates(&f, li.descriptions, locale, report.RuleDuplicateDesc, "description")
	}
	return f
}

func duplicates(f *report.Findings, g *group, locale, rule, field string) {
	for _, key := range g.keys {
		pages := g.pages[key]
		if len(pages) < 2 {
			continue
		}
		f.Warn(pages[0], rule, fmt.Sprintf("Duplicate %s %q in locale %s: %s",
			field, key, locale, strings.Join(pages, ", ")), 0)
	}
}

// Untranslated warns when two or more locales of the same content path have
// byte-identical bodies.
func (idx *Index) Untranslated() report.Findings {
	var f report.Findings
	for _, cp := range idx.contentPaths {
		vs := idx.variants[cp]
		if len(vs) < 2 {
			continue
		}

		byPrint := newGroup()
		locales := make(map[string][]string)
		for _, v := range vs {
			byPrint.add(v.fingerprint, v.page)
			locales[v.fingerprint] = append(locales[v.fingerprint], v.locale)
		}
		for _, fp := range byPrint.keys {
			pages := byPrint.pages[fp]
			if len(pages) < 2 {
				continue
			}
			f.Warn(pages[0], report.RuleUntranslated, fmt.Sprintf(
				"Locales %s of %q have identical content: %s",
				strings.Join(locales[fp], ", "), displayPath(cp), strings.Join(pages, ", ")), 0)
		}
	}
	return f
}

func displayPath(contentPath string) string {
	if contentPath == "" {
		return "/"
	}
	return contentPath
}
