// Package pagecheck validates every page registered in the manifest against
// its documents: presence per locale, required frontmatter, structural
// components and blog article metadata.
package pagecheck

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitelint/internal/component"
	"git.home.luguber.info/inful/sitelint/internal/content"
	"git.home.luguber.info/inful/sitelint/internal/links"
	"git.home.luguber.info/inful/sitelint/internal/manifest"
	"git.home.luguber.info/inful/sitelint/internal/markdown"
	"git.home.luguber.info/inful/sitelint/internal/report"
)

// Page types with dedicated checks.
const (
	TypeLanding     = "landing"
	TypeBlogArticle = "blog-article"
)

// DefaultMinArticleWords is the word-count advisory threshold.
const DefaultMinArticleWords = 300

// RequiredFields lists the frontmatter fields every page type needs, plus
// per-type additions.
var RequiredFields = map[string][]string{
	"":              {"title", "description"},
	TypeBlogArticle: {"date", "author"},
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Options locate content and assets on disk.
type Options struct {
	Root      string
	Label     string
	Extension string
	PublicDir string
	// MinArticleWords is the word-count advisory threshold for blog articles.
	MinArticleWords int
}

func (o Options) label() string {
	if o.Label != "" {
		return o.Label
	}
	return filepath.Base(filepath.Clean(o.Root))
}

func (o Options) extension() string {
	if o.Extension != "" {
		return o.Extension
	}
	return content.DefaultExtensions[0]
}

// Checker validates manifest pages.
type Checker struct {
	m    *manifest.Manifest
	opts Options
	docs map[string]*content.Document
}

// New creates a checker over the loaded documents.
func New(m *manifest.Manifest, docs []*content.Document, opts Options) *Checker {
	byPath := make(map[string]*content.Document, len(docs))
	for _, d := range docs {
		byPath[d.RelPath] = d
	}
	if opts.MinArticleWords <= 0 {
		opts.MinArticleWords = DefaultMinArticleWords
	}
	return &Checker{m: m, opts: opts, docs: byPath}
}

// Check validates every page in every locale it is published in.
func (c *Checker) Check() report.Findings {
	var f report.Findings
	for _, p := range c.m.Pages {
		f.Append(c.CheckPage(p))
	}
	return f
}

// CheckPage validates one page entry.
func (c *Checker) CheckPage(p manifest.PageEntry) report.Findings {
	var f report.Findings
	slug := manifest.NormalizeSlug(p.Slug)
	cp := manifest.CleanContentPath(p.ContentPath)
	folderPage := path.Join(c.opts.label(), cp)

	if info, err := os.Stat(filepath.Join(c.opts.Root, filepath.FromSlash(cp))); err != nil || !info.IsDir() {
		f.Error(folderPage, report.RuleContentMissing,
			fmt.Sprintf("Content folder %q for page %q not found", folderPage, slug), 0)
		return f
	}

	for _, locale := range c.m.PageLocales(p) {
		rel := path.Join(cp, locale+c.opts.extension())
		doc, err := c.document(rel)
		if err != nil {
			f.Error(path.Join(c.opts.label(), rel), report.RuleContentMissing,
				fmt.Sprintf("Missing %q content for page %q", locale, slug), 0)
			continue
		}
		f.Append(c.checkDocument(p, doc))
	}
	return f
}

// document returns the loaded document for rel, reading it from disk when
// the loader skipped it.
func (c *Checker) document(rel string) (*content.Document, error) {
	if d, ok := c.docs[rel]; ok {
		return d, nil
	}
	data, err := os.ReadFile(filepath.Join(c.opts.Root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}
	return content.NewDocument(c.opts.label(), rel, string(data)), nil
}

func (c *Checker) checkDocument(p manifest.PageEntry, doc *content.Document) report.Findings {
	var f report.Findings

	if doc.Frontmatter == nil {
		f.Error(doc.Page, report.RuleFrontmatter, "Missing or malformed frontmatter", 1)
	} else {
		required := append(append([]string{}, RequiredFields[""]...), RequiredFields[p.Type]...)
		for _, field := range required {
			if !doc.Frontmatter.Has(field) {
				f.Error(doc.Page, report.RuleFrontmatter,
					fmt.Sprintf("Missing required frontmatter field %q", field), 1)
			}
		}
	}

	f.Append(component.CheckPageType(doc.Page, doc.Text, p.Type))

	if p.Type == TypeBlogArticle {
		f.Append(c.checkArticle(doc))
	}

	for _, h := range markdown.Headings([]byte(doc.Body())) {
		if strings.HasSuffix(h.Text, ".") || strings.HasSuffix(h.Text, ":") {
			f.Warn(doc.Page, report.RuleHeadingStyle,
				fmt.Sprintf("Heading %q should not end with %q", h.Text, h.Text[len(h.Text)-1:]),
				doc.BodyStartLine()+h.Line-1)
		}
	}
	return f
}

// checkArticle validates blog article metadata. Missing fields are reported
// by the required-field check.
func (c *Checker) checkArticle(doc *content.Document) report.Findings {
	var f report.Findings
	fm := doc.Frontmatter

	if date := fm.Get("date"); date != "" && !ValidDate(date) {
		f.Error(doc.Page, report.RuleFieldFormat,
			fmt.Sprintf("Invalid date %q (expected YYYY-MM-DD)", date), 0)
	}

	if rt := fm.Get("readingTime"); rt != "" {
		if _, err := strconv.ParseFloat(rt, 64); err != nil {
			f.Error(doc.Page, report.RuleFieldFormat,
				fmt.Sprintf("readingTime %q is not a number", rt), 0)
		}
	}

	if author := fm.Get("author"); author != "" && !c.m.HasAuthor(author) {
		f.Error(doc.Page, report.RuleUnknownAuthor,
			fmt.Sprintf("Unknown author %q", author), 0)
	}

	if category := fm.Get("category"); category != "" && !c.m.HasCategory(category) {
		f.Warn(doc.Page, report.RuleUnknownCategory,
			fmt.Sprintf("Unknown category %q", category), 0)
	}

	if image := fm.Get("image"); image != "" && !links.IsExternal(image) && !c.assetExists(image) {
		f.Warn(doc.Page, report.RuleAssetMissing,
			fmt.Sprintf("Image %q not found in %s", image, c.opts.PublicDir), 0)
	}

	if n := markdown.WordCount([]byte(doc.Body())); n < c.opts.MinArticleWords {
		f.Warn(doc.Page, report.RuleWordCount,
			fmt.Sprintf("Article has %d words (recommended minimum %d)", n, c.opts.MinArticleWords), 0)
	}
	return f
}

func (c *Checker) assetExists(image string) bool {
	rel := filepath.FromSlash(strings.TrimPrefix(image, "/"))
	info, err := os.Stat(filepath.Join(c.opts.PublicDir, rel))
	return err == nil && !info.IsDir()
}

// ValidDate reports whether s is a calendar date formatted YYYY-MM-DD.
func ValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}
