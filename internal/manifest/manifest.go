// Package manifest loads the site manifest: the page registry, navigation,
// footer and blog metadata every content check is validated against.
//
// The manifest is read once by the entry point and passed by value into the
// checkers; nothing in this package caches it.
package manifest

import (
	"encoding/json"
	"os"
	"strings"

	"git.home.luguber.info/inful/sitelint/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelint/internal/util/sets"
)

// FallbackLocale is used when neither a page nor the manifest declares locales.
const FallbackLocale = "en"

// Manifest describes the site structure.
type Manifest struct {
	Name          string      `json:"name"`
	Locales       []string    `json:"locales,omitempty"`
	DefaultLocale string      `json:"defaultLocale,omitempty"`
	Pages         []PageEntry `json:"pages"`
	Navigation    *Navigation `json:"navigation,omitempty"`
	Footer        *Footer     `json:"footer,omitempty"`
	Blog          *Blog       `json:"blog,omitempty"`
}

// PageEntry registers one page of the site.
type PageEntry struct {
	Slug        string   `json:"slug"`
	Type        string   `json:"type"`
	ContentPath string   `json:"contentPath"`
	Locales     []string `json:"locales,omitempty"`
}

// Link is a labelled destination used by navigation and footer.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Navigation is the primary site navigation.
type Navigation struct {
	Items []Link `json:"items,omitempty"`
	CTA   *Link  `json:"cta,omitempty"`
}

// Footer groups links into columns.
type Footer struct {
	Columns []FooterColumn `json:"columns,omitempty"`
}

// FooterColumn is one titled group of footer links.
type FooterColumn struct {
	Title string `json:"title"`
	Links []Link `json:"links,omitempty"`
}

// Blog holds the metadata blog articles reference.
type Blog struct {
	Authors    []Author   `json:"authors,omitempty"`
	Categories []Category `json:"categories,omitempty"`
}

// Author is a registered blog author.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category is a registered blog category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Load reads, schema-validates and decodes the manifest at path. Any failure
// is fatal for the run.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.ManifestError("site manifest not found").
			WithPath(path).
			Build()
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryManifest, "failed to read site manifest").
			Fatal().
			WithPath(path).
			Build()
	}

	m, err := Parse(data)
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext(errors.PathKey, path)
		}
		return nil, err
	}
	return m, nil
}

// Parse decodes manifest JSON after validating it against the embedded schema.
func Parse(data []byte) (*Manifest, error) {
	if !json.Valid(data) {
		return nil, errors.ManifestError("site manifest is not valid JSON").Build()
	}

	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapError(err, errors.CategoryManifest, "failed to decode site manifest").
			Fatal().
			Build()
	}
	return &m, nil
}

// NormalizeSlug returns the comparable form of a slug: always with exactly
// one leading "/". The empty slug is the root "/".
func NormalizeSlug(slug string) string {
	return "/" + strings.TrimPrefix(slug, "/")
}

// PageLocales returns the locales a page is published in: its own list,
// else the site locales, else the default locale, else FallbackLocale.
func (m *Manifest) PageLocales(p PageEntry) []string {
	switch {
	case len(p.Locales) > 0:
		return p.Locales
	case len(m.Locales) > 0:
		return m.Locales
	case m.DefaultLocale != "":
		return []string{m.DefaultLocale}
	default:
		return []string{FallbackLocale}
	}
}

// ContentPaths returns the set of registered content paths, slash separated
// and without leading or trailing slashes.
func (m *Manifest) ContentPaths() sets.Set[string] {
	paths := sets.New[string]()
	for _, p := range m.Pages {
		paths.Add(CleanContentPath(p.ContentPath))
	}
	return paths
}

// CleanContentPath normalizes a manifest content path for comparison with
// directories on disk.
func CleanContentPath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	p = strings.Trim(p, "/")
	if p == "." {
		return ""
	}
	return p
}

// HasAuthor reports whether id is a registered blog author.
func (m *Manifest) HasAuthor(id string) bool {
	if m.Blog == nil {
		return false
	}
	for _, a := range m.Blog.Authors {
		if a.ID == id {
			return true
		}
	}
	return false
}

// HasCategory reports whether id is a registered blog category. With no
// categories registered every category is accepted.
func (m *Manifest) HasCategory(id string) bool {
	if m.Blog == nil || len(m.Blog.Categories) == 0 {
		return true
	}
	for _, c := range m.Blog.Categories {
		if c.ID == id || strings.EqualFold(c.Name, id) {
			return true
		}
	}
	return false
}
