package manifest

import (
	"fmt"
	"slices"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitelint/internal/report"
)

// LintPage is the page name manifest findings are reported under.
const LintPage = "manifest"

// Lint checks manifest consistency that the schema cannot express.
// Duplicate slugs are errors; locale problems are warnings.
func Lint(m *Manifest) report.Findings {
	var f report.Findings

	seen := make(map[string]int, len(m.Pages))
	for i, p := range m.Pages {
		slug := NormalizeSlug(p.Slug)
		if first, dup := seen[slug]; dup {
			f.Error(LintPage, report.RuleManifest,
				fmt.Sprintf("Duplicate slug %q (pages %d and %d)", slug, first, i), 0)
			continue
		}
		seen[slug] = i
	}

	checked := make(map[string]bool)
	checkTag := func(tag, where string) {
		if tag == "" || checked[tag] {
			return
		}
		checked[tag] = true
		if _, err := language.Parse(tag); err != nil {
			f.Warn(LintPage, report.RuleManifestLocale,
				fmt.Sprintf("Locale %q in %s is not a valid BCP 47 tag", tag, where), 0)
		}
	}

	for _, l := range m.Locales {
		checkTag(l, "locales")
	}
	checkTag(m.DefaultLocale, "defaultLocale")
	for _, p := range m.Pages {
		for _, l := range p.Locales {
			checkTag(l, fmt.Sprintf("page %q", NormalizeSlug(p.Slug)))
		}
	}

	if m.DefaultLocale != "" && len(m.Locales) > 0 && !slices.Contains(m.Locales, m.DefaultLocale) {
		f.Warn(LintPage, report.RuleManifestLocale,
			fmt.Sprintf("Default locale %q is not listed in locales", m.DefaultLocale), 0)
	}

	return f
}

