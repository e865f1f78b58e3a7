// Package component checks that documents contain the structural JSX
// components their page type requires.
//
// Tags are located with a regular expression rather than a parser: nested or
// multi-line opening tags, and attribute values containing ">", are not
// recognized.
package component

import (
	"fmt"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/sitelint/internal/report"
	"git.home.luguber.info/inful/sitelint/internal/util/sets"
)

var attrPattern = regexp.MustCompile(`([A-Za-z_][\w-]*)=`)

// Tag is the first opening tag of a component found in a document.
type Tag struct {
	Name  string
	Attrs sets.Set[string]
	// Line is 1-based.
	Line int
}

// Contract names a component and the attributes it must carry.
type Contract struct {
	Component string
	Required  []string
}

// Contracts maps page types to their structural contract. Page types not
// listed have no component requirement.
var Contracts = map[string]Contract{
	"landing":      {Component: "Hero", Required: []string{"title", "description"}},
	"blog-article": {Component: "Article"},
}

func tagPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`<` + regexp.QuoteMeta(name) + `(?:[\s/]([^>]*))?>`)
}

// Find locates the first opening tag `<name ...>` in text and extracts its
// attribute names.
func Find(text, name string) (Tag, bool) {
	loc := tagPattern(name).FindStringSubmatchIndex(text)
	if loc == nil {
		return Tag{}, false
	}

	tag := Tag{
		Name:  name,
		Attrs: sets.New[string](),
		Line:  strings.Count(text[:loc[0]], "\n") + 1,
	}
	if loc[2] >= 0 {
		for _, m := range attrPattern.FindAllStringSubmatch(text[loc[2]:loc[3]], -1) {
			tag.Attrs.Add(m[1])
		}
	}
	return tag, true
}

// Missing returns the required attribute names absent from attrs, in the
// order they are required.
func Missing(attrs sets.Set[string], required []string) []string {
	var missing []string
	for _, r := range required {
		if !attrs.Has(r) {
			missing = append(missing, r)
		}
	}
	return missing
}

// Check verifies text against contract. A missing component is one error;
// otherwise there is one error per missing required attribute.
func Check(page, text string, contract Contract) report.Findings {
	var f report.Findings
	if contract.Component == "" {
		return f
	}

	tag, ok := Find(text, contract.Component)
	if !ok {
		f.Error(page, report.RuleComponent,
			fmt.Sprintf("Missing <%s> component", contract.Component), 0)
		return f
	}
	for _, attr := range Missing(tag.Attrs, contract.Required) {
		f.Error(page, report.RuleComponent,
			fmt.Sprintf("<%s> missing required attribute %q", contract.Component, attr), tag.Line)
	}
	return f
}

// CheckPageType applies the contract registered for pageType, if any.
func CheckPageType(page, text, pageType string) report.Findings {
	contract, ok := Contracts[pageType]
	if !ok {
		return report.Findings{}
	}
	return Check(page, text, contract)
}
