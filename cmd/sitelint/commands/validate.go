package commands

import (
	"context"

	"git.home.luguber.info/inful/sitelint/internal/validator"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	ReportFlags `embed:""`
}

// Run executes every check.
func (v *ValidateCmd) Run(_ *Global, root *CLI) error {
	return runOnce(context.Background(), root, v.ReportFlags, validator.AllComponents...)
}

// LinksCmd implements the 'links' command.
type LinksCmd struct {
	ReportFlags `embed:""`
}

// Run checks internal links only.
func (l *LinksCmd) Run(_ *Global, root *CLI) error {
	return runOnce(context.Background(), root, l.ReportFlags, validator.ComponentLinks)
}

// A11yCmd implements the 'a11y' command.
type A11yCmd struct {
	ReportFlags `embed:""`
}

// Run audits accessibility only.
func (a *A11yCmd) Run(_ *Global, root *CLI) error {
	return runOnce(context.Background(), root, a.ReportFlags, validator.ComponentA11y)
}

// SEOCmd implements the 'seo' command.
type SEOCmd struct {
	ReportFlags `embed:""`
}

// Run applies the SEO heuristics only.
func (s *SEOCmd) Run(_ *Global, root *CLI) error {
	return runOnce(context.Background(), root, s.ReportFlags, validator.ComponentSEO)
}
