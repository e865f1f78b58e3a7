// Package validator runs the content checks against a site and aggregates
// their findings into one report.
package validator

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"git.home.luguber.info/inful/sitelint/internal/a11y"
	"git.home.luguber.info/inful/sitelint/internal/config"
	"git.home.luguber.info/inful/sitelint/internal/content"
	"git.home.luguber.info/inful/sitelint/internal/crossref"
	"git.home.luguber.info/inful/sitelint/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelint/internal/git"
	"git.home.luguber.info/inful/sitelint/internal/history"
	"git.home.luguber.info/inful/sitelint/internal/links"
	"git.home.luguber.info/inful/sitelint/internal/logfields"
	"git.home.luguber.info/inful/sitelint/internal/manifest"
	"git.home.luguber.info/inful/sitelint/internal/metrics"
	"git.home.luguber.info/inful/sitelint/internal/pagecheck"
	"git.home.luguber.info/inful/sitelint/internal/publish"
	"git.home.luguber.info/inful/sitelint/internal/report"
	"git.home.luguber.info/inful/sitelint/internal/seo"
)

// Component names one group of checks.
type Component string

const (
	ComponentManifest Component = "manifest"
	ComponentPages    Component = "pages"
	ComponentLinks    Component = "links"
	ComponentA11y     Component = "a11y"
	ComponentSEO      Component = "seo"
	ComponentCrossRef Component = "crossref"
)

// AllComponents runs every check, in report order.
var AllComponents = []Component{
	ComponentManifest,
	ComponentPages,
	ComponentLinks,
	ComponentA11y,
	ComponentSEO,
	ComponentCrossRef,
}

// Validator runs validation passes. It holds no per-run state and may be
// reused.
type Validator struct {
	cfg       *config.Config
	recorder  metrics.Recorder
	store     history.Store
	publisher publish.Publisher
	now       func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(v *Validator) { v.recorder = r }
}

// WithHistory stores every completed run in s.
func WithHistory(s history.Store) Option {
	return func(v *Validator) { v.store = s }
}

// WithPublisher announces every completed run through p.
func WithPublisher(p publish.Publisher) Option {
	return func(v *Validator) { v.publisher = p }
}

// New creates a validator for cfg.
func New(cfg *config.Config, opts ...Option) *Validator {
	v := &Validator{
		cfg:       cfg,
		recorder:  metrics.NoopRecorder{},
		publisher: publish.NoopPublisher{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// LoadManifest loads the manifest named by the configuration.
func (v *Validator) LoadManifest() (*manifest.Manifest, error) {
	return manifest.Load(v.cfg.Manifest)
}

func (v *Validator) contentOptions() content.Options {
	return content.Options{
		Extensions: v.cfg.Content.Extensions,
		Exclude:    v.cfg.Content.Exclude,
		Workers:    v.cfg.Content.Workers,
	}
}

// pageExtension is the first configured content extension, or "" to let
// pagecheck pick its default.
func (v *Validator) pageExtension() string {
	if exts := v.cfg.Content.Extensions; len(exts) > 0 {
		return exts[0]
	}
	return ""
}

func (v *Validator) thresholds() seo.Thresholds {
	s := v.cfg.SEO
	return seo.Thresholds{
		TitleMin:        s.TitleMin,
		TitleMax:        s.TitleMax,
		DescriptionMin:  s.DescriptionMin,
		DescriptionMax:  s.DescriptionMax,
		RepeatThreshold: s.RepeatThreshold,
	}
}

// Run validates the site described by m. With no components every check
// runs. Structural problems (content root missing while required, unreadable
// content) abort the run with a classified error; everything else becomes a
// finding.
func (v *Validator) Run(ctx context.Context, m *manifest.Manifest, components ...Component) (*report.Report, error) {
	if len(components) == 0 {
		components = AllComponents
	}
	enabled := func(c Component) bool { return slices.Contains(components, c) }

	rep := report.New()
	rep.RunID = history.NewRunID()
	rep.StartedAt = v.now()
	root := v.cfg.Content.Root

	log := slog.With(logfields.RunID(rep.RunID))
	log.Info("Validation started",
		logfields.Manifest(v.cfg.Manifest),
		logfields.ContentRoot(root))

	if m == nil {
		v.recorder.IncRunOutcome(metrics.OutcomeAborted)
		return nil, errors.InternalError("validator run without manifest").Build()
	}

	if v.cfg.Content.Required {
		if err := content.RequireRoot(root); err != nil {
			v.recorder.IncRunOutcome(metrics.OutcomeAborted)
			return nil, err
		}
	}

	if rev, err := git.ReadRevision(root); err == nil {
		rep.Revision = rev.String()
	} else {
		log.Debug("No revision available", logfields.Error(err))
	}

	loadStart := time.Now()
	docs, err := content.Load(ctx, root, v.contentOptions())
	if err != nil {
		v.recorder.IncRunOutcome(metrics.OutcomeAborted)
		return nil, err
	}
	v.recorder.ObserveStageDuration("load", time.Since(loadStart))
	rep.Documents = len(docs)
	log.Debug("Documents loaded", logfields.Documents(len(docs)))

	if enabled(ComponentManifest) {
		v.stage(log, rep, string(ComponentManifest), func() report.Findings {
			return manifest.Lint(m)
		})
	}
	if enabled(ComponentPages) {
		v.stage(log, rep, string(ComponentPages), func() report.Findings {
			return pagecheck.New(m, docs, pagecheck.Options{
				Root:            root,
				Extension:       v.pageExtension(),
				PublicDir:       v.cfg.PublicDir,
				MinArticleWords: v.cfg.SEO.MinArticleWords,
			}).Check()
		})
	}
	if enabled(ComponentLinks) {
		v.stage(log, rep, string(ComponentLinks), func() report.Findings {
			return links.Validate(m, docs)
		})
	}
	if enabled(ComponentA11y) {
		v.stage(log, rep, string(ComponentA11y), func() report.Findings {
			result := a11y.Audit(docs)
			rep.SetA11yScore(result.Score)
			return result.Findings()
		})
	}
	if enabled(ComponentSEO) {
		v.stage(log, rep, string(ComponentSEO), func() report.Findings {
			return seo.Check(docs, v.thresholds())
		})
	}
	if enabled(ComponentCrossRef) {
		var orphanErr error
		v.stage(log, rep, string(ComponentCrossRef), func() report.Findings {
			idx := crossref.Collect(docs)
			f := idx.Duplicates()
			f.Append(idx.Untranslated())
			var orphans report.Findings
			orphans, orphanErr = crossref.Orphans(root, m.ContentPaths(), v.contentOptions())
			f.Append(orphans)
			return f
		})
		if orphanErr != nil {
			v.recorder.IncRunOutcome(metrics.OutcomeAborted)
			return nil, orphanErr
		}
	}

	rep.Duration = v.now().Sub(rep.StartedAt)
	v.finish(ctx, log, rep)
	return rep, nil
}

// stage runs one check, adds its findings and records its duration.
func (v *Validator) stage(log *slog.Logger, rep *report.Report, name string, fn func() report.Findings) {
	start := time.Now()
	f := fn()
	elapsed := time.Since(start)
	v.recorder.ObserveStageDuration(name, elapsed)

	rep.Add(f)
	log.Debug("Stage complete",
		logfields.Stage(name),
		logfields.Errors(len(f.Errors)),
		logfields.Warnings(len(f.Warnings)),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
}

// finish records metrics, history and the published event for a completed
// run. Failures here are logged, never returned.
func (v *Validator) finish(ctx context.Context, log *slog.Logger, rep *report.Report) {
	v.recorder.ObserveRunDuration(rep.Duration)
	v.recorder.SetDocuments(rep.Documents)
	if rep.A11yScore != nil {
		v.recorder.SetA11yScore(*rep.A11yScore)
	}
	for rule, n := range rep.CountByRule(report.SeverityError) {
		v.recorder.AddIssues(rule, report.SeverityError.String(), n)
	}
	for rule, n := range rep.CountByRule(report.SeverityWarning) {
		v.recorder.AddIssues(rule, report.SeverityWarning.String(), n)
	}
	if rep.Passed() {
		v.recorder.IncRunOutcome(metrics.OutcomePassed)
	} else {
		v.recorder.IncRunOutcome(metrics.OutcomeFailed)
	}

	if v.store != nil {
		if run, err := history.FromReport(rep); err != nil {
			log.Warn("Failed to encode run for history", logfields.Error(err))
		} else if err := v.store.Record(ctx, run); err != nil {
			log.Warn("Failed to record run history", logfields.Error(err))
		}
	}

	if err := v.publisher.Publish(ctx, rep); err != nil {
		log.Warn("Failed to publish report", logfields.Error(err))
	}

	attrs := []any{
		logfields.Errors(rep.ErrorCount()),
		logfields.Warnings(rep.WarningCount()),
		logfields.Documents(rep.Documents),
		logfields.DurationMS(float64(rep.Duration.Microseconds()) / 1000),
	}
	if rep.A11yScore != nil {
		attrs = append(attrs, logfields.Score(*rep.A11yScore))
	}
	log.Info("Validation complete", attrs...)
}
