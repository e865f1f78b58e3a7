package commands

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitelint/internal/config"
	"git.home.luguber.info/inful/sitelint/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelint/internal/history"
	"git.home.luguber.info/inful/sitelint/internal/logfields"
	"git.home.luguber.info/inful/sitelint/internal/metrics"
	"git.home.luguber.info/inful/sitelint/internal/publish"
	"git.home.luguber.info/inful/sitelint/internal/report"
	"git.home.luguber.info/inful/sitelint/internal/retry"
	"git.home.luguber.info/inful/sitelint/internal/validator"
)

// ErrValidationFailed is returned when a run completes with errors.
var ErrValidationFailed = stderrors.New("validation failed")

// Global is bound into every command's Run method.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitelint.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Validate ValidateCmd `cmd:"" default:"withargs" help:"Run every check (default)"`
	Links    LinksCmd    `cmd:"" help:"Check internal links only"`
	A11y     A11yCmd     `cmd:"" name:"a11y" help:"Run the accessibility audit only"`
	SEO      SEOCmd      `cmd:"" name:"seo" help:"Run the SEO heuristics only"`
	Watch    WatchCmd    `cmd:"" help:"Re-validate on content changes and on a schedule"`
	History  HistoryCmd  `cmd:"" help:"List stored validation runs"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig reads the configuration (defaults when the file is absent) and
// reinstalls the logger per its logging section.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(c.Config)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(newLogger(os.Stderr, cfg.Logging, c.Verbose))
	return cfg, nil
}

func newLogger(w io.Writer, lc config.LoggingConfig, verbose bool) *slog.Logger {
	level := lc.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ReportFlags select how a run's report is rendered.
type ReportFlags struct {
	Format string `short:"f" help:"Report format (text, json or html); defaults to report.format"`
	Quiet  bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
	Output string `short:"o" help:"Write the report to a file instead of stdout"`
}

func (f ReportFlags) write(cfg *config.Config, rep *report.Report) error {
	format := cfg.Report.Format
	if f.Format != "" {
		parsed, err := config.NormalizeReportFormat(f.Format)
		if err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "invalid --format").Build()
		}
		format = parsed
	}
	output := f.Output
	if output == "" {
		output = cfg.Report.Output
	}

	formatter := report.NewFormatter(string(format), f.Quiet)
	if output == "" || output == "-" {
		return formatter.Format(os.Stdout, rep)
	}

	file, err := os.Create(output)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create report file").
			WithPath(output).
			Build()
	}
	if err := formatter.Format(file, rep); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// runtime wires the optional history store and publisher around a validator.
type runtime struct {
	validator *validator.Validator
	closers   []io.Closer
}

func (r *runtime) Close() {
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			slog.Warn("Close failed", logfields.Error(err))
		}
	}
}

func newRuntime(ctx context.Context, cfg *config.Config, recorder metrics.Recorder) (*runtime, error) {
	rt := &runtime{}
	opts := []validator.Option{}
	if recorder != nil {
		opts = append(opts, validator.WithRecorder(recorder))
	}

	backoff, err := retry.ParseMode(cfg.Publish.Backoff)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid publish backoff").
			Fatal().
			WithContext("backoff", cfg.Publish.Backoff).
			Build()
	}

	if cfg.History.Path != "" {
		store, err := history.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, store)
		opts = append(opts, validator.WithHistory(store))
	}

	if cfg.Publish.NATSURL != "" {
		pub, err := publish.NewNATSPublisher(ctx, publish.Options{
			URL:     cfg.Publish.NATSURL,
			Subject: cfg.Publish.Subject,
			Timeout: cfg.Publish.Timeout,
			Retry:   retry.NewPolicy(backoff, cfg.Publish.RetryDelay, 0, cfg.Publish.Retries),
		})
		if err != nil {
			slog.Warn("Report publishing disabled", logfields.Error(err))
		} else {
			rt.closers = append(rt.closers, pub)
			opts = append(opts, validator.WithPublisher(pub))
		}
	}

	rt.validator = validator.New(cfg, opts...)
	return rt, nil
}

// runOnce loads the manifest, runs the given components and writes the
// report. A failed verdict is returned as ErrValidationFailed.
func runOnce(ctx context.Context, root *CLI, flags ReportFlags, components ...validator.Component) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	rt, err := newRuntime(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	m, err := rt.validator.LoadManifest()
	if err != nil {
		return err
	}

	rep, err := rt.validator.Run(ctx, m, components...)
	if err != nil {
		return err
	}
	if err := flags.write(cfg, rep); err != nil {
		return err
	}
	if !rep.Passed() {
		return ErrValidationFailed
	}
	return nil
}
