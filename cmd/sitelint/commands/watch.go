package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitelint/internal/logfields"
	"git.home.luguber.info/inful/sitelint/internal/metrics"
	"git.home.luguber.info/inful/sitelint/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	ReportFlags `embed:""`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	var recorder metrics.Recorder
	if cfg.Metrics.Listen != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		srv := metrics.NewServer(cfg.Metrics.Listen, reg)
		if err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	rt, err := newRuntime(ctx, cfg, recorder)
	if err != nil {
		return err
	}
	defer rt.Close()

	watcher := watch.New(watch.Options{
		Root:     cfg.Content.Root,
		Manifest: cfg.Manifest,
		Debounce: cfg.Watch.Debounce,
		Interval: cfg.Watch.Interval,
	}, func(ctx context.Context, reason string) {
		// The manifest is reloaded on every run so edits take effect.
		m, err := rt.validator.LoadManifest()
		if err != nil {
			slog.Error("Manifest unusable; waiting for changes", logfields.Error(err))
			return
		}
		rep, err := rt.validator.Run(ctx, m)
		if err != nil {
			slog.Error("Validation aborted", slog.String("reason", reason), logfields.Error(err))
			return
		}
		if err := w.write(cfg, rep); err != nil {
			slog.Warn("Failed to write report", logfields.Error(err))
		}
	})

	return watcher.Run(ctx)
}
