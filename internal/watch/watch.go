// Package watch re-runs validation when content or the manifest changes, and
// periodically on a schedule.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/sitelint/internal/logfields"
)

// Trigger reasons passed to RunFunc.
const (
	ReasonInitial  = "initial"
	ReasonChange   = "change"
	ReasonInterval = "interval"
)

const defaultDebounce = 300 * time.Millisecond

// RunFunc performs one validation run.
type RunFunc func(ctx context.Context, reason string)

// Options configure the watcher.
type Options struct {
	// Root is the content root; every directory under it is watched.
	Root string
	// Manifest is the manifest file; its directory is watched for it.
	Manifest string
	Debounce time.Duration
	// Interval schedules additional runs; zero disables them.
	Interval time.Duration
}

// Watcher serialises validation runs triggered by filesystem events and the
// scheduler: one run at a time, at most one pending.
type Watcher struct {
	opts     Options
	run      RunFunc
	requests chan string
	manifest string
	root     string
}

// New creates a watcher.
func New(opts Options, run RunFunc) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	root, _ := filepath.Abs(opts.Root)
	manifest, _ := filepath.Abs(opts.Manifest)
	return &Watcher{
		opts:     opts,
		run:      run,
		requests: make(chan string, 1),
		root:     root,
		manifest: manifest,
	}
}

// request queues a run unless one is already pending.
func (w *Watcher) request(reason string) {
	select {
	case w.requests <- reason:
	default:
	}
}

// Run validates once, then watches until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := w.setupFileWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = fsw.Close() }()

	scheduler, err := w.setupScheduler()
	if err != nil {
		return err
	}
	if scheduler != nil {
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
	}

	debouncer := NewDebouncer(w.opts.Debounce, func() { w.request(ReasonChange) })
	defer debouncer.Stop()

	return w.serve(ctx, fsw.Events, fsw.Errors, func(ev fsnotify.Event) {
		w.handleFileEvent(fsw, ev, debouncer.Trigger)
	})
}

// serve runs the worker and dispatches file events until ctx ends or either
// channel closes. It returns only after the worker has finished its current
// run.
func (w *Watcher) serve(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, onEvent func(fsnotify.Event)) error {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.worker(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	w.request(ReasonInitial)
	slog.Info("Watching for changes",
		logfields.ContentRoot(w.root),
		logfields.Manifest(w.manifest),
		slog.Duration("interval", w.opts.Interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil
		case ev, ok := <-events:
			if !ok {
				slog.Warn("File watcher closed")
				return nil
			}
			onEvent(ev)
		case err, ok := <-errs:
			if !ok {
				slog.Warn("File watcher closed")
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case reason := <-w.requests:
			slog.Info("Running validation", slog.String("reason", reason))
			w.run(ctx, reason)
		}
	}
}

func (w *Watcher) setupFileWatcher() (*fsnotify.Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}

	if info, statErr := os.Stat(w.root); statErr == nil && info.IsDir() {
		addDirsRecursive(fsw, w.root)
	} else {
		slog.Warn("Content root not found; watching manifest only", logfields.ContentRoot(w.root))
	}

	if err := fsw.Add(filepath.Dir(w.manifest)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch manifest directory: %w", err)
	}
	return fsw, nil
}

func (w *Watcher) setupScheduler() (gocron.Scheduler, error) {
	if w.opts.Interval <= 0 {
		return nil, nil
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(w.opts.Interval),
		gocron.NewTask(w.request, ReasonInterval),
		gocron.WithName("periodic-validation"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create periodic validation job: %w", err)
	}
	return s, nil
}

// relevant reports whether an event path concerns the manifest or content.
func (w *Watcher) relevant(path string) bool {
	path = filepath.Clean(path)
	if path == w.manifest {
		return true
	}
	if path == w.root {
		return true
	}
	return strings.HasPrefix(path, w.root+string(filepath.Separator))
}

func (w *Watcher) handleFileEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) || !w.relevant(ev.Name) {
		return
	}
	if ev.Op.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(fsw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger runs.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}

	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		(strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#")) {
		return true
	}

	return base == "Thumbs.db"
}
