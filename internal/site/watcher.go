package site

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ziadkadry99/sidenav/internal/logging"
	"github.com/ziadkadry99/sidenav/internal/walker"
)

// DefaultDebounce is how long the watcher waits for changes to settle
// before rebuilding.
const DefaultDebounce = 300 * time.Millisecond

// Watcher rebuilds the site when the content directory changes.
type Watcher struct {
	gen      *Generator
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	debounce time.Duration
	onBuild  func(*Result)

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	stats   WatcherStats
}

// WatcherStats counts watcher activity.
type WatcherStats struct {
	Events   int
	Rebuilds int
	Errors   int
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a rebuild.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithWatchLogger sets the watcher's logger.
func WithWatchLogger(l *zap.Logger) WatcherOption {
	return func(w *Watcher) { w.logger = l }
}

// NewWatcher creates a watcher that regenerates gen's site and passes every
// successful result to onBuild.
func NewWatcher(gen *Generator, onBuild func(*Result), opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		gen:      gen,
		watcher:  fw,
		debounce: DefaultDebounce,
		onBuild:  onBuild,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.OrNop(w.logger)
	return w, nil
}

// Start watches every directory under the content directory. It does not
// block; call Stop to release the watcher.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addTree(w.gen.ContentDir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.logger.Info("watching for changes", zap.String("dir", w.gen.ContentDir))

	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("closing watcher", zap.Error(err))
	}
}

// Stats returns a snapshot of the watcher counters.
func (w *Watcher) Stats() WatcherStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.mu.Lock()
			w.stats.Events++
			w.mu.Unlock()
			w.logger.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
			w.logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			w.rebuild(ctx)
		}
	}
}

// relevant reports whether event should trigger a rebuild. New directories
// are added to the watch.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == event.Op {
		return false
	}
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("watching new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return true
		}
	}
	return walker.IsMarkdown(event.Name) || event.Op&(fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) rebuild(ctx context.Context) {
	result, err := w.gen.Generate(ctx)
	w.mu.Lock()
	if err != nil {
		w.stats.Errors++
	} else {
		w.stats.Rebuilds++
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Error("rebuild failed", zap.Error(err))
		return
	}
	w.logger.Info("rebuilt site", zap.String("build_id", result.BuildID), zap.Int("pages", len(result.Pages)))
	if w.onBuild != nil {
		w.onBuild(result)
	}
}

// addTree adds dir and its subdirectories to the watch, skipping the output
// directory and the default excluded directories.
func (w *Watcher) addTree(dir string) error {
	outAbs, _ := filepath.Abs(w.gen.OutputDir)
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if abs, _ := filepath.Abs(p); abs == outAbs {
			return filepath.SkipDir
		}
		if p != dir && walker.ShouldExcludeDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(p)
	})
}
