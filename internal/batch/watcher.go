package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures a new Watcher.
type WatcherConfig struct {
	Runner          *Runner
	Dir             string
	Debounce        time.Duration // Quiet period before a file is processed (default: 500ms)
	ProcessExisting bool          // Segment documents already in Dir at startup
	Logger          *slog.Logger  // Optional
	OnReport        func(Report)  // Called once per processed document
}

// Watcher segments PDF and JSON documents as they arrive in a directory.
// A file is processed once no events have been seen for it for the
// debounce period.
type Watcher struct {
	runner          *Runner
	dir             string
	debounce        time.Duration
	processExisting bool
	logger          *slog.Logger
	onReport        func(Report)
}

// NewWatcher creates a new Watcher.
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	if cfg.Runner == nil {
		return nil, fmt.Errorf("watcher requires a runner")
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path is not a directory: %s", cfg.Dir)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	onReport := cfg.OnReport
	if onReport == nil {
		onReport = func(Report) {}
	}

	return &Watcher{
		runner:          cfg.Runner,
		dir:             cfg.Dir,
		debounce:        debounce,
		processExisting: cfg.ProcessExisting,
		logger:          logger.With("component", "watcher", "dir", cfg.Dir),
		onReport:        onReport,
	}, nil
}

// Run watches until ctx is done, then waits for in-flight documents.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching for documents", "debounce", w.debounce)

	var wg sync.WaitGroup
	defer wg.Wait()

	pending := make(map[string]time.Time)
	if w.processExisting {
		existing, err := w.existing()
		if err != nil {
			return err
		}
		for _, path := range existing {
			pending[path] = time.Time{}
		}
	}

	tick := w.debounce / 2
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopping", "pending", len(pending))
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			switch {
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				delete(pending, ev.Name)
			case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
				if watchable(ev.Name) {
					pending[ev.Name] = time.Now()
				}
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case now := <-ticker.C:
			ready := settled(pending, now, w.debounce)
			if len(ready) == 0 {
				continue
			}
			for _, path := range ready {
				delete(pending, path)
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.process(ctx, ready)
			}()
		}
	}
}

func (w *Watcher) process(ctx context.Context, paths []string) {
	reports, err := w.runner.Run(ctx, paths)
	if err != nil {
		w.logger.Debug("batch interrupted", "error", err)
	}
	for _, r := range reports {
		w.onReport(r)
	}
}

// existing lists watchable files already in the directory.
func (w *Watcher) existing() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", w.dir, err)
	}
	var paths []string
	for _, e := range entries {
		path := filepath.Join(w.dir, e.Name())
		if !e.IsDir() && watchable(path) {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// settled returns pending paths quiet for at least debounce, sorted.
func settled(pending map[string]time.Time, now time.Time, debounce time.Duration) []string {
	var ready []string
	for path, last := range pending {
		if now.Sub(last) >= debounce {
			ready = append(ready, path)
		}
	}
	sort.Strings(ready)
	return ready
}

// watchable reports whether a file is a document the watcher handles.
// Hidden files and editor temp files are skipped.
func watchable(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".pdf", ".json":
		return true
	}
	return false
}
