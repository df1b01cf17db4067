package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/llmcompare/pkg/paths"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the watcher waits after the last file event
// before reloading.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads the layered configuration when any of its files change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	startDir string
	debounce time.Duration
	logger   *logrus.Entry
	onReload func(*Config, error)

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher watches the directories that can hold configuration for
// startDir: the project config's directory and the global config directory.
// onReload receives the freshly loaded config, or the error that prevented
// loading it. It is called from the watcher goroutine.
func NewWatcher(startDir string, debounce time.Duration, logger *logrus.Entry, onReload func(*Config, error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	dirs := map[string]bool{}
	if projectPath, err := FindConfigFile(startDir); err == nil {
		dirs[filepath.Dir(projectPath)] = true
	} else {
		dirs[startDir] = true
	}
	if configDir := paths.ConfigDir(); configDir != "" {
		if info, err := os.Stat(configDir); err == nil && info.IsDir() {
			dirs[configDir] = true
		}
	}

	watched := 0
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			logger.WithError(err).Warnf("Failed to watch config directory %s", dir)
			continue
		}
		logger.Debugf("Watching config directory: %s", dir)
		watched++
	}
	if watched == 0 {
		fsw.Close()
		return nil, os.ErrNotExist
	}

	return &Watcher{
		watcher:  fsw,
		startDir: startDir,
		debounce: debounce,
		logger:   logger,
		onReload: onReload,
	}, nil
}

// Start begins watching for config changes. It blocks until the context is
// cancelled or the watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	defer w.stopTimer()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isConfigFile(event.Name) {
				continue
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.watcher.Close()
			return
		}
	}
}

// schedule restarts the debounce timer so a burst of writes yields one reload.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFrom(w.startDir)
	if err != nil {
		w.logger.WithError(err).Warn("Config reload failed")
	} else {
		w.logger.WithField("path", cfg.Source).Info("Config reloaded")
	}
	if w.onReload != nil {
		w.onReload(cfg, err)
	}
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	w.stopTimer()
	return w.watcher.Close()
}

func isConfigFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range configNames {
		if base == name {
			return true
		}
	}
	for _, name := range overrideNames {
		if base == name {
			return true
		}
	}
	return false
}
