package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrAlreadyRunning is returned by Watch when the watcher is already active.
var ErrAlreadyRunning = errors.New("watcher already running")

// FileWatcherConfig contains configuration for the file watcher.
type FileWatcherConfig struct {
	// Paths are the files and directories to watch. Directories are watched
	// recursively; subdirectories created later are picked up.
	Paths []string

	// Files are watched regardless of extension (e.g. the config file).
	Files []string

	// DebounceInterval is the quiet period before a change is reported
	// (default: 500ms)
	DebounceInterval time.Duration

	// Extensions limits which files in watched directories count as changes
	Extensions []string

	// SkipHidden ignores dot-files and dot-directories
	SkipHidden bool
}

// DefaultFileWatcherConfig returns the default watcher configuration.
func DefaultFileWatcherConfig() *FileWatcherConfig {
	return &FileWatcherConfig{
		DebounceInterval: 500 * time.Millisecond,
		Extensions:       []string{".csv", ".md", ".markdown"},
		SkipHidden:       true,
	}
}

// FileWatcher reports changes to dictionary inputs, debounced.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *FileWatcherConfig
	debounce *Debouncer
	files    map[string]bool

	mu      sync.Mutex
	running bool
	pending map[string]struct{}

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewFileWatcher creates a new file watcher.
func NewFileWatcher(config *FileWatcherConfig, logger *slog.Logger) (*FileWatcher, error) {
	if config == nil {
		config = DefaultFileWatcherConfig()
	}
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = DefaultFileWatcherConfig().DebounceInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	files := make(map[string]bool, len(config.Files))
	for _, f := range config.Files {
		files[filepath.Clean(f)] = true
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger.With("component", "watch.files"),
		config:   config,
		debounce: NewDebouncer(config.DebounceInterval),
		files:    files,
		pending:  make(map[string]struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is cancelled or Stop is called, invoking onChange
// with the sorted set of paths changed during each debounced burst.
// onChange runs on the debouncer's goroutine; calls never overlap.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func(changed []string)) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return ErrAlreadyRunning
	}
	fw.running = true
	fw.mu.Unlock()

	defer close(fw.doneCh)

	for _, p := range append(append([]string(nil), fw.config.Paths...), fw.config.Files...) {
		if err := fw.addPath(p); err != nil {
			return fmt.Errorf("failed to watch %q: %w", p, err)
		}
	}

	fw.logger.Info("file watcher started",
		"paths", fw.config.Paths,
		"files", fw.config.Files,
		"debounce_ms", fw.config.DebounceInterval.Milliseconds(),
	)

	var runMu sync.Mutex
	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("file watcher stopped (context cancelled)")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Has(fsnotify.Create) {
				fw.watchNewDirectory(event.Name)
			}
			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug("file event detected", "path", event.Name, "op", event.Op.String())

			fw.mu.Lock()
			fw.pending[filepath.Clean(event.Name)] = struct{}{}
			fw.mu.Unlock()

			fw.debounce.Trigger(func() {
				changed := fw.drain()
				if len(changed) == 0 {
					return
				}
				runMu.Lock()
				defer runMu.Unlock()
				onChange(changed)
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

// drain returns and clears the pending change set.
func (fw *FileWatcher) drain() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	out := make([]string, 0, len(fw.pending))
	for p := range fw.pending {
		out = append(out, p)
	}
	sort.Strings(out)
	fw.pending = make(map[string]struct{})
	return out
}

// Stop stops the watcher and releases its resources. It is safe to call
// more than once and without a prior Watch.
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		close(fw.stopCh)

		fw.mu.Lock()
		running := fw.running
		fw.mu.Unlock()
		if running {
			<-fw.doneCh
		}

		fw.debounce.Stop()
		if cerr := fw.watcher.Close(); cerr != nil {
			err = fmt.Errorf("failed to close watcher: %w", cerr)
		}
	})
	return err
}

// addPath adds a file or directory to the watcher. Files are watched
// through their parent directory so that editors replacing the file by
// rename are still seen.
func (fw *FileWatcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return fw.addDirectory(path)
	}

	fw.files[filepath.Clean(path)] = true
	return fw.watcher.Add(filepath.Dir(path))
}

// addDirectory adds a directory and all subdirectories to the watcher.
func (fw *FileWatcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if fw.config.SkipHidden && path != dir && isHidden(path) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		fw.logger.Debug("watching directory", "path", path)
		return nil
	})
}

// watchNewDirectory starts watching a directory created after Watch began.
func (fw *FileWatcher) watchNewDirectory(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if fw.config.SkipHidden && isHidden(path) {
		return
	}
	if err := fw.addDirectory(path); err != nil {
		fw.logger.Warn("failed to watch new directory", "path", path, "error", err)
	}
}

// shouldProcessEvent determines if an event counts as an input change.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	name := filepath.Clean(event.Name)
	if fw.files[name] {
		return true
	}

	if fw.config.SkipHidden && isHidden(name) {
		return false
	}

	return fw.hasValidExtension(strings.ToLower(filepath.Ext(name)))
}

// hasValidExtension checks if a file extension should be watched.
func (fw *FileWatcher) hasValidExtension(ext string) bool {
	for _, validExt := range fw.config.Extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
