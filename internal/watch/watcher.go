// Package watch re-runs work when input files change on disk.
package watch

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// FileWatcher monitors a fixed set of files and triggers a callback when any
// of them is written or replaced. It watches the parent directories so that
// editors which save by renaming a temporary file are still seen.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	targets   map[string]struct{}
	dirs      []string
	onChange  func([]string) error
	logger    *zap.Logger
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(fw *FileWatcher) { fw.debouncer.duration = d }
}

func WithLogger(logger *zap.Logger) Option {
	return func(fw *FileWatcher) {
		if logger != nil {
			fw.logger = logger
		}
	}
}

// NewFileWatcher creates a watcher for files. onChange receives the changed
// paths, cleaned and sorted.
func NewFileWatcher(files []string, onChange func([]string) error, opts ...Option) (*FileWatcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(DefaultDebounce),
		targets:   make(map[string]struct{}),
		onChange:  onChange,
		logger:    zap.NewNop(),
		stopChan:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(fw)
	}

	seen := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		fw.targets[abs] = struct{}{}
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			fw.dirs = append(fw.dirs, dir)
		}
	}
	sort.Strings(fw.dirs)

	fw.debouncer.SetCallback(func(files []string) {
		if err := fw.onChange(files); err != nil {
			fw.logger.Error("error handling file changes", zap.Strings("files", files), zap.Error(err))
		}
	})

	return fw, nil
}

// Start begins watching the file system
func (fw *FileWatcher) Start() error {
	for _, dir := range fw.dirs {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		fw.logger.Debug("watching directory", zap.String("dir", dir))
	}

	fw.wg.Add(1)
	go fw.watch()

	return nil
}

// Stop stops the file watcher. It is safe to call more than once.
func (fw *FileWatcher) Stop() error {
	select {
	case <-fw.stopChan:
		return nil
	default:
		close(fw.stopChan)
	}

	fw.wg.Wait()
	fw.debouncer.Stop()
	return fw.watcher.Close()
}

// watch is the main event loop
func (fw *FileWatcher) watch() {
	defer fw.wg.Done()

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.isTarget(event.Name) {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fw.logger.Debug("file changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
				fw.debouncer.Add(filepath.Clean(event.Name))
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watch error", zap.Error(err))

		case <-fw.stopChan:
			return
		}
	}
}

// isTarget checks whether an event path is one of the watched files.
func (fw *FileWatcher) isTarget(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	_, ok := fw.targets[abs]
	return ok
}

// Debouncer collects file changes and triggers callbacks after a delay
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	files    map[string]struct{}
	mutex    sync.Mutex
	callback func([]string)
	stopped  bool
}

// NewDebouncer creates a new debouncer instance
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
		files:    make(map[string]struct{}),
	}
}

// Add records a file and restarts the delay.
func (d *Debouncer) Add(file string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped {
		return
	}
	d.files[file] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, d.flush)
}

// flush triggers the callback with accumulated files. The callback runs
// without the lock held so it may call Add.
func (d *Debouncer) flush() {
	d.mutex.Lock()
	if len(d.files) == 0 || d.stopped {
		d.mutex.Unlock()
		return
	}

	files := make([]string, 0, len(d.files))
	for file := range d.files {
		files = append(files, file)
	}
	sort.Strings(files)
	d.files = make(map[string]struct{})
	callback := d.callback
	d.mutex.Unlock()

	if callback != nil {
		callback(files)
	}
}

// SetCallback sets the callback function
func (d *Debouncer) SetCallback(callback func([]string)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = callback
}

// Stop cancels a pending flush. Later Adds are ignored.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.stopped = true
}
