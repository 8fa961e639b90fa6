// Package watch monitors a drop directory for recipe source files. New or
// changed files are debounced, de-duplicated by content hash, and emitted as
// events for the CLI's watch mode to transform.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// eventChannelBuffer is the size of the watch event channel.
const eventChannelBuffer = 100

// Config configures the drop directory watcher.
type Config struct {
	// Dir is the directory to watch. Created when absent.
	Dir string `yaml:"dir"`

	// DebounceDelay is how long to wait for more changes before emitting.
	DebounceDelay time.Duration `yaml:"debounce_delay"`

	// FileExtensions lists extensions to watch.
	FileExtensions []string `yaml:"file_extensions"`
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() Config {
	return Config{
		Dir:            "recipes",
		DebounceDelay:  500 * time.Millisecond,
		FileExtensions: []string{".json"},
	}
}

// Operation indicates the type of file change.
type Operation string

// Operations emitted by the watcher.
const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Event is one debounced file change.
type Event struct {
	// Path is the file path relative to the watched directory.
	Path string

	// AbsPath is the absolute file path.
	AbsPath string

	// Operation is the type of change.
	Operation Operation
}

// Watcher emits events for recipe files dropped into a directory.
type Watcher struct {
	config     Config
	watcher    *fsnotify.Watcher
	logger     *slog.Logger
	extensions map[string]bool

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	hashMu sync.RWMutex
	hashes map[string]string

	events chan Event

	droppedEvents atomic.Int64
}

// New creates a watcher over the configured directory.
func New(config Config, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = 500 * time.Millisecond
	}

	extensions := make(map[string]bool)
	if len(config.FileExtensions) == 0 {
		extensions[".json"] = true
	}
	for _, ext := range config.FileExtensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[strings.ToLower(ext)] = true
	}

	return &Watcher{
		config:     config,
		watcher:    fsw,
		logger:     logger,
		extensions: extensions,
		pending:    make(map[string]fsnotify.Op),
		hashes:     make(map[string]string),
		events:     make(chan Event, eventChannelBuffer),
	}, nil
}

// Events returns the channel of watch events. It is closed when the watcher
// stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching. The directory is created when absent.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.config.Dir, 0755); err != nil {
		return err
	}
	if err := w.watcher.Add(w.config.Dir); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("recipe watcher started",
		"dir", w.config.Dir,
		"debounce", w.config.DebounceDelay,
		"extensions", w.config.FileExtensions)
	return nil
}

// Stop stops the watcher. The events channel is closed by the processing
// goroutine when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// DroppedEvents returns the number of events dropped due to channel overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	ext := strings.ToLower(filepath.Ext(event.Name))
	if !w.extensions[ext] {
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] = event.Op
	w.pendingMu.Unlock()
}

// flushPending turns accumulated fsnotify ops into at most one event per
// file, skipping writes that did not change content.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		if ctx.Err() != nil {
			return
		}

		relPath, _ := filepath.Rel(w.config.Dir, path)
		event := Event{Path: relPath, AbsPath: path}

		if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
			event.Operation = OpDelete
			w.forgetHash(relPath)
			w.sendEvent(event)
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			event.Operation = OpDelete
			w.forgetHash(relPath)
			w.sendEvent(event)
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			w.logger.Warn("failed to read changed file", "path", relPath, "error", err)
			continue
		}
		sum := sha256.Sum256(content)
		newHash := hex.EncodeToString(sum[:])

		oldHash, hadHash := w.getHash(relPath)
		if hadHash && oldHash == newHash {
			continue
		}
		w.setHash(relPath, newHash)

		if op.Has(fsnotify.Create) || !hadHash {
			event.Operation = OpCreate
		} else {
			event.Operation = OpModify
		}
		w.sendEvent(event)
	}
}

func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("event channel full, dropping event",
			"path", event.Path, "total_dropped", dropped)
	}
}

func (w *Watcher) getHash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	hash, ok := w.hashes[path]
	return hash, ok
}

func (w *Watcher) setHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

func (w *Watcher) forgetHash(path string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	delete(w.hashes, path)
}
