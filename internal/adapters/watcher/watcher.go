// Package watcher reports edits to target declaration files.
package watcher

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/targets/internal/core/domain"
	"go.trai.ch/targets/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 100 * time.Millisecond

const changesBuffer = 16

// Watcher implements ports.Watcher with fsnotify. It watches the declaration
// directory, not recursively, plus the directory of the env file, and reports
// declaration files in the former and the env file itself.
type Watcher struct {
	window    time.Duration
	dir       string
	envFile   string
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	changes   chan []string

	mu     sync.Mutex
	closed bool
}

// NewWatcher creates a watcher that settles bursts of edits over window.
func NewWatcher(window time.Duration) *Watcher {
	return &Watcher{
		window:  window,
		changes: make(chan []string, changesBuffer),
	}
}

// Start begins watching dir and, unless empty, envFile.
func (w *Watcher) Start(ctx context.Context, dir, envFile string) error {
	w.dir = filepath.Clean(dir)
	w.envFile = ""
	if envFile != "" {
		w.envFile = filepath.Clean(envFile)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	if err := fsWatcher.Add(w.dir); err != nil {
		_ = fsWatcher.Close()
		return zerr.With(zerr.Wrap(err, "failed to watch declarations"), "dir", w.dir)
	}
	// The env file may not exist yet; watching its directory catches its creation.
	if envDir := filepath.Dir(w.envFile); w.envFile != "" && envDir != w.dir {
		if err := fsWatcher.Add(envDir); err != nil {
			_ = fsWatcher.Close()
			return zerr.With(zerr.Wrap(err, "failed to watch env file"), "file", w.envFile)
		}
	}

	w.fsWatcher = fsWatcher
	w.debouncer = NewDebouncer(w.window, w.emit)

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	if w.fsWatcher == nil {
		return nil
	}
	return w.fsWatcher.Close()
}

// Changes yields batches of changed paths until watching ends.
func (w *Watcher) Changes() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for paths := range w.changes {
			if !yield(paths) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod || !w.relevant(event.Name) {
				continue
			}
			w.debouncer.Add(event.Name)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: file system error: %v\n", err)
		}
	}
}

func (w *Watcher) emit(paths []string) {
	slices.Sort(paths)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.changes <- paths:
	default:
		// Consumer is behind; a pending batch already triggers a new resolution.
	}
}

func (w *Watcher) close() {
	w.debouncer.Flush()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	close(w.changes)
}

// relevant reports whether a change to path affects resolution.
func (w *Watcher) relevant(path string) bool {
	path = filepath.Clean(path)
	if w.envFile != "" && path == w.envFile {
		return true
	}
	return filepath.Dir(path) == w.dir && IsDeclarationFile(path)
}

// IsDeclarationFile reports whether path names a target declaration file.
func IsDeclarationFile(path string) bool {
	base := filepath.Base(path)
	return base == domain.DeclarationFileName || strings.HasSuffix(base, domain.HCLDeclarationSuffix)
}
