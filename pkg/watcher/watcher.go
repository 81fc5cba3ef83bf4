package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// Watcher observes one outline file and fires a debounced callback when it
// is written or replaced. The containing directory is watched rather than
// the file itself: saves that go through a temp-file rename would otherwise
// detach the watch.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	debounce *Debouncer
	onChange func()

	cancel context.CancelFunc
	group  *errgroup.Group
}

// New creates a watcher for the given file. onChange runs on the watcher's
// goroutine after each debounced change burst.
func New(path string, window time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &Watcher{
		path:     filepath.Clean(path),
		fsw:      fsw,
		debounce: NewDebouncer(window),
		onChange: onChange,
	}, nil
}

// Start begins watching. It returns immediately; events are handled on a
// background goroutine until Stop is called.
func (w *Watcher) Start() error {
	if err := w.fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.group, ctx = errgroup.WithContext(ctx)
	w.group.Go(func() error { return w.loop(ctx) })
	return nil
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	w.debounce.Cancel()
	w.fsw.Close()
	if w.group != nil {
		return w.group.Wait()
	}
	return nil
}

func (w *Watcher) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			w.debounce.Trigger(w.onChange)

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			// Watch errors are transient on most platforms; keep going.
		}
	}
}
