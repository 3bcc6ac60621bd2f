package filesystem

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"streambuddy/internal/logging"
	"streambuddy/internal/mediatypes"
)

// Watcher reports changes to video files in a single folder.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher
	changes chan struct{}
}

// NewWatcher starts watching dir (non-recursively).
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:     dir,
		watcher: fw,
		changes: make(chan struct{}, 1),
	}, nil
}

// Changes delivers at most one pending notification; bursts are coalesced.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run forwards relevant events until ctx is cancelled, then closes the
// underlying fsnotify watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			logging.Warn("failed to close folder watcher for %s: %v", w.dir, err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("Folder watcher error for %s: %v", w.dir, err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !mediatypes.IsVideo(filepath.Ext(event.Name)) {
		return
	}

	op := eventOp(event.Op)
	if op == "" {
		return
	}

	observe().ObserveFolderEvent(op)
	logging.Debug("Folder event %s: %s", op, event.Name)

	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func eventOp(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return ""
	}
}
