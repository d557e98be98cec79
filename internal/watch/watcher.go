// Package watch re-triggers capture runs when the target fixture changes
// on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher observes the fixtures folder and emits one trigger per settled
// change to the target fixture. Rapid editor saves are debounced so a
// write burst produces a single recapture.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dir      string
	target   string
	debounce time.Duration
	triggers chan struct{}
	log      *zap.Logger
}

// New creates a Watcher for target inside dir. Call Run to start it.
func New(dir, target string, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		fsw:      fsw,
		dir:      dir,
		target:   target,
		debounce: 500 * time.Millisecond,
		triggers: make(chan struct{}, 1),
		log:      log,
	}, nil
}

// Triggers delivers one signal per settled change to the target fixture.
// The channel is closed when Run returns.
func (w *Watcher) Triggers() <-chan struct{} {
	return w.triggers
}

// Run processes filesystem events until ctx is cancelled or the watcher
// is closed. It returns nil on a clean stop.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	defer close(w.triggers)

	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	var lastEvent time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != w.target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug("fixture changed",
				zap.String("path", ev.Name),
				zap.String("op", ev.Op.String()))
			lastEvent = time.Now()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("fixture watch error", zap.Error(err))

		case <-tick.C:
			if lastEvent.IsZero() || time.Since(lastEvent) < w.debounce {
				continue
			}
			lastEvent = time.Time{}
			select {
			case w.triggers <- struct{}{}:
			default: // a trigger is already pending
			}
		}
	}
}

// Close shuts down the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
